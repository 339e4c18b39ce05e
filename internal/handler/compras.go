package handler

import (
	"net/http"

	"github.com/NibsNibsXD/Ferreteria-sub000/internal/apierror"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/dto"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/middleware"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CompraHandler struct{ svc service.CompraService }

func NewCompraHandler(svc service.CompraService) *CompraHandler { return &CompraHandler{svc: svc} }

// Registrar godoc
// @Summary Registra una compra a proveedor y repone stock
// @Tags compras
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarCompraRequest true "Datos de la compra"
// @Success 201 {object} dto.CompraResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/compras [post]
func (h *CompraHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de usuario inválido"))
		return
	}

	resp, err := h.svc.Registrar(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
