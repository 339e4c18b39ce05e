package handler

import (
	"net/http"
	"strconv"

	"github.com/NibsNibsXD/Ferreteria-sub000/internal/apierror"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/dto"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/middleware"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DevolucionHandler struct{ svc service.DevolucionService }

func NewDevolucionHandler(svc service.DevolucionService) *DevolucionHandler {
	return &DevolucionHandler{svc: svc}
}

// Crear godoc
// @Summary Registra un cambio de mercaderia sobre una venta
// @Description El valor entregado debe cubrir el devuelto: nunca se reintegra efectivo.
// @Tags devoluciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearDevolucionRequest true "Lineas devueltas y entregadas"
// @Success 201 {object} dto.DevolucionResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/devoluciones [post]
func (h *DevolucionHandler) Crear(c *gin.Context) {
	var req dto.CrearDevolucionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de usuario inválido"))
		return
	}

	resp, err := h.svc.Crear(c.Request.Context(), usuarioID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ObtenerPorVenta godoc
// @Summary Obtiene la devolucion asociada a una venta
// @Tags devoluciones
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de venta"
// @Success 200 {object} dto.DevolucionResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/devoluciones/venta/{id} [get]
func (h *DevolucionHandler) ObtenerPorVenta(c *gin.Context) {
	ventaID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorVenta(c.Request.Context(), ventaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarRecientes godoc
// @Summary Lista las devoluciones mas recientes
// @Tags devoluciones
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Cantidad maxima (por defecto 20)"
// @Success 200 {array} dto.DevolucionResponse
// @Router /v1/devoluciones [get]
func (h *DevolucionHandler) ListarRecientes(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	resp, err := h.svc.ListarRecientes(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
