package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/NibsNibsXD/Ferreteria-sub000/internal/apierror"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/dto"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/middleware"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// ListarDisponibles godoc
// @Summary Lista las cajas libres de la sucursal
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CajaResponse
// @Router /v1/cajas/disponibles [get]
func (h *CajaHandler) ListarDisponibles(c *gin.Context) {
	resp, err := h.svc.ListarDisponibles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Abrir godoc
// @Summary Reclama una caja y abre la sesion del cajero
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de caja"
// @Success 201 {object} dto.SesionCajaResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/cajas/{id}/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	cajaID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de usuario inválido"))
		return
	}

	resp, err := h.svc.Abrir(c.Request.Context(), cajaID, usuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SesionActual returns the register currently held by the authenticated user.
func (h *CajaHandler) SesionActual(c *gin.Context) {
	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de usuario inválido"))
		return
	}
	caja, err := h.svc.CajaDeUsuario(c.Request.Context(), usuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	if caja == nil {
		c.JSON(http.StatusNotFound, apierror.New("Sin sesión activa"))
		return
	}
	c.JSON(http.StatusOK, dto.SesionCajaResponse{
		CajaID:       caja.ID.String(),
		Nombre:       caja.Nombre,
		UsuarioID:    usuarioID.String(),
		SaldoInicial: caja.SaldoInicial,
		AbiertaEn:    caja.UpdatedAt.Format(time.RFC3339),
	})
}

// VentasDelDia godoc
// @Summary Ventas del dia del cajero, particionadas por tipo de pago
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Param fecha query string false "Fecha YYYY-MM-DD (por defecto hoy)"
// @Success 200 {object} dto.VentasDelDiaResponse
// @Router /v1/caja/ventas-del-dia [get]
func (h *CajaHandler) VentasDelDia(c *gin.Context) {
	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de usuario inválido"))
		return
	}

	fecha := time.Now()
	if q := c.Query("fecha"); q != "" {
		fecha, err = time.Parse("2006-01-02", q)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Fecha inválida, formato esperado YYYY-MM-DD"))
			return
		}
	}

	resp, err := h.svc.VentasDelDia(c.Request.Context(), usuarioID, fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cerrar godoc
// @Summary Cierra la sesion de caja con arqueo de efectivo
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de caja"
// @Param body body dto.CerrarCajaRequest true "Efectivo contado"
// @Success 200 {object} dto.CierreCajaResponse
// @Failure 403 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/cajas/{id}/cerrar [post]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	cajaID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID de usuario inválido"))
		return
	}

	resp, err := h.svc.Cerrar(c.Request.Context(), cajaID, usuarioID, req.EfectivoContado)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Historial returns a paginated list of register closings.
func (h *CajaHandler) Historial(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	items, total, err := h.svc.Historial(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}
