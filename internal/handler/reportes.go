package handler

import (
	"net/http"
	"strconv"

	"github.com/NibsNibsXD/Ferreteria-sub000/internal/apierror"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type ReporteHandler struct{ svc service.ReporteService }

func NewReporteHandler(svc service.ReporteService) *ReporteHandler {
	return &ReporteHandler{svc: svc}
}

// ResumenVentas godoc
// @Summary Resumen de ventas completadas en un rango de fechas
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Param desde query string false "Fecha inicial YYYY-MM-DD"
// @Param hasta query string false "Fecha final YYYY-MM-DD (inclusive)"
// @Success 200 {object} dto.ResumenVentasResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/reportes/ventas [get]
func (h *ReporteHandler) ResumenVentas(c *gin.Context) {
	rango, err := service.ParseRango(c.Query("desde"), c.Query("hasta"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ResumenVentas(c.Request.Context(), rango)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResumenCompras godoc
// @Summary Resumen de compras a proveedores en un rango de fechas
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Param desde query string false "Fecha inicial YYYY-MM-DD"
// @Param hasta query string false "Fecha final YYYY-MM-DD (inclusive)"
// @Success 200 {object} dto.ResumenComprasResponse
// @Router /v1/reportes/compras [get]
func (h *ReporteHandler) ResumenCompras(c *gin.Context) {
	rango, err := service.ParseRango(c.Query("desde"), c.Query("hasta"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ResumenCompras(c.Request.Context(), rango)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Inventario godoc
// @Summary Valorizacion actual del inventario
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.InventarioResponse
// @Router /v1/reportes/inventario [get]
func (h *ReporteHandler) Inventario(c *gin.Context) {
	resp, err := h.svc.Inventario(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BajoStock godoc
// @Summary Productos en o por debajo de su stock minimo
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AlertaStockItem
// @Router /v1/reportes/stock-bajo [get]
func (h *ReporteHandler) BajoStock(c *gin.Context) {
	resp, err := h.svc.BajoStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ContarBajoStock returns only counts, for dashboard badges.
func (h *ReporteHandler) ContarBajoStock(c *gin.Context) {
	resp, err := h.svc.ContarBajoStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TopProductos godoc
// @Summary Productos mas vendidos, opcionalmente acotados por fechas
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Param desde query string false "Fecha inicial YYYY-MM-DD"
// @Param hasta query string false "Fecha final YYYY-MM-DD (inclusive)"
// @Param limit query int false "Cantidad maxima (por defecto 20)"
// @Success 200 {array} dto.TopProductoItem
// @Router /v1/reportes/top-productos [get]
func (h *ReporteHandler) TopProductos(c *gin.Context) {
	rango, err := service.ParseRango(c.Query("desde"), c.Query("hasta"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	resp, err := h.svc.TopProductos(c.Request.Context(), rango, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TopClientes godoc
// @Summary Clientes con mayor gasto, opcionalmente acotados por fechas
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Param desde query string false "Fecha inicial YYYY-MM-DD"
// @Param hasta query string false "Fecha final YYYY-MM-DD (inclusive)"
// @Param limit query int false "Cantidad maxima (por defecto 20)"
// @Success 200 {array} dto.TopClienteItem
// @Router /v1/reportes/top-clientes [get]
func (h *ReporteHandler) TopClientes(c *gin.Context) {
	rango, err := service.ParseRango(c.Query("desde"), c.Query("hasta"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	resp, err := h.svc.TopClientes(c.Request.Context(), rango, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
