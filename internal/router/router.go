package router

import (
	"time"

	"github.com/NibsNibsXD/Ferreteria-sub000/internal/config"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/handler"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/infra"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/middleware"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/repository"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/service"
	"github.com/NibsNibsXD/Ferreteria-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mailCB *infra.CircuitBreaker, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	cajaRepo := repository.NewCajaRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	devolucionRepo := repository.NewDevolucionRepository(db)
	compraRepo := repository.NewCompraRepository(db)
	reporteRepo := repository.NewReporteRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	cajaSvc := service.NewCajaService(cajaRepo, ventaRepo)
	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, cajaSvc, dispatcher)
	devolucionSvc := service.NewDevolucionService(devolucionRepo, ventaRepo)
	compraSvc := service.NewCompraService(compraRepo, productoRepo)
	reporteSvc := service.NewReporteService(reporteRepo, productoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	cajaH := handler.NewCajaHandler(cajaSvc)
	ventasH := handler.NewVentaHandler(ventaSvc)
	devolucionesH := handler.NewDevolucionHandler(devolucionSvc)
	comprasH := handler.NewCompraHandler(compraSvc)
	reportesH := handler.NewReporteHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, mailCB))

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: cajero, supervisor, administrador — declared per-endpoint
		cajas := v1.Group("/cajas", middleware.RequireRole("cajero", "supervisor", "administrador"))
		{
			cajas.GET("/disponibles", cajaH.ListarDisponibles)
			cajas.POST("/:id/abrir", cajaH.Abrir)
			cajas.POST("/:id/cerrar", cajaH.Cerrar)
		}
		caja := v1.Group("/caja")
		{
			caja.GET("/sesion", middleware.RequireRole("cajero", "supervisor", "administrador"), cajaH.SesionActual)
			caja.GET("/ventas-del-dia", middleware.RequireRole("cajero", "supervisor", "administrador"), cajaH.VentasDelDia)
			caja.GET("/cierres", middleware.RequireRole("supervisor", "administrador"), cajaH.Historial)
		}

		v1.POST("/ventas", middleware.RequireRole("cajero", "supervisor", "administrador"), ventasH.Registrar)
		v1.GET("/ventas/:id", middleware.RequireRole("cajero", "supervisor", "administrador"), ventasH.ObtenerPorID)
		v1.POST("/ventas/:id/anular", middleware.RequireRole("supervisor", "administrador"), ventasH.Anular)

		devoluciones := v1.Group("/devoluciones", middleware.RequireRole("cajero", "supervisor", "administrador"))
		{
			devoluciones.POST("", devolucionesH.Crear)
			devoluciones.GET("", devolucionesH.ListarRecientes)
			devoluciones.GET("/venta/:id", devolucionesH.ObtenerPorVenta)
		}

		v1.POST("/compras", middleware.RequireRole("supervisor", "administrador"), comprasH.Registrar)

		reportes := v1.Group("/reportes", middleware.RequireRole("supervisor", "administrador"))
		{
			reportes.GET("/ventas", reportesH.ResumenVentas)
			reportes.GET("/compras", reportesH.ResumenCompras)
			reportes.GET("/inventario", reportesH.Inventario)
			reportes.GET("/stock-bajo", reportesH.BajoStock)
			reportes.GET("/stock-bajo/conteo", reportesH.ContarBajoStock)
			reportes.GET("/top-productos", reportesH.TopProductos)
			reportes.GET("/top-clientes", reportesH.TopClientes)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
