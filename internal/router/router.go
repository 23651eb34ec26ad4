package router

import (
	"time"

	"barstock/internal/cache"
	"barstock/internal/config"
	"barstock/internal/handler"
	"barstock/internal/infra"
	"barstock/internal/middleware"
	"barstock/internal/repository"
	"barstock/internal/service"
	"barstock/internal/worker"
	"barstock/internal/ws"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New arma todas las dependencias y devuelve el engine de Gin configurado.
// Grafo de dependencias: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, smtpCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Cadena global de middleware (el orden importa)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// ── Infraestructura ──────────────────────────────────────────────────────
	espejo := cache.NewEspejo(rdb)
	hub := ws.NewHub(cfg.JWTSecret)
	dispatcher := worker.NewDispatcher(rdb)

	// ── Repositorios ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	distribuidorRepo := repository.NewDistribuidorRepository(db)
	accionRepo := repository.NewAccionRepository(db)
	nivelParRepo := repository.NewNivelParRepository(db)

	// ── Servicios ────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	accionSvc := service.NewAccionService(accionRepo)
	productoSvc := service.NewProductoService(productoRepo, accionSvc, hub)
	syncSvc := service.NewSyncService(productoRepo)
	escenarioSvc := service.NewEscenarioService(productoRepo, accionSvc, hub)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	distribuidorSvc := service.NewDistribuidorService(distribuidorRepo, productoRepo)
	nivelParSvc := service.NewNivelParService(nivelParRepo, productoRepo)
	ordenSvc := service.NewOrdenService(distribuidorRepo, productoRepo, nivelParRepo, dispatcher)
	catalogoSvc := service.NewCatalogoService(categoriaRepo, productoRepo, espejo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc, syncSvc, accionSvc)
	escenariosH := handler.NewEscenariosHandler(escenarioSvc)
	accionesH := handler.NewAccionesHandler(accionSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	distribuidoresH := handler.NewDistribuidoresHandler(distribuidorSvc)
	nivelesParH := handler.NewNivelesParHandler(nivelParSvc)
	ordenesH := handler.NewOrdenesHandler(ordenSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)

	// ── Rutas ────────────────────────────────────────────────────────────────

	// Públicas
	r.GET("/health", handler.Health(db, rdb, smtpCB))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Websocket de pantallas: valida el JWT por query param en el handshake
	r.GET("/v1/ws/estaciones", hub.HandleEstaciones)

	// Protegidas
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	todos := middleware.RequireRole("bartender", "encargado", "administrador")
	gestion := middleware.RequireRole("encargado", "administrador")
	admin := middleware.RequireRole("administrador")

	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/auth/me", authH.Me)

		// Catálogo completo con fallback al espejo
		v1.GET("/catalogo", todos, catalogoH.Obtener)

		// Productos: lectura y conteos para todos los roles
		v1.GET("/productos", todos, productosH.Listar)
		v1.GET("/productos/:id", todos, productosH.ObtenerPorID)
		v1.GET("/productos/:id/historial", gestion, productosH.Historial)
		v1.POST("/productos/sync", todos, productosH.Sync)

		// Congelado y reordenado: encargado para arriba
		v1.POST("/productos/:id/congelar", gestion, productosH.Congelar)
		v1.POST("/productos/:id/descongelar", gestion, productosH.Descongelar)
		v1.POST("/productos/reordenar", gestion, productosH.Reordenar)
		v1.PUT("/productos/:id/par", gestion, nivelesParH.Guardar)
		v1.DELETE("/productos/:id/par", gestion, nivelesParH.Eliminar)

		// Altas, ediciones y bajas de catálogo: administrador
		prods := v1.Group("/productos", admin)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Eliminar)
		}

		// Escenarios de congelado masivo
		escenarios := v1.Group("/escenarios", gestion)
		{
			escenarios.POST("/detener", escenariosH.Detener)
			escenarios.POST("/:flag", escenariosH.Ejecutar)
		}

		v1.GET("/acciones", gestion, accionesH.Listar)
		v1.GET("/niveles-par", todos, nivelesParH.Listar)

		// Pedidos a distribuidores
		ordenes := v1.Group("/ordenes", gestion)
		{
			ordenes.GET("/:distribuidorId", ordenesH.Generar)
			ordenes.POST("/:distribuidorId/enviar", ordenesH.Enviar)
		}

		v1.GET("/categorias", todos, categoriasH.Listar)
		categorias := v1.Group("/categorias", admin)
		{
			categorias.POST("", categoriasH.Crear)
			categorias.PUT("/:id", categoriasH.Actualizar)
			categorias.DELETE("/:id", categoriasH.Eliminar)
		}

		v1.GET("/distribuidores", todos, distribuidoresH.Listar)
		distribuidores := v1.Group("/distribuidores", admin)
		{
			distribuidores.POST("", distribuidoresH.Crear)
			distribuidores.GET("/:id", distribuidoresH.ObtenerPorID)
			distribuidores.PUT("/:id", distribuidoresH.Actualizar)
			distribuidores.DELETE("/:id", distribuidoresH.Eliminar)
		}

		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI, sólo fuera de producción
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
