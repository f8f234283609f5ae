package http

import (
	"strconv"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rentalsur/edp-api/internal/application/auth"
	appedp "github.com/rentalsur/edp-api/internal/application/edp"
	"github.com/rentalsur/edp-api/internal/application/usecase"
	"github.com/rentalsur/edp-api/internal/domain/entity"
	"github.com/rentalsur/edp-api/internal/observability/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	EDPUC          *appedp.UseCase
	ClienteUC      *usecase.ClienteUseCase
	ObraUC         *usecase.ObraUseCase
	EquipoUC       *usecase.EquipoUseCase
	TipoServicioUC *usecase.TipoServicioUseCase
	UsuarioUC      *usecase.UsuarioUseCase
	AuthUC         *auth.UseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(metricsMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// EDPs (protegido)
	edps := protected.Group("/edp")
	edpHandler := NewEDPHandler(deps.EDPUC)
	edps.Post("/", edpHandler.Create)
	edps.Get("/", edpHandler.List)
	edps.Get("/:id", edpHandler.GetByID)
	edps.Put("/:id", edpHandler.Update)
	edps.Delete("/:id", edpHandler.Delete)
	edps.Patch("/:id/estado", edpHandler.CambiarEstado)
	edps.Get("/:id/historial", edpHandler.GetHistorial)
	edps.Post("/:id/equipos", edpHandler.AgregarEquipo)
	edps.Delete("/:id/equipos/:lineaId", edpHandler.EliminarEquipo)
	edps.Post("/:id/equipos/:lineaId/servicios", edpHandler.AgregarServicio)
	edps.Delete("/:id/servicios/:servicioId", edpHandler.EliminarServicio)

	// Clientes y obras (protegido)
	clientes := protected.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC, deps.ObraUC)
	clientes.Post("/", clienteHandler.Create)
	clientes.Get("/", clienteHandler.List)
	clientes.Get("/:id", clienteHandler.GetByID)
	clientes.Put("/:id", clienteHandler.Update)
	clientes.Delete("/:id", clienteHandler.Delete)
	clientes.Get("/:id/obras", clienteHandler.ListObras)

	obras := protected.Group("/obras")
	obraHandler := NewObraHandler(deps.ObraUC)
	obras.Post("/", obraHandler.Create)
	obras.Get("/", obraHandler.List)
	obras.Get("/:id", obraHandler.GetByID)

	// Catálogo de equipos (protegido)
	equipos := protected.Group("/equipos")
	equipoHandler := NewEquipoHandler(deps.EquipoUC)
	equipos.Post("/", equipoHandler.Create)
	equipos.Get("/", equipoHandler.List)
	equipos.Get("/:id", equipoHandler.GetByID)
	equipos.Patch("/:id/tarifa", RequireRole(entity.RolAdmin, entity.RolSupervisor), equipoHandler.ActualizarTarifa)

	// Tipos de servicio (protegido)
	tipos := protected.Group("/tipos-servicio")
	tipoHandler := NewTipoServicioHandler(deps.TipoServicioUC)
	tipos.Post("/", RequireRole(entity.RolAdmin, entity.RolSupervisor), tipoHandler.Create)
	tipos.Get("/", tipoHandler.List)

	// Usuarios (solo Admin)
	usuarios := protected.Group("/usuarios", RequireRole(entity.RolAdmin))
	usuarioHandler := NewUsuarioHandler(deps.UsuarioUC)
	usuarios.Get("/", usuarioHandler.List)
	usuarios.Get("/:id", usuarioHandler.GetByID)
	usuarios.Patch("/:id/desactivar", usuarioHandler.Desactivar)
}

// metricsMiddleware registra contador y latencia por ruta. Usa la plantilla
// de la ruta (c.Route().Path) para acotar la cardinalidad de labels.
func metricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		inicio := time.Now()
		err := c.Next()
		route := c.Route().Path
		if route == "/metrics" {
			return err
		}
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		metrics.HTTPRequest(c.Method(), route, strconv.Itoa(status), time.Since(inicio))
		return err
	}
}
