package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/rentalsur/edp-api/internal/application/auth"
	appedp "github.com/rentalsur/edp-api/internal/application/edp"
	"github.com/rentalsur/edp-api/internal/application/usecase"
	"github.com/rentalsur/edp-api/internal/infrastructure/postgres"
	httpRouter "github.com/rentalsur/edp-api/internal/interfaces/http"
	"github.com/rentalsur/edp-api/internal/observability/metrics"
	"github.com/rentalsur/edp-api/pkg/config"
	"github.com/rentalsur/edp-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	metrics.Init()

	edpRepo := postgres.NewEDPRepository(pool)
	lineaRepo := postgres.NewEDPEquipoRepository(pool)
	histRepo := postgres.NewEDPHistoricoRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	obraRepo := postgres.NewObraRepository(pool)
	equipoRepo := postgres.NewEquipoRepository(pool)
	tipoSvcRepo := postgres.NewTipoServicioRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	edpUC := appedp.NewUseCase(txRunner, edpRepo, lineaRepo, histRepo,
		clienteRepo, obraRepo, equipoRepo, tipoSvcRepo)
	clienteUC := usecase.NewClienteUseCase(clienteRepo)
	obraUC := usecase.NewObraUseCase(obraRepo, clienteRepo)
	equipoUC := usecase.NewEquipoUseCase(equipoRepo)
	tipoSvcUC := usecase.NewTipoServicioUseCase(tipoSvcRepo)
	usuarioUC := usecase.NewUsuarioUseCase(usuarioRepo)
	authUC := auth.NewUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		EDPUC:          edpUC,
		ClienteUC:      clienteUC,
		ObraUC:         obraUC,
		EquipoUC:       equipoUC,
		TipoServicioUC: tipoSvcUC,
		UsuarioUC:      usuarioUC,
		AuthUC:         authUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
