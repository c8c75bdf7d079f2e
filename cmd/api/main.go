package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Onboarding-api/internal/bootstrap"
	httpRouter "github.com/jhoicas/Onboarding-api/internal/interfaces/http"
	"github.com/jhoicas/Onboarding-api/pkg/config"
	"github.com/jhoicas/Onboarding-api/pkg/logger"

	_ "github.com/jhoicas/Onboarding-api/docs"
)

// @title        Onboarding API
// @version      1.0
// @description  Seguimiento de pasos y progreso del onboarding de candidatos.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Onboarding.StoreBackend).
		Str("policy", cfg.Onboarding.StorePolicy).
		Msg("iniciando aplicación")

	ctx := context.Background()
	container, cleanup, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar dependencias")
	}
	defer cleanup()

	if err := container.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    12 << 20,
		UnescapePath: true,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Onboarding API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:        cfg.App.Name,
		Workflow:       container.Workflow,
		AuthUC:         container.Auth,
		UserUC:         container.Users,
		SummaryUC:      container.Summary,
		ReportUC:       container.Reports,
		DocumentUC:     container.Documents,
		NotificationUC: container.Notifications,
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
