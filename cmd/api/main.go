package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/estoquelab/embalagens-backend/api/routes"
	"github.com/estoquelab/embalagens-backend/internal/auditoria"
	"github.com/estoquelab/embalagens-backend/internal/auth"
	"github.com/estoquelab/embalagens-backend/internal/embalagens"
	"github.com/estoquelab/embalagens-backend/internal/equipes"
	"github.com/estoquelab/embalagens-backend/internal/localizacoes"
	"github.com/estoquelab/embalagens-backend/internal/usuarios"
	"github.com/estoquelab/embalagens-backend/pkg/auth/session"
	"github.com/estoquelab/embalagens-backend/pkg/config"
	"github.com/estoquelab/embalagens-backend/pkg/db"
	"github.com/estoquelab/embalagens-backend/pkg/env"
	"github.com/estoquelab/embalagens-backend/pkg/logger"
	"github.com/estoquelab/embalagens-backend/pkg/metrics"
	"github.com/estoquelab/embalagens-backend/pkg/migrate"
	"github.com/estoquelab/embalagens-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	auditoriaService, err := auditoria.NewService(auditoria.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auditoria service", err)
		os.Exit(1)
	}

	usuariosRepo := usuarios.NewRepository(dbClient.DB())
	usuariosService, err := usuarios.NewService(usuariosRepo, auditoriaService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create usuarios service", err)
		os.Exit(1)
	}

	equipesService, err := equipes.NewService(equipes.NewRepository(dbClient.DB()), usuariosRepo, auditoriaService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create equipes service", err)
		os.Exit(1)
	}

	embalagensRepo := embalagens.NewRepository(dbClient.DB())
	embalagensService, err := embalagens.NewService(embalagensRepo, auditoriaService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create embalagens service", err)
		os.Exit(1)
	}

	localizacoesService, err := localizacoes.NewService(localizacoes.NewRepository(dbClient.DB()), dbClient, embalagensRepo, auditoriaService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create localizacoes service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usuariosRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		AppConfig:      cfg.App,
		FeatureFlags:   cfg.FeatureFlags,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	addr := ":" + env.Get("PORT", cfg.App.Port)
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Params{
			Config:       cfg,
			Logger:       logg,
			DB:           dbClient,
			Redis:        redisClient,
			Sessions:     sessionManager,
			Registry:     registry,
			HTTPMetrics:  httpMetrics,
			Auth:         authService,
			Usuarios:     usuariosService,
			Equipes:      equipesService,
			Embalagens:   embalagensService,
			Localizacoes: localizacoesService,
			Auditoria:    auditoriaService,
		}),
	}

	errc := make(chan error, 1)
	go func() {
		errc <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithFields(ctx, map[string]any{"signal": sig.String()}), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
