package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/filestore/config"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/filestore/delivery/httpd"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/filestore/repository"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/filestore/service"
)

type App struct {
	server *http.Server
	logger zerolog.Logger
	config *config.Config
}

func New(cfg *config.Config, log zerolog.Logger) (*App, error) {
	minioRepo, err := repository.NewMinIORepository(
		cfg.MinIO.Endpoint,
		cfg.MinIO.AccessKey,
		cfg.MinIO.SecretKey,
		cfg.MinIO.Bucket,
		cfg.MinIO.Region,
		cfg.MinIO.UseSSL,
		cfg.MinIO.ConnectTimeout,
		log,
	)
	if err != nil {
		return nil, err
	}

	storageService := service.NewStorageService(minioRepo, cfg.Storage.MaxUploadSize, log)
	handler := httpd.NewHandler(storageService, log)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(120 * time.Second))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server: server,
		logger: log,
		config: cfg,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info().Msgf("Starting file service on %s", a.config.Server.Address)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down file service...")
	return a.server.Shutdown(ctx)
}
