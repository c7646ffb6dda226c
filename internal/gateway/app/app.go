package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/gateway/config"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/gateway/delivery/httpd"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/gateway/integration"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/gateway/service"
)

type App struct {
	server      *http.Server
	logger      zerolog.Logger
	config      *config.Config
	queueClient integration.RabbitMQClient
}

func New(cfg *config.Config, log zerolog.Logger) (*App, error) {
	fileClient := integration.NewFileClient(cfg.Services.File, log)
	metadataClient := integration.NewMetadataClient(cfg.Services.Metadata, log)
	analysisClient := integration.NewAnalysisClient(cfg.Services.Analysis, log)

	// Очередь не обязательна: без неё триггер анализа остаётся
	// единственным, недолговечным путём запуска.
	var queueClient integration.RabbitMQClient
	if cfg.RabbitMQ.Enabled {
		client, err := integration.NewRabbitMQClient(
			cfg.RabbitMQ.URL,
			cfg.RabbitMQ.Exchange,
			cfg.RabbitMQ.RoutingKey,
			cfg.RabbitMQ.QueueName,
			log,
		)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to connect to RabbitMQ, continuing without it")
		} else {
			queueClient = client
		}
	}

	gatewayService := service.NewGatewayService(
		fileClient,
		metadataClient,
		analysisClient,
		queueClient,
		cfg.Submit.AcceptanceWindow,
		log,
	)

	fileProxy, err := httpd.NewFileProxy(cfg.Services.File.URL, log)
	if err != nil {
		return nil, err
	}

	handler := httpd.NewHandler(gatewayService, fileProxy, cfg.Submit.MaxUploadSize, log)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

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
		server:      server,
		logger:      log,
		config:      cfg,
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info().Msgf("Starting api gateway on %s", a.config.Server.Address)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down api gateway...")

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close RabbitMQ client")
		}
	}

	return a.server.Shutdown(ctx)
}
