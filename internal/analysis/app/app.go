package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/config"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/delivery/httpd"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/integration"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/repository"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/service"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/service/extract"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/worker"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/worker/queue"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/pkg/rabbitmq"
)

type App struct {
	server           *http.Server
	logger           zerolog.Logger
	config           *config.Config
	db               *sql.DB
	submissionWorker worker.SubmissionWorker
	amqpConn         *amqp.Connection
	amqpChannel      *amqp.Channel
}

func New(cfg *config.Config, log zerolog.Logger, db *sql.DB) (*App, error) {
	fileClient := integration.NewFileClient(cfg.Services.File, log)
	metadataClient := integration.NewMetadataClient(cfg.Services.Metadata, log)

	reportRepo := repository.NewReportRepository(db)
	extractors := extract.NewRegistry()
	detector := service.NewDuplicateDetector(metadataClient, log)
	wordCloud := service.NewWordCloudService(cfg.WordCloud, log)

	analysisService := service.NewAnalysisService(
		fileClient,
		metadataClient,
		reportRepo,
		extractors,
		detector,
		wordCloud,
		log,
	)

	handler := httpd.NewHandler(analysisService, log)

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

	a := &App{
		server: server,
		logger: log,
		config: cfg,
		db:     db,
	}

	// Очередь опциональна: без неё остаётся HTTP-триггер анализа.
	if cfg.RabbitMQ.Enabled {
		if err := a.setupWorker(cfg, log, metadataClient, analysisService); err != nil {
			log.Warn().Err(err).Msg("Failed to set up queue consumer, continuing without it")
		}
	}

	return a, nil
}

func (a *App) setupWorker(
	cfg *config.Config,
	log zerolog.Logger,
	metadataClient integration.MetadataClient,
	analysisService service.AnalysisService,
) error {
	conn, err := rabbitmq.NewConnection(cfg.RabbitMQ.URL)
	if err != nil {
		return err
	}

	channel, err := rabbitmq.NewChannel(conn)
	if err != nil {
		conn.Close()
		return err
	}

	consumer := queue.NewRabbitMQConsumer(
		channel,
		cfg.RabbitMQ.Exchange,
		cfg.RabbitMQ.RoutingKey,
		cfg.RabbitMQ.QueueName,
		"analysis-service",
		log,
	)

	pool := worker.NewWorkerPool(cfg.Worker.MaxWorkers, log)
	a.submissionWorker = worker.NewSubmissionWorker(pool, consumer, metadataClient, analysisService, log)
	a.amqpConn = conn
	a.amqpChannel = channel

	return nil
}

func (a *App) Run(ctx context.Context) error {
	if a.submissionWorker != nil {
		if err := a.submissionWorker.Start(ctx); err != nil {
			a.logger.Error().Err(err).Msg("Failed to start submission worker")
		}
	}

	a.logger.Info().Msgf("Starting analysis service on %s", a.config.Server.Address)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down analysis service...")

	if a.submissionWorker != nil {
		if err := a.submissionWorker.Stop(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to stop submission worker")
		}
	}

	if a.amqpChannel != nil {
		if err := a.amqpChannel.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close RabbitMQ channel")
		}
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close RabbitMQ connection")
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close database connection")
		}
	}

	return a.server.Shutdown(ctx)
}
