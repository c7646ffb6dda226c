package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/integration"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/models"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/service"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/service/extract"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/worker/queue"
)

const stateReported = "reported"

// SubmissionWorker потребляет события work.submitted и гоняет анализ
// через пул воркеров. Доставка at-least-once: уже отчитавшиеся работы
// пропускаются.
type SubmissionWorker interface {
	Start(ctx context.Context) error
	Stop() error
}

type submissionWorker struct {
	workerPool      *WorkerPool
	queueConsumer   queue.Consumer
	metadataClient  integration.MetadataClient
	analysisService service.AnalysisService
	logger          zerolog.Logger
}

func NewSubmissionWorker(
	workerPool *WorkerPool,
	queueConsumer queue.Consumer,
	metadataClient integration.MetadataClient,
	analysisService service.AnalysisService,
	logger zerolog.Logger,
) SubmissionWorker {
	return &submissionWorker{
		workerPool:      workerPool,
		queueConsumer:   queueConsumer,
		metadataClient:  metadataClient,
		analysisService: analysisService,
		logger:          logger,
	}
}

func (w *submissionWorker) Start(ctx context.Context) error {
	if err := w.workerPool.Start(ctx); err != nil {
		return fmt.Errorf("failed to start worker pool: %w", err)
	}

	msgs, err := w.queueConsumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("failed to start consuming messages: %w", err)
	}

	go w.processMessages(ctx, msgs)

	w.logger.Info().Msg("Submission worker started")
	return nil
}

func (w *submissionWorker) Stop() error {
	if err := w.workerPool.Stop(); err != nil {
		w.logger.Error().Err(err).Msg("Failed to stop worker pool")
	}

	if err := w.queueConsumer.Close(); err != nil {
		w.logger.Error().Err(err).Msg("Failed to close queue consumer")
	}

	w.logger.Info().Msg("Submission worker stopped")
	return nil
}

func (w *submissionWorker) processMessages(ctx context.Context, msgs <-chan queue.Message) {
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Stopping message processing")
			return
		case msg, ok := <-msgs:
			if !ok {
				w.logger.Warn().Msg("Message channel closed")
				return
			}

			w.workerPool.Submit(func() {
				if err := w.processMessage(ctx, msg); err != nil {
					w.logger.Error().Err(err).Msg("Failed to process message")

					if isPermanentError(err) {
						if ackErr := msg.Ack(false); ackErr != nil {
							w.logger.Error().Err(ackErr).Msg("Failed to ack message")
						}
						return
					}

					if nackErr := msg.Nack(false, true); nackErr != nil {
						w.logger.Error().Err(nackErr).Msg("Failed to nack message")
					}
					return
				}

				if err := msg.Ack(false); err != nil {
					w.logger.Error().Err(err).Msg("Failed to ack message")
				}
			})
		}
	}
}

func (w *submissionWorker) processMessage(ctx context.Context, msg queue.Message) error {
	var event models.WorkSubmittedEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return permanent(fmt.Errorf("failed to unmarshal event: %w", err))
	}

	if strings.TrimSpace(event.WorkID) == "" {
		return permanent(errors.New("empty work_id"))
	}
	if strings.TrimSpace(event.FileID) == "" {
		return permanent(errors.New("empty file_id"))
	}

	work, err := w.metadataClient.GetWork(ctx, event.WorkID)
	if err != nil {
		return fmt.Errorf("failed to fetch work %s: %w", event.WorkID, err)
	}
	if work == nil {
		return permanent(fmt.Errorf("work %s not found in ledger", event.WorkID))
	}
	if work.State == stateReported {
		w.logger.Info().
			Str("work_id", event.WorkID).
			Msg("Work already has a report, skipping")
		return nil
	}

	w.logger.Info().
		Str("work_id", event.WorkID).
		Str("file_id", event.FileID).
		Msg("Processing submitted work")

	_, err = w.analysisService.Analyze(ctx, &models.AnalyzeRequest{
		WorkID:   event.WorkID,
		FileID:   event.FileID,
		FileName: event.FileName,
	})
	if err != nil {
		// Отсутствующий файл и неизвестный формат не лечатся
		// повторной доставкой.
		if errors.Is(err, service.ErrFileNotFound) ||
			errors.Is(err, extract.ErrUnsupportedFormat) ||
			errors.Is(err, service.ErrInvalidWorkID) ||
			errors.Is(err, service.ErrInvalidFileID) {
			return permanent(err)
		}
		return fmt.Errorf("failed to analyze work %s: %w", event.WorkID, err)
	}

	return nil
}

type permanentError struct {
	err error
}

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

func permanent(err error) error {
	return permanentError{err: err}
}

func isPermanentError(err error) bool {
	var p permanentError
	return errors.As(err, &p)
}
