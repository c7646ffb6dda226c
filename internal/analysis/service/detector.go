package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/integration"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/models"
)

// DuplicateDetector ищет в реестре более ранние работы с тем же отпечатком.
type DuplicateDetector interface {
	Detect(ctx context.Context, workID, fingerprint string) (bool, []models.DuplicateEvidence, error)
}

type duplicateDetector struct {
	metadataClient integration.MetadataClient
	logger         zerolog.Logger
}

func NewDuplicateDetector(metadataClient integration.MetadataClient, logger zerolog.Logger) DuplicateDetector {
	return &duplicateDetector{
		metadataClient: metadataClient,
		logger:         logger,
	}
}

// Detect возвращает ErrLedgerUnavailable, если реестр недоступен:
// отсутствие ответа не означает отсутствие дубликатов.
func (d *duplicateDetector) Detect(ctx context.Context, workID, fingerprint string) (bool, []models.DuplicateEvidence, error) {
	matches, err := d.metadataClient.FindByFingerprint(ctx, fingerprint)
	if err != nil {
		d.logger.Error().Err(err).
			Str("work_id", workID).
			Msg("Failed to query ledger by fingerprint")
		return false, nil, fmt.Errorf("%w: %v", ErrLedgerUnavailable, err)
	}

	evidence := make([]models.DuplicateEvidence, 0, len(matches))
	for _, m := range matches {
		// Собственная запись работы не является доказательством дубликата.
		if m.WorkID == workID {
			continue
		}
		evidence = append(evidence, models.DuplicateEvidence{
			WorkID:      m.WorkID,
			StudentID:   m.StudentID,
			SubmittedAt: m.SubmittedAt,
		})
	}

	return len(evidence) > 0, evidence, nil
}
