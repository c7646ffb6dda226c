package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/models"
)

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, reportID string) (*models.Report, error)
	GetLatestByWorkID(ctx context.Context, workID string) (*models.Report, error)
	Ping(ctx context.Context) error
}

type reportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) ReportRepository {
	return &reportRepository{db: db}
}

// Create пишет отчёт одной вставкой. Отчёты неизменяемы, обновлений нет.
func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	evidence, err := json.Marshal(report.Evidence)
	if err != nil {
		return fmt.Errorf("failed to marshal evidence: %w", err)
	}

	evidenceWorkIDs := make([]string, 0, len(report.Evidence))
	for _, e := range report.Evidence {
		evidenceWorkIDs = append(evidenceWorkIDs, e.WorkID)
	}

	query := `
		INSERT INTO reports (report_id, work_id, file_id, is_duplicate, evidence, evidence_work_ids, word_cloud_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.db.ExecContext(ctx, query,
		report.ReportID,
		report.WorkID,
		report.FileID,
		report.IsDuplicate,
		evidence,
		pq.Array(evidenceWorkIDs),
		report.WordCloudURL,
		report.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}

	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, reportID string) (*models.Report, error) {
	query := `
		SELECT report_id, work_id, file_id, is_duplicate, evidence, word_cloud_url, created_at
		FROM reports
		WHERE report_id = $1`

	return r.scanReport(r.db.QueryRowContext(ctx, query, reportID))
}

func (r *reportRepository) GetLatestByWorkID(ctx context.Context, workID string) (*models.Report, error) {
	query := `
		SELECT report_id, work_id, file_id, is_duplicate, evidence, word_cloud_url, created_at
		FROM reports
		WHERE work_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	return r.scanReport(r.db.QueryRowContext(ctx, query, workID))
}

func (r *reportRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *reportRepository) scanReport(row *sql.Row) (*models.Report, error) {
	var report models.Report
	var evidence []byte
	var wordCloudURL sql.NullString

	err := row.Scan(
		&report.ReportID,
		&report.WorkID,
		&report.FileID,
		&report.IsDuplicate,
		&evidence,
		&wordCloudURL,
		&report.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan report: %w", err)
	}

	if err := json.Unmarshal(evidence, &report.Evidence); err != nil {
		return nil, fmt.Errorf("failed to unmarshal evidence: %w", err)
	}
	if wordCloudURL.Valid {
		report.WordCloudURL = &wordCloudURL.String
	}

	return &report, nil
}
