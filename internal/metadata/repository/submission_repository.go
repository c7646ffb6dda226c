package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/metadata/models"
)

type SubmissionRepository interface {
	Create(ctx context.Context, sub *models.Submission) error
	GetByID(ctx context.Context, workID string) (*models.Submission, error)
	UpdateFingerprint(ctx context.Context, workID, fingerprint string) (bool, error)
	UpdateReportID(ctx context.Context, workID, reportID string) (bool, error)
	GetByFingerprint(ctx context.Context, fingerprint string) ([]models.FingerprintMatch, error)
	Ping(ctx context.Context) error
}

type submissionRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSubmissionRepository(db *sql.DB, logger zerolog.Logger) SubmissionRepository {
	return &submissionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *submissionRepository) Create(ctx context.Context, sub *models.Submission) error {
	query := `
		INSERT INTO works (work_id, student_id, assignment_id, file_id, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		sub.WorkID,
		sub.StudentID,
		sub.AssignmentID,
		sub.FileID,
		sub.SubmittedAt,
	)

	return err
}

func (r *submissionRepository) GetByID(ctx context.Context, workID string) (*models.Submission, error) {
	query := `
		SELECT work_id, student_id, assignment_id, file_id, submitted_at, text_fingerprint, report_id
		FROM works
		WHERE work_id = $1
	`

	sub := &models.Submission{}
	var fingerprint sql.NullString
	var reportID sql.NullString

	err := r.db.QueryRowContext(ctx, query, workID).Scan(
		&sub.WorkID,
		&sub.StudentID,
		&sub.AssignmentID,
		&sub.FileID,
		&sub.SubmittedAt,
		&fingerprint,
		&reportID,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if fingerprint.Valid {
		sub.TextFingerprint = &fingerprint.String
	}
	if reportID.Valid {
		sub.ReportID = &reportID.String
	}

	return sub, nil
}

func (r *submissionRepository) UpdateFingerprint(ctx context.Context, workID, fingerprint string) (bool, error) {
	query := `UPDATE works SET text_fingerprint = $1 WHERE work_id = $2`

	result, err := r.db.ExecContext(ctx, query, fingerprint, workID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *submissionRepository) UpdateReportID(ctx context.Context, workID, reportID string) (bool, error) {
	query := `UPDATE works SET report_id = $1 WHERE work_id = $2`

	result, err := r.db.ExecContext(ctx, query, reportID, workID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *submissionRepository) GetByFingerprint(ctx context.Context, fingerprint string) ([]models.FingerprintMatch, error) {
	// Порядок вставки фиксирует детерминированный порядок улик в отчёте.
	query := `
		SELECT work_id, student_id, submitted_at, text_fingerprint
		FROM works
		WHERE text_fingerprint = $1
		ORDER BY submitted_at, work_id
	`

	rows, err := r.db.QueryContext(ctx, query, fingerprint)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []models.FingerprintMatch
	for rows.Next() {
		var m models.FingerprintMatch
		if err := rows.Scan(&m.WorkID, &m.StudentID, &m.SubmittedAt, &m.Fingerprint); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}

	return matches, rows.Err()
}

func (r *submissionRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.db.PingContext(ctx)
}
