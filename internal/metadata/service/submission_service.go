package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/metadata/models"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/metadata/repository"
)

type SubmissionService interface {
	CreateSubmission(ctx context.Context, req *models.CreateSubmissionRequest) (*models.CreateSubmissionResponse, error)
	GetWork(ctx context.Context, workID string) (*models.SubmissionResponse, error)
	AttachReport(ctx context.Context, workID, reportID string) error
	AttachFingerprint(ctx context.Context, workID, fingerprint string) error
	FindByFingerprint(ctx context.Context, fingerprint string) ([]models.FingerprintMatch, error)
}

type submissionService struct {
	repo   repository.SubmissionRepository
	logger zerolog.Logger
}

func NewSubmissionService(repo repository.SubmissionRepository, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		repo:   repo,
		logger: logger,
	}
}

func (s *submissionService) CreateSubmission(ctx context.Context, req *models.CreateSubmissionRequest) (*models.CreateSubmissionResponse, error) {
	if _, err := uuid.Parse(req.StudentID); err != nil {
		return nil, ErrInvalidStudentID
	}
	if _, err := uuid.Parse(req.AssignmentID); err != nil {
		return nil, ErrInvalidAssignment
	}
	if strings.TrimSpace(req.FileID) == "" {
		return nil, ErrFileIDRequired
	}

	sub := &models.Submission{
		WorkID:       uuid.New().String(),
		StudentID:    req.StudentID,
		AssignmentID: req.AssignmentID,
		FileID:       req.FileID,
		// submitted_at назначается сервером, клиентское время не принимается
		SubmittedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	s.logger.Info().
		Str("work_id", sub.WorkID).
		Str("student_id", sub.StudentID).
		Str("assignment_id", sub.AssignmentID).
		Str("file_id", sub.FileID).
		Msg("Submission recorded")

	return &models.CreateSubmissionResponse{WorkID: sub.WorkID}, nil
}

func (s *submissionService) GetWork(ctx context.Context, workID string) (*models.SubmissionResponse, error) {
	sub, err := s.repo.GetByID(ctx, workID)
	if err != nil {
		return nil, fmt.Errorf("failed to get work: %w", err)
	}
	if sub == nil {
		return nil, ErrWorkNotFound
	}

	return &models.SubmissionResponse{
		Submission: *sub,
		State:      sub.State(),
	}, nil
}

func (s *submissionService) AttachReport(ctx context.Context, workID, reportID string) error {
	if _, err := uuid.Parse(reportID); err != nil {
		return ErrInvalidReportID
	}

	updated, err := s.repo.UpdateReportID(ctx, workID, reportID)
	if err != nil {
		return fmt.Errorf("failed to attach report: %w", err)
	}
	if !updated {
		return ErrWorkNotFound
	}

	s.logger.Info().
		Str("work_id", workID).
		Str("report_id", reportID).
		Msg("Report attached to work")

	return nil
}

func (s *submissionService) AttachFingerprint(ctx context.Context, workID, fingerprint string) error {
	if !IsValidFingerprint(fingerprint) {
		return ErrInvalidFingerprint
	}

	updated, err := s.repo.UpdateFingerprint(ctx, workID, fingerprint)
	if err != nil {
		return fmt.Errorf("failed to attach fingerprint: %w", err)
	}
	if !updated {
		return ErrWorkNotFound
	}

	s.logger.Info().
		Str("work_id", workID).
		Str("fingerprint", fingerprint).
		Msg("Fingerprint attached to work")

	return nil
}

func (s *submissionService) FindByFingerprint(ctx context.Context, fingerprint string) ([]models.FingerprintMatch, error) {
	if !IsValidFingerprint(fingerprint) {
		return nil, ErrInvalidFingerprint
	}

	matches, err := s.repo.GetByFingerprint(ctx, fingerprint)
	if err != nil {
		return nil, fmt.Errorf("failed to query by fingerprint: %w", err)
	}
	if matches == nil {
		matches = []models.FingerprintMatch{}
	}

	return matches, nil
}

// IsValidFingerprint проверяет формат SHA-256 в нижнем регистре.
func IsValidFingerprint(s string) bool {
	if len(s) != 64 {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
