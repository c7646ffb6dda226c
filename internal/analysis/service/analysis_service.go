package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/integration"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/models"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/repository"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/service/extract"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/service/textproc"
)

type AnalysisService interface {
	Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalyzeResponse, error)
	GetReport(ctx context.Context, reportID string) (*models.Report, error)
}

type analysisService struct {
	fileClient     integration.FileClient
	metadataClient integration.MetadataClient
	reportRepo     repository.ReportRepository
	extractors     *extract.Registry
	detector       DuplicateDetector
	wordCloud      WordCloudService
	logger         zerolog.Logger
}

func NewAnalysisService(
	fileClient integration.FileClient,
	metadataClient integration.MetadataClient,
	reportRepo repository.ReportRepository,
	extractors *extract.Registry,
	detector DuplicateDetector,
	wordCloud WordCloudService,
	logger zerolog.Logger,
) AnalysisService {
	return &analysisService{
		fileClient:     fileClient,
		metadataClient: metadataClient,
		reportRepo:     reportRepo,
		extractors:     extractors,
		detector:       detector,
		wordCloud:      wordCloud,
		logger:         logger,
	}
}

// Analyze выполняет полный прогон анализа работы. Падение на шагах
// записи отпечатка, облака слов и обратной записи reportId не прерывает
// прогон: отчёт создаётся и остаётся доступным по своему reportId.
func (s *analysisService) Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	if req.WorkID == "" {
		return nil, ErrInvalidWorkID
	}
	if req.FileID == "" {
		return nil, ErrInvalidFileID
	}

	content, storedName, err := s.fileClient.GetFile(ctx, req.FileID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch file %s: %w", req.FileID, err)
	}
	if content == nil {
		return nil, ErrFileNotFound
	}

	fileName := req.FileName
	if fileName == "" {
		fileName = storedName
	}

	extractor, err := s.extractors.ForFile(fileName)
	if err != nil {
		return nil, err
	}

	rawText, err := extractor.Extract(content)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from %s: %w", fileName, err)
	}

	normalized := textproc.Normalize(rawText)
	fingerprint := textproc.Fingerprint(normalized)

	if err := s.metadataClient.AttachFingerprint(ctx, req.WorkID, fingerprint); err != nil {
		s.logger.Warn().Err(err).
			Str("work_id", req.WorkID).
			Msg("Failed to write fingerprint back to ledger")
	}

	// Недоступный реестр означает неопределённый результат, а не
	// "не дубликат". Прогон прерывается и повторяется позже.
	isDuplicate, evidence, err := s.detector.Detect(ctx, req.WorkID, fingerprint)
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		ReportID:    uuid.New().String(),
		WorkID:      req.WorkID,
		FileID:      req.FileID,
		IsDuplicate: isDuplicate,
		Evidence:    evidence,
		CreatedAt:   time.Now().UTC(),
	}

	if url, err := s.wordCloud.Generate(ctx, rawText); err != nil {
		s.logger.Warn().Err(err).
			Str("work_id", req.WorkID).
			Msg("Failed to generate word cloud")
	} else {
		report.WordCloudURL = &url
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to persist report: %w", err)
	}

	if err := s.metadataClient.AttachReport(ctx, req.WorkID, report.ReportID); err != nil {
		s.logger.Error().Err(err).
			Str("work_id", req.WorkID).
			Str("report_id", report.ReportID).
			Msg("Failed to write report id back to ledger")
	}

	s.logger.Info().
		Str("work_id", req.WorkID).
		Str("report_id", report.ReportID).
		Bool("is_duplicate", isDuplicate).
		Int("evidence_count", len(evidence)).
		Msg("Analysis completed")

	return &models.AnalyzeResponse{ReportID: report.ReportID}, nil
}

func (s *analysisService) GetReport(ctx context.Context, reportID string) (*models.Report, error) {
	if _, err := uuid.Parse(reportID); err != nil {
		return nil, ErrReportNotFound
	}

	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}
	if report == nil {
		return nil, ErrReportNotFound
	}

	return report, nil
}
