package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/gateway/integration"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/gateway/models"
)

type GatewayService interface {
	SubmitWork(ctx context.Context, fileName string, content []byte, studentID, assignmentID string) (*models.SubmitWorkResponse, error)
	GetReport(ctx context.Context, workID string) (*models.ReportView, error)
}

type gatewayService struct {
	fileClient       integration.FileClient
	metadataClient   integration.MetadataClient
	analysisClient   integration.AnalysisClient
	queueClient      integration.RabbitMQClient
	acceptanceWindow time.Duration
	logger           zerolog.Logger
}

func NewGatewayService(
	fileClient integration.FileClient,
	metadataClient integration.MetadataClient,
	analysisClient integration.AnalysisClient,
	queueClient integration.RabbitMQClient,
	acceptanceWindow time.Duration,
	logger zerolog.Logger,
) GatewayService {
	if acceptanceWindow <= 0 {
		acceptanceWindow = 500 * time.Millisecond
	}
	return &gatewayService{
		fileClient:       fileClient,
		metadataClient:   metadataClient,
		analysisClient:   analysisClient,
		queueClient:      queueClient,
		acceptanceWindow: acceptanceWindow,
		logger:           logger,
	}
}

func (s *gatewayService) SubmitWork(ctx context.Context, fileName string, content []byte, studentID, assignmentID string) (*models.SubmitWorkResponse, error) {
	if len(content) == 0 {
		return nil, ErrEmptyFile
	}
	if _, err := uuid.Parse(studentID); err != nil {
		return nil, ErrInvalidStudentID
	}
	if _, err := uuid.Parse(assignmentID); err != nil {
		return nil, ErrInvalidAssignment
	}

	fileID, err := s.fileClient.UploadFile(ctx, fileName, content)
	if err != nil {
		return nil, upstream("storage", err)
	}

	workID, err := s.metadataClient.CreateSubmission(ctx, studentID, assignmentID, fileID)
	if err != nil {
		// Блоб уже записан и остаётся сиротой, компенсирующего
		// удаления нет. Фиксируем fileId для ручной уборки.
		s.logger.Error().Err(err).
			Str("file_id", fileID).
			Msg("Ledger record creation failed, stored blob is orphaned")
		return nil, upstream("metadata", err)
	}

	if s.queueClient != nil {
		event := &models.WorkSubmittedEvent{
			WorkID:       workID,
			FileID:       fileID,
			StudentID:    studentID,
			AssignmentID: assignmentID,
			FileName:     fileName,
			Timestamp:    time.Now().Unix(),
		}
		if err := s.queueClient.PublishWorkSubmitted(ctx, event); err != nil {
			s.logger.Warn().Err(err).
				Str("work_id", workID).
				Msg("Failed to publish work submitted event")
		}
	}

	return &models.SubmitWorkResponse{
		WorkID:          workID,
		FileID:          fileID,
		AnalysisStarted: s.triggerAnalysis(workID, fileID, fileName),
	}, nil
}

// triggerAnalysis запускает анализ в фоне и ждёт вердикта диспетчеризации
// не дольше окна приёма. Быстрый отказ в пределах окна даёт false; вызов,
// всё ещё идущий на краю окна, считается запущенным. Анализ идёт на
// отвязанном контексте и завершением запроса не обрывается.
func (s *gatewayService) triggerAnalysis(workID, fileID, fileName string) bool {
	verdict := make(chan error, 1)

	go func() {
		err := s.analysisClient.TriggerAnalysis(context.Background(), workID, fileID, fileName)
		if err != nil {
			s.logger.Warn().Err(err).
				Str("work_id", workID).
				Msg("Analysis trigger failed")
		}
		verdict <- err
	}()

	select {
	case err := <-verdict:
		return err == nil
	case <-time.After(s.acceptanceWindow):
		return true
	}
}

func (s *gatewayService) GetReport(ctx context.Context, workID string) (*models.ReportView, error) {
	work, err := s.metadataClient.GetWork(ctx, workID)
	if err != nil {
		return nil, upstream("metadata", err)
	}
	if work == nil {
		return nil, ErrWorkNotFound
	}

	if work.ReportID == nil || *work.ReportID == "" {
		return nil, ErrReportPending
	}

	report, err := s.analysisClient.GetReport(ctx, *work.ReportID)
	if err != nil {
		return nil, upstream("analysis", err)
	}
	if report == nil {
		// Реестр ссылается на отчёт, которого нет в хранилище отчётов.
		s.logger.Error().
			Str("work_id", workID).
			Str("report_id", *work.ReportID).
			Msg("Inconsistent state: ledger points to a missing report")
		return nil, ErrReportNotFound
	}

	return &models.ReportView{Work: work, Report: report}, nil
}
