package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/gateway/integration"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/gateway/models"
)

type mockFileClient struct {
	fileID string
	err    error
}

func (m *mockFileClient) UploadFile(_ context.Context, _ string, _ []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.fileID, nil
}

type mockMetadataClient struct {
	workID string
	work   *models.WorkRecord
	err    error
}

func (m *mockMetadataClient) CreateSubmission(_ context.Context, _, _, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.workID, nil
}

func (m *mockMetadataClient) GetWork(_ context.Context, _ string) (*models.WorkRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.work, nil
}

type mockAnalysisClient struct {
	mu         sync.Mutex
	triggerErr error
	delay      time.Duration
	triggered  int
	report     *models.Report
	reportErr  error
}

func (m *mockAnalysisClient) TriggerAnalysis(_ context.Context, _, _, _ string) error {
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	m.mu.Lock()
	m.triggered++
	m.mu.Unlock()
	return m.triggerErr
}

func (m *mockAnalysisClient) GetReport(_ context.Context, _ string) (*models.Report, error) {
	if m.reportErr != nil {
		return nil, m.reportErr
	}
	return m.report, nil
}

type mockQueueClient struct {
	mu        sync.Mutex
	published []*models.WorkSubmittedEvent
	err       error
}

func (m *mockQueueClient) PublishWorkSubmitted(_ context.Context, event *models.WorkSubmittedEvent) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	m.published = append(m.published, event)
	m.mu.Unlock()
	return nil
}

func (m *mockQueueClient) Close() error { return nil }

func setupGatewayService(files *mockFileClient, metadata *mockMetadataClient, analysis *mockAnalysisClient, queue *mockQueueClient) GatewayService {
	var queueClient integration.RabbitMQClient
	if queue != nil {
		queueClient = queue
	}
	return NewGatewayService(files, metadata, analysis, queueClient, 100*time.Millisecond, zerolog.Nop())
}

func TestSubmitWork_HappyPath(t *testing.T) {
	files := &mockFileClient{fileID: "file-1"}
	metadata := &mockMetadataClient{workID: "work-1"}
	analysis := &mockAnalysisClient{}
	queue := &mockQueueClient{}

	svc := setupGatewayService(files, metadata, analysis, queue)

	resp, err := svc.SubmitWork(context.Background(), "essay.txt", []byte("text"), uuid.New().String(), uuid.New().String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.WorkID != "work-1" || resp.FileID != "file-1" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if !resp.AnalysisStarted {
		t.Error("successful dispatch must report analysisStarted=true")
	}
	if len(queue.published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(queue.published))
	}
	if queue.published[0].WorkID != "work-1" {
		t.Errorf("unexpected event: %+v", queue.published[0])
	}
}

func TestSubmitWork_Validation(t *testing.T) {
	svc := setupGatewayService(&mockFileClient{}, &mockMetadataClient{}, &mockAnalysisClient{}, nil)

	if _, err := svc.SubmitWork(context.Background(), "a.txt", nil, uuid.New().String(), uuid.New().String()); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("expected ErrEmptyFile, got %v", err)
	}
	if _, err := svc.SubmitWork(context.Background(), "a.txt", []byte("x"), "bad", uuid.New().String()); !errors.Is(err, ErrInvalidStudentID) {
		t.Errorf("expected ErrInvalidStudentID, got %v", err)
	}
	if _, err := svc.SubmitWork(context.Background(), "a.txt", []byte("x"), uuid.New().String(), "bad"); !errors.Is(err, ErrInvalidAssignment) {
		t.Errorf("expected ErrInvalidAssignment, got %v", err)
	}
}

func TestSubmitWork_StorageFailure(t *testing.T) {
	files := &mockFileClient{err: errors.New("connection refused")}
	svc := setupGatewayService(files, &mockMetadataClient{}, &mockAnalysisClient{}, nil)

	_, err := svc.SubmitWork(context.Background(), "a.txt", []byte("x"), uuid.New().String(), uuid.New().String())

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) || upstreamErr.Dependency != "storage" {
		t.Errorf("expected upstream storage failure, got %v", err)
	}
}

func TestSubmitWork_MetadataFailure(t *testing.T) {
	files := &mockFileClient{fileID: "file-1"}
	metadata := &mockMetadataClient{err: errors.New("connection refused")}
	svc := setupGatewayService(files, metadata, &mockAnalysisClient{}, nil)

	_, err := svc.SubmitWork(context.Background(), "a.txt", []byte("x"), uuid.New().String(), uuid.New().String())

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) || upstreamErr.Dependency != "metadata" {
		t.Errorf("expected upstream metadata failure, got %v", err)
	}
}

func TestSubmitWork_TriggerFailureDoesNotFailSubmission(t *testing.T) {
	files := &mockFileClient{fileID: "file-1"}
	metadata := &mockMetadataClient{workID: "work-1"}
	analysis := &mockAnalysisClient{triggerErr: errors.New("connection refused")}

	svc := setupGatewayService(files, metadata, analysis, nil)

	resp, err := svc.SubmitWork(context.Background(), "a.txt", []byte("x"), uuid.New().String(), uuid.New().String())
	if err != nil {
		t.Fatalf("trigger failure must not fail the submission: %v", err)
	}
	if resp.AnalysisStarted {
		t.Error("fast dispatch failure must report analysisStarted=false")
	}
}

func TestSubmitWork_SlowTriggerCountsAsStarted(t *testing.T) {
	files := &mockFileClient{fileID: "file-1"}
	metadata := &mockMetadataClient{workID: "work-1"}
	analysis := &mockAnalysisClient{delay: 300 * time.Millisecond}

	svc := setupGatewayService(files, metadata, analysis, nil)

	resp, err := svc.SubmitWork(context.Background(), "a.txt", []byte("x"), uuid.New().String(), uuid.New().String())
	if err != nil {
		t.Fatal(err)
	}
	if !resp.AnalysisStarted {
		t.Error("a dispatch still in flight at the window edge counts as started")
	}
}

func TestSubmitWork_QueueFailureIsBestEffort(t *testing.T) {
	files := &mockFileClient{fileID: "file-1"}
	metadata := &mockMetadataClient{workID: "work-1"}
	queue := &mockQueueClient{err: errors.New("broker down")}

	svc := setupGatewayService(files, metadata, &mockAnalysisClient{}, queue)

	if _, err := svc.SubmitWork(context.Background(), "a.txt", []byte("x"), uuid.New().String(), uuid.New().String()); err != nil {
		t.Fatalf("queue publish failure must not fail the submission: %v", err)
	}
}

func TestGetReport_WorkNotFound(t *testing.T) {
	svc := setupGatewayService(&mockFileClient{}, &mockMetadataClient{}, &mockAnalysisClient{}, nil)

	if _, err := svc.GetReport(context.Background(), uuid.New().String()); !errors.Is(err, ErrWorkNotFound) {
		t.Errorf("expected ErrWorkNotFound, got %v", err)
	}
}

func TestGetReport_Pending(t *testing.T) {
	metadata := &mockMetadataClient{work: &models.WorkRecord{WorkID: "work-1", State: "submitted"}}
	svc := setupGatewayService(&mockFileClient{}, metadata, &mockAnalysisClient{}, nil)

	if _, err := svc.GetReport(context.Background(), "work-1"); !errors.Is(err, ErrReportPending) {
		t.Errorf("expected ErrReportPending, got %v", err)
	}
}

func TestGetReport_StalePointer(t *testing.T) {
	reportID := uuid.New().String()
	metadata := &mockMetadataClient{work: &models.WorkRecord{WorkID: "work-1", ReportID: &reportID, State: "reported"}}
	analysis := &mockAnalysisClient{report: nil}

	svc := setupGatewayService(&mockFileClient{}, metadata, analysis, nil)

	if _, err := svc.GetReport(context.Background(), "work-1"); !errors.Is(err, ErrReportNotFound) {
		t.Errorf("stale ledger pointer must surface as not found, got %v", err)
	}
}

func TestGetReport_Success(t *testing.T) {
	reportID := uuid.New().String()
	metadata := &mockMetadataClient{work: &models.WorkRecord{WorkID: "work-1", ReportID: &reportID, State: "reported"}}
	analysis := &mockAnalysisClient{report: &models.Report{ReportID: reportID, WorkID: "work-1", IsDuplicate: true}}

	svc := setupGatewayService(&mockFileClient{}, metadata, analysis, nil)

	view, err := svc.GetReport(context.Background(), "work-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Work.WorkID != "work-1" || view.Report.ReportID != reportID {
		t.Errorf("unexpected view: %+v", view)
	}
	if !view.Report.IsDuplicate {
		t.Error("report payload must pass through unchanged")
	}
}
