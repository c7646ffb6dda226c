package service

import (
	"context"
	"errors"
	"sync"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/models"
)

type mockFileClient struct {
	files map[string]mockFile
	err   error
}

type mockFile struct {
	content []byte
	name    string
}

func newMockFileClient() *mockFileClient {
	return &mockFileClient{files: make(map[string]mockFile)}
}

func (m *mockFileClient) GetFile(_ context.Context, fileID string) ([]byte, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	f, ok := m.files[fileID]
	if !ok {
		return nil, "", nil
	}
	return f.content, f.name, nil
}

type mockMetadataClient struct {
	mu           sync.Mutex
	works        map[string]*models.WorkRecord
	matches      []models.FingerprintMatch
	fingerprints map[string]string
	reports      map[string]string

	fingerprintErr error
	reportErr      error
	findErr        error
}

func newMockMetadataClient() *mockMetadataClient {
	return &mockMetadataClient{
		works:        make(map[string]*models.WorkRecord),
		fingerprints: make(map[string]string),
		reports:      make(map[string]string),
	}
}

func (m *mockMetadataClient) GetWork(_ context.Context, workID string) (*models.WorkRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.works[workID], nil
}

func (m *mockMetadataClient) AttachFingerprint(_ context.Context, workID, fingerprint string) error {
	if m.fingerprintErr != nil {
		return m.fingerprintErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fingerprints[workID] = fingerprint
	return nil
}

func (m *mockMetadataClient) AttachReport(_ context.Context, workID, reportID string) error {
	if m.reportErr != nil {
		return m.reportErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[workID] = reportID
	return nil
}

func (m *mockMetadataClient) FindByFingerprint(_ context.Context, _ string) ([]models.FingerprintMatch, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.matches, nil
}

type mockReportRepo struct {
	mu      sync.Mutex
	reports map[string]*models.Report
	err     error
}

func newMockReportRepo() *mockReportRepo {
	return &mockReportRepo{reports: make(map[string]*models.Report)}
}

func (m *mockReportRepo) Create(_ context.Context, report *models.Report) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[report.ReportID] = report
	return nil
}

func (m *mockReportRepo) GetByID(_ context.Context, reportID string) (*models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reports[reportID], nil
}

func (m *mockReportRepo) GetLatestByWorkID(_ context.Context, workID string) (*models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reports {
		if r.WorkID == workID {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockReportRepo) Ping(_ context.Context) error { return nil }

type mockWordCloud struct {
	url string
	err error
}

func (m *mockWordCloud) Generate(_ context.Context, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.url, nil
}

var errWordCloudDown = errors.New("word cloud service down")
