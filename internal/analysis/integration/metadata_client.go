package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/config"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/models"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/pkg/resiliency"
)

type MetadataClient interface {
	// GetWork возвращает запись реестра или (nil, nil), если работы нет.
	GetWork(ctx context.Context, workID string) (*models.WorkRecord, error)
	AttachFingerprint(ctx context.Context, workID, fingerprint string) error
	AttachReport(ctx context.Context, workID, reportID string) error
	FindByFingerprint(ctx context.Context, fingerprint string) ([]models.FingerprintMatch, error)
}

type metadataClient struct {
	client  *resiliency.Client
	baseURL string
	logger  zerolog.Logger
}

func NewMetadataClient(cfg config.ServiceConfig, logger zerolog.Logger) MetadataClient {
	return &metadataClient{
		client: resiliency.NewClient(resiliency.ClientConfig{
			Timeout:    cfg.Timeout,
			RetryCount: cfg.RetryCount,
			RetryDelay: cfg.RetryDelay,
		}, logger),
		baseURL: cfg.URL,
		logger:  logger,
	}
}

func (c *metadataClient) GetWork(ctx context.Context, workID string) (*models.WorkRecord, error) {
	url := fmt.Sprintf("%s/api/v1/works/%s", c.baseURL, workID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch work: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metadata service returned status %d", resp.StatusCode)
	}

	var work models.WorkRecord
	if err := json.NewDecoder(resp.Body).Decode(&work); err != nil {
		return nil, fmt.Errorf("failed to decode work: %w", err)
	}

	return &work, nil
}

func (c *metadataClient) AttachFingerprint(ctx context.Context, workID, fingerprint string) error {
	url := fmt.Sprintf("%s/api/v1/works/%s/fingerprint", c.baseURL, workID)
	body := map[string]string{"fingerprint": fingerprint}
	return c.post(ctx, url, body)
}

func (c *metadataClient) AttachReport(ctx context.Context, workID, reportID string) error {
	url := fmt.Sprintf("%s/api/v1/works/%s/reports", c.baseURL, workID)
	body := map[string]string{"reportId": reportID}
	return c.post(ctx, url, body)
}

func (c *metadataClient) FindByFingerprint(ctx context.Context, fingerprint string) ([]models.FingerprintMatch, error) {
	url := fmt.Sprintf("%s/api/v1/submissions/by-hash/%s", c.baseURL, fingerprint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query fingerprint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metadata service returned status %d", resp.StatusCode)
	}

	var matches []models.FingerprintMatch
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return nil, fmt.Errorf("failed to decode matches: %w", err)
	}

	return matches, nil
}

func (c *metadataClient) post(ctx context.Context, url string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call metadata service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("metadata service returned status %d", resp.StatusCode)
	}

	return nil
}
