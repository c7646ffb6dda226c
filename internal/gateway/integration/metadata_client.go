package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/gateway/config"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/gateway/models"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/pkg/resiliency"
)

type MetadataClient interface {
	CreateSubmission(ctx context.Context, studentID, assignmentID, fileID string) (string, error)
	// GetWork возвращает запись реестра или (nil, nil), если работы нет.
	GetWork(ctx context.Context, workID string) (*models.WorkRecord, error)
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

func (c *metadataClient) CreateSubmission(ctx context.Context, studentID, assignmentID, fileID string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"studentId":    studentID,
		"assignmentId": assignmentID,
		"fileId":       fileID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/submissions", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to create submission: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("metadata service returned status %d", resp.StatusCode)
	}

	var result struct {
		WorkID string `json:"workId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode submission response: %w", err)
	}
	if result.WorkID == "" {
		return "", fmt.Errorf("metadata service returned empty work id")
	}

	return result.WorkID, nil
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
