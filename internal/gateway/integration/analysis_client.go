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

type AnalysisClient interface {
	TriggerAnalysis(ctx context.Context, workID, fileID, fileName string) error
	// GetReport возвращает отчёт или (nil, nil), если отчёта нет.
	GetReport(ctx context.Context, reportID string) (*models.Report, error)
}

type analysisClient struct {
	client  *resiliency.Client
	baseURL string
	logger  zerolog.Logger
}

func NewAnalysisClient(cfg config.ServiceConfig, logger zerolog.Logger) AnalysisClient {
	return &analysisClient{
		client: resiliency.NewClient(resiliency.ClientConfig{
			Timeout:    cfg.Timeout,
			RetryCount: cfg.RetryCount,
			RetryDelay: cfg.RetryDelay,
		}, logger),
		baseURL: cfg.URL,
		logger:  logger,
	}
}

func (c *analysisClient) TriggerAnalysis(ctx context.Context, workID, fileID, fileName string) error {
	payload, err := json.Marshal(map[string]string{
		"workId":   workID,
		"fileId":   fileID,
		"fileName": fileName,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/analyze", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to trigger analysis: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("analysis service returned status %d", resp.StatusCode)
	}

	return nil
}

func (c *analysisClient) GetReport(ctx context.Context, reportID string) (*models.Report, error) {
	url := fmt.Sprintf("%s/api/v1/reports/%s", c.baseURL, reportID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analysis service returned status %d", resp.StatusCode)
	}

	var report models.Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}

	return &report, nil
}
