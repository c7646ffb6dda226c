package integration

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/config"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/pkg/resiliency"
)

type FileClient interface {
	// GetFile возвращает содержимое файла и оригинальное имя.
	// Для несуществующего файла возвращает (nil, "", nil).
	GetFile(ctx context.Context, fileID string) ([]byte, string, error)
}

type fileClient struct {
	client  *resiliency.Client
	baseURL string
	logger  zerolog.Logger
}

func NewFileClient(cfg config.ServiceConfig, logger zerolog.Logger) FileClient {
	return &fileClient{
		client: resiliency.NewClient(resiliency.ClientConfig{
			Timeout:    cfg.Timeout,
			RetryCount: cfg.RetryCount,
			RetryDelay: cfg.RetryDelay,
		}, logger),
		baseURL: cfg.URL,
		logger:  logger,
	}
}

func (c *fileClient) GetFile(ctx context.Context, fileID string) ([]byte, string, error) {
	url := fmt.Sprintf("%s/api/v1/files/%s", c.baseURL, fileID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, "", nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("file service returned status %d", resp.StatusCode)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file body: %w", err)
	}

	return content, fileNameFromHeader(resp.Header.Get("Content-Disposition")), nil
}

func fileNameFromHeader(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}
