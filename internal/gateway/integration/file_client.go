package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/gateway/config"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/pkg/resiliency"
)

type FileClient interface {
	UploadFile(ctx context.Context, fileName string, content []byte) (string, error)
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

func (c *fileClient) UploadFile(ctx context.Context, fileName string, content []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return "", fmt.Errorf("failed to write file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/files/", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body.Bytes()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("file service returned status %d", resp.StatusCode)
	}

	var result struct {
		FileID string `json:"fileId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if result.FileID == "" {
		return "", fmt.Errorf("file service returned empty file id")
	}

	return result.FileID, nil
}
