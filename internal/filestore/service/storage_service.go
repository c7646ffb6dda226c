package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/filestore/models"
	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/filestore/repository"
)

var (
	ErrEmptyFile    = errors.New("file is empty")
	ErrFileTooLarge = errors.New("file size exceeds limit")
	ErrFileNotFound = errors.New("file not found")
)

type ObjectStorage interface {
	PutObject(ctx context.Context, objectName string, content io.Reader, size int64, originalName, contentType string) error
	GetObject(ctx context.Context, objectName string) (io.ReadSeekCloser, *repository.ObjectInfo, error)
}

type StorageService interface {
	StoreFile(ctx context.Context, fileName string, content []byte) (*models.UploadFileResponse, error)
	FetchFile(ctx context.Context, fileID string) (*models.StoredFile, error)
}

type storageService struct {
	storage       ObjectStorage
	maxUploadSize int64
	logger        zerolog.Logger
}

func NewStorageService(storage ObjectStorage, maxUploadSize int64, logger zerolog.Logger) StorageService {
	return &storageService{
		storage:       storage,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

func (s *storageService) StoreFile(ctx context.Context, fileName string, content []byte) (*models.UploadFileResponse, error) {
	if len(content) == 0 {
		return nil, ErrEmptyFile
	}
	if int64(len(content)) > s.maxUploadSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, len(content))
	}

	fileID := uuid.New().String()
	contentType := detectContentType(fileName)

	if err := s.storage.PutObject(ctx, fileID, bytes.NewReader(content), int64(len(content)), fileName, contentType); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	s.logger.Info().
		Str("file_id", fileID).
		Str("original_name", fileName).
		Int("size", len(content)).
		Msg("File stored")

	return &models.UploadFileResponse{FileID: fileID}, nil
}

func (s *storageService) FetchFile(ctx context.Context, fileID string) (*models.StoredFile, error) {
	object, info, err := s.storage.GetObject(ctx, fileID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to fetch file: %w", err)
	}

	name := info.OriginalName
	if name == "" {
		name = fileID
	}
	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &models.StoredFile{
		FileID:      fileID,
		Name:        name,
		ContentType: contentType,
		Size:        info.Size,
		ModTime:     info.LastModified,
		Content:     object,
	}, nil
}

func detectContentType(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
