package models

import (
	"io"
	"time"
)

// StoredFile описывает объект, возвращаемый из хранилища.
// Content поддерживает Seek, что позволяет отдавать Range-запросы.
type StoredFile struct {
	FileID      string
	Name        string
	ContentType string
	Size        int64
	ModTime     time.Time
	Content     io.ReadSeekCloser
}

type UploadFileResponse struct {
	FileID string `json:"fileId"`
}
