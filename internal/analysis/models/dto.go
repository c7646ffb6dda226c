package models

import "time"

type AnalyzeRequest struct {
	FileID   string `json:"fileId"`
	WorkID   string `json:"workId"`
	FileName string `json:"fileName,omitempty"`
}

type AnalyzeResponse struct {
	ReportID string `json:"reportId"`
}

// WorkRecord — запись реестра, как её отдаёт metadata-service.
type WorkRecord struct {
	WorkID          string    `json:"workId"`
	StudentID       string    `json:"studentId"`
	AssignmentID    string    `json:"assignmentId"`
	FileID          string    `json:"fileId"`
	SubmittedAt     time.Time `json:"submittedAt"`
	TextFingerprint *string   `json:"textFingerprint,omitempty"`
	ReportID        *string   `json:"reportId,omitempty"`
	State           string    `json:"state"`
}

// FingerprintMatch — элемент выдачи запроса реестра по отпечатку.
type FingerprintMatch struct {
	WorkID      string    `json:"workId"`
	StudentID   string    `json:"studentId"`
	SubmittedAt time.Time `json:"submittedAt"`
	Fingerprint string    `json:"fingerprint"`
}
