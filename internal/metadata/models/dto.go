package models

import "time"

type CreateSubmissionRequest struct {
	StudentID    string `json:"studentId"`
	AssignmentID string `json:"assignmentId"`
	FileID       string `json:"fileId"`
}

type CreateSubmissionResponse struct {
	WorkID string `json:"workId"`
}

type SubmissionResponse struct {
	Submission
	State SubmissionState `json:"state"`
}

type AttachReportRequest struct {
	ReportID string `json:"reportId"`
}

type AttachFingerprintRequest struct {
	Fingerprint string `json:"fingerprint"`
}

// FingerprintMatch — одна запись реестра с совпавшим отпечатком.
type FingerprintMatch struct {
	WorkID      string    `json:"workId"`
	StudentID   string    `json:"studentId"`
	SubmittedAt time.Time `json:"submittedAt"`
	Fingerprint string    `json:"fingerprint"`
}
