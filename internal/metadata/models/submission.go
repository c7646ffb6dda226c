package models

import "time"

// SubmissionState выводится из заполненности опциональных полей,
// отдельной колонки статуса в таблице нет.
type SubmissionState string

const (
	StateSubmitted     SubmissionState = "submitted"
	StateFingerprinted SubmissionState = "fingerprinted"
	StateReported      SubmissionState = "reported"
)

type Submission struct {
	WorkID          string     `json:"workId"`
	StudentID       string     `json:"studentId"`
	AssignmentID    string     `json:"assignmentId"`
	FileID          string     `json:"fileId"`
	SubmittedAt     time.Time  `json:"submittedAt"`
	TextFingerprint *string    `json:"textFingerprint,omitempty"`
	ReportID        *string    `json:"reportId,omitempty"`
}

func (s *Submission) State() SubmissionState {
	switch {
	case s.ReportID != nil && *s.ReportID != "":
		return StateReported
	case s.TextFingerprint != nil && *s.TextFingerprint != "":
		return StateFingerprinted
	default:
		return StateSubmitted
	}
}
