package models

import "time"

type SubmitWorkResponse struct {
	WorkID          string `json:"workId"`
	FileID          string `json:"fileId"`
	AnalysisStarted bool   `json:"analysisStarted"`
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

type DuplicateEvidence struct {
	WorkID      string    `json:"workId"`
	StudentID   string    `json:"studentId"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type Report struct {
	ReportID     string              `json:"reportId"`
	WorkID       string              `json:"workId"`
	FileID       string              `json:"fileId"`
	IsDuplicate  bool                `json:"isDuplicate"`
	Evidence     []DuplicateEvidence `json:"evidence"`
	WordCloudURL *string             `json:"wordCloudUrl,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// ReportView — составной ответ по работе: запись реестра плюс отчёт.
type ReportView struct {
	Work   *WorkRecord `json:"work"`
	Report *Report     `json:"report"`
}

type PendingResponse struct {
	WorkID string `json:"workId"`
	Status string `json:"status"`
}

// WorkSubmittedEvent публикуется после записи в реестр и служит
// долговечным каналом повторной доставки триггера анализа.
type WorkSubmittedEvent struct {
	WorkID       string `json:"work_id"`
	FileID       string `json:"file_id"`
	StudentID    string `json:"student_id"`
	AssignmentID string `json:"assignment_id"`
	FileName     string `json:"file_name"`
	Timestamp    int64  `json:"timestamp"`
}
