package models

import "time"

// Report создаётся один раз на успешный прогон анализа и далее неизменяем.
type Report struct {
	ReportID     string              `json:"reportId"`
	WorkID       string              `json:"workId"`
	FileID       string              `json:"fileId"`
	IsDuplicate  bool                `json:"isDuplicate"`
	Evidence     []DuplicateEvidence `json:"evidence"`
	WordCloudURL *string             `json:"wordCloudUrl,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// DuplicateEvidence — более ранняя работа с тем же отпечатком текста.
type DuplicateEvidence struct {
	WorkID      string    `json:"workId"`
	StudentID   string    `json:"studentId"`
	SubmittedAt time.Time `json:"submittedAt"`
}
