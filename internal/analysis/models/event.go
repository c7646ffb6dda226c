package models

// WorkSubmittedEvent публикуется шлюзом после записи в реестр
// и служит долговечным каналом повторной доставки триггера анализа.
type WorkSubmittedEvent struct {
	WorkID       string `json:"work_id"`
	FileID       string `json:"file_id"`
	StudentID    string `json:"student_id"`
	AssignmentID string `json:"assignment_id"`
	FileName     string `json:"file_name"`
	Timestamp    int64  `json:"timestamp"`
}
