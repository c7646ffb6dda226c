package service

import "errors"

// Типизированные ошибки для маппинга на HTTP-коды в delivery-слое.
var (
	ErrWorkNotFound       = errors.New("work not found")
	ErrInvalidStudentID   = errors.New("invalid studentId")
	ErrInvalidAssignment  = errors.New("invalid assignmentId")
	ErrFileIDRequired     = errors.New("fileId is required")
	ErrInvalidReportID    = errors.New("invalid reportId")
	ErrInvalidFingerprint = errors.New("fingerprint must be 64 lowercase hex characters")
)
