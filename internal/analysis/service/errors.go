package service

import "errors"

var (
	ErrFileNotFound      = errors.New("file not found")
	ErrWorkNotFound      = errors.New("work not found")
	ErrReportNotFound    = errors.New("report not found")
	ErrInvalidWorkID     = errors.New("work id is required")
	ErrInvalidFileID     = errors.New("file id is required")
	ErrLedgerUnavailable = errors.New("metadata ledger unavailable")
)
