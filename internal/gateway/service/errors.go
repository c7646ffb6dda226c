package service

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyFile         = errors.New("file is required and must not be empty")
	ErrInvalidStudentID  = errors.New("student id must be a valid UUID")
	ErrInvalidAssignment = errors.New("assignment id must be a valid UUID")
	ErrWorkNotFound      = errors.New("work not found")
	ErrReportNotFound    = errors.New("report not found")
	ErrReportPending     = errors.New("report is not ready yet")
)

// UpstreamError означает отказ зависимости после исчерпания ретраев
// или при открытом circuit breaker'е.
type UpstreamError struct {
	Dependency string
	Err        error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream failure: %s: %v", e.Dependency, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func upstream(dependency string, err error) error {
	return &UpstreamError{Dependency: dependency, Err: err}
}
