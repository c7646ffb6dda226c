package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/analysis/models"
)

func TestDuplicateDetector_FindsEarlierWorks(t *testing.T) {
	metadata := newMockMetadataClient()
	metadata.matches = []models.FingerprintMatch{
		{WorkID: "work-1", StudentID: "student-1", SubmittedAt: time.Now().Add(-time.Hour)},
		{WorkID: "work-2", StudentID: "student-2", SubmittedAt: time.Now()},
	}

	detector := NewDuplicateDetector(metadata, zerolog.Nop())

	isDuplicate, evidence, err := detector.Detect(context.Background(), "work-3", "fp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !isDuplicate {
		t.Error("expected a duplicate verdict")
	}
	if len(evidence) != 2 {
		t.Fatalf("expected 2 evidence records, got %d", len(evidence))
	}
	if evidence[0].WorkID != "work-1" {
		t.Errorf("evidence order must follow ledger order, got %s first", evidence[0].WorkID)
	}
}

func TestDuplicateDetector_ExcludesOwnWork(t *testing.T) {
	metadata := newMockMetadataClient()
	metadata.matches = []models.FingerprintMatch{
		{WorkID: "work-1", StudentID: "student-1", SubmittedAt: time.Now()},
	}

	detector := NewDuplicateDetector(metadata, zerolog.Nop())

	isDuplicate, evidence, err := detector.Detect(context.Background(), "work-1", "fp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if isDuplicate {
		t.Error("a work must never be evidence against itself")
	}
	if len(evidence) != 0 {
		t.Errorf("expected no evidence, got %d", len(evidence))
	}
}

func TestDuplicateDetector_LedgerUnavailable(t *testing.T) {
	metadata := newMockMetadataClient()
	metadata.findErr = errors.New("connection refused")

	detector := NewDuplicateDetector(metadata, zerolog.Nop())

	_, _, err := detector.Detect(context.Background(), "work-1", "fp")
	if !errors.Is(err, ErrLedgerUnavailable) {
		t.Errorf("expected ErrLedgerUnavailable, got %v", err)
	}
}
