package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/metadata/models"
)

type mockSubmissionRepo struct {
	submissions map[string]*models.Submission
	createErr   error
}

func newMockSubmissionRepo() *mockSubmissionRepo {
	return &mockSubmissionRepo{submissions: make(map[string]*models.Submission)}
}

func (m *mockSubmissionRepo) Create(_ context.Context, sub *models.Submission) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.submissions[sub.WorkID] = sub
	return nil
}

func (m *mockSubmissionRepo) GetByID(_ context.Context, workID string) (*models.Submission, error) {
	return m.submissions[workID], nil
}

func (m *mockSubmissionRepo) UpdateFingerprint(_ context.Context, workID, fingerprint string) (bool, error) {
	sub, ok := m.submissions[workID]
	if !ok {
		return false, nil
	}
	sub.TextFingerprint = &fingerprint
	return true, nil
}

func (m *mockSubmissionRepo) UpdateReportID(_ context.Context, workID, reportID string) (bool, error) {
	sub, ok := m.submissions[workID]
	if !ok {
		return false, nil
	}
	sub.ReportID = &reportID
	return true, nil
}

func (m *mockSubmissionRepo) GetByFingerprint(_ context.Context, fingerprint string) ([]models.FingerprintMatch, error) {
	var matches []models.FingerprintMatch
	for _, sub := range m.submissions {
		if sub.TextFingerprint != nil && *sub.TextFingerprint == fingerprint {
			matches = append(matches, models.FingerprintMatch{
				WorkID:      sub.WorkID,
				StudentID:   sub.StudentID,
				SubmittedAt: sub.SubmittedAt,
				Fingerprint: fingerprint,
			})
		}
	}
	return matches, nil
}

func (m *mockSubmissionRepo) Ping(_ context.Context) error { return nil }

const validFingerprint = "a665a45920422f9d417e4867efdc4fb8a04a1f3fff1fa07e998e86f7f7a27ae3"

func setupSubmissionService() (SubmissionService, *mockSubmissionRepo) {
	repo := newMockSubmissionRepo()
	return NewSubmissionService(repo, zerolog.Nop()), repo
}

func TestCreateSubmission_Success(t *testing.T) {
	svc, repo := setupSubmissionService()

	resp, err := svc.CreateSubmission(context.Background(), &models.CreateSubmissionRequest{
		StudentID:    uuid.New().String(),
		AssignmentID: uuid.New().String(),
		FileID:       "file-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uuid.Parse(resp.WorkID); err != nil {
		t.Errorf("work id must be a UUID, got %q", resp.WorkID)
	}

	sub := repo.submissions[resp.WorkID]
	if sub == nil {
		t.Fatal("submission must be persisted")
	}
	if sub.SubmittedAt.IsZero() {
		t.Error("submitted_at must be assigned by the server")
	}
	if time.Since(sub.SubmittedAt) > time.Minute {
		t.Error("submitted_at must be close to now")
	}
}

func TestCreateSubmission_Validation(t *testing.T) {
	svc, _ := setupSubmissionService()

	cases := []struct {
		name string
		req  models.CreateSubmissionRequest
		want error
	}{
		{"bad student id", models.CreateSubmissionRequest{StudentID: "nope", AssignmentID: uuid.New().String(), FileID: "f"}, ErrInvalidStudentID},
		{"bad assignment id", models.CreateSubmissionRequest{StudentID: uuid.New().String(), AssignmentID: "nope", FileID: "f"}, ErrInvalidAssignment},
		{"empty file id", models.CreateSubmissionRequest{StudentID: uuid.New().String(), AssignmentID: uuid.New().String(), FileID: "  "}, ErrFileIDRequired},
	}

	for _, tc := range cases {
		if _, err := svc.CreateSubmission(context.Background(), &tc.req); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestGetWork_StateTransitions(t *testing.T) {
	svc, repo := setupSubmissionService()

	resp, err := svc.CreateSubmission(context.Background(), &models.CreateSubmissionRequest{
		StudentID:    uuid.New().String(),
		AssignmentID: uuid.New().String(),
		FileID:       "file-1",
	})
	if err != nil {
		t.Fatal(err)
	}
	workID := resp.WorkID

	work, err := svc.GetWork(context.Background(), workID)
	if err != nil {
		t.Fatal(err)
	}
	if work.State != models.StateSubmitted {
		t.Errorf("expected submitted, got %s", work.State)
	}

	if err := svc.AttachFingerprint(context.Background(), workID, validFingerprint); err != nil {
		t.Fatal(err)
	}
	work, _ = svc.GetWork(context.Background(), workID)
	if work.State != models.StateFingerprinted {
		t.Errorf("expected fingerprinted, got %s", work.State)
	}

	if err := svc.AttachReport(context.Background(), workID, uuid.New().String()); err != nil {
		t.Fatal(err)
	}
	work, _ = svc.GetWork(context.Background(), workID)
	if work.State != models.StateReported {
		t.Errorf("expected reported, got %s", work.State)
	}

	// Отпечаток после отчёта состояние назад не откатывает.
	if err := svc.AttachFingerprint(context.Background(), workID, validFingerprint); err != nil {
		t.Fatal(err)
	}
	work, _ = svc.GetWork(context.Background(), workID)
	if work.State != models.StateReported {
		t.Errorf("state must not regress, got %s", work.State)
	}

	_ = repo
}

func TestGetWork_NotFound(t *testing.T) {
	svc, _ := setupSubmissionService()

	if _, err := svc.GetWork(context.Background(), uuid.New().String()); !errors.Is(err, ErrWorkNotFound) {
		t.Errorf("expected ErrWorkNotFound, got %v", err)
	}
}

func TestAttachReport_Validation(t *testing.T) {
	svc, _ := setupSubmissionService()

	if err := svc.AttachReport(context.Background(), uuid.New().String(), "not-a-uuid"); !errors.Is(err, ErrInvalidReportID) {
		t.Errorf("expected ErrInvalidReportID, got %v", err)
	}
	if err := svc.AttachReport(context.Background(), uuid.New().String(), uuid.New().String()); !errors.Is(err, ErrWorkNotFound) {
		t.Errorf("expected ErrWorkNotFound, got %v", err)
	}
}

func TestAttachFingerprint_Validation(t *testing.T) {
	svc, _ := setupSubmissionService()

	bad := []string{
		"",
		"short",
		strings.ToUpper(validFingerprint),
		strings.Repeat("g", 64),
		validFingerprint + "00",
	}

	for _, fp := range bad {
		if err := svc.AttachFingerprint(context.Background(), uuid.New().String(), fp); !errors.Is(err, ErrInvalidFingerprint) {
			t.Errorf("%q: expected ErrInvalidFingerprint, got %v", fp, err)
		}
	}
}

func TestFindByFingerprint(t *testing.T) {
	svc, repo := setupSubmissionService()

	fp := validFingerprint
	repo.submissions["work-1"] = &models.Submission{
		WorkID:          "work-1",
		StudentID:       uuid.New().String(),
		SubmittedAt:     time.Now().UTC(),
		TextFingerprint: &fp,
	}

	matches, err := svc.FindByFingerprint(context.Background(), fp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 || matches[0].WorkID != "work-1" {
		t.Errorf("unexpected matches: %+v", matches)
	}

	if _, err := svc.FindByFingerprint(context.Background(), "zz"); !errors.Is(err, ErrInvalidFingerprint) {
		t.Errorf("expected ErrInvalidFingerprint, got %v", err)
	}

	// Пустая выдача остаётся пустым срезом, не nil.
	empty, err := svc.FindByFingerprint(context.Background(), strings.Repeat("0", 64))
	if err != nil {
		t.Fatal(err)
	}
	if empty == nil {
		t.Error("expected an empty slice, got nil")
	}
}
