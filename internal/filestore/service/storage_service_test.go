package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/AlexanderOsharov/SoftwareDesign-IHA-3/internal/filestore/repository"
)

type mockObject struct {
	*bytes.Reader
}

func (m *mockObject) Close() error { return nil }

type mockStorage struct {
	objects map[string][]byte
	infos   map[string]*repository.ObjectInfo
	putErr  error
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		objects: make(map[string][]byte),
		infos:   make(map[string]*repository.ObjectInfo),
	}
}

func (m *mockStorage) PutObject(_ context.Context, objectName string, content io.Reader, size int64, originalName, contentType string) error {
	if m.putErr != nil {
		return m.putErr
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	m.objects[objectName] = data
	m.infos[objectName] = &repository.ObjectInfo{
		OriginalName: originalName,
		ContentType:  contentType,
		Size:         size,
		LastModified: time.Now().UTC(),
	}
	return nil
}

func (m *mockStorage) GetObject(_ context.Context, objectName string) (io.ReadSeekCloser, *repository.ObjectInfo, error) {
	data, ok := m.objects[objectName]
	if !ok {
		return nil, nil, repository.ErrObjectNotFound
	}
	return &mockObject{bytes.NewReader(data)}, m.infos[objectName], nil
}

func TestStoreFile_Success(t *testing.T) {
	storage := newMockStorage()
	svc := NewStorageService(storage, 1<<20, zerolog.Nop())

	resp, err := svc.StoreFile(context.Background(), "essay.txt", []byte("hello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uuid.Parse(resp.FileID); err != nil {
		t.Errorf("file id must be a UUID, got %q", resp.FileID)
	}
	if !bytes.Equal(storage.objects[resp.FileID], []byte("hello")) {
		t.Error("stored content mismatch")
	}
	if storage.infos[resp.FileID].ContentType != "text/plain; charset=utf-8" {
		t.Errorf("unexpected content type: %s", storage.infos[resp.FileID].ContentType)
	}
}

func TestStoreFile_Empty(t *testing.T) {
	svc := NewStorageService(newMockStorage(), 1<<20, zerolog.Nop())

	if _, err := svc.StoreFile(context.Background(), "essay.txt", nil); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("expected ErrEmptyFile, got %v", err)
	}
}

func TestStoreFile_TooLarge(t *testing.T) {
	svc := NewStorageService(newMockStorage(), 4, zerolog.Nop())

	if _, err := svc.StoreFile(context.Background(), "essay.txt", []byte("hello")); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestFetchFile(t *testing.T) {
	storage := newMockStorage()
	svc := NewStorageService(storage, 1<<20, zerolog.Nop())

	resp, err := svc.StoreFile(context.Background(), "essay.txt", []byte("hello"))
	if err != nil {
		t.Fatal(err)
	}

	file, err := svc.FetchFile(context.Background(), resp.FileID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer file.Content.Close()

	if file.Name != "essay.txt" {
		t.Errorf("unexpected name: %s", file.Name)
	}
	data, _ := io.ReadAll(file.Content)
	if string(data) != "hello" {
		t.Errorf("unexpected content: %q", data)
	}
}

func TestFetchFile_NotFound(t *testing.T) {
	svc := NewStorageService(newMockStorage(), 1<<20, zerolog.Nop())

	if _, err := svc.FetchFile(context.Background(), uuid.New().String()); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}
