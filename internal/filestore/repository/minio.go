package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

var ErrObjectNotFound = errors.New("object not found")

const (
	metaOriginalName = "X-Amz-Meta-Original-Name"
	metaContentType  = "X-Amz-Meta-Original-Content-Type"
)

// ObjectInfo описывает сохранённый объект без его содержимого.
type ObjectInfo struct {
	OriginalName string
	ContentType  string
	Size         int64
	LastModified time.Time
}

type MinIORepository struct {
	client *minio.Client
	bucket string
	region string
	logger zerolog.Logger

	ensureMu      sync.Mutex
	bucketEnsured bool
}

func NewMinIORepository(endpoint, accessKey, secretKey, bucket, region string, useSSL bool, connectTimeout time.Duration, logger zerolog.Logger) (*MinIORepository, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	repo := &MinIORepository{
		client: client,
		bucket: bucket,
		region: region,
		logger: logger,
	}

	// Best-effort bootstrap: не валим сервис, если MinIO ещё поднимается.
	if connectTimeout <= 0 {
		connectTimeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := repo.ensureBucket(ctx); err != nil {
		logger.Error().Err(err).
			Str("endpoint", endpoint).
			Str("bucket", bucket).
			Msg("MinIO not ready during startup; will retry on demand")
	}

	logger.Info().
		Str("endpoint", endpoint).
		Str("bucket", bucket).
		Bool("ssl", useSSL).
		Msg("Connected to MinIO")

	return repo, nil
}

func (r *MinIORepository) ensureBucket(ctx context.Context) error {
	r.ensureMu.Lock()
	defer r.ensureMu.Unlock()
	if r.bucketEnsured {
		return nil
	}

	backoff := 500 * time.Millisecond
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("minio not ready: %w", err)
		}

		exists, err := r.client.BucketExists(ctx, r.bucket)
		if err != nil {
			time.Sleep(backoff)
			continue
		}

		if !exists {
			if err := r.client.MakeBucket(ctx, r.bucket, minio.MakeBucketOptions{Region: r.region}); err != nil {
				time.Sleep(backoff)
				continue
			}
			r.logger.Info().Str("bucket", r.bucket).Msg("Created new bucket")
		}

		r.bucketEnsured = true
		return nil
	}
}

func (r *MinIORepository) PutObject(ctx context.Context, objectName string, content io.Reader, size int64, originalName, contentType string) error {
	if err := r.ensureBucket(ctx); err != nil {
		return err
	}

	info, err := r.client.PutObject(ctx, r.bucket, objectName, content, size, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
		UserMetadata: map[string]string{
			"Original-Name":         originalName,
			"Original-Content-Type": contentType,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}

	r.logger.Debug().
		Str("object", objectName).
		Str("etag", info.ETag).
		Int64("size", size).
		Msg("Object uploaded to MinIO")

	return nil
}

// GetObject возвращает объект и его атрибуты. Объект поддерживает Seek,
// что позволяет отдавать его через http.ServeContent.
func (r *MinIORepository) GetObject(ctx context.Context, objectName string) (io.ReadSeekCloser, *ObjectInfo, error) {
	if err := r.ensureBucket(ctx); err != nil {
		return nil, nil, err
	}

	stat, err := r.client.StatObject(ctx, r.bucket, objectName, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, nil, ErrObjectNotFound
		}
		return nil, nil, fmt.Errorf("failed to stat object: %w", err)
	}

	object, err := r.client.GetObject(ctx, r.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get object: %w", err)
	}

	info := &ObjectInfo{
		OriginalName: stat.Metadata.Get(metaOriginalName),
		ContentType:  stat.Metadata.Get(metaContentType),
		Size:         stat.Size,
		LastModified: stat.LastModified,
	}

	r.logger.Debug().
		Str("object", objectName).
		Int64("size", stat.Size).
		Msg("Object fetched from MinIO")

	return object, info, nil
}

func (r *MinIORepository) ObjectExists(ctx context.Context, objectName string) (bool, error) {
	if err := r.ensureBucket(ctx); err != nil {
		return false, err
	}

	_, err := r.client.StatObject(ctx, r.bucket, objectName, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to check object existence: %w", err)
	}
	return true, nil
}
