package blob

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/vantagecap/dealdesk/internal/config"
	"github.com/vantagecap/dealdesk/internal/domain/dealModel"
	"github.com/vantagecap/dealdesk/pkg/logger_i"
)

var (
	logger      *logger_i.Logger
	minioClient *MinioBlobStore
	once        sync.Once
)

// MinioBlobStore satisfies dealModel.BlobStore on a single MinIO bucket.
type MinioBlobStore struct {
	client *minio.Client
	bucket string
}

func GetMinioBlobStore(ctx context.Context) dealModel.BlobStore {
	once.Do(func() {
		logger = logger_i.NewLogger("BlobStore")
		newMinioBlobStore(ctx)
	})

	if minioClient == nil {
		return nil
	}
	return minioClient
}

func newMinioBlobStore(ctx context.Context) {
	client, err := minio.New(config.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.MinioAccessKey, config.MinioSecretKey, ""),
		Secure: config.MinioUseSSL,
	})
	if err != nil {
		logger.Error("Error creating MinIO client", "error", err)
		return
	}

	store := &MinioBlobStore{client: client, bucket: config.MinioBucket}
	if err := store.ensureBucket(ctx); err != nil {
		logger.Error("MinIO bucket unavailable", "bucket", config.MinioBucket, "error", err)
		return
	}

	minioClient = store
	logger.Info("MinIO blob store init successfully", "bucket", config.MinioBucket)
}

func (s *MinioBlobStore) ensureBucket(ctx context.Context) error {
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	exists, err := s.client.BucketExists(checkCtx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(checkCtx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
	}
	return nil
}

func (s *MinioBlobStore) Upload(ctx context.Context, object string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, object, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", object, err)
	}
	return nil
}

func (s *MinioBlobStore) Download(ctx context.Context, object string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", object, err)
	}
	// GetObject is lazy; force the first read so missing objects surface here
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, fmt.Errorf("download %s: %w", object, err)
	}
	return obj, nil
}

func (s *MinioBlobStore) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if info.Err != nil {
			return nil, fmt.Errorf("list %s: %w", prefix, info.Err)
		}
		names = append(names, info.Key)
	}
	return names, nil
}

func (s *MinioBlobStore) Delete(ctx context.Context, object string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, object, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete %s: %w", object, err)
	}
	return nil
}

func (s *MinioBlobStore) PresignedURL(ctx context.Context, object string) (string, error) {
	url, err := s.client.PresignedGetObject(ctx, s.bucket, object, 24*time.Hour, nil)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", object, err)
	}
	return url.String(), nil
}
