package artifact

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioSink uploads artifacts to a MinIO bucket, creating it on first use.
type MinioSink struct {
	client *minio.Client
	bucket string
	region string
	runID  string

	mu    sync.Mutex
	ready bool
}

// NewMinioSink returns a MinIO sink for cfg. Endpoint is host:port.
func NewMinioSink(_ context.Context, cfg Config) (*MinioSink, error) {
	if cfg.Bucket == "" {
		return nil, ErrNoBucket
	}
	if cfg.Endpoint == "" {
		return nil, ErrNoEndpoint
	}
	if cfg.RunID == "" {
		cfg.RunID = NewRunID()
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  miniocreds.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("artifact: minio client: %w", err)
	}

	return &MinioSink{client: client, bucket: cfg.Bucket, region: cfg.Region, runID: cfg.RunID}, nil
}

// RunID implements Sink.
func (s *MinioSink) RunID() string { return s.runID }

// Put implements Sink. It is safe for concurrent use.
func (s *MinioSink) Put(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	key, err := objectKey(s.runID, name)
	if err != nil {
		return "", err
	}
	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("artifact: upload %s: %w", key, err)
	}
	return s.client.EndpointURL().String() + "/" + s.bucket + "/" + key, nil
}

// ensureBucket checks for the bucket once per sink. A failed check is
// retried on the next call.
func (s *MinioSink) ensureBucket(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("artifact: check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("artifact: create bucket %s: %w", s.bucket, err)
		}
	}
	s.ready = true
	return nil
}
