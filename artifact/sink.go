package artifact

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Sink kinds accepted by New.
const (
	KindLocal = "local"
	KindS3    = "s3"
	KindMinio = "minio"
)

// Errors returned by sink constructors.
var (
	ErrUnknownSink = errors.New("artifact: unknown sink kind")
	ErrNoBucket    = errors.New("artifact: bucket is required")
	ErrNoEndpoint  = errors.New("artifact: endpoint is required")
	ErrNoDir       = errors.New("artifact: output directory is required")
	ErrBadName     = errors.New("artifact: invalid artifact name")
)

// Sink stores named artifacts of one run.
type Sink interface {
	// Put stores data under name and returns where it went.
	Put(ctx context.Context, name string, data []byte, contentType string) (string, error)
	// RunID returns the prefix all artifacts of this sink share.
	RunID() string
}

// Config selects and configures a sink.
type Config struct {
	Kind  string
	RunID string

	// local
	Dir string

	// s3 and minio
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// New returns the sink described by cfg. An empty RunID gets a fresh UUID.
func New(ctx context.Context, cfg Config) (Sink, error) {
	if cfg.RunID == "" {
		cfg.RunID = NewRunID()
	}

	switch strings.ToLower(cfg.Kind) {
	case "", KindLocal:
		return NewLocalSink(cfg.Dir, cfg.RunID)
	case KindS3:
		return NewS3Sink(ctx, cfg)
	case KindMinio:
		return NewMinioSink(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSink, cfg.Kind)
	}
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// objectKey joins the run prefix and name, rejecting names that would
// escape the prefix.
func objectKey(runID, name string) (string, error) {
	clean := path.Clean("/" + name)
	if name == "" || strings.HasSuffix(name, "/") || clean == "/" || clean[1:] != name {
		return "", fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return path.Join(runID, name), nil
}
