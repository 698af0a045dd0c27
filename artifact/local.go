package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalSink writes artifacts to Dir/RunID/name.
type LocalSink struct {
	dir   string
	runID string
}

// NewLocalSink returns a sink writing below dir.
func NewLocalSink(dir, runID string) (*LocalSink, error) {
	if dir == "" {
		return nil, ErrNoDir
	}
	if runID == "" {
		runID = NewRunID()
	}
	return &LocalSink{dir: dir, runID: runID}, nil
}

// RunID implements Sink.
func (s *LocalSink) RunID() string { return s.runID }

// Put implements Sink. The content type is ignored.
func (s *LocalSink) Put(ctx context.Context, name string, data []byte, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key, err := objectKey(s.runID, name)
	if err != nil {
		return "", err
	}

	dst := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("artifact: create %s: %w", filepath.Dir(dst), err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("artifact: write %s: %w", dst, err)
	}
	return dst, nil
}
