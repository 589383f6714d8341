package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sink stores a finished report and returns where it went
type Sink interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

// FileSink writes reports into a directory
type FileSink struct {
	Dir string
}

// Save implements Sink
func (s FileSink) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// WriterSink streams reports to a writer, e.g. an HTTP response
type WriterSink struct {
	W io.Writer
}

// Save implements Sink
func (s WriterSink) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := s.W.Write(data); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return name, nil
}
