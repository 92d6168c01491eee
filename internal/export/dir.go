package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DirSink writes documents into a directory, replacing any previous file of
// the same name.
type DirSink struct {
	Dir string
}

// NewDirSink returns a sink writing into dir.
func NewDirSink(dir string) *DirSink {
	return &DirSink{Dir: dir}
}

// Deliver writes doc to Dir/doc.Filename, creating Dir if needed.
func (s *DirSink) Deliver(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(s.Dir, filepath.Base(doc.Filename))
	tmp, err := os.CreateTemp(s.Dir, ".export-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(doc.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("write export file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod export file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename export file: %w", err)
	}
	return nil
}

// Path returns where a document with the given filename ends up.
func (s *DirSink) Path(filename string) string {
	return filepath.Join(s.Dir, filepath.Base(filename))
}
