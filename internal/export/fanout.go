package export

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"lifeevents/internal/log"
)

// Mirror is a named secondary sink. Its failures are logged, never returned.
type Mirror struct {
	Name string
	Sink Sink
}

// Fanout delivers to a primary sink and then copies the document to every
// mirror concurrently.
type Fanout struct {
	primary Sink
	mirrors []Mirror
	logger  *log.Logger
}

// NewFanout creates a fanout around primary. primary may be nil when the
// caller supplies it per delivery with WithPrimary.
func NewFanout(primary Sink, logger *log.Logger, mirrors ...Mirror) *Fanout {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentExport)
	}
	return &Fanout{primary: primary, mirrors: mirrors, logger: logger}
}

// WithPrimary returns a copy of f delivering first to primary.
func (f *Fanout) WithPrimary(primary Sink) *Fanout {
	return &Fanout{primary: primary, mirrors: f.mirrors, logger: f.logger}
}

// Mirrors returns the configured mirror names.
func (f *Fanout) Mirrors() []string {
	names := make([]string, 0, len(f.mirrors))
	for _, m := range f.mirrors {
		names = append(names, m.Name)
	}
	return names
}

// Deliver sends doc to the primary sink, then to all mirrors.
// Only the primary's error is returned.
func (f *Fanout) Deliver(ctx context.Context, doc Document) error {
	if f.primary == nil && len(f.mirrors) == 0 {
		return ErrNoSink
	}
	if f.primary != nil {
		if err := f.primary.Deliver(ctx, doc); err != nil {
			return fmt.Errorf("deliver %s: %w", doc.Filename, err)
		}
	}
	if err := f.deliverMirrors(ctx, doc); err != nil {
		f.logger.ErrorContext(ctx, "Export mirror delivery failed",
			log.FieldError, err,
			log.FieldOperation, log.OpExport,
			log.FieldFilename, doc.Filename)
	}
	return nil
}

func (f *Fanout) deliverMirrors(ctx context.Context, doc Document) error {
	if len(f.mirrors) == 0 {
		return nil
	}
	errs := make([]error, len(f.mirrors))
	var g errgroup.Group
	for i, m := range f.mirrors {
		g.Go(func() error {
			if err := m.Sink.Deliver(ctx, doc); err != nil {
				errs[i] = fmt.Errorf("%s: %w", m.Name, err)
				return nil
			}
			f.logger.DebugContext(ctx, "Export mirrored", "mirror", m.Name, log.FieldFilename, doc.Filename)
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}
