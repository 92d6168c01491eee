package http

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"lifeevents/internal/export"
)

// errWrittenResponse marks a delivery failure after headers were sent.
var errWrittenResponse = errors.New("response already written")

// ResponseSink answers the request with the export document as a file download.
type ResponseSink struct {
	w http.ResponseWriter
}

var _ export.Sink = (*ResponseSink)(nil)

func NewResponseSink(w http.ResponseWriter) *ResponseSink {
	return &ResponseSink{w: w}
}

// Deliver writes doc with attachment headers and status 200.
func (s *ResponseSink) Deliver(ctx context.Context, doc export.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	h := s.w.Header()
	h.Set("Content-Type", doc.ContentType)
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.Filename}))
	h.Set("Content-Length", strconv.Itoa(len(doc.Body)))
	s.w.WriteHeader(http.StatusOK)

	if _, err := s.w.Write(doc.Body); err != nil {
		return fmt.Errorf("%w: %v", errWrittenResponse, err)
	}
	return nil
}
