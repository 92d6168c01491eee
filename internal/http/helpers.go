package http

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"lifeevents/internal/log"
)

// isHTMX reports whether the request was issued by htmx.
func isHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Request"), "true")
}

// requestLogger prefers the request-scoped logger set by the trace middleware.
func requestLogger(ctx context.Context, fallback *log.Logger) *log.Logger {
	return log.FromContext(ctx, fallback).WithComponent(log.ComponentHTTP)
}

// sanitizeInput removes control characters except tab, newline and carriage
// return. Surrounding whitespace is kept: it is part of what the user typed.
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		if r == 0x7f {
			return -1
		}
		return r
	}, s)
}

func (s *Server) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
