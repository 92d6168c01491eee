// Package http provides HTTP server and handler implementations.
//
// This file turns request bodies into raw life event field values. Both
// form-encoded bodies (browser and htmx posts) and JSON objects are accepted.

package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"lifeevents/internal/core"
)

// lifeEventFields are the request keys bound to the form.
var lifeEventFields = []string{
	core.FieldEmployerName,
	core.FieldAnnualGrossIncome,
	core.FieldStartDate,
	core.FieldEndDate,
	core.FieldNotes,
}

// RequestBodyParser handles different content types for request body parsing.
// It supports both JSON and form-encoded data, commonly used with HTMX.
type RequestBodyParser struct {
	body        []byte
	contentType string
	jsonData    map[string]any
	formData    url.Values
	parsed      bool
	err         error
}

// NewRequestBodyParser creates a parser for the given request.
// It reads the body once and stores it for subsequent parsing.
func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{
		contentType: r.Header.Get("Content-Type"),
	}
	if r.Body != nil {
		p.body, p.err = io.ReadAll(r.Body)
	}
	return p
}

// Parse attempts to parse the body as JSON or form data.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	body := strings.TrimSpace(string(p.body))
	if body == "" {
		p.formData = url.Values{}
		return nil
	}

	if strings.HasPrefix(p.contentType, "application/json") || body[0] == '{' {
		p.jsonData = make(map[string]any)
		if err := json.Unmarshal(p.body, &p.jsonData); err != nil {
			p.err = fmt.Errorf("decode JSON body: %w", err)
			return p.err
		}
		return nil
	}

	p.formData, p.err = url.ParseQuery(string(p.body))
	if p.err != nil {
		p.err = fmt.Errorf("decode form body: %w", p.err)
	}
	return p.err
}

// Lookup returns the sanitized value for key and whether it was present.
func (p *RequestBodyParser) Lookup(key string) (string, bool) {
	if p.jsonData != nil {
		val, ok := p.jsonData[key]
		if !ok {
			return "", false
		}
		return sanitizeInput(stringValue(val)), true
	}
	if p.formData != nil {
		if _, ok := p.formData[key]; !ok {
			return "", false
		}
		return sanitizeInput(p.formData.Get(key)), true
	}
	return "", false
}

// stringValue converts a decoded JSON value to the text a form input would carry.
// null becomes "".
func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// ParseLifeEventForm reads the life event fields present in the request body.
// Unknown keys are ignored.
func ParseLifeEventForm(r *http.Request) (map[string]string, error) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, fmt.Errorf("request body exceeds %d bytes: %w", maxErr.Limit, err)
		}
		return nil, err
	}

	values := make(map[string]string, len(lifeEventFields))
	for _, field := range lifeEventFields {
		if v, ok := p.Lookup(field); ok {
			values[field] = v
		}
	}
	return values, nil
}
