// Package export turns a validated life event into the downloadable
// employment_data.json document and hands it to one or more sinks.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"lifeevents/internal/core"
)

const (
	// Filename is the name the exported file is delivered under.
	Filename = "employment_data.json"
	// ContentType is the MIME type of the exported file.
	ContentType = "application/json"
)

var ErrNoSink = errors.New("no export sink configured")

// Document is a named file ready for delivery.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Sink delivers an exported document somewhere: a browser download, a
// directory, a message broker, a cloud drive.
type Sink interface {
	Deliver(ctx context.Context, doc Document) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, doc Document) error

// Deliver calls f.
func (f SinkFunc) Deliver(ctx context.Context, doc Document) error {
	return f(ctx, doc)
}

// Record is the JSON shape of the export file. Dates are YYYY-MM-DD or null;
// notes are omitted when absent.
type Record struct {
	EmployerName      string  `json:"employerName"`
	AnnualGrossIncome string  `json:"annualGrossIncome"`
	StartDate         *string `json:"startDate"`
	EndDate           *string `json:"endDate"`
	Notes             *string `json:"notes,omitempty"`
}

// NewRecord copies ev, normalizing both dates.
func NewRecord(ev core.LifeEvent) Record {
	return Record{
		EmployerName:      ev.EmployerName,
		AnnualGrossIncome: ev.AnnualGrossIncome,
		StartDate:         core.NormalizeDate(ev.StartDate),
		EndDate:           core.NormalizeDate(ev.EndDate),
		Notes:             ev.Notes,
	}
}

// Marshal renders r as JSON indented by two spaces, without HTML escaping
// and without a trailing newline.
func (r Record) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encode export record: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Build serializes ev into the export document. Callers validate ev first.
func Build(ev core.LifeEvent) (Document, error) {
	body, err := NewRecord(ev).Marshal()
	if err != nil {
		return Document{}, err
	}
	return Document{
		Filename:    Filename,
		ContentType: ContentType,
		Body:        body,
	}, nil
}

// ParseRecord decodes an export file body.
func ParseRecord(body []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(body, &r); err != nil {
		return Record{}, fmt.Errorf("decode export record: %w", err)
	}
	return r, nil
}
