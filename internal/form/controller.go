// Package form holds the state of one employment life event being edited and
// the actions the form exposes: field edits, the live total income figure,
// Save and Cancel.
//
// A Controller belongs to a single editing session (one HTTP request or one
// CLI invocation) and is not safe for concurrent use.
package form

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lifeevents/internal/core"
	"lifeevents/internal/export"
	"lifeevents/internal/log"
)

// CompletionMessage is shown once the export has been handed to the sink.
const CompletionMessage = "File created"

// Outcome describes the result of a Save.
type Outcome struct {
	// Errors is non-empty when validation failed and nothing was exported.
	Errors   core.FieldErrors
	Document export.Document
	Message  string
}

// Exported reports whether the save produced a document.
func (o Outcome) Exported() bool {
	return o.Errors.Valid() && o.Message != ""
}

// Controller owns the field state of one life event.
type Controller struct {
	event  core.LifeEvent
	errors core.FieldErrors

	now    func() time.Time
	loc    *time.Location
	sink   export.Sink
	logger *log.Logger
	events *log.StructuredLogger
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the source of "now" used when the end date is absent.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLocation sets the time zone in which dates are entered and calendar
// fields are read.
func WithLocation(loc *time.Location) Option {
	return func(c *Controller) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithSink sets where Save delivers the export document.
func WithSink(sink export.Sink) Option {
	return func(c *Controller) {
		c.sink = sink
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a controller holding an empty record.
func New(opts ...Option) *Controller {
	c := &Controller{
		now:    time.Now,
		loc:    time.UTC,
		logger: log.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithComponent(log.ComponentForm)
	c.events = log.NewStructuredLogger(c.logger)
	c.reset()
	return c
}

func (c *Controller) reset() {
	notes := ""
	c.event = core.LifeEvent{Notes: &notes}
	c.errors = core.FieldErrors{}
}

// Event returns a copy of the current field state.
func (c *Controller) Event() core.LifeEvent {
	ev := c.event
	if ev.Notes != nil {
		n := *ev.Notes
		ev.Notes = &n
	}
	return ev
}

// Location returns the time zone dates are entered in.
func (c *Controller) Location() *time.Location {
	return c.loc
}

// Errors returns the field errors of the last Save.
func (c *Controller) Errors() core.FieldErrors {
	return c.errors
}

// SetEmployerName handles edits of the employer field.
func (c *Controller) SetEmployerName(name string) {
	c.event.EmployerName = name
}

// SetAnnualGrossIncome handles edits of the income field. The raw text is
// normalized to "$" + grouped digits, the form the value is stored in.
func (c *Controller) SetAnnualGrossIncome(raw string) {
	c.event.AnnualGrossIncome = core.FormatIncomeInput(raw)
}

// SetStartDate handles the start date picker.
func (c *Controller) SetStartDate(d core.Date) {
	c.event.StartDate = d
}

// SetEndDate handles the end date picker. An empty Date means ongoing.
func (c *Controller) SetEndDate(d core.Date) {
	c.event.EndDate = d
}

// SetNotes handles edits of the notes field.
func (c *Controller) SetNotes(notes string) {
	c.event.Notes = &notes
}

// Set routes a raw text value to the named field. Dates are YYYY-MM-DD in the
// controller location; an empty date clears the field.
func (c *Controller) Set(field, raw string) error {
	switch field {
	case core.FieldEmployerName:
		c.SetEmployerName(raw)
	case core.FieldAnnualGrossIncome:
		c.SetAnnualGrossIncome(raw)
	case core.FieldStartDate, core.FieldEndDate:
		d, err := core.ParseDate(raw, c.loc)
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		if field == core.FieldStartDate {
			c.SetStartDate(d)
		} else {
			c.SetEndDate(d)
		}
	case core.FieldNotes:
		c.SetNotes(raw)
	default:
		return fmt.Errorf("%q: %w", field, core.ErrUnknownField)
	}
	return nil
}

// SetAll applies every known field present in values and reports all
// failures together. Absent keys leave their field untouched.
func (c *Controller) SetAll(values map[string]string) error {
	var errs []error
	for _, field := range []string{
		core.FieldEmployerName,
		core.FieldAnnualGrossIncome,
		core.FieldStartDate,
		core.FieldEndDate,
		core.FieldNotes,
	} {
		raw, ok := values[field]
		if !ok {
			continue
		}
		if err := c.Set(field, raw); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// TotalIncome is the live projection of the current field state.
func (c *Controller) TotalIncome() string {
	return core.ProjectTotalIncome(c.event, c.now(), c.loc)
}

// Project computes TotalIncome and logs it at debug level.
func (c *Controller) Project(ctx context.Context) string {
	total := c.TotalIncome()
	c.logger.DebugContext(ctx, "Total income projected",
		log.FieldIncome, c.event.AnnualGrossIncome,
		log.FieldStartDate, c.event.StartDate.InputValue(c.loc),
		log.FieldEndDate, c.event.EndDate.InputValue(c.loc),
		log.FieldProjection, total,
		log.FieldOperation, log.OpProject)
	return total
}

// Save validates the record and, when valid, exports it to the sink.
// Invalid input is reported through Outcome.Errors, not the error return.
// Field state is kept as submitted either way.
func (c *Controller) Save(ctx context.Context) (Outcome, error) {
	c.errors = core.Validate(c.event)
	if !c.errors.Valid() {
		c.events.LogValidationFailed(ctx, c.errors.Fields())
		return Outcome{Errors: c.errors}, nil
	}

	if c.sink == nil {
		return Outcome{}, export.ErrNoSink
	}
	doc, err := export.Build(c.event)
	if err != nil {
		return Outcome{}, fmt.Errorf("build export: %w", err)
	}
	if err := c.sink.Deliver(ctx, doc); err != nil {
		return Outcome{}, fmt.Errorf("export life event: %w", err)
	}

	c.events.LogExportCreated(ctx,
		c.event.EmployerName,
		c.event.AnnualGrossIncome,
		c.event.StartDate.InputValue(c.loc),
		c.event.EndDate.InputValue(c.loc),
		doc.Filename,
		len(doc.Body))

	return Outcome{Errors: c.errors, Document: doc, Message: CompletionMessage}, nil
}

// Cancel discards every edit and any shown errors.
func (c *Controller) Cancel() {
	c.reset()
	c.logger.Debug("Life event form reset", log.FieldOperation, log.OpCancel)
}
