package core

import (
	"errors"
	"strings"
	"time"
)

// Field names as they appear in the export document and in validation results.
const (
	FieldEmployerName      = "employerName"
	FieldAnnualGrossIncome = "annualGrossIncome"
	FieldStartDate         = "startDate"
	FieldEndDate           = "endDate"
	FieldNotes             = "notes"
)

// DateLayout is the calendar-day layout used by date inputs and the export file.
const DateLayout = "2006-01-02"

type (
	// Date is a nullable calendar date. The zero value means "absent".
	Date struct {
		time.Time
	}

	// LifeEvent is the value object edited by the employment life event form.
	LifeEvent struct {
		EmployerName string
		// AnnualGrossIncome is kept pre-formatted, e.g. "$50,000".
		AnnualGrossIncome string
		StartDate         Date
		EndDate           Date // absent means the employment is ongoing
		Notes             *string
	}
)

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrUnknownField = errors.New("unknown field")
)

// NewDate creates a new Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf wraps an instant as a present Date.
func DateOf(t time.Time) Date {
	return Date{Time: t}
}

// ParseDate parses a YYYY-MM-DD string as midnight in loc.
// An empty string yields an absent Date.
func ParseDate(s string, loc *time.Location) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return Date{}, errors.Join(ErrInvalidDate, err)
	}
	return Date{Time: t}, nil
}

// IsEmpty returns true if the date is absent.
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// InputValue renders the date for an HTML date input in loc, or "" when absent.
func (d Date) InputValue(loc *time.Location) string {
	if d.IsEmpty() {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return d.In(loc).Format(DateLayout)
}

// NotesValue returns the notes text, or "" when notes are absent.
func (ev LifeEvent) NotesValue() string {
	if ev.Notes == nil {
		return ""
	}
	return *ev.Notes
}
