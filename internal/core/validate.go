package core

import (
	"sort"
	"strings"
)

// Validation messages shown next to the failing field.
const (
	MsgEmployerRequired = "Employer's name is required"
	MsgIncomeRequired   = "Annual Gross Income is required"
	MsgIncomePositive   = "Annual Gross Income must be greater than $0"
	MsgStartRequired    = "Employment Start Date is required"
)

// FieldErrors maps a field name to the message describing why it failed.
// An empty FieldErrors means the record is valid.
type FieldErrors map[string]string

// Validate checks every field of ev independently and reports all failures.
// EndDate and Notes never fail.
func Validate(ev LifeEvent) FieldErrors {
	errs := FieldErrors{}

	if ev.EmployerName == "" {
		errs[FieldEmployerName] = MsgEmployerRequired
	}

	switch {
	case ev.AnnualGrossIncome == "":
		errs[FieldAnnualGrossIncome] = MsgIncomeRequired
	case !IsValidIncome(ev.AnnualGrossIncome):
		errs[FieldAnnualGrossIncome] = MsgIncomePositive
	}

	if ev.StartDate.IsEmpty() {
		errs[FieldStartDate] = MsgStartRequired
	}

	return errs
}

// Valid reports whether there are no field errors.
func (fe FieldErrors) Valid() bool {
	return len(fe) == 0
}

// Get returns the message for field, or "".
func (fe FieldErrors) Get(field string) string {
	return fe[field]
}

// Fields returns the failing field names in a stable order.
func (fe FieldErrors) Fields() []string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Error implements error so a failed validation can travel as one.
func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, f := range fe.Fields() {
		parts = append(parts, f+": "+fe[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
