package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lifeevents/internal/core"
	"lifeevents/internal/form"
)

// fieldFlags carries the life event fields given on the command line.
type fieldFlags struct {
	employer string
	income   string
	start    string
	end      string
	notes    string
	now      string
}

func (f *fieldFlags) bind(cmd *cobra.Command, withRecord bool) {
	flags := cmd.Flags()
	if withRecord {
		flags.StringVar(&f.employer, "employer", "", "Employer's name")
		flags.StringVar(&f.notes, "notes", "", "Free-text notes")
	}
	flags.StringVar(&f.income, "income", "", `Annual gross income, e.g. 60000 or "$60,000"`)
	flags.StringVar(&f.start, "start", "", "Employment start date (YYYY-MM-DD)")
	flags.StringVar(&f.end, "end", "", "Employment end date (YYYY-MM-DD); empty means ongoing")
	flags.StringVar(&f.now, "now", "", "Override the current time (RFC 3339 or YYYY-MM-DD)")
}

// clock returns the time source the projection uses for ongoing employment.
func (f *fieldFlags) clock(loc *time.Location) (func() time.Time, error) {
	raw := strings.TrimSpace(f.now)
	if raw == "" {
		return time.Now, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return func() time.Time { return t }, nil
	}
	d, err := core.ParseDate(raw, loc)
	if err != nil {
		return nil, fmt.Errorf("--now: %w", err)
	}
	return func() time.Time { return d.Time }, nil
}

// values maps the flags that were actually passed to form field names.
func (f *fieldFlags) values(cmd *cobra.Command) map[string]string {
	values := map[string]string{}
	set := func(flag, field, v string) {
		if fl := cmd.Flags().Lookup(flag); fl != nil && fl.Changed {
			values[field] = v
		}
	}
	set("employer", core.FieldEmployerName, f.employer)
	set("income", core.FieldAnnualGrossIncome, f.income)
	set("start", core.FieldStartDate, f.start)
	set("end", core.FieldEndDate, f.end)
	set("notes", core.FieldNotes, f.notes)
	return values
}

// fill applies the flags to c. A malformed date is an error on the command line.
func (f *fieldFlags) fill(cmd *cobra.Command, c *form.Controller) error {
	if err := c.SetAll(f.values(cmd)); err != nil {
		return fmt.Errorf("invalid flag value: %w", err)
	}
	return nil
}
