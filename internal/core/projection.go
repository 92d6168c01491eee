package core

import "time"

// ZeroProjection is shown while start date or income is missing.
const ZeroProjection = "$0"

// NormalizeDate returns the UTC calendar day of d as YYYY-MM-DD, or nil when d is absent.
func NormalizeDate(d Date) *string {
	if d.IsEmpty() {
		return nil
	}
	s := d.UTC().Format(DateLayout)
	return &s
}

// ElapsedYears subtracts calendar fields: whole years plus month difference / 12.
// Day of month is ignored, so Jan 31 -> Feb 1 counts as a full month.
// Negative spans are floored at zero.
func ElapsedYears(start, end time.Time) float64 {
	years := float64(end.Year()-start.Year()) +
		float64(int(end.Month())-int(start.Month()))/12
	if years < 0 {
		return 0
	}
	return years
}

// ProjectTotalIncome computes annual income × elapsed years for ev, formatted as
// whole US dollars. Calendar fields are read in loc; an absent end date means now.
func ProjectTotalIncome(ev LifeEvent, now time.Time, loc *time.Location) string {
	if ev.StartDate.IsEmpty() || ev.AnnualGrossIncome == "" {
		return ZeroProjection
	}
	if loc == nil {
		loc = time.Local
	}

	end := now
	if !ev.EndDate.IsEmpty() {
		end = ev.EndDate.Time
	}
	years := ElapsedYears(ev.StartDate.In(loc), end.In(loc))
	amount := ParseCurrency(ev.AnnualGrossIncome)
	return FormatUSD(amount * years)
}
