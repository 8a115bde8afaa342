package period

import (
	"time"

	"github.com/shopspring/decimal"
)

// minMonths is roughly one day expressed in months
var minMonths = decimal.RequireFromString("0.033")

var (
	three   = decimal.NewFromInt(3)
	hundred = decimal.NewFromInt(100)
	ahead   = decimal.RequireFromString("1.05")
)

// Breakdown is a target amount expressed per month and per quarter
type Breakdown struct {
	Months    decimal.Decimal
	Monthly   decimal.Decimal
	Quarterly decimal.Decimal
}

func daysIn(year int, month time.Month) int64 {
	return int64(time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day())
}

// MonthsBetween counts the months covered by [start, end] using exact day counts
// for partial first and last months.
func MonthsBetween(start, end time.Time) decimal.Decimal {
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()

	if sy == ey && sm == em {
		days := decimal.NewFromInt(int64(ed - sd + 1))
		return decimal.Max(days.Div(decimal.NewFromInt(daysIn(sy, sm))), minMonths)
	}

	startDays := daysIn(sy, sm)
	startFraction := decimal.NewFromInt(startDays - int64(sd) + 1).Div(decimal.NewFromInt(startDays))
	endFraction := decimal.NewFromInt(int64(ed)).Div(decimal.NewFromInt(daysIn(ey, em)))

	full := (ey-sy)*12 + int(em-sm) - 1
	if full < 0 {
		full = 0
	}

	total := startFraction.Add(decimal.NewFromInt(int64(full))).Add(endFraction)
	return decimal.Max(total, minMonths)
}

// ProRate spreads amount over [start, end]: monthly is amount per covered month,
// quarterly is three monthly amounts.
func ProRate(amount decimal.Decimal, start, end time.Time) Breakdown {
	months := MonthsBetween(start, end)
	monthly := amount.Div(months)
	return Breakdown{
		Months:    months,
		Monthly:   monthly,
		Quarterly: monthly.Mul(three),
	}
}

// CalendarMonths counts calendar months touched by [start, end], at least one
func CalendarMonths(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()-start.Month()) + 1
	if months < 1 {
		return 1
	}
	return months
}

// TableProRate is the whole-month split used in aggregated target tables.
// Periods shorter than a quarter keep the full amount as their quarterly figure.
func TableProRate(amount decimal.Decimal, start, end time.Time) Breakdown {
	months := CalendarMonths(start, end)
	b := Breakdown{
		Months:    decimal.NewFromInt(int64(months)),
		Monthly:   amount.Div(decimal.NewFromInt(int64(months))),
		Quarterly: amount,
	}
	if months >= 3 {
		quarters := (months + 2) / 3
		b.Quarterly = amount.Div(decimal.NewFromInt(int64(quarters)))
	}
	return b
}

// Target status labels
const (
	StatusNoTarget = "No Target"
	StatusOnTrack  = "On Track"
	StatusAhead    = "Ahead"
	StatusBehind   = "Behind"
)

// TargetStatus classifies achieved against target
func TargetStatus(target, achieved decimal.Decimal) string {
	switch {
	case !target.IsPositive():
		return StatusNoTarget
	case achieved.GreaterThan(target.Mul(ahead)):
		return StatusAhead
	case achieved.GreaterThanOrEqual(target):
		return StatusOnTrack
	default:
		return StatusBehind
	}
}

// Percentage returns actual as a percentage of target, zero when there is no target
func Percentage(actual, target decimal.Decimal) decimal.Decimal {
	if !target.IsPositive() {
		return decimal.Zero
	}
	return actual.Div(target).Mul(hundred)
}
