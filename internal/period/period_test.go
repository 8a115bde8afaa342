package period_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/straye-as/sales-crm-api/internal/period"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseQuarter(t *testing.T) {
	tests := []struct {
		label string
		start time.Time
		end   time.Time
	}{
		{"Q1 2026", date(2026, 1, 1), date(2026, 3, 31)},
		{"Q2 2026", date(2026, 4, 1), date(2026, 6, 30)},
		{"Q3 2025", date(2025, 7, 1), date(2025, 9, 30)},
		{"Q4 2025", date(2025, 10, 1), date(2025, 12, 31)},
		{"FY Q1  2024", date(2024, 1, 1), date(2024, 3, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			p, err := period.ParseQuarter(tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.start, p.Start)
			assert.Equal(t, tt.end, p.End)
		})
	}
}

func TestParseQuarter_Invalid(t *testing.T) {
	for _, label := range []string{"", "Q5 2026", "Q1", "2026 Q1", "q1 2026"} {
		_, err := period.ParseQuarter(label)
		assert.ErrorIs(t, err, period.ErrInvalidPeriod, label)
	}
}

func TestCurrentQuarter(t *testing.T) {
	p := period.CurrentQuarter(time.Date(2026, 8, 14, 15, 30, 0, 0, time.UTC))
	assert.Equal(t, "Q3 2026", p.Label)
	assert.Equal(t, date(2026, 7, 1), p.Start)
	assert.Equal(t, date(2026, 9, 30), p.End)

	assert.Equal(t, "Q4 2025", period.QuarterLabel(date(2025, 12, 31)))
}

func TestParse(t *testing.T) {
	now := date(2026, 5, 2)

	p, err := period.Parse("", "", "", now)
	require.NoError(t, err)
	assert.Equal(t, "Q2 2026", p.Label)

	p, err = period.Parse("", "2026-01-15", "2026-02-10", now)
	require.NoError(t, err)
	assert.Equal(t, date(2026, 1, 15), p.Start)
	assert.Equal(t, date(2026, 2, 10), p.End)

	_, err = period.Parse("", "2026-02-10", "2026-01-15", now)
	assert.ErrorIs(t, err, period.ErrInvalidPeriod)

	_, err = period.Parse("", "2026-02-10", "", now)
	assert.ErrorIs(t, err, period.ErrInvalidPeriod)
}

func TestPeriod_ContainsAndOverlaps(t *testing.T) {
	q1, _ := period.ParseQuarter("Q1 2026")

	assert.True(t, q1.Contains(date(2026, 3, 31)))
	assert.True(t, q1.Contains(time.Date(2026, 3, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, q1.Contains(date(2026, 4, 1)))
	assert.Equal(t, date(2026, 4, 1), q1.EndExclusive())

	assert.True(t, q1.Overlaps(date(2025, 12, 1), date(2026, 1, 1)))
	assert.True(t, q1.Overlaps(date(2026, 3, 31), date(2026, 6, 30)))
	assert.False(t, q1.Overlaps(date(2026, 4, 1), date(2026, 6, 30)))
}

func TestProRate_FullQuarter(t *testing.T) {
	q1, _ := period.ParseQuarter("Q1 2026")

	b := period.ProRate(decimal.NewFromInt(900000), q1.Start, q1.End)

	assert.True(t, b.Months.Equal(decimal.NewFromInt(3)), b.Months.String())
	assert.True(t, b.Monthly.Equal(decimal.NewFromInt(300000)), b.Monthly.String())
	assert.True(t, b.Quarterly.Equal(decimal.NewFromInt(900000)), b.Quarterly.String())
}

func TestMonthsBetween(t *testing.T) {
	// half of April (30 days) is 15 days
	half := period.MonthsBetween(date(2026, 4, 1), date(2026, 4, 15))
	assert.True(t, half.Equal(decimal.RequireFromString("0.5")), half.String())

	// Jan 16..Feb 28 2026: 16/31 + 0 + 28/28
	m := period.MonthsBetween(date(2026, 1, 16), date(2026, 2, 28))
	expected := decimal.NewFromInt(16).Div(decimal.NewFromInt(31)).Add(decimal.NewFromInt(1))
	assert.True(t, m.Equal(expected), m.String())

	// floored to roughly one day
	inverted := period.MonthsBetween(date(2026, 4, 10), date(2026, 4, 1))
	assert.True(t, inverted.Equal(decimal.RequireFromString("0.033")), inverted.String())
}

func TestTableProRate(t *testing.T) {
	amount := decimal.NewFromInt(1200000)

	year := period.TableProRate(amount, date(2026, 1, 1), date(2026, 12, 31))
	assert.Equal(t, int64(12), year.Months.IntPart())
	assert.True(t, year.Monthly.Equal(decimal.NewFromInt(100000)))
	assert.True(t, year.Quarterly.Equal(decimal.NewFromInt(300000)))

	twoMonths := period.TableProRate(amount, date(2026, 1, 1), date(2026, 2, 28))
	assert.True(t, twoMonths.Monthly.Equal(decimal.NewFromInt(600000)))
	assert.True(t, twoMonths.Quarterly.Equal(amount))

	// four months round up to two quarters
	four := period.TableProRate(amount, date(2026, 1, 1), date(2026, 4, 30))
	assert.True(t, four.Quarterly.Equal(decimal.NewFromInt(600000)))
}

func TestTargetStatus(t *testing.T) {
	target := decimal.NewFromInt(1000)
	tests := []struct {
		name     string
		target   decimal.Decimal
		achieved decimal.Decimal
		want     string
	}{
		{"no target", decimal.Zero, decimal.NewFromInt(500), period.StatusNoTarget},
		{"behind", target, decimal.NewFromInt(999), period.StatusBehind},
		{"exactly on target", target, target, period.StatusOnTrack},
		{"within five percent", target, decimal.NewFromInt(1050), period.StatusOnTrack},
		{"ahead", target, decimal.NewFromInt(1051), period.StatusAhead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, period.TargetStatus(tt.target, tt.achieved))
		})
	}
}

func TestPercentage(t *testing.T) {
	assert.True(t, period.Percentage(decimal.NewFromInt(50), decimal.NewFromInt(200)).Equal(decimal.NewFromInt(25)))
	assert.True(t, period.Percentage(decimal.NewFromInt(50), decimal.Zero).IsZero())
}
