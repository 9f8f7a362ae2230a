package statistics

import (
	"testing"
	"time"

	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var frozenNow = time.Date(2026, 8, 15, 14, 30, 0, 0, time.UTC)

func TestResolveDateRange_Today(t *testing.T) {
	r := ResolveDateRange(models.PeriodToday, "", "", frozenNow)

	assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, frozenNow, r.End, "today ends at now, not end of day")
	assert.Equal(t, "Today", r.Label)
}

func TestResolveDateRange_Yesterday_ClosedRange(t *testing.T) {
	r := ResolveDateRange(models.PeriodYesterday, "", "", frozenNow)

	assert.Equal(t, time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2026, 8, 14, 23, 59, 59, 0, time.UTC), r.End,
		"yesterday is a closed range ending at 23:59:59")
}

func TestResolveDateRange_RollingPeriodsEndAtNow(t *testing.T) {
	cases := []struct {
		period string
		days   int
		label  string
	}{
		{models.PeriodWeek, 7, "Last 7 days"},
		{models.PeriodMonth, 30, "Last 30 days"},
		{models.PeriodQuarter, 90, "Last 90 days"},
		{models.PeriodYear, 365, "Last 365 days"},
	}
	for _, tc := range cases {
		t.Run(tc.period, func(t *testing.T) {
			r := ResolveDateRange(tc.period, "", "", frozenNow)
			assert.Equal(t, frozenNow.AddDate(0, 0, -tc.days), r.Start)
			assert.Equal(t, frozenNow, r.End)
			assert.Equal(t, tc.label, r.Label)
		})
	}
}

func TestResolveDateRange_UnknownPeriodDefaults(t *testing.T) {
	r := ResolveDateRange("fortnight", "", "", frozenNow)

	assert.Equal(t, frozenNow.AddDate(0, 0, -30), r.Start)
	assert.Equal(t, frozenNow, r.End)
	assert.Equal(t, "Last 30 days (default)", r.Label)
}

func TestResolveDateRange_ExplicitDatesOverridePeriod(t *testing.T) {
	r := ResolveDateRange(models.PeriodWeek, "2026-07-01", "2026-07-15", frozenNow)

	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, time.Date(2026, 7, 15, 23, 59, 59, 0, time.UTC), r.End)
	assert.Equal(t, "Custom: 2026-07-01 to 2026-07-15", r.Label)
}

func TestResolveDateRange_OnlyFromEndsAtNow(t *testing.T) {
	r := ResolveDateRange("", "2026-08-01", "", frozenNow)

	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), r.Start)
	assert.Equal(t, frozenNow, r.End)
	assert.Equal(t, "From 2026-08-01", r.Label)
}

func TestResolveDateRange_OnlyTo_PeriodOffsets(t *testing.T) {
	end := time.Date(2026, 8, 10, 23, 59, 59, 0, time.UTC)

	week := ResolveDateRange(models.PeriodWeek, "", "2026-08-10", frozenNow)
	assert.Equal(t, time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC), week.Start, "week pulls back 7 fixed days")
	assert.Equal(t, end, week.End)

	month := ResolveDateRange(models.PeriodMonth, "", "2026-08-10", frozenNow)
	assert.Equal(t, time.Date(2026, 7, 11, 0, 0, 0, 0, time.UTC), month.Start, "month pulls back 30 fixed days")
	assert.Equal(t, end, month.End)

	today := ResolveDateRange(models.PeriodToday, "", "2026-08-10", frozenNow)
	assert.Equal(t, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), today.Start, "today collapses to the single day")
	assert.Equal(t, end, today.End)
}

func TestInclusiveDays(t *testing.T) {
	r := models.DateRange{
		Start: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 8, 1, 23, 59, 59, 0, time.UTC),
	}
	assert.Equal(t, 2, InclusiveDays(r), "closed single-day range rounds up then adds one")

	open := models.DateRange{
		Start: frozenNow.AddDate(0, 0, -7),
		End:   frozenNow,
	}
	assert.Equal(t, 8, InclusiveDays(open))
}

func TestResolveComparisonRange_PreviousPeriod_LeapFebruary(t *testing.T) {
	primary := ResolveDateRange(models.PeriodCustom, "2024-03-01", "2024-03-10",
		time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))

	cmp := ResolveComparisonRange(primary, models.ComparisonPreviousPeriod)
	require.NotNil(t, cmp)

	assert.Equal(t, time.Date(2024, 2, 19, 0, 0, 0, 0, time.UTC), cmp.Start)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC), cmp.End,
		"previous period ends the day before the primary starts, leap day included")
	assert.Equal(t, "Previous period", cmp.Label)
}

func TestResolveComparisonRange_PreviousYear(t *testing.T) {
	primary := models.DateRange{
		Start: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 8, 15, 14, 30, 0, 0, time.UTC),
	}

	cmp := ResolveComparisonRange(primary, models.ComparisonPreviousYear)
	require.NotNil(t, cmp)

	assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), cmp.Start)
	assert.Equal(t, time.Date(2025, 8, 15, 14, 30, 0, 0, time.UTC), cmp.End)
}

func TestResolveComparisonRange_None(t *testing.T) {
	primary := models.DateRange{Start: frozenNow.AddDate(0, 0, -7), End: frozenNow}

	assert.Nil(t, ResolveComparisonRange(primary, models.ComparisonNone))
	assert.Nil(t, ResolveComparisonRange(primary, ""))
}

func TestCalculateGrowth_NilPrevious(t *testing.T) {
	current := models.AggregateMetrics{TotalOrders: 10, TotalRevenue: 5000}
	assert.Nil(t, CalculateGrowth(current, nil))
}

func TestCalculateGrowth_ZeroPreviousMetricIsNil(t *testing.T) {
	current := models.AggregateMetrics{
		TotalOrders:     10,
		TotalRevenue:    5000,
		UniqueCustomers: 4,
		ItemsSold:       25,
	}
	previous := models.AggregateMetrics{
		TotalOrders:     8,
		TotalRevenue:    0, // no revenue last period
		UniqueCustomers: 4,
		ItemsSold:       0,
	}

	g := CalculateGrowth(current, &previous)
	require.NotNil(t, g)

	require.NotNil(t, g.Orders)
	assert.InDelta(t, 25.0, *g.Orders, 0.001)
	assert.Nil(t, g.Revenue, "zero previous revenue means no growth figure, not infinity")
	assert.Nil(t, g.ItemsSold)
	require.NotNil(t, g.UniqueCustomers)
	assert.InDelta(t, 0.0, *g.UniqueCustomers, 0.001)
}

func TestCalculateGrowth_RoundsToOneDecimal(t *testing.T) {
	current := models.AggregateMetrics{TotalRevenue: 1000}
	previous := models.AggregateMetrics{TotalRevenue: 300}

	g := CalculateGrowth(current, &previous)
	require.NotNil(t, g)
	require.NotNil(t, g.Revenue)
	assert.InDelta(t, 233.3, *g.Revenue, 0.001)
}
