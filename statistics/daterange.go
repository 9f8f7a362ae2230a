package statistics

import (
	"fmt"
	"math"
	"time"

	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
)

const dateLayout = "2006-01-02"

// startOfDay / endOfDay pin a timestamp to the inclusive day boundaries
// the report windows use: [00:00:00, 23:59:59].
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// ResolveDateRange turns (period, date_from, date_to) into a concrete
// window. Explicit dates always win over period. Callers must validate
// first; unparseable dates never reach this function.
//
// Branch quirk kept on purpose: "yesterday" and the only-date_to
// branches produce closed ranges ending at 23:59:59, every other branch
// ends at now.
func ResolveDateRange(period, dateFrom, dateTo string, now time.Time) models.DateRange {
	from, hasFrom := parseDate(dateFrom, now.Location())
	to, hasTo := parseDate(dateTo, now.Location())

	switch {
	case hasFrom && hasTo:
		return models.DateRange{
			Start: startOfDay(from),
			End:   endOfDay(to),
			Label: fmt.Sprintf("Custom: %s to %s", from.Format(dateLayout), to.Format(dateLayout)),
		}

	case hasFrom:
		return models.DateRange{
			Start: startOfDay(from),
			End:   now,
			Label: fmt.Sprintf("From %s", from.Format(dateLayout)),
		}

	case hasTo:
		// Period-dependent fixed offsets, re-derived from date_to.
		// These are deliberately 7/30 fixed days, not calendar math.
		end := endOfDay(to)
		var start time.Time
		switch period {
		case models.PeriodWeek:
			start = startOfDay(to.AddDate(0, 0, -7))
		case models.PeriodMonth:
			start = startOfDay(to.AddDate(0, 0, -30))
		default: // today and anything else: same day
			start = startOfDay(to)
		}
		return models.DateRange{
			Start: start,
			End:   end,
			Label: fmt.Sprintf("Until %s", to.Format(dateLayout)),
		}
	}

	switch period {
	case models.PeriodToday:
		return models.DateRange{Start: startOfDay(now), End: now, Label: "Today"}
	case models.PeriodYesterday:
		y := now.AddDate(0, 0, -1)
		return models.DateRange{Start: startOfDay(y), End: endOfDay(y), Label: "Yesterday"}
	case models.PeriodWeek:
		return models.DateRange{Start: now.AddDate(0, 0, -7), End: now, Label: "Last 7 days"}
	case models.PeriodMonth:
		return models.DateRange{Start: now.AddDate(0, 0, -30), End: now, Label: "Last 30 days"}
	case models.PeriodQuarter:
		return models.DateRange{Start: now.AddDate(0, 0, -90), End: now, Label: "Last 90 days"}
	case models.PeriodYear:
		return models.DateRange{Start: now.AddDate(0, 0, -365), End: now, Label: "Last 365 days"}
	default:
		return models.DateRange{Start: now.AddDate(0, 0, -30), End: now, Label: "Last 30 days (default)"}
	}
}

// InclusiveDays returns the whole-day span of a range: the sub-day
// remainder is rounded, then one day is added for inclusivity.
func InclusiveDays(r models.DateRange) int {
	return int(math.Round(r.End.Sub(r.Start).Hours()/24)) + 1
}

// ResolveComparisonRange derives the comparison window. Returns nil for
// ComparisonNone (and empty mode): no window, downstream comparison
// fields stay null.
func ResolveComparisonRange(primary models.DateRange, mode string) *models.DateRange {
	switch mode {
	case models.ComparisonPreviousPeriod:
		span := InclusiveDays(primary)
		end := endOfDay(primary.Start.AddDate(0, 0, -1))
		start := startOfDay(end.AddDate(0, 0, -(span - 1)))
		return &models.DateRange{Start: start, End: end, Label: "Previous period"}

	case models.ComparisonPreviousYear:
		// -1 year calendar semantics, so leap-year effects apply naturally.
		return &models.DateRange{
			Start: primary.Start.AddDate(-1, 0, 0),
			End:   primary.End.AddDate(-1, 0, 0),
			Label: "Previous year",
		}
	}
	return nil
}

// CalculateGrowth computes per-metric percentage deltas. A metric's
// growth is nil whenever the previous value is 0 or the previous
// snapshot is absent; there is no division-by-zero path.
func CalculateGrowth(current models.AggregateMetrics, previous *models.AggregateMetrics) *models.GrowthMetrics {
	if previous == nil {
		return nil
	}
	return &models.GrowthMetrics{
		Orders:            pctDelta(float64(current.TotalOrders), float64(previous.TotalOrders)),
		Revenue:           pctDelta(current.TotalRevenue, previous.TotalRevenue),
		AverageOrderValue: pctDelta(current.AverageOrderValue, previous.AverageOrderValue),
		UniqueCustomers:   pctDelta(float64(current.UniqueCustomers), float64(previous.UniqueCustomers)),
		ItemsSold:         pctDelta(float64(current.ItemsSold), float64(previous.ItemsSold)),
	}
}

func pctDelta(current, previous float64) *float64 {
	if previous == 0 {
		return nil
	}
	v := (current - previous) / previous * 100
	v = math.Round(v*10) / 10
	return &v
}

func parseDate(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
