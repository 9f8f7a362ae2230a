package statistics

import (
	"fmt"
	"regexp"
	"time"

	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/google/uuid"
)

const (
	// DefaultLimit applies when the caller omits limit entirely.
	DefaultLimit = 20
	maxRangeDays = 365
)

var validPeriods = map[string]bool{
	models.PeriodToday:     true,
	models.PeriodYesterday: true,
	models.PeriodWeek:      true,
	models.PeriodMonth:     true,
	models.PeriodQuarter:   true,
	models.PeriodYear:      true,
	models.PeriodCustom:    true,
}

var validComparisons = map[string]bool{
	models.ComparisonPreviousPeriod: true,
	models.ComparisonPreviousYear:   true,
	models.ComparisonNone:           true,
}

var validGroupBys = map[string]bool{
	models.GroupByDay:     true,
	models.GroupByWeek:    true,
	models.GroupByMonth:   true,
	models.GroupByQuarter: true,
	models.GroupByYear:    true,
}

var pincodeRe = regexp.MustCompile(`^[1-9][0-9]{5}$`)

// ValidateReportFilter checks every constraint and returns the full
// list of violations. An empty slice means the filter is safe to run;
// nothing touches the database until this passes.
func ValidateReportFilter(f models.ReportFilter) []string {
	var errs []string

	if f.Period != "" && !validPeriods[f.Period] {
		errs = append(errs, fmt.Sprintf("invalid period %q", f.Period))
	}
	if f.Comparison != "" && !validComparisons[f.Comparison] {
		errs = append(errs, fmt.Sprintf("invalid comparison %q", f.Comparison))
	}
	if f.GroupBy != "" && !validGroupBys[f.GroupBy] {
		errs = append(errs, fmt.Sprintf("invalid group_by %q", f.GroupBy))
	}

	var from, to time.Time
	var hasFrom, hasTo bool
	if f.DateFrom != "" {
		t, err := time.Parse(dateLayout, f.DateFrom)
		if err != nil {
			errs = append(errs, fmt.Sprintf("unparseable date_from %q (want YYYY-MM-DD)", f.DateFrom))
		} else {
			from, hasFrom = t, true
		}
	}
	if f.DateTo != "" {
		t, err := time.Parse(dateLayout, f.DateTo)
		if err != nil {
			errs = append(errs, fmt.Sprintf("unparseable date_to %q (want YYYY-MM-DD)", f.DateTo))
		} else {
			to, hasTo = t, true
		}
	}
	if hasFrom && hasTo {
		if from.After(to) {
			errs = append(errs, "date_from must not be after date_to")
		} else if to.Sub(from) > maxRangeDays*24*time.Hour {
			errs = append(errs, fmt.Sprintf("explicit range must not exceed %d days", maxRangeDays))
		}
	}

	for name, id := range map[string]string{
		"category_id":    f.CategoryID,
		"subcategory_id": f.SubcategoryID,
		"product_id":     f.ProductID,
	} {
		if id == "" {
			continue
		}
		if _, err := uuid.Parse(id); err != nil {
			errs = append(errs, fmt.Sprintf("malformed %s %q", name, id))
		}
	}

	if f.Pincode != "" && !pincodeRe.MatchString(f.Pincode) {
		errs = append(errs, fmt.Sprintf("malformed pincode %q", f.Pincode))
	}

	if f.Limit != 0 && (f.Limit < 1 || f.Limit > 100) {
		errs = append(errs, fmt.Sprintf("limit %d outside [1,100]", f.Limit))
	}

	return errs
}

// EffectiveLimit normalizes the row cap after validation passed.
func EffectiveLimit(f models.ReportFilter) int {
	if f.Limit == 0 {
		return DefaultLimit
	}
	return f.Limit
}
