package statistics

import (
	"strings"
	"testing"

	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateReportFilter_EmptyFilterIsValid(t *testing.T) {
	assert.Empty(t, ValidateReportFilter(models.ReportFilter{}))
}

func TestValidateReportFilter_FullValidFilter(t *testing.T) {
	f := models.ReportFilter{
		Period:        models.PeriodMonth,
		Comparison:    models.ComparisonPreviousPeriod,
		GroupBy:       models.GroupByWeek,
		DateFrom:      "2026-01-01",
		DateTo:        "2026-03-31",
		Status:        "delivered",
		PaymentMethod: "cod",
		ProductID:     "0198f1a2-3b4c-7d5e-8f90-123456789abc",
		Pincode:       "400001",
		Limit:         50,
	}
	assert.Empty(t, ValidateReportFilter(f))
}

func TestValidateReportFilter_AccumulatesAllViolations(t *testing.T) {
	f := models.ReportFilter{
		Period:     "fortnight",
		Comparison: "same_period",
		GroupBy:    "hour",
		DateFrom:   "01/08/2026",
		DateTo:     "not-a-date",
		ProductID:  "not-a-uuid",
		Pincode:    "040001", // leading zero
		Limit:      500,
	}

	errs := ValidateReportFilter(f)
	require.Len(t, errs, 8, "every violation must be reported, not just the first: %v", errs)

	joined := strings.Join(errs, "; ")
	assert.Contains(t, joined, "period")
	assert.Contains(t, joined, "comparison")
	assert.Contains(t, joined, "group_by")
	assert.Contains(t, joined, "date_from")
	assert.Contains(t, joined, "date_to")
	assert.Contains(t, joined, "product_id")
	assert.Contains(t, joined, "pincode")
	assert.Contains(t, joined, "limit")
}

func TestValidateReportFilter_DateOrdering(t *testing.T) {
	errs := ValidateReportFilter(models.ReportFilter{
		DateFrom: "2026-05-01",
		DateTo:   "2026-04-01",
	})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "date_from must not be after date_to")
}

func TestValidateReportFilter_RangeCap(t *testing.T) {
	errs := ValidateReportFilter(models.ReportFilter{
		DateFrom: "2024-01-01",
		DateTo:   "2026-01-01",
	})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "365")
}

func TestValidateReportFilter_LimitBounds(t *testing.T) {
	assert.Empty(t, ValidateReportFilter(models.ReportFilter{Limit: 1}))
	assert.Empty(t, ValidateReportFilter(models.ReportFilter{Limit: 100}))
	assert.Len(t, ValidateReportFilter(models.ReportFilter{Limit: 101}), 1)
	assert.Len(t, ValidateReportFilter(models.ReportFilter{Limit: -1}), 1)
}

func TestEffectiveLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, EffectiveLimit(models.ReportFilter{}))
	assert.Equal(t, 35, EffectiveLimit(models.ReportFilter{Limit: 35}))
}
