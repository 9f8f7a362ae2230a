package statistics

import (
	"testing"

	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/stretchr/testify/assert"
)

func TestDeriveRates_ZeroDenominators(t *testing.T) {
	m := models.AggregateMetrics{}
	DeriveRates(&m)

	assert.Zero(t, m.RefundRate)
	assert.Zero(t, m.AverageOrderValue)
	assert.Zero(t, m.CancellationRate)
	assert.Zero(t, m.DiscountRate)
}

func TestDeriveRates_CancellationRateWithZeroRevenue(t *testing.T) {
	// All orders in the window were cancelled: revenue 0 but cancelled
	// value present. The denominator falls back to 1 instead of blowing
	// up or zeroing out the signal.
	m := models.AggregateMetrics{
		TotalOrders:     3,
		TotalRevenue:    0,
		CancelledOrders: 3,
		CancelledValue:  450,
	}
	DeriveRates(&m)

	assert.InDelta(t, 45000.0, m.CancellationRate, 0.001)
	assert.Zero(t, m.AverageOrderValue)
	assert.Zero(t, m.DiscountRate)
}

func TestDeriveRates_Normal(t *testing.T) {
	m := models.AggregateMetrics{
		TotalOrders:    8,
		TotalRevenue:   12000,
		ReturnedOrders: 1,
		CancelledValue: 1500,
		TotalDiscounts: 600,
	}
	DeriveRates(&m)

	assert.InDelta(t, 12.5, m.RefundRate, 0.001)
	assert.InDelta(t, 1500.0, m.AverageOrderValue, 0.001)
	assert.InDelta(t, 12.5, m.CancellationRate, 0.001)
	assert.InDelta(t, 5.0, m.DiscountRate, 0.001)
}

func TestBucketExpr_CoversAllGroupings(t *testing.T) {
	assert.Contains(t, bucketExpr(models.GroupByDay), "YYYY-MM-DD")
	assert.Contains(t, bucketExpr(models.GroupByWeek), "IYYY", "weeks must use ISO year so year boundaries key correctly")
	assert.Contains(t, bucketExpr(models.GroupByMonth), "YYYY-MM")
	assert.Contains(t, bucketExpr(models.GroupByQuarter), `"Q"Q`)
	assert.Contains(t, bucketExpr(models.GroupByYear), "YYYY")
}

func TestBucketLabel(t *testing.T) {
	assert.Equal(t, "Jan 2026", bucketLabel(models.GroupByMonth, "2026-01"))
	assert.Equal(t, "2026-W01", bucketLabel(models.GroupByWeek, "2026-W01"),
		"week labels come from the key itself, never from order dates")
	assert.Equal(t, "2026-01-05", bucketLabel(models.GroupByDay, "2026-01-05"))
	assert.Equal(t, "garbage", bucketLabel(models.GroupByMonth, "garbage"))
}
