package statistics

import (
	"context"
	"fmt"

	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
)

// AssembleReport orchestrates the full statistics pipeline. The range
// and predicate are resolved exactly once and shared by every
// sub-query; on any failure the whole report fails, partial results are
// never returned.
//
// Callers are expected to have run ValidateReportFilter already; the
// check here is a backstop so a bad filter can never reach the store.
func (s *Service) AssembleReport(ctx context.Context, f models.ReportFilter) (*models.StatisticsReport, error) {
	if errs := ValidateReportFilter(f); len(errs) > 0 {
		return nil, fmt.Errorf("invalid report filter: %v", errs)
	}

	now := s.now()
	rng := ResolveDateRange(f.Period, f.DateFrom, f.DateTo, now)
	pred := BuildFilterPredicate(f)
	limit := EffectiveLimit(f)

	report := &models.StatisticsReport{Range: rng}

	current, err := s.ComputeAggregateMetrics(ctx, rng, pred)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve order statistics: %w", err)
	}
	report.Summary.Current = current

	if cmp := ResolveComparisonRange(rng, f.Comparison); cmp != nil {
		report.ComparisonRange = cmp
		prev, err := s.ComputeAggregateMetrics(ctx, *cmp, pred)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve order statistics: %w", err)
		}
		report.Summary.Comparison = &prev
		report.Summary.Growth = CalculateGrowth(current, &prev)
	}

	if f.GroupBy != "" {
		series, err := s.ComputeTimeSeries(ctx, rng, pred, f.GroupBy)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve order statistics: %w", err)
		}
		report.TimeSeries = series
	}

	if report.StatusBreakdown, err = s.ComputeStatusBreakdown(ctx, rng, pred); err != nil {
		return nil, fmt.Errorf("failed to retrieve order statistics: %w", err)
	}
	if report.PaymentBreakdown, err = s.ComputePaymentBreakdown(ctx, rng, pred); err != nil {
		return nil, fmt.Errorf("failed to retrieve order statistics: %w", err)
	}
	if report.Geography, err = s.ComputeGeographicDistribution(ctx, rng, pred); err != nil {
		return nil, fmt.Errorf("failed to retrieve order statistics: %w", err)
	}
	if report.Products, err = s.ComputeTopProducts(ctx, rng, pred, limit); err != nil {
		return nil, fmt.Errorf("failed to retrieve order statistics: %w", err)
	}
	if report.Customers, err = s.ComputeCustomerMetrics(ctx, rng, pred, limit); err != nil {
		return nil, fmt.Errorf("failed to retrieve order statistics: %w", err)
	}
	if report.Refunds, err = s.ComputeRefundStatistics(ctx, rng, pred, current.TotalOrders); err != nil {
		return nil, fmt.Errorf("failed to retrieve order statistics: %w", err)
	}

	if f.IncludeDetails {
		if report.OrderDetails, err = s.ComputeOrderDetails(ctx, rng, pred, limit); err != nil {
			return nil, fmt.Errorf("failed to retrieve order statistics: %w", err)
		}
	}

	return report, nil
}
