package statistics

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"gorm.io/gorm"
)

// Service runs the aggregate queries for a report. Constructor-injected
// so tests can swap the clock; there is no package-level state.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// WithNow pins the clock. Used by tests and by anything that needs a
// frozen "now" across a whole report.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// Now exposes the service clock so callers resolving ranges themselves
// stay consistent with the service's idea of the current time.
func (s *Service) Now() time.Time {
	return s.now()
}

// DeriveRates fills the three derived ratios. Always computed in Go so
// a zero denominator yields 0, never a SQL division error.
func DeriveRates(m *models.AggregateMetrics) {
	if m.TotalOrders > 0 {
		m.RefundRate = round2(float64(m.ReturnedOrders) / float64(m.TotalOrders) * 100)
		m.AverageOrderValue = round2(m.TotalRevenue / float64(m.TotalOrders))
	} else {
		m.RefundRate = 0
		m.AverageOrderValue = 0
	}

	revenueOrOne := m.TotalRevenue
	if revenueOrOne == 0 {
		revenueOrOne = 1
	}
	m.CancellationRate = round2(m.CancelledValue / revenueOrOne * 100)

	if m.TotalRevenue > 0 {
		m.DiscountRate = round2(m.TotalDiscounts / m.TotalRevenue * 100)
	} else {
		m.DiscountRate = 0
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeAggregateMetrics runs the overall aggregate for one window.
func (s *Service) ComputeAggregateMetrics(ctx context.Context, r models.DateRange, p FilterPredicate) (models.AggregateMetrics, error) {
	var m models.AggregateMetrics

	q := `
		SELECT
			COUNT(*)::int                                                                 AS total_orders,
			COALESCE(SUM(o.total_amount), 0)                                              AS total_revenue,
			COUNT(DISTINCT o.user_id)::int                                                AS unique_customers,
			COALESCE(SUM(o.discount), 0)                                                  AS total_discounts,
			COALESCE(SUM(o.cgst + o.sgst + o.igst), 0)                                    AS total_tax,
			COALESCE(SUM(o.shipping_cost), 0)                                             AS total_shipping,
			COALESCE(SUM(CASE WHEN o.status = 'returned' THEN 1 ELSE 0 END), 0)::int      AS returned_orders,
			COALESCE(SUM(CASE WHEN o.status = 'cancelled' THEN 1 ELSE 0 END), 0)::int     AS cancelled_orders,
			COALESCE(SUM(CASE WHEN o.status = 'cancelled' THEN o.total_amount ELSE 0 END), 0) AS cancelled_value
		FROM orders o
		WHERE o.created_at >= ? AND o.created_at <= ?` + p.SQL()

	if err := s.db.WithContext(ctx).Raw(q, rangeArgs(r, p)...).Row().Scan(
		&m.TotalOrders,
		&m.TotalRevenue,
		&m.UniqueCustomers,
		&m.TotalDiscounts,
		&m.TotalTax,
		&m.TotalShipping,
		&m.ReturnedOrders,
		&m.CancelledOrders,
		&m.CancelledValue,
	); err != nil {
		return m, fmt.Errorf("aggregate metrics query: %w", err)
	}

	itemsQ := `
		SELECT COALESCE(SUM(oi.quantity), 0)::int
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.created_at >= ? AND o.created_at <= ?` + p.SQL()

	if err := s.db.WithContext(ctx).Raw(itemsQ, rangeArgs(r, p)...).Row().Scan(&m.ItemsSold); err != nil {
		return m, fmt.Errorf("items sold query: %w", err)
	}

	DeriveRates(&m)
	return m, nil
}

// bucketExpr maps group_by to the SQL bucket key. Week uses ISO
// year-week so week 1 at a year boundary keys (and labels) correctly.
func bucketExpr(groupBy string) string {
	switch groupBy {
	case models.GroupByDay:
		return `to_char(o.created_at, 'YYYY-MM-DD')`
	case models.GroupByWeek:
		return `to_char(o.created_at, 'IYYY-"W"IW')`
	case models.GroupByMonth:
		return `to_char(o.created_at, 'YYYY-MM')`
	case models.GroupByQuarter:
		return `to_char(o.created_at, 'YYYY-"Q"Q')`
	default: // year
		return `to_char(o.created_at, 'YYYY')`
	}
}

// bucketLabel derives the human label from the bucket key itself, never
// from MIN(order_date), so a late-December order keyed into ISO week 1
// of the next year cannot carry a December label.
func bucketLabel(groupBy, key string) string {
	if groupBy == models.GroupByMonth {
		if t, err := time.Parse("2006-01", key); err == nil {
			return t.Format("Jan 2006")
		}
	}
	return key
}

// ComputeTimeSeries buckets orders by group_by and computes metrics per
// bucket. Only buckets that actually contain orders are emitted, in
// chronological order of each bucket's earliest order.
func (s *Service) ComputeTimeSeries(ctx context.Context, r models.DateRange, p FilterPredicate, groupBy string) ([]models.TimeSeriesBucket, error) {
	expr := bucketExpr(groupBy)

	q := `
		SELECT
			` + expr + `                                                                  AS bucket_key,
			COUNT(*)::int                                                                 AS total_orders,
			COALESCE(SUM(o.total_amount), 0)                                              AS total_revenue,
			COUNT(DISTINCT o.user_id)::int                                                AS unique_customers,
			COALESCE(SUM(o.discount), 0)                                                  AS total_discounts,
			COALESCE(SUM(o.cgst + o.sgst + o.igst), 0)                                    AS total_tax,
			COALESCE(SUM(o.shipping_cost), 0)                                             AS total_shipping,
			COALESCE(SUM(CASE WHEN o.status = 'returned' THEN 1 ELSE 0 END), 0)::int      AS returned_orders,
			COALESCE(SUM(CASE WHEN o.status = 'cancelled' THEN 1 ELSE 0 END), 0)::int     AS cancelled_orders,
			COALESCE(SUM(CASE WHEN o.status = 'cancelled' THEN o.total_amount ELSE 0 END), 0) AS cancelled_value
		FROM orders o
		WHERE o.created_at >= ? AND o.created_at <= ?` + p.SQL() + `
		GROUP BY 1
		ORDER BY MIN(o.created_at)`

	rows, err := s.db.WithContext(ctx).Raw(q, rangeArgs(r, p)...).Rows()
	if err != nil {
		return nil, fmt.Errorf("time series query: %w", err)
	}
	defer rows.Close()

	var buckets []models.TimeSeriesBucket
	for rows.Next() {
		var b models.TimeSeriesBucket
		m := &b.Metrics
		if err := rows.Scan(
			&b.Key,
			&m.TotalOrders,
			&m.TotalRevenue,
			&m.UniqueCustomers,
			&m.TotalDiscounts,
			&m.TotalTax,
			&m.TotalShipping,
			&m.ReturnedOrders,
			&m.CancelledOrders,
			&m.CancelledValue,
		); err != nil {
			return nil, fmt.Errorf("time series scan: %w", err)
		}
		b.Label = bucketLabel(groupBy, b.Key)
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("time series rows: %w", err)
	}

	// Per-bucket items sold, merged by key.
	itemsQ := `
		SELECT ` + expr + ` AS bucket_key, COALESCE(SUM(oi.quantity), 0)::int
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.created_at >= ? AND o.created_at <= ?` + p.SQL() + `
		GROUP BY 1`

	itemRows, err := s.db.WithContext(ctx).Raw(itemsQ, rangeArgs(r, p)...).Rows()
	if err != nil {
		return nil, fmt.Errorf("time series items query: %w", err)
	}
	defer itemRows.Close()

	itemsByKey := make(map[string]int)
	for itemRows.Next() {
		var key string
		var qty int
		if err := itemRows.Scan(&key, &qty); err != nil {
			return nil, fmt.Errorf("time series items scan: %w", err)
		}
		itemsByKey[key] = qty
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("time series items rows: %w", err)
	}

	for i := range buckets {
		buckets[i].Metrics.ItemsSold = itemsByKey[buckets[i].Key]
		DeriveRates(&buckets[i].Metrics)
	}

	return buckets, nil
}

// ComputeStatusBreakdown groups the window by order status.
func (s *Service) ComputeStatusBreakdown(ctx context.Context, r models.DateRange, p FilterPredicate) ([]models.StatusBreakdownRow, error) {
	q := `
		SELECT o.status, COUNT(*)::int, COALESCE(SUM(o.total_amount), 0)
		FROM orders o
		WHERE o.created_at >= ? AND o.created_at <= ?` + p.SQL() + `
		GROUP BY o.status
		ORDER BY COUNT(*) DESC`

	rows, err := s.db.WithContext(ctx).Raw(q, rangeArgs(r, p)...).Rows()
	if err != nil {
		return nil, fmt.Errorf("status breakdown query: %w", err)
	}
	defer rows.Close()

	var out []models.StatusBreakdownRow
	total := 0
	for rows.Next() {
		var row models.StatusBreakdownRow
		if err := rows.Scan(&row.Status, &row.Orders, &row.Revenue); err != nil {
			return nil, fmt.Errorf("status breakdown scan: %w", err)
		}
		total += row.Orders
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("status breakdown rows: %w", err)
	}

	applyShare(total, out, func(r *models.StatusBreakdownRow) (int, *float64) { return r.Orders, &r.Percentage })
	return out, nil
}

// ComputePaymentBreakdown groups the window by payment method.
func (s *Service) ComputePaymentBreakdown(ctx context.Context, r models.DateRange, p FilterPredicate) ([]models.PaymentBreakdownRow, error) {
	q := `
		SELECT o.payment_method, COUNT(*)::int, COALESCE(SUM(o.total_amount), 0)
		FROM orders o
		WHERE o.created_at >= ? AND o.created_at <= ?` + p.SQL() + `
		GROUP BY o.payment_method
		ORDER BY COUNT(*) DESC`

	rows, err := s.db.WithContext(ctx).Raw(q, rangeArgs(r, p)...).Rows()
	if err != nil {
		return nil, fmt.Errorf("payment breakdown query: %w", err)
	}
	defer rows.Close()

	var out []models.PaymentBreakdownRow
	total := 0
	for rows.Next() {
		var row models.PaymentBreakdownRow
		if err := rows.Scan(&row.PaymentMethod, &row.Orders, &row.Revenue); err != nil {
			return nil, fmt.Errorf("payment breakdown scan: %w", err)
		}
		total += row.Orders
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("payment breakdown rows: %w", err)
	}

	applyShare(total, out, func(r *models.PaymentBreakdownRow) (int, *float64) { return r.Orders, &r.Percentage })
	return out, nil
}

// ComputeGeographicDistribution groups the window by state and city.
func (s *Service) ComputeGeographicDistribution(ctx context.Context, r models.DateRange, p FilterPredicate) ([]models.GeographicRow, error) {
	q := `
		SELECT o.state, o.city, COUNT(*)::int, COALESCE(SUM(o.total_amount), 0)
		FROM orders o
		WHERE o.created_at >= ? AND o.created_at <= ?` + p.SQL() + `
		GROUP BY o.state, o.city
		ORDER BY COUNT(*) DESC`

	rows, err := s.db.WithContext(ctx).Raw(q, rangeArgs(r, p)...).Rows()
	if err != nil {
		return nil, fmt.Errorf("geographic query: %w", err)
	}
	defer rows.Close()

	var out []models.GeographicRow
	total := 0
	for rows.Next() {
		var row models.GeographicRow
		if err := rows.Scan(&row.State, &row.City, &row.Orders, &row.Revenue); err != nil {
			return nil, fmt.Errorf("geographic scan: %w", err)
		}
		total += row.Orders
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("geographic rows: %w", err)
	}

	applyShare(total, out, func(r *models.GeographicRow) (int, *float64) { return r.Orders, &r.Percentage })
	return out, nil
}

// ComputeTopProducts returns the top-N products by quantity sold.
func (s *Service) ComputeTopProducts(ctx context.Context, r models.DateRange, p FilterPredicate, limit int) ([]models.TopProductRow, error) {
	q := `
		SELECT
			oi.product_id::text,
			oi.product_name,
			COALESCE(SUM(oi.quantity), 0)::int   AS quantity_sold,
			COUNT(DISTINCT oi.order_id)::int     AS order_count,
			COALESCE(SUM(oi.subtotal), 0)        AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.created_at >= ? AND o.created_at <= ?` + p.SQL() + `
		GROUP BY oi.product_id, oi.product_name
		ORDER BY quantity_sold DESC
		LIMIT ?`

	rows, err := s.db.WithContext(ctx).Raw(q, rangeArgs(r, p, limit)...).Rows()
	if err != nil {
		return nil, fmt.Errorf("top products query: %w", err)
	}
	defer rows.Close()

	var out []models.TopProductRow
	for rows.Next() {
		var row models.TopProductRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.QuantitySold, &row.OrderCount, &row.Revenue); err != nil {
			return nil, fmt.Errorf("top products scan: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top products rows: %w", err)
	}
	return out, nil
}

// ComputeCustomerMetrics classifies customers in the window as new or
// returning. A customer is returning if they have any order strictly
// before range start, regardless of that order's status.
func (s *Service) ComputeCustomerMetrics(ctx context.Context, r models.DateRange, p FilterPredicate, limit int) (models.CustomerMetrics, error) {
	var cm models.CustomerMetrics

	q := `
		SELECT
			COUNT(*)::int                                               AS unique_customers,
			COALESCE(SUM(CASE WHEN c.returning THEN 1 ELSE 0 END), 0)::int AS returning_customers,
			COALESCE(SUM(c.order_count), 0)::int                        AS total_orders,
			COALESCE(SUM(c.total_spent), 0)                             AS total_spent
		FROM (
			SELECT
				o.user_id,
				COUNT(*)                 AS order_count,
				SUM(o.total_amount)      AS total_spent,
				EXISTS (
					SELECT 1 FROM orders prior
					WHERE prior.user_id = o.user_id AND prior.created_at < ?
				) AS returning
			FROM orders o
			WHERE o.created_at >= ? AND o.created_at <= ?` + p.SQL() + `
			GROUP BY o.user_id
		) c`

	args := append([]any{r.Start}, rangeArgs(r, p)...)
	var totalOrders int
	var totalSpent float64
	if err := s.db.WithContext(ctx).Raw(q, args...).Row().Scan(
		&cm.UniqueCustomers, &cm.ReturningCustomers, &totalOrders, &totalSpent,
	); err != nil {
		return cm, fmt.Errorf("customer metrics query: %w", err)
	}

	cm.NewCustomers = cm.UniqueCustomers - cm.ReturningCustomers
	if cm.UniqueCustomers > 0 {
		cm.OrdersPerCustomer = round2(float64(totalOrders) / float64(cm.UniqueCustomers))
		cm.RevenuePerCustomer = round2(totalSpent / float64(cm.UniqueCustomers))
	}

	topQ := `
		SELECT
			o.user_id::text,
			COALESCE(u.name, ''),
			COALESCE(u.email, ''),
			COUNT(*)::int,
			COALESCE(SUM(o.total_amount), 0) AS total_spent
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		WHERE o.created_at >= ? AND o.created_at <= ?` + p.SQL() + `
		GROUP BY o.user_id, u.name, u.email
		ORDER BY total_spent DESC
		LIMIT ?`

	rows, err := s.db.WithContext(ctx).Raw(topQ, rangeArgs(r, p, limit)...).Rows()
	if err != nil {
		return cm, fmt.Errorf("top customers query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row models.TopCustomerRow
		if err := rows.Scan(&row.UserID, &row.Name, &row.Email, &row.Orders, &row.TotalSpent); err != nil {
			return cm, fmt.Errorf("top customers scan: %w", err)
		}
		cm.TopCustomersBySpend = append(cm.TopCustomersBySpend, row)
	}
	if err := rows.Err(); err != nil {
		return cm, fmt.Errorf("top customers rows: %w", err)
	}

	return cm, nil
}

// ComputeRefundStatistics aggregates returned orders and their reasons.
// totalOrders comes from the already-computed summary so the rate is
// consistent with it.
func (s *Service) ComputeRefundStatistics(ctx context.Context, r models.DateRange, p FilterPredicate, totalOrders int) (models.RefundStatistics, error) {
	var rs models.RefundStatistics

	q := `
		SELECT COUNT(*)::int, COALESCE(SUM(o.refund_amount), 0)
		FROM orders o
		WHERE o.status = 'returned'
		  AND o.created_at >= ? AND o.created_at <= ?` + p.SQL()

	if err := s.db.WithContext(ctx).Raw(q, rangeArgs(r, p)...).Row().Scan(
		&rs.ReturnedOrders, &rs.RefundedAmount,
	); err != nil {
		return rs, fmt.Errorf("refund statistics query: %w", err)
	}

	if totalOrders > 0 {
		rs.RefundRate = round2(float64(rs.ReturnedOrders) / float64(totalOrders) * 100)
	}

	reasonQ := `
		SELECT COALESCE(NULLIF(TRIM(o.return_reason), ''), 'unspecified'), COUNT(*)::int, COALESCE(SUM(o.refund_amount), 0)
		FROM orders o
		WHERE o.status = 'returned'
		  AND o.created_at >= ? AND o.created_at <= ?` + p.SQL() + `
		GROUP BY 1
		ORDER BY COUNT(*) DESC`

	rows, err := s.db.WithContext(ctx).Raw(reasonQ, rangeArgs(r, p)...).Rows()
	if err != nil {
		return rs, fmt.Errorf("refund reasons query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row models.RefundReasonRow
		if err := rows.Scan(&row.Reason, &row.Count, &row.Amount); err != nil {
			return rs, fmt.Errorf("refund reasons scan: %w", err)
		}
		rs.ByReason = append(rs.ByReason, row)
	}
	if err := rows.Err(); err != nil {
		return rs, fmt.Errorf("refund reasons rows: %w", err)
	}

	return rs, nil
}

// ComputeOrderDetails returns raw order rows, newest first, capped.
func (s *Service) ComputeOrderDetails(ctx context.Context, r models.DateRange, p FilterPredicate, limit int) ([]models.OrderDetailRow, error) {
	q := `
		SELECT
			o.id::text, o.order_number, COALESCE(u.name, ''),
			o.status, o.payment_method, o.payment_status,
			o.total_amount, o.created_at
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		WHERE o.created_at >= ? AND o.created_at <= ?` + p.SQL() + `
		ORDER BY o.created_at DESC
		LIMIT ?`

	rows, err := s.db.WithContext(ctx).Raw(q, rangeArgs(r, p, limit)...).Rows()
	if err != nil {
		return nil, fmt.Errorf("order details query: %w", err)
	}
	defer rows.Close()

	var out []models.OrderDetailRow
	for rows.Next() {
		var row models.OrderDetailRow
		if err := rows.Scan(
			&row.ID, &row.OrderNumber, &row.CustomerName,
			&row.Status, &row.PaymentMethod, &row.PaymentStatus,
			&row.TotalAmount, &row.OrderDate,
		); err != nil {
			return nil, fmt.Errorf("order details scan: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("order details rows: %w", err)
	}
	return out, nil
}

// applyShare fills a percentage field as the row's share of the total.
func applyShare[T any](total int, rows []T, fields func(*T) (int, *float64)) {
	if total == 0 {
		return
	}
	for i := range rows {
		count, pct := fields(&rows[i])
		*pct = round2(float64(count) / float64(total) * 100)
	}
}
