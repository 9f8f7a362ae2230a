package models

import "time"

// Report filter enums
const (
	PeriodToday     = "today"
	PeriodYesterday = "yesterday"
	PeriodWeek      = "week"
	PeriodMonth     = "month"
	PeriodQuarter   = "quarter"
	PeriodYear      = "year"
	PeriodCustom    = "custom"

	ComparisonPreviousPeriod = "previous_period"
	ComparisonPreviousYear   = "previous_year"
	ComparisonNone           = "none"

	GroupByDay     = "day"
	GroupByWeek    = "week"
	GroupByMonth   = "month"
	GroupByQuarter = "quarter"
	GroupByYear    = "year"
)

// ReportFilter is the full query-parameter surface of
// GET /admin/orders/statistics. Explicit dates override period.
type ReportFilter struct {
	Period         string `form:"period"`
	DateFrom       string `form:"date_from"`
	DateTo         string `form:"date_to"`
	Status         string `form:"status"`
	PaymentMethod  string `form:"payment_method"`
	PaymentStatus  string `form:"payment_status"`
	CategoryID     string `form:"category_id"`
	SubcategoryID  string `form:"subcategory_id"`
	ProductID      string `form:"product_id"`
	State          string `form:"state"`
	City           string `form:"city"`
	Pincode        string `form:"pincode"`
	Comparison     string `form:"comparison"`
	GroupBy        string `form:"group_by"`
	Metrics        string `form:"metrics"` // comma-separated, advisory only
	Limit          int    `form:"limit"`
	IncludeDetails bool   `form:"include_details"`
}

// DateRange is a resolved reporting window. Immutable once resolved;
// every sub-query of a report shares the same instance.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// AggregateMetrics is one computed snapshot of an order set.
// The three rates are derived in Go after the query, never in SQL.
type AggregateMetrics struct {
	TotalOrders       int     `json:"total_orders"`
	TotalRevenue      float64 `json:"total_revenue"`
	AverageOrderValue float64 `json:"average_order_value"`
	UniqueCustomers   int     `json:"unique_customers"`
	ItemsSold         int     `json:"items_sold"`
	TotalDiscounts    float64 `json:"total_discounts"`
	TotalTax          float64 `json:"total_tax"`
	TotalShipping     float64 `json:"total_shipping"`
	ReturnedOrders    int     `json:"returned_orders"`
	CancelledOrders   int     `json:"cancelled_orders"`
	CancelledValue    float64 `json:"cancelled_value"`
	RefundRate        float64 `json:"refund_rate"`
	CancellationRate  float64 `json:"cancellation_rate"`
	DiscountRate      float64 `json:"discount_rate"`
}

// GrowthMetrics holds percentage deltas vs the comparison window.
// A nil field means the previous value was 0 or absent.
type GrowthMetrics struct {
	Orders            *float64 `json:"orders"`
	Revenue           *float64 `json:"revenue"`
	AverageOrderValue *float64 `json:"average_order_value"`
	UniqueCustomers   *float64 `json:"unique_customers"`
	ItemsSold         *float64 `json:"items_sold"`
}

// ReportSummary is the headline section of a StatisticsReport.
type ReportSummary struct {
	Current    AggregateMetrics  `json:"current"`
	Comparison *AggregateMetrics `json:"comparison,omitempty"`
	Growth     *GrowthMetrics    `json:"growth,omitempty"`
}

// TimeSeriesBucket is one group_by bucket, keyed and labeled from the
// same boundary so week labels cannot drift at year boundaries.
type TimeSeriesBucket struct {
	Key     string           `json:"key"`
	Label   string           `json:"label"`
	Metrics AggregateMetrics `json:"metrics"`
}

type StatusBreakdownRow struct {
	Status     string  `json:"status"`
	Orders     int     `json:"orders"`
	Revenue    float64 `json:"revenue"`
	Percentage float64 `json:"percentage"`
}

type PaymentBreakdownRow struct {
	PaymentMethod string  `json:"payment_method"`
	Orders        int     `json:"orders"`
	Revenue       float64 `json:"revenue"`
	Percentage    float64 `json:"percentage"`
}

type GeographicRow struct {
	State      string  `json:"state"`
	City       string  `json:"city"`
	Orders     int     `json:"orders"`
	Revenue    float64 `json:"revenue"`
	Percentage float64 `json:"percentage"`
}

type TopProductRow struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	QuantitySold int     `json:"quantity_sold"`
	OrderCount   int     `json:"order_count"`
	Revenue      float64 `json:"revenue"`
}

type TopCustomerRow struct {
	UserID     string  `json:"user_id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Orders     int     `json:"orders"`
	TotalSpent float64 `json:"total_spent"`
}

// CustomerMetrics buckets a customer as returning if they have any
// order strictly before the range start, regardless of status.
type CustomerMetrics struct {
	UniqueCustomers     int              `json:"unique_customers"`
	NewCustomers        int              `json:"new_customers"`
	ReturningCustomers  int              `json:"returning_customers"`
	OrdersPerCustomer   float64          `json:"orders_per_customer"`
	RevenuePerCustomer  float64          `json:"revenue_per_customer"`
	TopCustomersBySpend []TopCustomerRow `json:"top_customers_by_spend"`
}

type RefundReasonRow struct {
	Reason string  `json:"reason"`
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

type RefundStatistics struct {
	ReturnedOrders int               `json:"returned_orders"`
	RefundedAmount float64           `json:"refunded_amount"`
	RefundRate     float64           `json:"refund_rate"`
	ByReason       []RefundReasonRow `json:"by_reason"`
}

type OrderDetailRow struct {
	ID            string    `json:"id"`
	OrderNumber   string    `json:"order_number"`
	CustomerName  string    `json:"customer_name"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	PaymentStatus string    `json:"payment_status"`
	TotalAmount   float64   `json:"total_amount"`
	OrderDate     time.Time `json:"order_date"`
}

// StatisticsReport is the fully assembled response document.
type StatisticsReport struct {
	Range            DateRange             `json:"range"`
	ComparisonRange  *DateRange            `json:"comparison_range,omitempty"`
	Summary          ReportSummary         `json:"summary"`
	TimeSeries       []TimeSeriesBucket    `json:"time_series,omitempty"`
	StatusBreakdown  []StatusBreakdownRow  `json:"status_breakdown"`
	PaymentBreakdown []PaymentBreakdownRow `json:"payment_breakdown"`
	Geography        []GeographicRow       `json:"geography"`
	Products         []TopProductRow       `json:"products"`
	Customers        CustomerMetrics       `json:"customers"`
	Refunds          RefundStatistics      `json:"refunds"`
	OrderDetails     []OrderDetailRow      `json:"order_details,omitempty"`
}
