package statistics

import (
	"strings"

	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
)

// FilterPredicate is a conjunction of optional, parameterized clauses
// over the orders table (alias "o"). It is built once per report and
// reused verbatim by every sub-query, so filters can never drift
// between the summary and a breakdown.
type FilterPredicate struct {
	clauses []string
	args    []any
}

// BuildFilterPredicate translates the non-empty optional filters into
// clauses. Category/subcategory/product filters are expressed as EXISTS
// against order_items (and products) so they compose with any outer
// grouping without multiplying rows.
func BuildFilterPredicate(f models.ReportFilter) FilterPredicate {
	var p FilterPredicate

	add := func(clause string, arg any) {
		p.clauses = append(p.clauses, clause)
		p.args = append(p.args, arg)
	}

	if f.Status != "" {
		add("o.status = ?", f.Status)
	}
	if f.PaymentMethod != "" {
		add("o.payment_method = ?", f.PaymentMethod)
	}
	if f.PaymentStatus != "" {
		add("o.payment_status = ?", f.PaymentStatus)
	}
	if f.CategoryID != "" {
		add(`EXISTS (
			SELECT 1 FROM order_items ei
			JOIN products ep ON ep.id = ei.product_id
			WHERE ei.order_id = o.id AND ep.category_id = ?)`, f.CategoryID)
	}
	if f.SubcategoryID != "" {
		add(`EXISTS (
			SELECT 1 FROM order_items ei
			JOIN products ep ON ep.id = ei.product_id
			WHERE ei.order_id = o.id AND ep.subcategory_id = ?)`, f.SubcategoryID)
	}
	if f.ProductID != "" {
		add(`EXISTS (
			SELECT 1 FROM order_items ei
			WHERE ei.order_id = o.id AND ei.product_id = ?)`, f.ProductID)
	}
	if f.State != "" {
		add("o.state = ?", f.State)
	}
	if f.City != "" {
		add("o.city = ?", f.City)
	}
	if f.Pincode != "" {
		add("o.pincode = ?", f.Pincode)
	}

	return p
}

// SQL returns the fragment to AND onto a query's base date predicate:
// either "" or " AND c1 AND c2 ...".
func (p FilterPredicate) SQL() string {
	if len(p.clauses) == 0 {
		return ""
	}
	return " AND " + strings.Join(p.clauses, " AND ")
}

// Args returns a copy of the bound parameters, in clause order.
func (p FilterPredicate) Args() []any {
	out := make([]any, len(p.args))
	copy(out, p.args)
	return out
}

// Empty reports whether no optional filter was set.
func (p FilterPredicate) Empty() bool {
	return len(p.clauses) == 0
}

// rangeArgs prepends the date-range bounds to the predicate args,
// matching the "o.created_at >= ? AND o.created_at <= ?" prefix every
// sub-query starts from.
func rangeArgs(r models.DateRange, p FilterPredicate, extra ...any) []any {
	args := []any{r.Start, r.End}
	args = append(args, p.args...)
	args = append(args, extra...)
	return args
}
