package statistics

import (
	"testing"

	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFilterPredicate_Empty(t *testing.T) {
	p := BuildFilterPredicate(models.ReportFilter{})

	assert.True(t, p.Empty())
	assert.Equal(t, "", p.SQL())
	assert.Empty(t, p.Args())
}

func TestBuildFilterPredicate_ClausesAndArgsAlign(t *testing.T) {
	p := BuildFilterPredicate(models.ReportFilter{
		Status:        "delivered",
		PaymentMethod: "cod",
		State:         "Maharashtra",
		Pincode:       "400001",
	})

	require.False(t, p.Empty())
	sql := p.SQL()
	assert.Contains(t, sql, "o.status = ?")
	assert.Contains(t, sql, "o.payment_method = ?")
	assert.Contains(t, sql, "o.state = ?")
	assert.Contains(t, sql, "o.pincode = ?")
	assert.True(t, len(sql) > 5 && sql[:5] == " AND ", "fragment must AND onto the base date predicate")

	assert.Equal(t, []any{"delivered", "cod", "Maharashtra", "400001"}, p.Args())
}

func TestBuildFilterPredicate_ProductFiltersUseExists(t *testing.T) {
	p := BuildFilterPredicate(models.ReportFilter{
		CategoryID: "0198f1a2-3b4c-7d5e-8f90-123456789abc",
		ProductID:  "0198f1a2-3b4c-7d5e-8f90-123456789abd",
	})

	sql := p.SQL()
	assert.Contains(t, sql, "EXISTS")
	assert.Contains(t, sql, "order_items")
	assert.Contains(t, sql, "ep.category_id = ?")
	assert.Contains(t, sql, "ei.product_id = ?")
	assert.Len(t, p.Args(), 2)
}

func TestFilterPredicate_ArgsReturnsCopy(t *testing.T) {
	p := BuildFilterPredicate(models.ReportFilter{Status: "pending"})

	args := p.Args()
	args[0] = "mutated"
	assert.Equal(t, []any{"pending"}, p.Args(), "callers must not be able to mutate the predicate")
}

func TestRangeArgs_Ordering(t *testing.T) {
	r := models.DateRange{Start: frozenNow.AddDate(0, 0, -7), End: frozenNow}
	p := BuildFilterPredicate(models.ReportFilter{Status: "delivered"})

	args := rangeArgs(r, p, 25)
	require.Len(t, args, 4)
	assert.Equal(t, r.Start, args[0])
	assert.Equal(t, r.End, args[1])
	assert.Equal(t, "delivered", args[2])
	assert.Equal(t, 25, args[3])
}
