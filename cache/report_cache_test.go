package report_cache

import (
	"testing"

	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_EqualFiltersCollide(t *testing.T) {
	a := models.ReportFilter{Period: "month", Status: "delivered", Limit: 20}
	b := models.ReportFilter{Period: "month", Status: "delivered", Limit: 20}
	c := models.ReportFilter{Period: "month", Status: "delivered", Limit: 21}

	assert.Equal(t, Key(a), Key(b))
	assert.NotEqual(t, Key(a), Key(c))
}

func TestGetSetInvalidate(t *testing.T) {
	Invalidate()

	key := Key(models.ReportFilter{Period: "week"})
	_, ok := Get(key)
	assert.False(t, ok)

	report := &models.StatisticsReport{}
	Set(key, report)

	got, ok := Get(key)
	require.True(t, ok)
	assert.Same(t, report, got)

	Invalidate()
	_, ok = Get(key)
	assert.False(t, ok, "order mutations must drop every cached report")
}
