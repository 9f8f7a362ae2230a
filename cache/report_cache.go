package report_cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
)

const TTL = 2 * time.Minute

// ── Statistics report cache ──────────────────────────────────────────────────
// Keyed by the canonical filter string. Reports are expensive (a dozen
// aggregate queries each), identical filters within the TTL get the
// cached document.

type reportEntry struct {
	report    *models.StatisticsReport
	fetchedAt time.Time
}

var (
	mu      sync.RWMutex
	reports = map[string]*reportEntry{}
)

// Key canonicalizes a filter into a cache key. Field order is fixed so
// equal filters always collide.
func Key(f models.ReportFilter) string {
	return fmt.Sprintf("p=%s|df=%s|dt=%s|s=%s|pm=%s|ps=%s|cat=%s|sub=%s|pid=%s|st=%s|ci=%s|pin=%s|cmp=%s|gb=%s|m=%s|l=%d|d=%t",
		f.Period, f.DateFrom, f.DateTo, f.Status, f.PaymentMethod, f.PaymentStatus,
		f.CategoryID, f.SubcategoryID, f.ProductID, f.State, f.City, f.Pincode,
		f.Comparison, f.GroupBy, f.Metrics, f.Limit, f.IncludeDetails)
}

func Get(key string) (*models.StatisticsReport, bool) {
	mu.RLock()
	defer mu.RUnlock()
	if e, ok := reports[key]; ok && time.Since(e.fetchedAt) < TTL {
		return e.report, true
	}
	return nil, false
}

func Set(key string, report *models.StatisticsReport) {
	mu.Lock()
	defer mu.Unlock()
	// Drop expired entries opportunistically so the map doesn't grow
	// without bound under varied filters.
	for k, e := range reports {
		if time.Since(e.fetchedAt) >= TTL {
			delete(reports, k)
		}
	}
	reports[key] = &reportEntry{report: report, fetchedAt: time.Now()}
}

// ── Invalidate everything (call on any order mutation) ───────────────────────

func Invalidate() {
	mu.Lock()
	reports = map[string]*reportEntry{}
	mu.Unlock()
}
