package checkout

import (
	"errors"
	"os"
	"time"

	"gorm.io/gorm"
)

// Tax and fee constants for the bill breakdown. GST splits into
// CGST+SGST for intra-state delivery, IGST otherwise.
const (
	GSTRate               = 0.18
	FreeShippingThreshold = 999.0
	StandardShippingCost  = 79.0
	CODFeeAmount          = 49.0
)

// Sentinel errors the controllers translate into HTTP statuses.
var (
	ErrCartEmpty         = errors.New("cart has no purchasable items")
	ErrBlockingIssues    = errors.New("cart has unresolved blocking issues")
	ErrAddressNotFound   = errors.New("address not found")
	ErrAddressNotOwned   = errors.New("address does not belong to user")
	ErrPaymentNotFound   = errors.New("pending payment not found or expired")
	ErrPaymentFailed     = errors.New("payment was not completed")
	ErrPartialResolution = errors.New("could not resolve all cart issues, please retry")
)

// Service owns the cart/checkout flows. Constructor-injected handles,
// no package-level state, so the whole thing runs against a fake clock
// in tests.
type Service struct {
	db         *gorm.DB
	now        func() time.Time
	storeState string
}

func NewService(db *gorm.DB) *Service {
	state := os.Getenv("STORE_STATE")
	if state == "" {
		state = "Maharashtra"
	}
	return &Service{db: db, now: time.Now, storeState: state}
}

// WithNow pins the clock (tests).
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithStoreState overrides the dispatch state (tests).
func (s *Service) WithStoreState(state string) *Service {
	s.storeState = state
	return s
}
