package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/redis/go-redis/v9"
)

var (
	ErrAddressRequired       = errors.New("select a delivery address first")
	ErrPaymentMethodRequired = errors.New("select a payment method first")
	ErrInvalidTransition     = errors.New("invalid checkout step transition")
)

const sessionTTL = 30 * time.Minute

// Session is the explicit checkout state machine. Steps only move
// forward on explicit action; moving back wipes whatever the abandoned
// step computed, so no stale bill or payment selection survives.
type Session struct {
	UserID        string                     `json:"user_id"`
	Step          string                     `json:"step"`
	AddressID     string                     `json:"address_id,omitempty"`
	PaymentMethod string                     `json:"payment_method,omitempty"`
	CheckoutData  *models.BillBreakdown      `json:"checkout_data,omitempty"`
	OrderData     *models.PlaceOrderResponse `json:"order_data,omitempty"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

// NewSession starts fresh at the address step.
func NewSession(userID string) *Session {
	return &Session{UserID: userID, Step: models.StepAddress}
}

// SelectAddress records the delivery address while on the address step.
func (s *Session) SelectAddress(addressID string) error {
	if s.Step != models.StepAddress {
		return ErrInvalidTransition
	}
	s.AddressID = addressID
	return nil
}

// ToSummary advances address → summary. Requires a selected address;
// no network call happens before this check.
func (s *Session) ToSummary() error {
	if s.Step != models.StepAddress {
		return ErrInvalidTransition
	}
	if s.AddressID == "" {
		return ErrAddressRequired
	}
	s.Step = models.StepSummary
	return nil
}

// ToPayment advances summary → payment, gated on the reconciled cart
// having no blocking issues and the bill having been computed.
func (s *Session) ToPayment(blocking bool) error {
	if s.Step != models.StepSummary {
		return ErrInvalidTransition
	}
	if blocking {
		return ErrBlockingIssues
	}
	if s.CheckoutData == nil {
		return ErrInvalidTransition
	}
	s.Step = models.StepPayment
	return nil
}

// SelectPaymentMethod records the method while on the payment step.
func (s *Session) SelectPaymentMethod(method string) error {
	if s.Step != models.StepPayment {
		return ErrInvalidTransition
	}
	s.PaymentMethod = method
	return nil
}

// Back steps backward one step, clearing state computed by the step
// being left. The payment-method selection never survives a backward
// move.
func (s *Session) Back() error {
	switch s.Step {
	case models.StepPayment:
		s.PaymentMethod = ""
		s.Step = models.StepSummary
	case models.StepSummary:
		s.PaymentMethod = ""
		s.CheckoutData = nil
		s.Step = models.StepAddress
	default:
		return ErrInvalidTransition
	}
	return nil
}

// MarkPlaced records the terminal state after order creation.
func (s *Session) MarkPlaced(order *models.PlaceOrderResponse) {
	s.OrderData = order
	s.Step = models.StepPlaced
}

// SessionStore persists checkout sessions in Redis so a session
// survives the redirect out to a payment page and back.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func sessionKey(userID string) string {
	return "checkout:session:" + userID
}

// Load returns the user's session, or a fresh one at the address step
// if none exists (navigating to checkout always starts clean).
func (st *SessionStore) Load(ctx context.Context, userID string) (*Session, error) {
	raw, err := st.rdb.Get(ctx, sessionKey(userID)).Result()
	if err == redis.Nil {
		return NewSession(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load checkout session: %w", err)
	}
	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		// Corrupt session: start over rather than failing checkout.
		return NewSession(userID), nil
	}
	return &s, nil
}

func (st *SessionStore) Save(ctx context.Context, s *Session) error {
	s.UpdatedAt = time.Now()
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal checkout session: %w", err)
	}
	if err := st.rdb.Set(ctx, sessionKey(s.UserID), raw, sessionTTL).Err(); err != nil {
		return fmt.Errorf("save checkout session: %w", err)
	}
	return nil
}

// Clear destroys the session (after order placement or on leaving
// checkout).
func (st *SessionStore) Clear(ctx context.Context, userID string) error {
	return st.rdb.Del(ctx, sessionKey(userID)).Err()
}
