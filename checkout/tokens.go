package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Expiries for the order-context keys that survive the payment-page
// redirect. After expiry the value is gone and re-access is denied.
const (
	OrderAccessTTL    = 30 * time.Minute
	OrderDataTTL      = 5 * time.Minute
	pendingPaymentTTL = 30 * time.Minute
)

// TokenStore hands out short-lived order-access tokens and holds
// pending online-payment handoffs, all in Redis with hard TTLs.
type TokenStore struct {
	rdb *redis.Client
}

func NewTokenStore(rdb *redis.Client) *TokenStore {
	return &TokenStore{rdb: rdb}
}

// GrantOrderAccess mints a token that resolves to the order for 30
// minutes.
func (t *TokenStore) GrantOrderAccess(ctx context.Context, orderID, userID string) (string, error) {
	token := uuid.NewString()
	val := orderID + ":" + userID
	if err := t.rdb.Set(ctx, "order:access:"+token, val, OrderAccessTTL).Err(); err != nil {
		return "", fmt.Errorf("grant order access: %w", err)
	}
	return token, nil
}

// ResolveOrderAccess returns the order and owner for a live token.
// Expired or unknown tokens yield redis.Nil.
func (t *TokenStore) ResolveOrderAccess(ctx context.Context, token string) (orderID, userID string, err error) {
	val, err := t.rdb.Get(ctx, "order:access:"+token).Result()
	if err != nil {
		return "", "", err
	}
	for i := 0; i < len(val); i++ {
		if val[i] == ':' {
			return val[:i], val[i+1:], nil
		}
	}
	return "", "", redis.Nil
}

// StoreOrderData keeps the post-success order payload for 5 minutes so
// the confirmation page can render after the payment redirect.
func (t *TokenStore) StoreOrderData(ctx context.Context, userID string, order models.PlaceOrderResponse) error {
	raw, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order data: %w", err)
	}
	if err := t.rdb.Set(ctx, "order:data:"+userID, raw, OrderDataTTL).Err(); err != nil {
		return fmt.Errorf("store order data: %w", err)
	}
	return nil
}

// FetchOrderData returns the stored payload, or redis.Nil once purged.
func (t *TokenStore) FetchOrderData(ctx context.Context, userID string) (models.PlaceOrderResponse, error) {
	var order models.PlaceOrderResponse
	raw, err := t.rdb.Get(ctx, "order:data:"+userID).Result()
	if err != nil {
		return order, err
	}
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		return order, fmt.Errorf("unmarshal order data: %w", err)
	}
	return order, nil
}

// SavePendingPayment parks an online-payment handoff until the payment
// page reports back.
func (t *TokenStore) SavePendingPayment(ctx context.Context, pp models.PendingPayment) error {
	raw, err := json.Marshal(pp)
	if err != nil {
		return fmt.Errorf("marshal pending payment: %w", err)
	}
	if err := t.rdb.Set(ctx, "payment:pending:"+pp.Ref, raw, pendingPaymentTTL).Err(); err != nil {
		return fmt.Errorf("save pending payment: %w", err)
	}
	return nil
}

// TakePendingPayment atomically claims the handoff so each payment ref
// can complete at most once.
func (t *TokenStore) TakePendingPayment(ctx context.Context, ref string) (*models.PendingPayment, error) {
	raw, err := t.rdb.GetDel(ctx, "payment:pending:"+ref).Result()
	if err == redis.Nil {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("take pending payment: %w", err)
	}
	var pp models.PendingPayment
	if err := json.Unmarshal([]byte(raw), &pp); err != nil {
		return nil, fmt.Errorf("unmarshal pending payment: %w", err)
	}
	return &pp, nil
}
