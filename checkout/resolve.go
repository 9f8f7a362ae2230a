package checkout

import (
	"context"
	"log"
	"sync"

	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
)

// ResolveIssues removes whatever is blocking the cart: every inactive
// item, and the inactive coupon if there is one. Removals are issued
// concurrently and joined; a partial failure is reported as such and is
// never retried here — the user re-invokes resolution.
func (s *Service) ResolveIssues(ctx context.Context, userID string) (models.ResolveResult, error) {
	snap, err := s.ReconcileCart(ctx, userID)
	if err != nil {
		return models.ResolveResult{}, err
	}

	result := models.ResolveResult{
		RemovedItems: []string{},
		FailedItems:  []string{},
	}

	if !snap.Blocking {
		result.Complete = true
		return result, nil
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for _, item := range snap.InactiveItems {
		wg.Add(1)
		go func(itemID string) {
			defer wg.Done()
			err := s.db.WithContext(ctx).Exec(
				`DELETE FROM cart_items WHERE id = ?`, itemID,
			).Error
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("[checkout.resolve] ERROR removing item %s err=%v", itemID, err)
				result.FailedItems = append(result.FailedItems, itemID)
			} else {
				result.RemovedItems = append(result.RemovedItems, itemID)
			}
		}(item.ItemID)
	}

	if snap.InactiveCoupon != nil {
		wg.Add(1)
		go func(cartID string) {
			defer wg.Done()
			err := s.db.WithContext(ctx).Exec(
				`UPDATE carts SET coupon_code = NULL, updated_at = NOW() WHERE id = ?`, cartID,
			).Error
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("[checkout.resolve] ERROR removing coupon err=%v", err)
				result.CouponFailed = true
			} else {
				result.CouponRemoved = true
			}
		}(snap.CartID)
	}

	wg.Wait()

	result.Complete = len(result.FailedItems) == 0 && !result.CouponFailed
	if !result.Complete {
		return result, ErrPartialResolution
	}
	return result, nil
}
