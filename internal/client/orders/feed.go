// Package orders implements the customer order feed: a cancellable
// background watch that keeps the order history fresh while the customer is
// signed in.
package orders

import (
	"context"
	"time"

	"github.com/bobadragon/storefront/internal/client/models"
	"github.com/bobadragon/storefront/internal/logging"
)

// Client is the slice of the backend the feed needs.
type Client interface {
	Orders(ctx context.Context, uid string) ([]models.Order, error)
}

// Feed polls the backend for the customer's orders and delivers each
// successful result through the onUpdate callback. The callback must commit
// its result in a single synchronous step.
type Feed struct {
	client   Client
	interval time.Duration
	log      logging.Logger
}

func NewFeed(client Client, interval time.Duration, log logging.Logger) *Feed {
	return &Feed{client: client, interval: interval, log: log}
}

// Watch starts the feed for one customer and returns its cancel handle.
// One immediate fetch runs before the ticker takes over. The returned cancel
// is safe to call more than once, but the session controller owns it and
// invokes it exactly once on sign-out.
func (f *Feed) Watch(ctx context.Context, uid string, onUpdate func([]models.Order)) context.CancelFunc {
	ctx, cancel := context.WithCancel(ctx)

	go func() {
		f.fetch(ctx, uid, onUpdate)

		ticker := time.NewTicker(f.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				f.fetch(ctx, uid, onUpdate)
			case <-ctx.Done():
				return
			}
		}
	}()

	return cancel
}

func (f *Feed) fetch(ctx context.Context, uid string, onUpdate func([]models.Order)) {
	callCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := f.client.Orders(callCtx, uid)
	if err != nil {
		if ctx.Err() == nil {
			f.log.Warn(ctx, "order feed fetch failed", "error", err)
		}
		return
	}
	f.log.Debug(ctx, "order feed updated", "count", len(result))
	onUpdate(result)
}
