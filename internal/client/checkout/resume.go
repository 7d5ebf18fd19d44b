package checkout

import (
	"context"
	"net/url"

	"github.com/bobadragon/storefront/internal/client/ui"
)

// Query parameters the hosted payment page appends on the way back.
const (
	paymentStatusParam = "payment_status"
	sessionIDParam     = "session_id"
)

// Resume consumes the payment return-trip parameters exactly once at
// startup. On success the checkout session is confirmed with the backend so
// the pending order flips to paid, the cart is cleared and the order history
// becomes the active view; on cancellation a dismissible notice is shown.
// The returned values have the parameters stripped, so they can never be
// consumed twice. consumed reports whether an outcome was present at all.
func (o *Orchestrator) Resume(ctx context.Context, query url.Values) (cleaned url.Values, consumed bool) {
	outcome := query.Get(paymentStatusParam)
	if outcome == "" {
		return query, false
	}

	sessionID := query.Get(sessionIDParam)
	query.Del(paymentStatusParam)
	query.Del(sessionIDParam)

	switch outcome {
	case "success":
		if sessionID != "" {
			if err := o.client.ConfirmPayment(ctx, sessionID); err != nil {
				o.log.Warn(ctx, "payment confirmation failed", "session_id", sessionID, "error", err)
				o.renderer.Notify("Your payment went through; the order status may take a moment to update.", false)
			}
		}
		o.store.ClearCart()
		o.renderer.CartBadge(0)
		o.renderer.Notify("Payment successful! Your order is being prepared.", false)
		o.renderer.NavigateTo(ui.ViewOrders)
		o.renderer.Orders(o.store.Orders())
	case "cancel":
		o.renderer.Notify("Payment was cancelled. You can try again from your cart.", true)
	default:
		// unknown outcome values are dropped silently, like any other
		// stale query parameter
	}

	return query, true
}
