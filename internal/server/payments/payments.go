// Package payments creates hosted checkout sessions with the payment
// provider. Only the session id and redirect URL come back to the caller;
// card data never touches this server.
package payments

import (
	"context"

	"github.com/bobadragon/storefront/internal/server/models"
)

// CheckoutSession is the provider-hosted payment page for one order.
type CheckoutSession struct {
	ID  string
	URL string
}

// Provider opens a checkout session for the given priced lines. successURL
// and cancelURL are where the provider sends the customer afterwards.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, items []models.OrderItem, successURL, cancelURL string) (*CheckoutSession, error)
}
