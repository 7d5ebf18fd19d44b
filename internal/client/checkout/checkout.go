// Package checkout orchestrates the payment flow: cart validation, the
// checkout-session collaborator call, the one-way redirect to the hosted
// payment page, and the return-trip resume after the browser comes back.
package checkout

import (
	"context"

	"github.com/bobadragon/storefront/internal/client/backend"
	"github.com/bobadragon/storefront/internal/client/models"
	"github.com/bobadragon/storefront/internal/client/state"
	"github.com/bobadragon/storefront/internal/client/ui"
	"github.com/bobadragon/storefront/internal/logging"
)

// CheckoutControl names the initiating control put into a loading state for
// the duration of the session call.
const CheckoutControl = "checkout-button"

// PaymentClient is the checkout collaborator: it opens hosted payment
// sessions and reports their outcome back after the return trip.
type PaymentClient interface {
	CreateCheckoutSession(ctx context.Context, lines []models.CartLine, shippingCost int64) (*backend.CheckoutSession, error)
	ConfirmPayment(ctx context.Context, sessionID string) error
}

// Navigator performs the full redirect to the hosted payment page. This is a
// one-way transition: no further client state applies until the return trip.
type Navigator interface {
	Redirect(url string)
}

// Orchestrator drives proceed-to-checkout and the startup resume check.
type Orchestrator struct {
	store    *state.Store
	client   PaymentClient
	nav      Navigator
	renderer ui.Renderer
	log      logging.Logger
}

func NewOrchestrator(store *state.Store, client PaymentClient, nav Navigator, renderer ui.Renderer, log logging.Logger) *Orchestrator {
	return &Orchestrator{store: store, client: client, nav: nav, renderer: renderer, log: log}
}

// ProceedToCheckout validates the cart, creates a checkout session, and
// redirects to its URL. An empty cart aborts with a validation notice before
// any network call. On collaborator failure a generic retry-safe notice is
// shown, the loading state is reverted, and the cart is left untouched so
// the user may retry.
func (o *Orchestrator) ProceedToCheckout(ctx context.Context) error {
	lines := o.store.Cart()
	if len(lines) == 0 {
		o.renderer.Notify("Your cart is empty.", true)
		return nil
	}

	var shippingCost int64
	if info := o.store.ShippingInfo(); info != nil {
		shippingCost = info.Cost
	}

	o.renderer.SetBusy(CheckoutControl)
	defer o.renderer.ClearBusy(CheckoutControl)

	session, err := o.client.CreateCheckoutSession(ctx, lines, shippingCost)
	if err != nil {
		o.log.Error(ctx, "checkout session creation failed", "error", err)
		o.renderer.Notify("There was a problem processing your payment. Please try again.", true)
		return err
	}

	o.log.Info(ctx, "redirecting to hosted checkout", "session_id", session.ID)
	o.nav.Redirect(session.URL)
	return nil
}
