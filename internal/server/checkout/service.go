// Package checkout turns a customer's cart into a payment session and a
// pending order record.
package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bobadragon/storefront/internal/server/models"
	"github.com/bobadragon/storefront/internal/server/payments"
	"github.com/bobadragon/storefront/internal/server/repositories/orders"
)

// CartLine is one priced line as submitted by the client.
type CartLine struct {
	Name     string
	Price    int64
	Quantity int
}

type Service struct {
	provider      payments.Provider
	orders        orders.Repository
	clientBaseURL string
	shippingCost  int64
}

func NewService(provider payments.Provider, orderRepo orders.Repository, clientBaseURL string, shippingCost int64) *Service {
	return &Service{provider: provider, orders: orderRepo, clientBaseURL: clientBaseURL, shippingCost: shippingCost}
}

// CreateSession opens a provider checkout session for the cart plus a
// shipping line, and records a pending order tied to the session so the
// payment outcome can be applied later. A positive shippingCost only
// signals that delivery was chosen; the amount charged is always the
// configured fee. The success and cancel URLs carry the payment_status
// parameter the client consumes on return.
func (s *Service) CreateSession(ctx context.Context, userID string, cart []CartLine, shippingCost int64) (*payments.CheckoutSession, error) {

	if len(cart) == 0 {
		return nil, fmt.Errorf("empty cart")
	}

	items := make([]models.OrderItem, 0, len(cart)+1)
	var total int64
	for _, l := range cart {
		items = append(items, models.OrderItem{Name: l.Name, UnitPrice: l.Price, Quantity: l.Quantity})
		total += l.Price * int64(l.Quantity)
	}
	if shippingCost > 0 {
		items = append(items, models.OrderItem{Name: "Shipping", UnitPrice: s.shippingCost, Quantity: 1})
		total += s.shippingCost
	}

	successURL := s.clientBaseURL + "/?payment_status=success&session_id={CHECKOUT_SESSION_ID}"
	cancelURL := s.clientBaseURL + "/?payment_status=cancel"

	sess, err := s.provider.CreateCheckoutSession(ctx, items, successURL, cancelURL)
	if err != nil {
		return nil, fmt.Errorf("creating checkout session: %w", err)
	}

	order := &models.Order{
		ID:                uuid.New().String(),
		UserID:            userID,
		Status:            models.OrderStatusPending,
		Total:             total,
		Items:             items,
		CheckoutSessionID: sess.ID,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("recording pending order: %w", err)
	}

	return sess, nil
}

// ConfirmPayment marks the order tied to the checkout session as paid. The
// client calls this on the success return trip, carrying the session id the
// payment page appended to the redirect URL.
func (s *Service) ConfirmPayment(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("empty session id")
	}
	if err := s.orders.SetStatusBySession(ctx, sessionID, models.OrderStatusPaid); err != nil {
		return fmt.Errorf("confirming payment: %w", err)
	}
	return nil
}
