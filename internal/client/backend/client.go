// Package backend is the client's messenger to the hosted backend. It defines
// the collaborator surface the controllers depend on and the HTTP
// implementation speaking the callable protocol.
package backend

import (
	"context"

	"github.com/bobadragon/storefront/internal/client/models"
)

// Session is what a successful authentication yields.
type Session struct {
	UID          string
	AccessToken  string
	RefreshToken string
}

// CheckoutSession is the hosted payment page handle returned by the
// checkout-session collaborator.
type CheckoutSession struct {
	ID  string
	URL string
}

// Client is the full backend surface. Controllers should depend on the
// narrow slice they need; the concrete HTTP client satisfies all of it.
type Client interface {
	Register(ctx context.Context, name, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) (*Session, error)
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
	SignOut(ctx context.Context) error

	Profile(ctx context.Context, uid string) (*models.Profile, error)
	CreateCheckoutSession(ctx context.Context, lines []models.CartLine, shippingCost int64) (*CheckoutSession, error)
	ConfirmPayment(ctx context.Context, sessionID string) error
	MapsAPIKey(ctx context.Context) (string, error)
	ActivePromotions(ctx context.Context) ([]models.Promotion, error)
	StoreStatus(ctx context.Context) (models.StoreStatus, error)
	Orders(ctx context.Context, uid string) ([]models.Order, error)
}
