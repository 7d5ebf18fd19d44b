package orders

import (
	"context"

	"github.com/bobadragon/storefront/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, order *models.Order) error
	ListForUser(ctx context.Context, userID string) ([]models.Order, error)
	// SetStatusBySession moves the order tied to a checkout session into a
	// new status, used when the payment outcome comes in.
	SetStatusBySession(ctx context.Context, checkoutSessionID, status string) error
}
