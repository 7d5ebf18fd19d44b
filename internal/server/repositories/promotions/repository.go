package promotions

import (
	"context"

	"github.com/bobadragon/storefront/internal/server/models"
)

type Repository interface {
	ListActive(ctx context.Context) ([]models.Promotion, error)
}
