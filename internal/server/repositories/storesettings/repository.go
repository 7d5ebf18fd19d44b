package storesettings

import (
	"context"

	"github.com/bobadragon/storefront/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context) (*models.StoreSettings, error)
	SetManualStatus(ctx context.Context, status string) error
}
