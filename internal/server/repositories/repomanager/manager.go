package repomanager

import (
	"context"
	"database/sql"

	"github.com/bobadragon/storefront/internal/dbx"
	"github.com/bobadragon/storefront/internal/server/repositories/orders"
	"github.com/bobadragon/storefront/internal/server/repositories/promotions"
	"github.com/bobadragon/storefront/internal/server/repositories/refreshtokens"
	"github.com/bobadragon/storefront/internal/server/repositories/storesettings"
	"github.com/bobadragon/storefront/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Promotions(db dbx.DBTX) promotions.Repository
	Orders(db dbx.DBTX) orders.Repository
	StoreSettings(db dbx.DBTX) storesettings.Repository
}
