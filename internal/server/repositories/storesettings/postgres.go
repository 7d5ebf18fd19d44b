package storesettings

import (
	"context"
	"fmt"

	"github.com/bobadragon/storefront/internal/dbx"
	"github.com/bobadragon/storefront/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context) (*models.StoreSettings, error) {
	query :=
		`SELECT manual_status, open_hour, close_hour FROM store_settings
		 WHERE id = 1
		 `
	s := &models.StoreSettings{}
	err := r.db.QueryRowContext(ctx, query).Scan(&s.ManualStatus, &s.OpenHour, &s.CloseHour)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) SetManualStatus(ctx context.Context, status string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE store_settings SET manual_status = $1 WHERE id = 1`, status)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

var _ Repository = (*PostgresRepository)(nil)
