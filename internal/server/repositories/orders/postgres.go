package orders

import (
	"context"
	"encoding/json"
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

func (r *PostgresRepository) Create(ctx context.Context, order *models.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}

	query :=
		`INSERT INTO orders (id, user_id, status, total, items, checkout_session_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `
	_, err = r.db.ExecContext(ctx, query,
		order.ID, order.UserID, order.Status, order.Total, items, order.CheckoutSessionID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	query :=
		`SELECT id, status, total, items, created_at FROM orders
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		o := models.Order{UserID: userID}
		var items []byte
		if err := rows.Scan(&o.ID, &o.Status, &o.Total, &items, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		if len(items) > 0 {
			if err := json.Unmarshal(items, &o.Items); err != nil {
				return nil, fmt.Errorf("decoding items: %w", err)
			}
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return orders, nil
}

func (r *PostgresRepository) SetStatusBySession(ctx context.Context, checkoutSessionID, status string) error {
	query :=
		`UPDATE orders SET status = $2
		 WHERE checkout_session_id = $1
		 `
	_, err := r.db.ExecContext(ctx, query, checkoutSessionID, status)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

var _ Repository = (*PostgresRepository)(nil)
