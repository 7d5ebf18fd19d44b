package promotions

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

func (r *PostgresRepository) ListActive(ctx context.Context) ([]models.Promotion, error) {
	query :=
		`SELECT id, title, description, image_key FROM promotions
		 WHERE active = TRUE
		 ORDER BY title
		 `
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var promos []models.Promotion
	for rows.Next() {
		p := models.Promotion{Active: true}
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.ImageKey); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		promos = append(promos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return promos, nil
}

var _ Repository = (*PostgresRepository)(nil)
