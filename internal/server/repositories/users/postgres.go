package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bobadragon/storefront/internal/common"
	"github.com/bobadragon/storefront/internal/dbx"
	"github.com/bobadragon/storefront/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	coupons, err := json.Marshal(user.Coupons)
	if err != nil {
		return nil, fmt.Errorf("encoding coupons: %w", err)
	}

	query :=
		`INSERT INTO users (name, email, password_hash, role, reward_points, coupons, referral_code, fcm_token)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id
		 `

	err = r.db.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role,
		user.RewardPoints, coupons, user.ReferralCode, user.FCMToken).Scan(&user.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, name, email, password_hash, role, reward_points, coupons, referral_code, fcm_token FROM users
		 WHERE email = $1
		 `
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, name, email, password_hash, role, reward_points, coupons, referral_code, fcm_token FROM users
		 WHERE id = $1
		 `
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var coupons []byte

	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.RewardPoints, &coupons, &user.ReferralCode, &user.FCMToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if len(coupons) > 0 {
		if err := json.Unmarshal(coupons, &user.Coupons); err != nil {
			return nil, fmt.Errorf("decoding coupons: %w", err)
		}
	}
	return user, nil
}

// isUniqueViolation matches the Postgres unique_violation SQLSTATE without
// binding this package to a specific driver error type.
func isUniqueViolation(err error) bool {
	type sqlState interface{ SQLState() string }
	var st sqlState
	if errors.As(err, &st) {
		return st.SQLState() == "23505"
	}
	return false
}

var _ Repository = (*PostgresRepository)(nil)
