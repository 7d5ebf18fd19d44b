package refreshtokens

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, userID, token string, validity time.Duration) error
	// GetUserID resolves a token to its user, failing for unknown or
	// expired tokens.
	GetUserID(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
	DeleteForUser(ctx context.Context, userID string) error
}
