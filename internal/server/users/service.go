// Package users implements account registration, login and session refresh.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bobadragon/storefront/internal/common"
	"github.com/bobadragon/storefront/internal/dbx"
	"github.com/bobadragon/storefront/internal/server/auth"
	"github.com/bobadragon/storefront/internal/server/config"
	"github.com/bobadragon/storefront/internal/server/models"
	"github.com/bobadragon/storefront/internal/server/repositories/refreshtokens"
	"github.com/bobadragon/storefront/internal/server/repositories/repomanager"
)

// Session is the token pair handed to a signed-in client together with
// the account it belongs to.
type Session struct {
	UID          string
	AccessToken  string
	RefreshToken string
}

type Service struct {
	db                           *sql.DB
	rm                           repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewService(db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config) *Service {
	return &Service{
		db:                           db,
		rm:                           rm,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register creates a new account with the default profile shape: customer
// role, zero reward points, no coupons and a fresh referral code. A taken
// email surfaces as ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, name, email string, password []byte) (*models.User, error) {

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	code, err := common.NewReferralCode()
	if err != nil {
		return nil, fmt.Errorf("generating referral code: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         "customer",
		RewardPoints: 0,
		Coupons:      []string{},
		ReferralCode: code,
		FCMToken:     "",
	}

	user, err = s.rm.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

func (s *Service) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *Service) issueSession(ctx context.Context, tokens refreshtokens.Repository, user *models.User) (*Session, error) {
	accessToken, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrInternal
	}

	refreshToken, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrInternal
	}

	if err := tokens.Create(ctx, user.ID, refreshToken, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrInternal
	}

	return &Session{UID: user.ID, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Login checks the credentials and issues a token pair. A wrong email and
// a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email string, password []byte) (*Session, error) {

	user, err := s.rm.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthenticated
		}
		return nil, common.ErrInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrUnauthenticated
	}

	return s.issueSession(ctx, s.rm.RefreshTokens(s.db), user)
}

// Refresh rotates a refresh token: the presented token is invalidated and
// a fresh pair is issued. Delete and re-issue run in one transaction so a
// failure mid-rotation cannot strand the user without a valid token.
// Unknown or expired tokens fail authentication.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*Session, error) {

	userID, err := s.rm.RefreshTokens(s.db).GetUserID(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrInvalidToken) || errors.Is(err, common.ErrTokenExpired) {
			return nil, common.ErrUnauthenticated
		}
		return nil, common.ErrInternal
	}

	user, err := s.rm.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, common.ErrInternal
	}

	var session *Session
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		tokens := s.rm.RefreshTokens(tx)
		if err := tokens.Delete(ctx, refreshToken); err != nil {
			return err
		}
		var err error
		session, err = s.issueSession(ctx, tokens, user)
		return err
	})
	if err != nil {
		return nil, common.ErrInternal
	}

	return session, nil
}

// Profile returns the stored account for uid. A registered session whose
// account row has gone missing surfaces as ErrNotFound so the client can
// fail closed.
func (s *Service) Profile(ctx context.Context, uid string) (*models.User, error) {
	user, err := s.rm.Users(s.db).GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}
	return user, nil
}
