package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobadragon/storefront/internal/common"
	"github.com/bobadragon/storefront/internal/dbx"
	"github.com/bobadragon/storefront/internal/server/auth"
	"github.com/bobadragon/storefront/internal/server/config"
	"github.com/bobadragon/storefront/internal/server/models"
	"github.com/bobadragon/storefront/internal/server/repositories/orders"
	"github.com/bobadragon/storefront/internal/server/repositories/promotions"
	"github.com/bobadragon/storefront/internal/server/repositories/refreshtokens"
	"github.com/bobadragon/storefront/internal/server/repositories/storesettings"
	usersrepo "github.com/bobadragon/storefront/internal/server/repositories/users"
)

type fakeUserRepo struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User
	created []*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*models.User{}, byID: map[string]*models.User{}}
}

func (f *fakeUserRepo) add(u *models.User) {
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	if _, ok := f.byEmail[user.Email]; ok {
		return nil, common.ErrAlreadyExists
	}
	user.ID = "u-1"
	f.add(user)
	f.created = append(f.created, user)
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

type fakeTokenRepo struct {
	tokens    map[string]string
	createErr error
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]string{}}
}

func (f *fakeTokenRepo) Create(_ context.Context, userID, token string, _ time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.tokens[token] = userID
	return nil
}

func (f *fakeTokenRepo) GetUserID(_ context.Context, token string) (string, error) {
	uid, ok := f.tokens[token]
	if !ok {
		return "", common.ErrInvalidToken
	}
	return uid, nil
}

func (f *fakeTokenRepo) Delete(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

func (f *fakeTokenRepo) DeleteForUser(_ context.Context, userID string) error {
	for t, uid := range f.tokens {
		if uid == userID {
			delete(f.tokens, t)
		}
	}
	return nil
}

// fakeRepoManager vends the fakes regardless of the handle, so the same
// repositories serve both plain and transactional calls.
type fakeRepoManager struct {
	users  *fakeUserRepo
	tokens *fakeTokenRepo
}

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (f *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository { return f.users }

func (f *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return f.tokens }

func (f *fakeRepoManager) Promotions(dbx.DBTX) promotions.Repository { return nil }

func (f *fakeRepoManager) Orders(dbx.DBTX) orders.Repository { return nil }

func (f *fakeRepoManager) StoreSettings(dbx.DBTX) storesettings.Repository { return nil }

func newService(t *testing.T, repo *fakeUserRepo, tokens *fakeTokenRepo) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{
		SecretKey:                    "test-secret",
		AccessTokenValidityDuration:  time.Minute,
		RefreshTokenValidityDuration: time.Hour,
	}
	return NewService(db, &fakeRepoManager{users: repo, tokens: tokens}, cfg), mock
}

func TestRegister_DefaultProfileShape(t *testing.T) {
	repo := newFakeUserRepo()
	s, _ := newService(t, repo, newFakeTokenRepo())

	user, err := s.Register(context.Background(), "Alice", "alice@example.com", []byte("secret1"))
	require.NoError(t, err)

	assert.Equal(t, "customer", user.Role)
	assert.Zero(t, user.RewardPoints)
	assert.NotNil(t, user.Coupons)
	assert.Empty(t, user.Coupons)
	assert.True(t, strings.HasPrefix(user.ReferralCode, "DRAGON-"), "referral code: %q", user.ReferralCode)
	assert.Empty(t, user.FCMToken)
	assert.True(t, auth.CheckPassword(user.PasswordHash, []byte("secret1")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&models.User{ID: "u-0", Email: "taken@example.com"})
	s, _ := newService(t, repo, newFakeTokenRepo())

	_, err := s.Register(context.Background(), "Bob", "taken@example.com", []byte("secret1"))
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	s, _ := newService(t, repo, tokens)

	_, err := s.Register(context.Background(), "Alice", "alice@example.com", []byte("secret1"))
	require.NoError(t, err)

	sess, err := s.Login(context.Background(), "alice@example.com", []byte("secret1"))
	require.NoError(t, err)

	assert.Equal(t, "u-1", sess.UID)
	assert.NotEmpty(t, sess.AccessToken)
	assert.NotEmpty(t, sess.RefreshToken)
	assert.Contains(t, tokens.tokens, sess.RefreshToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	s, _ := newService(t, repo, newFakeTokenRepo())

	_, err := s.Register(context.Background(), "Alice", "alice@example.com", []byte("secret1"))
	require.NoError(t, err)

	_, err = s.Login(context.Background(), "alice@example.com", []byte("wrong-1"))
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestLogin_UnknownEmail(t *testing.T) {
	s, _ := newService(t, newFakeUserRepo(), newFakeTokenRepo())

	_, err := s.Login(context.Background(), "nobody@example.com", []byte("secret1"))
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestRefresh_RotatesToken(t *testing.T) {
	repo := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	s, mock := newService(t, repo, tokens)

	_, err := s.Register(context.Background(), "Alice", "alice@example.com", []byte("secret1"))
	require.NoError(t, err)
	sess, err := s.Login(context.Background(), "alice@example.com", []byte("secret1"))
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	fresh, err := s.Refresh(context.Background(), sess.RefreshToken)
	require.NoError(t, err)

	assert.Equal(t, sess.UID, fresh.UID)
	assert.NotEqual(t, sess.RefreshToken, fresh.RefreshToken)
	assert.NotContains(t, tokens.tokens, sess.RefreshToken, "old token must be invalidated")

	_, err = s.Refresh(context.Background(), sess.RefreshToken)
	assert.ErrorIs(t, err, common.ErrUnauthenticated, "used token must not refresh again")
}

func TestProfile_MissingAccount(t *testing.T) {
	s, _ := newService(t, newFakeUserRepo(), newFakeTokenRepo())

	_, err := s.Profile(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRefresh_RotationRunsInOneTransaction(t *testing.T) {
	repo := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	s, mock := newService(t, repo, tokens)

	_, err := s.Register(context.Background(), "Alice", "alice@example.com", []byte("secret1"))
	require.NoError(t, err)
	sess, err := s.Login(context.Background(), "alice@example.com", []byte("secret1"))
	require.NoError(t, err)

	// when re-issuing fails the delete must roll back with it
	tokens.createErr = errors.New("insert failed")
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err = s.Refresh(context.Background(), sess.RefreshToken)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
