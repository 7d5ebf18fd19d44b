package cli

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	_ "modernc.org/sqlite"

	"github.com/bobadragon/storefront/internal/callable"
	"github.com/bobadragon/storefront/internal/client/backend"
	"github.com/bobadragon/storefront/internal/client/cache"
	"github.com/bobadragon/storefront/internal/client/orders"
	"github.com/bobadragon/storefront/internal/client/session"
	"github.com/bobadragon/storefront/internal/client/state"
	"github.com/bobadragon/storefront/internal/client/ui"
	"github.com/bobadragon/storefront/internal/logging"
)

func newSessionCache(t *testing.T) *cache.SessionCache {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session_cache (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return cache.NewSessionCache(cache.NewSQLiteRepository(db))
}

// newRestoreApp wires an App against a live test server, the way NewApp
// does, minus the pieces restoreSession never touches.
func newRestoreApp(t *testing.T, handler http.HandlerFunc) (*App, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	log := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	store := state.NewStore()
	renderer := ui.NewTerm(&out)
	api := backend.NewHTTPClient(srv.URL, 2*time.Second)
	feed := orders.NewFeed(api, time.Hour, log)

	return &App{
		store:    store,
		api:      api,
		session:  session.NewController(store, api, api, api, feed, renderer, log),
		sessions: newSessionCache(t),
		renderer: renderer,
		log:      log,
	}, &out
}

func TestRestoreSession_CachedTokenSignsBackIn(t *testing.T) {
	a, _ := newRestoreApp(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/callable/refreshToken":
			callable.WriteResult(w, map[string]string{
				"uid": "u-1", "accessToken": "at-new", "refreshToken": "rt-new",
			})
		case "/callable/getProfile":
			callable.WriteResult(w, map[string]any{
				"uid": "u-1", "name": "Dina Dragon", "email": "dina@example.com", "role": "customer",
			})
		case "/callable/getActivePromotions":
			callable.WriteResult(w, map[string]any{"promotions": []any{}})
		case "/callable/listMyOrders":
			callable.WriteResult(w, map[string]any{"orders": []any{}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, a.sessions.Save(ctx, &backend.Session{UID: "u-1", AccessToken: "at-old", RefreshToken: "rt-old"}))

	a.restoreSession(ctx, false)

	assert.Equal(t, "u-1", a.uid)
	require.NotNil(t, a.store.CurrentUser())
	assert.Equal(t, "dina@example.com", a.store.CurrentUser().Email)
	assert.Equal(t, ui.ViewHome, a.renderer.CurrentView())

	cached, err := a.sessions.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, "rt-new", cached.RefreshToken, "rotated token must be persisted")
}

func TestRestoreSession_ExpiredTokenDropsCacheAndStaysSignedOut(t *testing.T) {
	a, _ := newRestoreApp(t, func(w http.ResponseWriter, r *http.Request) {
		callable.WriteStatus(w, status.New(codes.Unauthenticated, "refresh token expired"))
	})
	ctx := context.Background()
	require.NoError(t, a.sessions.Save(ctx, &backend.Session{UID: "u-1", AccessToken: "at-old", RefreshToken: "rt-old"}))

	a.restoreSession(ctx, false)

	assert.Empty(t, a.uid)
	assert.Nil(t, a.store.CurrentUser())

	cached, err := a.sessions.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, cached, "expired session must be evicted")
}

func TestRestoreSession_EmptyCacheIsQuiet(t *testing.T) {
	a, out := newRestoreApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected, got %s", r.URL.Path)
	})

	a.restoreSession(context.Background(), false)

	assert.Empty(t, a.uid)
	assert.Empty(t, out.String())
}
