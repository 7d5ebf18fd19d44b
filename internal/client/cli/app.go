package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/bobadragon/storefront/internal/client/backend"
	"github.com/bobadragon/storefront/internal/client/cache"
	"github.com/bobadragon/storefront/internal/client/checkout"
	"github.com/bobadragon/storefront/internal/client/config"
	"github.com/bobadragon/storefront/internal/client/maps"
	"github.com/bobadragon/storefront/internal/client/orders"
	"github.com/bobadragon/storefront/internal/client/session"
	"github.com/bobadragon/storefront/internal/client/state"
	"github.com/bobadragon/storefront/internal/client/storewatch"
	"github.com/bobadragon/storefront/internal/client/ui"
	"github.com/bobadragon/storefront/internal/logging"
)

// browserNavigator hands a payment URL to the user. The terminal client
// cannot follow redirects itself, so it prints the link to open.
type browserNavigator struct {
	w io.Writer
}

func (n *browserNavigator) Redirect(url string) {
	fmt.Fprintf(n.w, "Open this link to complete your payment:\n%s\n", url)
}

type App struct {
	config   *config.Config
	store    *state.Store
	api      *backend.HTTPClient
	session  *session.Controller
	checkout *checkout.Orchestrator
	sessions *cache.SessionCache
	maps     *maps.Loader
	renderer *ui.Term
	watcher  *storewatch.Watcher
	log      logging.Logger
	reader   *bufio.Reader
	uid      string
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := cache.InitDatabase(ctx, c.CacheDSN)
	if err != nil {
		log.Error(ctx, "error initializing cache database", "error", err)
		return nil, err
	}

	store := state.NewStore()
	renderer := ui.NewTerm(os.Stdout)
	api := backend.NewHTTPClient(c.ServerBaseURL, c.HTTPTimeout)
	feed := orders.NewFeed(api, c.OrdersPollInterval, log)
	ctrl := session.NewController(store, api, api, api, feed, renderer, log)
	co := checkout.NewOrchestrator(store, api, &browserNavigator{w: os.Stdout}, renderer, log)
	watcher := storewatch.NewWatcher(api, store, c.StoreStatusInterval, log)

	return &App{
		config:   c,
		store:    store,
		api:      api,
		session:  ctrl,
		checkout: co,
		sessions: cache.NewSessionCache(cache.NewSQLiteRepository(db)),
		maps:     maps.NewLoader(api, log),
		renderer: renderer,
		watcher:  watcher,
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == session.Authenticated
}

// Run restores any persisted session, consumes a payment redirect carried
// in the startup query, starts the store status watcher and enters the REPL.
func (a *App) Run(ctx context.Context) {
	query, consumable := a.startupQuery(ctx)
	a.restoreSession(ctx, consumable)

	if consumable {
		_, consumed := a.checkout.Resume(ctx, query)
		a.session.SetResumePending(false)
		if consumed && !a.isLoggedIn() {
			a.renderer.Notify("Sign in to see your order.", false)
		}
	}

	a.watcher.Start(ctx)

	if !a.isLoggedIn() {
		a.renderer.AuthWall()
	}

	runREPL(ctx, a, a.statusLine, bufio.NewScanner(os.Stdin))
}

// startupQuery parses the query string handed over on the command line and
// reports whether it carries a payment outcome worth consuming.
func (a *App) startupQuery(ctx context.Context) (url.Values, bool) {
	if a.config.StartupQuery == "" {
		return nil, false
	}
	q, err := url.ParseQuery(a.config.StartupQuery)
	if err != nil {
		a.log.Warn(ctx, "ignoring malformed startup query", "error", err)
		return nil, false
	}
	return q, q.Has("payment_status")
}

// restoreSession exchanges a cached refresh token for a fresh session. Any
// failure falls back to the signed-out state without bothering the user.
func (a *App) restoreSession(ctx context.Context, resumePending bool) {
	cached, err := a.sessions.Load(ctx)
	if err != nil {
		a.log.Warn(ctx, "failed to load cached session", "error", err)
		return
	}
	if cached == nil {
		return
	}

	fresh, err := a.api.Refresh(ctx, cached.RefreshToken)
	if err != nil {
		a.log.Warn(ctx, "cached session expired", "error", err)
		_ = a.sessions.Drop(ctx)
		return
	}
	if err := a.sessions.Save(ctx, fresh); err != nil {
		a.log.Warn(ctx, "failed to persist refreshed session", "error", err)
	}

	a.session.SetResumePending(resumePending)
	if err := a.session.HandleSignedIn(ctx, fresh.UID); err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
		return
	}
	a.uid = fresh.UID
}

func (a *App) statusLine() string {
	st := a.store.StoreStatus()
	open := "closed"
	if st.Open {
		open = "open"
	}
	if user := a.store.CurrentUser(); user != nil {
		return fmt.Sprintf("%s | %s", user.Email, open)
	}
	return "guest | " + open
}
