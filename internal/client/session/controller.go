// Package session owns the authentication lifecycle: the transition between
// logged-out and logged-in, the profile fetch that completes a sign-in, and
// the side effects each transition triggers.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/bobadragon/storefront/internal/client/models"
	"github.com/bobadragon/storefront/internal/client/state"
	"github.com/bobadragon/storefront/internal/client/ui"
	"github.com/bobadragon/storefront/internal/common"
	"github.com/bobadragon/storefront/internal/logging"
)

// State is the controller's position in the auth lifecycle.
type State int

const (
	Unauthenticated State = iota
	Authenticating
	Authenticated
)

// ProfileClient fetches the user document keyed by the authenticated uid.
type ProfileClient interface {
	Profile(ctx context.Context, uid string) (*models.Profile, error)
}

// Authenticator is the slice of the auth collaborator needed for the
// fail-closed path: forcing an external sign-out.
type Authenticator interface {
	SignOut(ctx context.Context) error
}

// PromotionsClient loads the active promotions shown on the home view.
type PromotionsClient interface {
	ActivePromotions(ctx context.Context) ([]models.Promotion, error)
}

// OrdersWatcher starts a cancellable watch over one customer's orders.
type OrdersWatcher interface {
	Watch(ctx context.Context, uid string, onUpdate func([]models.Order)) context.CancelFunc
}

// Controller is the auth session state machine. It receives sign-in and
// sign-out events from the external authenticator and drives the store and
// renderer accordingly. It retains the order-feed cancel handle as owned
// state and invokes it exactly once on exit from Authenticated.
type Controller struct {
	store    *state.Store
	profiles ProfileClient
	auth     Authenticator
	promos   PromotionsClient
	feed     OrdersWatcher
	renderer ui.Renderer
	log      logging.Logger

	mu            sync.Mutex
	st            State
	ordersCancel  context.CancelFunc
	resumePending bool
}

func NewController(store *state.Store, profiles ProfileClient, auth Authenticator, promos PromotionsClient, feed OrdersWatcher, renderer ui.Renderer, log logging.Logger) *Controller {
	return &Controller{
		store:    store,
		profiles: profiles,
		auth:     auth,
		promos:   promos,
		feed:     feed,
		renderer: renderer,
		log:      log,
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st
}

// SetResumePending suppresses the home navigation on the next sign-in, so a
// payment return trip can route to the order history instead.
func (c *Controller) SetResumePending(pending bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resumePending = pending
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st = s
}

// HandleSignedIn reacts to an external sign-in event. The given context also
// scopes the customer order feed started on success, so callers pass the
// application context, not a per-call one.
//
// A session whose profile is missing is an integrity failure: the external
// session is forcibly closed rather than proceeding with a partial identity.
func (c *Controller) HandleSignedIn(ctx context.Context, uid string) error {
	c.setState(Authenticating)

	profile, err := c.profiles.Profile(ctx, uid)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.log.Error(ctx, "no profile for authenticated uid, forcing sign-out", "uid", uid)
			if serr := c.auth.SignOut(ctx); serr != nil {
				c.log.Error(ctx, "forced sign-out failed", "error", serr)
			}
			c.HandleSignedOut(ctx)
			return nil
		}
		c.renderer.Notify("Could not load your profile. Please try again.", true)
		c.setState(Unauthenticated)
		return err
	}

	c.store.SetCurrentUser(profile)
	c.setState(Authenticated)
	c.log.Info(ctx, "signed in", "uid", profile.UID, "role", string(profile.Role))

	if profile.Role == models.RoleCourier {
		c.renderer.SetNavVisible(false)
		c.renderer.NavigateTo(ui.ViewDispatchPanel)
		c.renderer.DispatchPanel(profile)
		return nil
	}

	c.renderer.SetNavVisible(true)

	c.mu.Lock()
	skipHome := c.resumePending
	c.mu.Unlock()
	if !skipHome {
		c.renderer.NavigateTo(ui.ViewHome)
		c.loadPromotions(ctx, profile)
	}

	if profile.Role == models.RoleCustomer {
		c.startOrdersFeed(ctx, profile.UID)
	}
	return nil
}

// HandleSignedOut reacts to an external sign-out event from any state:
// cancel the order feed, clear session and cart, restore the login wall.
func (c *Controller) HandleSignedOut(ctx context.Context) {
	c.mu.Lock()
	cancel := c.ordersCancel
	c.ordersCancel = nil
	c.st = Unauthenticated
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	c.store.SetCurrentUser(nil)
	c.store.ClearCart()
	c.store.SetOrders(nil)

	c.renderer.CartBadge(0)
	c.renderer.SetNavVisible(false)
	c.renderer.NavigateTo(ui.ViewAuthWall)
	c.renderer.AuthWall()
	c.log.Info(ctx, "signed out")
}

func (c *Controller) loadPromotions(ctx context.Context, profile *models.Profile) {
	promos, err := c.promos.ActivePromotions(ctx)
	if err != nil {
		c.log.Warn(ctx, "loading promotions failed", "error", err)
		c.renderer.Home(profile, nil)
		c.renderer.Notify("Could not load promotions.", true)
		return
	}
	c.store.SetPromotions(promos)
	c.renderer.Home(profile, promos)
}

// startOrdersFeed subscribes to the customer's orders. At most one feed is
// active per session; an existing one is cancelled before the replacement
// starts.
func (c *Controller) startOrdersFeed(ctx context.Context, uid string) {
	c.mu.Lock()
	prev := c.ordersCancel
	c.mu.Unlock()
	if prev != nil {
		prev()
	}

	cancel := c.feed.Watch(ctx, uid, func(orders []models.Order) {
		c.store.SetOrders(orders)
		if v, ok := c.renderer.(interface{ CurrentView() ui.View }); ok && v.CurrentView() == ui.ViewOrders {
			c.renderer.Orders(orders)
		}
	})

	c.mu.Lock()
	c.ordersCancel = cancel
	c.mu.Unlock()
}
