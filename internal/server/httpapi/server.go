// Package httpapi exposes the callable endpoints the client consumes. Each
// endpoint is an HTTP POST of a JSON data envelope, answered with a result
// or a canonical-code error.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/bobadragon/storefront/internal/logging"
	"github.com/bobadragon/storefront/internal/server/checkout"
	"github.com/bobadragon/storefront/internal/server/models"
	"github.com/bobadragon/storefront/internal/server/payments"
	"github.com/bobadragon/storefront/internal/server/promotions"
	"github.com/bobadragon/storefront/internal/server/store"
	"github.com/bobadragon/storefront/internal/server/users"
)

// UserService is the account surface the handlers need.
type UserService interface {
	Register(ctx context.Context, name, email string, password []byte) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (*users.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*users.Session, error)
	Profile(ctx context.Context, uid string) (*models.User, error)
}

// CheckoutService opens payment sessions and applies their outcome.
type CheckoutService interface {
	CreateSession(ctx context.Context, userID string, cart []checkout.CartLine, shippingCost int64) (*payments.CheckoutSession, error)
	ConfirmPayment(ctx context.Context, sessionID string) error
}

// OrderLister returns a user's order history, newest first.
type OrderLister interface {
	ListForUser(ctx context.Context, userID string) ([]models.Order, error)
}

// PromotionService lists the active banners.
type PromotionService interface {
	ListActive(ctx context.Context) ([]promotions.Promotion, error)
}

// StoreService resolves the open/closed status and takes the manual
// override.
type StoreService interface {
	Status(ctx context.Context) (*store.Status, error)
	SetManualStatus(ctx context.Context, status string) error
}

type Server struct {
	users      UserService
	checkout   CheckoutService
	orders     OrderLister
	promotions PromotionService
	store      StoreService
	mapsAPIKey string
	jwtSecret  []byte
	log        logging.Logger
	httpServer *http.Server
}

func NewServer(addr string, users UserService, co CheckoutService, orders OrderLister,
	promos PromotionService, st StoreService, mapsAPIKey string, jwtSecret []byte, log logging.Logger) *Server {

	s := &Server{
		users:      users,
		checkout:   co,
		orders:     orders,
		promotions: promos,
		store:      st,
		mapsAPIKey: mapsAPIKey,
		jwtSecret:  jwtSecret,
		log:        log,
	}

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return s
}

// Router builds the callable route table. Auth-free endpoints are the ones
// a signed-out client needs; everything else goes through the bearer check.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	pub := r.PathPrefix("/callable").Subrouter()
	pub.HandleFunc("/registerUser", s.handleRegister).Methods(http.MethodPost)
	pub.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	pub.HandleFunc("/refreshToken", s.handleRefresh).Methods(http.MethodPost)
	pub.HandleFunc("/getStoreStatus", s.handleStoreStatus).Methods(http.MethodPost)

	priv := r.PathPrefix("/callable").Subrouter()
	priv.Use(s.authMiddleware)
	priv.HandleFunc("/getProfile", s.handleProfile).Methods(http.MethodPost)
	priv.HandleFunc("/createStripeCheckout", s.handleCreateCheckout).Methods(http.MethodPost)
	priv.HandleFunc("/confirmPayment", s.handleConfirmPayment).Methods(http.MethodPost)
	priv.HandleFunc("/setStoreStatus", s.handleSetStoreStatus).Methods(http.MethodPost)
	priv.HandleFunc("/getGoogleMapsApiKey", s.handleMapsAPIKey).Methods(http.MethodPost)
	priv.HandleFunc("/getActivePromotions", s.handlePromotions).Methods(http.MethodPost)
	priv.HandleFunc("/listMyOrders", s.handleOrders).Methods(http.MethodPost)

	return r
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
