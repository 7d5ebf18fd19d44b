// Package server initializes and runs the storefront backend: it opens the
// PostgreSQL connection, applies schema migrations, wires the domain services
// together and starts the callable HTTP endpoint with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/bobadragon/storefront/internal/logging"
	"github.com/bobadragon/storefront/internal/server/assets"
	"github.com/bobadragon/storefront/internal/server/checkout"
	"github.com/bobadragon/storefront/internal/server/config"
	"github.com/bobadragon/storefront/internal/server/httpapi"
	"github.com/bobadragon/storefront/internal/server/payments"
	"github.com/bobadragon/storefront/internal/server/promotions"
	"github.com/bobadragon/storefront/internal/server/repositories/repomanager"
	"github.com/bobadragon/storefront/internal/server/store"
	"github.com/bobadragon/storefront/internal/server/users"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	us := users.NewService(db, rm, c)
	cs := checkout.NewService(payments.NewStripeClient(c.StripeAPIBase, c.StripeSecretKey), rm.Orders(db), c.ClientBaseURL, c.ShippingCost)
	ps := promotions.NewService(rm.Promotions(db), assets.NewPresigner(c), logger)
	ss := store.NewService(rm.StoreSettings(db))

	srv := httpapi.NewServer(c.EndpointAddr, us, cs, rm.Orders(db), ps, ss,
		c.MapsAPIKey, []byte(c.SecretKey), logger)

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting storefront backend", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, "http server stopped", "error", err)
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
