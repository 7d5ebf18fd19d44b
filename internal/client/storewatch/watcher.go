// Package storewatch keeps the open/closed indicator current by polling
// the backend on a fixed interval for the lifetime of the app.
package storewatch

import (
	"context"
	"time"

	"github.com/bobadragon/storefront/internal/client/models"
	"github.com/bobadragon/storefront/internal/client/state"
	"github.com/bobadragon/storefront/internal/logging"
)

const checkTimeout = 5 * time.Second

// StatusClient fetches the current store status.
type StatusClient interface {
	StoreStatus(ctx context.Context) (models.StoreStatus, error)
}

type Watcher struct {
	client   StatusClient
	store    *state.Store
	interval time.Duration
	log      logging.Logger
	onChange func(models.StoreStatus)
}

func NewWatcher(client StatusClient, store *state.Store, interval time.Duration, log logging.Logger) *Watcher {
	return &Watcher{client: client, store: store, interval: interval, log: log}
}

// OnChange registers a callback invoked after each successful status commit.
func (w *Watcher) OnChange(fn func(models.StoreStatus)) {
	w.onChange = fn
}

// Start checks the status immediately and then on every tick until the
// context is cancelled. Failed checks keep the last known status.
func (w *Watcher) Start(ctx context.Context) {
	go func() {
		w.check(ctx)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.check(ctx)
			}
		}
	}()
}

func (w *Watcher) check(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	st, err := w.client.StoreStatus(ctx)
	if err != nil {
		w.log.Warn(ctx, "store status check failed", "error", err)
		return
	}
	w.log.Debug(ctx, "store status checked", "open", st.Open)
	w.store.SetStoreStatus(st)
	if w.onChange != nil {
		w.onChange(st)
	}
}
