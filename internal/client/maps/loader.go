// Package maps lazily resolves the Google Maps script URL for the
// shipping address picker. The API key lives server-side and is fetched
// through an authenticated call at most once per successful attempt.
package maps

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/bobadragon/storefront/internal/logging"
)

const scriptBase = "https://maps.googleapis.com/maps/api/js"

// KeyClient fetches the Maps browser key from the backend.
type KeyClient interface {
	MapsAPIKey(ctx context.Context) (string, error)
}

// Loader guards the key fetch so that concurrent callers trigger at most
// one request, while a failed attempt re-arms the guard for a retry.
type Loader struct {
	client KeyClient
	log    logging.Logger

	mu        sync.Mutex
	scriptURL string
	loading   bool
	waiters   []chan result
}

type result struct {
	url string
	err error
}

func NewLoader(client KeyClient, log logging.Logger) *Loader {
	return &Loader{client: client, log: log}
}

// ScriptURL returns the fully formed Maps script URL, fetching the key on
// first use. Callers arriving while a fetch is in flight wait for its
// outcome instead of issuing their own request.
func (l *Loader) ScriptURL(ctx context.Context) (string, error) {
	l.mu.Lock()
	if l.scriptURL != "" {
		u := l.scriptURL
		l.mu.Unlock()
		return u, nil
	}
	if l.loading {
		ch := make(chan result, 1)
		l.waiters = append(l.waiters, ch)
		l.mu.Unlock()
		select {
		case r := <-ch:
			return r.url, r.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	l.loading = true
	l.mu.Unlock()

	key, err := l.client.MapsAPIKey(ctx)

	l.mu.Lock()
	l.loading = false
	var r result
	if err != nil {
		l.log.Warn(ctx, "maps key fetch failed", "error", err)
		r = result{err: fmt.Errorf("maps key: %w", err)}
	} else {
		q := url.Values{}
		q.Set("key", key)
		q.Set("libraries", "places")
		l.scriptURL = scriptBase + "?" + q.Encode()
		r = result{url: l.scriptURL}
	}
	waiters := l.waiters
	l.waiters = nil
	l.mu.Unlock()

	for _, ch := range waiters {
		ch <- r
	}
	return r.url, r.err
}
