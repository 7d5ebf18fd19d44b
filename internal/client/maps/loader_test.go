package maps

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobadragon/storefront/internal/logging"
)

type fakeKeyClient struct {
	calls int
	key   string
	errs  []error
}

func (f *fakeKeyClient) MapsAPIKey(_ context.Context) (string, error) {
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return "", err
		}
	}
	return f.key, nil
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}

func TestScriptURL_FetchesKeyOnce(t *testing.T) {
	client := &fakeKeyClient{key: "AIza-test"}
	l := NewLoader(client, discardLogger())

	u1, err := l.ScriptURL(context.Background())
	require.NoError(t, err)
	u2, err := l.ScriptURL(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "https://maps.googleapis.com/maps/api/js?key=AIza-test&libraries=places", u1)
	assert.Equal(t, u1, u2)
	assert.Equal(t, 1, client.calls, "key must be fetched at most once")
}

func TestScriptURL_FailureReArmsFetch(t *testing.T) {
	client := &fakeKeyClient{key: "AIza-test", errs: []error{errors.New("unavailable")}}
	l := NewLoader(client, discardLogger())

	_, err := l.ScriptURL(context.Background())
	require.Error(t, err)

	u, err := l.ScriptURL(context.Background())
	require.NoError(t, err)
	assert.Contains(t, u, "key=AIza-test")
	assert.Equal(t, 2, client.calls, "a failed attempt must allow a retry")
}
