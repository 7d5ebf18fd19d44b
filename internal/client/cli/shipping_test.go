package cli

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobadragon/storefront/internal/client/config"
	"github.com/bobadragon/storefront/internal/client/maps"
	"github.com/bobadragon/storefront/internal/client/state"
	"github.com/bobadragon/storefront/internal/logging"
)

type fakeKeyClient struct {
	key string
	err error
}

func (f *fakeKeyClient) MapsAPIKey(_ context.Context) (string, error) {
	return f.key, f.err
}

func newDeliveryApp(t *testing.T, keys *fakeKeyClient) *App {
	t.Helper()
	a, _ := newTestApp(t, "")
	a.store = state.NewStore()
	a.config = &config.Config{DeliveryFee: 3500}
	a.maps = maps.NewLoader(keys, logging.NewSlogLogger(slog.New(slog.DiscardHandler)))
	return a
}

func TestDeliver_TogglesShippingOnAndOff(t *testing.T) {
	a := newDeliveryApp(t, &fakeKeyClient{key: "AIza-test"})

	require.NoError(t, a.Deliver(context.Background()))
	info := a.store.ShippingInfo()
	require.NotNil(t, info)
	assert.Equal(t, int64(3500), info.Cost)

	require.NoError(t, a.Deliver(context.Background()))
	assert.Nil(t, a.store.ShippingInfo())
}

func TestDeliver_KeyFetchFailureLeavesPickup(t *testing.T) {
	a := newDeliveryApp(t, &fakeKeyClient{err: errors.New("boom")})

	require.NoError(t, a.Deliver(context.Background()))

	assert.Nil(t, a.store.ShippingInfo())
}
