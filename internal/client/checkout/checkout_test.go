package checkout

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobadragon/storefront/internal/client/backend"
	"github.com/bobadragon/storefront/internal/client/models"
	"github.com/bobadragon/storefront/internal/client/state"
	"github.com/bobadragon/storefront/internal/client/ui"
	"github.com/bobadragon/storefront/internal/logging"
)

type fakePaymentClient struct {
	calls        int
	gotLines     []models.CartLine
	gotShipping  int64
	confirmedSID string
	confirmErr   error
	session      *backend.CheckoutSession
	err          error
	busyDuring   bool
	renderer     *ui.Term
	checkControl bool
}

func (f *fakePaymentClient) ConfirmPayment(_ context.Context, sessionID string) error {
	if f.confirmErr != nil {
		return f.confirmErr
	}
	f.confirmedSID = sessionID
	return nil
}

func (f *fakePaymentClient) CreateCheckoutSession(_ context.Context, lines []models.CartLine, shippingCost int64) (*backend.CheckoutSession, error) {
	f.calls++
	f.gotLines = lines
	f.gotShipping = shippingCost
	if f.checkControl {
		f.busyDuring = f.renderer.IsBusy(CheckoutControl)
	}
	return f.session, f.err
}

type fakeNavigator struct {
	redirectedTo string
}

func (f *fakeNavigator) Redirect(url string) { f.redirectedTo = url }

func newOrchestrator(t *testing.T, client *fakePaymentClient) (*Orchestrator, *state.Store, *fakeNavigator, *ui.Term) {
	t.Helper()
	store := state.NewStore()
	nav := &fakeNavigator{}
	term := ui.NewTerm(&bytes.Buffer{})
	client.renderer = term
	log := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	return NewOrchestrator(store, client, nav, term, log), store, nav, term
}

var taro = models.CatalogItem{ID: "taro", Name: "Taro Milk Tea", Price: 6500}

func TestProceedToCheckout_EmptyCartMakesNoNetworkCall(t *testing.T) {
	client := &fakePaymentClient{}
	o, _, nav, _ := newOrchestrator(t, client)

	require.NoError(t, o.ProceedToCheckout(context.Background()))

	assert.Zero(t, client.calls, "collaborator must not be called for an empty cart")
	assert.Empty(t, nav.redirectedTo)
}

func TestProceedToCheckout_RedirectsOnSuccess(t *testing.T) {
	client := &fakePaymentClient{
		session:      &backend.CheckoutSession{ID: "cs_1", URL: "https://pay.example/cs_1"},
		checkControl: true,
	}
	o, store, nav, term := newOrchestrator(t, client)

	store.AddToCart(taro, nil)
	store.AddToCart(taro, nil)
	store.SetShippingInfo(&models.ShippingInfo{Cost: 1500})

	require.NoError(t, o.ProceedToCheckout(context.Background()))

	assert.Equal(t, "https://pay.example/cs_1", nav.redirectedTo)
	require.Len(t, client.gotLines, 1)
	assert.Equal(t, 2, client.gotLines[0].Quantity)
	assert.Equal(t, int64(1500), client.gotShipping)
	assert.True(t, client.busyDuring, "control must be busy during the call")
	assert.False(t, term.IsBusy(CheckoutControl), "busy state must be reverted")
}

func TestProceedToCheckout_FailureLeavesCartIntact(t *testing.T) {
	client := &fakePaymentClient{err: errors.New("internal")}
	o, store, nav, term := newOrchestrator(t, client)

	store.AddToCart(taro, nil)

	err := o.ProceedToCheckout(context.Background())
	require.Error(t, err)

	assert.Empty(t, nav.redirectedTo)
	assert.Len(t, store.Cart(), 1, "cart must be left untouched for retry")
	assert.False(t, term.IsBusy(CheckoutControl), "loading state must be reverted on failure")
}

func TestResume_SuccessClearsCartAndShowsOrders(t *testing.T) {
	o, store, _, term := newOrchestrator(t, &fakePaymentClient{})
	store.AddToCart(taro, nil)

	q, _ := url.ParseQuery("payment_status=success&utm=x")
	cleaned, consumed := o.Resume(context.Background(), q)

	assert.True(t, consumed)
	assert.Empty(t, store.Cart())
	assert.Equal(t, ui.ViewOrders, term.CurrentView())
	assert.Empty(t, cleaned.Get("payment_status"), "parameter must be stripped")
	assert.Equal(t, "x", cleaned.Get("utm"), "unrelated parameters survive")
}

func TestResume_CancelKeepsCart(t *testing.T) {
	o, store, _, term := newOrchestrator(t, &fakePaymentClient{})
	store.AddToCart(taro, nil)

	q, _ := url.ParseQuery("payment_status=cancel")
	cleaned, consumed := o.Resume(context.Background(), q)

	assert.True(t, consumed)
	assert.Len(t, store.Cart(), 1)
	assert.NotEqual(t, ui.ViewOrders, term.CurrentView())
	assert.Empty(t, cleaned.Get("payment_status"))
}

func TestResume_NoOutcomeIsNoop(t *testing.T) {
	o, store, _, _ := newOrchestrator(t, &fakePaymentClient{})
	store.AddToCart(taro, nil)

	q, _ := url.ParseQuery("foo=bar")
	_, consumed := o.Resume(context.Background(), q)

	assert.False(t, consumed)
	assert.Len(t, store.Cart(), 1)
}

func TestResume_SuccessConfirmsSession(t *testing.T) {
	client := &fakePaymentClient{}
	o, store, _, _ := newOrchestrator(t, client)
	store.AddToCart(taro, nil)

	q, _ := url.ParseQuery("payment_status=success&session_id=cs_7")
	cleaned, consumed := o.Resume(context.Background(), q)

	assert.True(t, consumed)
	assert.Equal(t, "cs_7", client.confirmedSID)
	assert.Empty(t, cleaned.Get("session_id"), "session id must be stripped")
	assert.Empty(t, store.Cart())
}

func TestResume_ConfirmFailureStillCompletes(t *testing.T) {
	client := &fakePaymentClient{confirmErr: errors.New("unavailable")}
	o, store, _, term := newOrchestrator(t, client)
	store.AddToCart(taro, nil)

	q, _ := url.ParseQuery("payment_status=success&session_id=cs_7")
	_, consumed := o.Resume(context.Background(), q)

	assert.True(t, consumed)
	assert.Empty(t, store.Cart(), "the payment went through, so the cart is done")
	assert.Equal(t, ui.ViewOrders, term.CurrentView())
}

func TestResume_CancelDoesNotConfirm(t *testing.T) {
	client := &fakePaymentClient{}
	o, store, _, _ := newOrchestrator(t, client)
	store.AddToCart(taro, nil)

	q, _ := url.ParseQuery("payment_status=cancel&session_id=cs_7")
	_, consumed := o.Resume(context.Background(), q)

	assert.True(t, consumed)
	assert.Empty(t, client.confirmedSID, "cancelled payments are never confirmed")
	assert.Len(t, store.Cart(), 1)
}
