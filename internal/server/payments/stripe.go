package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bobadragon/storefront/internal/server/models"
)

const currency = "mxn"

// StripeClient talks to the Stripe Checkout API directly over its
// form-encoded HTTP surface.
type StripeClient struct {
	apiBase    string
	secretKey  string
	httpClient *http.Client
}

func NewStripeClient(apiBase, secretKey string) *StripeClient {
	return &StripeClient{
		apiBase:    strings.TrimRight(apiBase, "/"),
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateCheckoutSession opens a payment-mode checkout session with one
// line item per order item. Amounts are integer minor units throughout.
func (c *StripeClient) CreateCheckoutSession(ctx context.Context, items []models.OrderItem, successURL, cancelURL string) (*CheckoutSession, error) {

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)

	for i, item := range items {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", currency)
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.UnitPrice, 10))
		form.Set(prefix+"[quantity]", strconv.Itoa(item.Quantity))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiBase+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.secretKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stripe request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return nil, fmt.Errorf("stripe: %s (http %d)", apiErr.Error.Message, resp.StatusCode)
	}

	var out struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding stripe response: %w", err)
	}

	return &CheckoutSession{ID: out.ID, URL: out.URL}, nil
}

var _ Provider = (*StripeClient)(nil)
