package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"google.golang.org/grpc/codes"

	"github.com/bobadragon/storefront/internal/callable"
	"github.com/bobadragon/storefront/internal/client/models"
	"github.com/bobadragon/storefront/internal/common"
)

// HTTPClient talks to the callable backend over HTTP. It owns the session
// tokens: Login/Refresh store them, SignOut discards them, and every
// authenticated call sends the access token as a bearer credential. The
// token pair is read by background pollers while the REPL signs in and out,
// so it is guarded by a mutex.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	refresh     string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) setTokens(access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = access
	c.refresh = refresh
}

func (c *HTTPClient) bearerToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken
}

// call posts the {"data": in} envelope to the named callable and decodes the
// result into out. Transport failures map to ErrUnavailable; error envelopes
// map to sentinels by canonical code.
func (c *HTTPClient) call(ctx context.Context, name string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", name, err)
	}
	body, err := json.Marshal(callable.Request{Data: payload})
	if err != nil {
		return fmt.Errorf("encoding %s envelope: %w", name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/callable/"+name, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if tok := c.bearerToken(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var envelope callable.Response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decoding %s response: %w", name, err)
	}
	if envelope.Error != nil {
		return mapError(envelope.Error)
	}
	if out != nil && len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, out); err != nil {
			return fmt.Errorf("decoding %s result: %w", name, err)
		}
	}
	return nil
}

func mapError(e *callable.ErrorBody) error {
	var sentinel error
	switch e.Code() {
	case codes.Unauthenticated:
		sentinel = common.ErrUnauthenticated
	case codes.NotFound:
		sentinel = common.ErrNotFound
	case codes.AlreadyExists:
		sentinel = common.ErrAlreadyExists
	case codes.Unavailable:
		sentinel = common.ErrUnavailable
	case codes.InvalidArgument:
		sentinel = common.ErrValidation
	default:
		sentinel = common.ErrInternal
	}
	return fmt.Errorf("%w: %s", sentinel, e.Message)
}

type sessionDTO struct {
	UID          string `json:"uid"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (c *HTTPClient) Register(ctx context.Context, name, email string, password []byte) error {
	in := struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Name: name, Email: email, Password: string(password)}
	return c.call(ctx, "registerUser", in, nil)
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (*Session, error) {
	in := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: string(password)}

	var out sessionDTO
	if err := c.call(ctx, "login", in, &out); err != nil {
		return nil, err
	}
	c.setTokens(out.AccessToken, out.RefreshToken)
	return &Session{UID: out.UID, AccessToken: out.AccessToken, RefreshToken: out.RefreshToken}, nil
}

func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	in := struct {
		RefreshToken string `json:"refreshToken"`
	}{RefreshToken: refreshToken}

	var out sessionDTO
	if err := c.call(ctx, "refreshToken", in, &out); err != nil {
		return nil, err
	}
	c.setTokens(out.AccessToken, out.RefreshToken)
	return &Session{UID: out.UID, AccessToken: out.AccessToken, RefreshToken: out.RefreshToken}, nil
}

// SignOut drops the in-memory credentials. The session on the wire is a
// bearer token, so forgetting it is the sign-out.
func (c *HTTPClient) SignOut(ctx context.Context) error {
	c.setTokens("", "")
	return nil
}

type profileDTO struct {
	UID          string   `json:"uid"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	RewardPoints int      `json:"rewardPoints"`
	Coupons      []string `json:"coupons"`
	ReferralCode string   `json:"referralCode"`
}

func (c *HTTPClient) Profile(ctx context.Context, uid string) (*models.Profile, error) {
	in := struct {
		UID string `json:"uid"`
	}{UID: uid}

	var out profileDTO
	if err := c.call(ctx, "getProfile", in, &out); err != nil {
		return nil, err
	}
	return &models.Profile{
		UID:          out.UID,
		Name:         out.Name,
		Email:        out.Email,
		Role:         models.Role(out.Role),
		RewardPoints: out.RewardPoints,
		Coupons:      out.Coupons,
		ReferralCode: out.ReferralCode,
	}, nil
}

func (c *HTTPClient) CreateCheckoutSession(ctx context.Context, lines []models.CartLine, shippingCost int64) (*CheckoutSession, error) {
	type cartItem struct {
		Name     string `json:"name"`
		Price    int64  `json:"price"`
		Quantity int    `json:"quantity"`
	}
	in := struct {
		Cart         []cartItem `json:"cart"`
		ShippingCost int64      `json:"shippingCost"`
	}{ShippingCost: shippingCost}
	for _, l := range lines {
		in.Cart = append(in.Cart, cartItem{Name: l.Name, Price: l.UnitPrice, Quantity: l.Quantity})
	}

	var out struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := c.call(ctx, "createStripeCheckout", in, &out); err != nil {
		return nil, err
	}
	return &CheckoutSession{ID: out.ID, URL: out.URL}, nil
}

// ConfirmPayment reports a successful return trip so the backend can mark
// the order tied to the checkout session as paid.
func (c *HTTPClient) ConfirmPayment(ctx context.Context, sessionID string) error {
	in := struct {
		SessionID string `json:"sessionId"`
	}{SessionID: sessionID}
	return c.call(ctx, "confirmPayment", in, nil)
}

func (c *HTTPClient) MapsAPIKey(ctx context.Context) (string, error) {
	var out struct {
		APIKey string `json:"apiKey"`
	}
	if err := c.call(ctx, "getGoogleMapsApiKey", struct{}{}, &out); err != nil {
		return "", err
	}
	return out.APIKey, nil
}

func (c *HTTPClient) ActivePromotions(ctx context.Context) ([]models.Promotion, error) {
	var out struct {
		Promotions []struct {
			ID          string `json:"id"`
			Title       string `json:"title"`
			Description string `json:"description"`
			ImageURL    string `json:"imageUrl"`
		} `json:"promotions"`
	}
	if err := c.call(ctx, "getActivePromotions", struct{}{}, &out); err != nil {
		return nil, err
	}
	promos := make([]models.Promotion, 0, len(out.Promotions))
	for _, p := range out.Promotions {
		promos = append(promos, models.Promotion{ID: p.ID, Title: p.Title, Description: p.Description, ImageURL: p.ImageURL})
	}
	return promos, nil
}

func (c *HTTPClient) StoreStatus(ctx context.Context) (models.StoreStatus, error) {
	var out struct {
		ManualStatus string `json:"manualStatus"`
		Open         bool   `json:"open"`
	}
	if err := c.call(ctx, "getStoreStatus", struct{}{}, &out); err != nil {
		return models.StoreStatus{}, err
	}
	return models.StoreStatus{Mode: models.StoreMode(out.ManualStatus), Open: out.Open}, nil
}

func (c *HTTPClient) Orders(ctx context.Context, uid string) ([]models.Order, error) {
	in := struct {
		UID string `json:"uid"`
	}{UID: uid}

	var out struct {
		Orders []struct {
			ID        string `json:"id"`
			Status    string `json:"status"`
			Total     int64  `json:"total"`
			CreatedAt string `json:"createdAt"`
			Items     []struct {
				Name      string `json:"name"`
				UnitPrice int64  `json:"unitPrice"`
				Quantity  int    `json:"quantity"`
			} `json:"items"`
		} `json:"orders"`
	}
	if err := c.call(ctx, "listMyOrders", in, &out); err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(out.Orders))
	for _, o := range out.Orders {
		order := models.Order{ID: o.ID, Status: o.Status, Total: o.Total}
		if t, err := time.Parse(time.RFC3339, o.CreatedAt); err == nil {
			order.CreatedAt = t
		}
		for _, it := range o.Items {
			order.Items = append(order.Items, models.OrderItem{Name: it.Name, UnitPrice: it.UnitPrice, Quantity: it.Quantity})
		}
		orders = append(orders, order)
	}
	return orders, nil
}

var _ Client = (*HTTPClient)(nil)
