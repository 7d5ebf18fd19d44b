package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bobadragon/storefront/internal/callable"
	"github.com/bobadragon/storefront/internal/common"
	"github.com/bobadragon/storefront/internal/server/checkout"
	"github.com/bobadragon/storefront/internal/server/users"
)

// writeError maps a service error to the canonical code the wire contract
// uses. Internal details never reach the client.
func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrAlreadyExists):
		callable.WriteStatus(w, status.New(codes.AlreadyExists, "already exists"))
	case errors.Is(err, common.ErrNotFound):
		callable.WriteStatus(w, status.New(codes.NotFound, "not found"))
	case errors.Is(err, common.ErrUnauthenticated):
		callable.WriteStatus(w, status.New(codes.Unauthenticated, "authentication failed"))
	case errors.Is(err, common.ErrValidation):
		callable.WriteStatus(w, status.New(codes.InvalidArgument, err.Error()))
	default:
		s.log.Error(ctx, "request failed", "error", err)
		callable.WriteStatus(w, status.New(codes.Internal, "internal error"))
	}
}

func sessionResult(sess *users.Session) any {
	return struct {
		UID          string `json:"uid"`
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}{UID: sess.UID, AccessToken: sess.AccessToken, RefreshToken: sess.RefreshToken}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := callable.DecodeData(r, &in); err != nil {
		callable.WriteStatus(w, status.New(codes.InvalidArgument, "malformed request"))
		return
	}
	if in.Name == "" || in.Email == "" || len(in.Password) < 6 {
		callable.WriteStatus(w, status.New(codes.InvalidArgument, "name, email and a password of at least 6 characters are required"))
		return
	}

	if _, err := s.users.Register(r.Context(), in.Name, in.Email, []byte(in.Password)); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	callable.WriteResult(w, struct{}{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := callable.DecodeData(r, &in); err != nil {
		callable.WriteStatus(w, status.New(codes.InvalidArgument, "malformed request"))
		return
	}

	sess, err := s.users.Login(r.Context(), in.Email, []byte(in.Password))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	callable.WriteResult(w, sessionResult(sess))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var in struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := callable.DecodeData(r, &in); err != nil {
		callable.WriteStatus(w, status.New(codes.InvalidArgument, "malformed request"))
		return
	}

	sess, err := s.users.Refresh(r.Context(), in.RefreshToken)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	callable.WriteResult(w, sessionResult(sess))
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UID string `json:"uid"`
	}
	if err := callable.DecodeData(r, &in); err != nil {
		callable.WriteStatus(w, status.New(codes.InvalidArgument, "malformed request"))
		return
	}

	// Clients may only read their own profile.
	uid := callerUID(r.Context())
	if in.UID != "" && in.UID != uid {
		callable.WriteStatus(w, status.New(codes.PermissionDenied, "cannot read another user's profile"))
		return
	}

	user, err := s.users.Profile(r.Context(), uid)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	coupons := user.Coupons
	if coupons == nil {
		coupons = []string{}
	}
	callable.WriteResult(w, struct {
		UID          string   `json:"uid"`
		Name         string   `json:"name"`
		Email        string   `json:"email"`
		Role         string   `json:"role"`
		RewardPoints int      `json:"rewardPoints"`
		Coupons      []string `json:"coupons"`
		ReferralCode string   `json:"referralCode"`
	}{
		UID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role,
		RewardPoints: user.RewardPoints, Coupons: coupons, ReferralCode: user.ReferralCode,
	})
}

func (s *Server) handleCreateCheckout(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Cart []struct {
			Name     string `json:"name"`
			Price    int64  `json:"price"`
			Quantity int    `json:"quantity"`
		} `json:"cart"`
		ShippingCost int64 `json:"shippingCost"`
	}
	if err := callable.DecodeData(r, &in); err != nil {
		callable.WriteStatus(w, status.New(codes.InvalidArgument, "malformed request"))
		return
	}
	if len(in.Cart) == 0 {
		callable.WriteStatus(w, status.New(codes.InvalidArgument, "cart is empty"))
		return
	}

	cart := make([]checkout.CartLine, 0, len(in.Cart))
	for _, l := range in.Cart {
		cart = append(cart, checkout.CartLine{Name: l.Name, Price: l.Price, Quantity: l.Quantity})
	}

	sess, err := s.checkout.CreateSession(r.Context(), callerUID(r.Context()), cart, in.ShippingCost)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	callable.WriteResult(w, struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}{ID: sess.ID, URL: sess.URL})
}

func (s *Server) handleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var in struct {
		SessionID string `json:"sessionId"`
	}
	if err := callable.DecodeData(r, &in); err != nil {
		callable.WriteStatus(w, status.New(codes.InvalidArgument, "malformed request"))
		return
	}
	if in.SessionID == "" {
		callable.WriteStatus(w, status.New(codes.InvalidArgument, "session id is required"))
		return
	}

	if err := s.checkout.ConfirmPayment(r.Context(), in.SessionID); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	callable.WriteResult(w, struct {
		Confirmed bool `json:"confirmed"`
	}{Confirmed: true})
}

func (s *Server) handleSetStoreStatus(w http.ResponseWriter, r *http.Request) {
	caller, err := s.users.Profile(r.Context(), callerUID(r.Context()))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	if caller.Role != "admin" {
		callable.WriteStatus(w, status.New(codes.PermissionDenied, "admin only"))
		return
	}

	var in struct {
		ManualStatus string `json:"manualStatus"`
	}
	if err := callable.DecodeData(r, &in); err != nil {
		callable.WriteStatus(w, status.New(codes.InvalidArgument, "malformed request"))
		return
	}
	switch in.ManualStatus {
	case "open", "closed", "auto":
	default:
		callable.WriteStatus(w, status.New(codes.InvalidArgument, "manual status must be open, closed or auto"))
		return
	}

	if err := s.store.SetManualStatus(r.Context(), in.ManualStatus); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	callable.WriteResult(w, struct {
		ManualStatus string `json:"manualStatus"`
	}{ManualStatus: in.ManualStatus})
}

func (s *Server) handleMapsAPIKey(w http.ResponseWriter, r *http.Request) {
	callable.WriteResult(w, struct {
		APIKey string `json:"apiKey"`
	}{APIKey: s.mapsAPIKey})
}

func (s *Server) handlePromotions(w http.ResponseWriter, r *http.Request) {
	promos, err := s.promotions.ListActive(r.Context())
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	type promoDTO struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		ImageURL    string `json:"imageUrl"`
	}
	out := struct {
		Promotions []promoDTO `json:"promotions"`
	}{Promotions: make([]promoDTO, 0, len(promos))}
	for _, p := range promos {
		out.Promotions = append(out.Promotions, promoDTO{
			ID: p.ID, Title: p.Title, Description: p.Description, ImageURL: p.ImageURL,
		})
	}
	callable.WriteResult(w, out)
}

func (s *Server) handleStoreStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.store.Status(r.Context())
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}
	callable.WriteResult(w, struct {
		ManualStatus string `json:"manualStatus"`
		Open         bool   `json:"open"`
	}{ManualStatus: st.ManualStatus, Open: st.Open})
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orders.ListForUser(r.Context(), callerUID(r.Context()))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	type itemDTO struct {
		Name      string `json:"name"`
		UnitPrice int64  `json:"unitPrice"`
		Quantity  int    `json:"quantity"`
	}
	type orderDTO struct {
		ID        string    `json:"id"`
		Status    string    `json:"status"`
		Total     int64     `json:"total"`
		CreatedAt string    `json:"createdAt"`
		Items     []itemDTO `json:"items"`
	}
	out := struct {
		Orders []orderDTO `json:"orders"`
	}{Orders: make([]orderDTO, 0, len(orders))}
	for _, o := range orders {
		dto := orderDTO{
			ID: o.ID, Status: o.Status, Total: o.Total,
			CreatedAt: o.CreatedAt.Format(time.RFC3339),
		}
		for _, it := range o.Items {
			dto.Items = append(dto.Items, itemDTO{Name: it.Name, UnitPrice: it.UnitPrice, Quantity: it.Quantity})
		}
		out.Orders = append(out.Orders, dto)
	}
	callable.WriteResult(w, out)
}
