// Package state holds the single application state store. All session, cart,
// promotion, order, and store-status data lives here; every mutation goes
// through a setter on Store and getters hand out snapshots, so no other
// component ever holds a mutable reference into the store.
package state

import (
	"fmt"
	"sync"

	"github.com/bobadragon/storefront/internal/client/models"
)

// Store is the application state record. It is an explicit value injected
// into controllers and renderers, never a package-level singleton.
//
// Background goroutines (the store-status poll, the orders feed) commit
// results through setters, so the record is guarded by a mutex; each
// operation stays a single small atomic commit.
type Store struct {
	mu sync.Mutex

	currentUser *models.Profile
	cart        []models.CartLine
	promotions  []models.Promotion
	orders      []models.Order
	shipping    *models.ShippingInfo
	storeStatus models.StoreStatus

	// nextLineID is monotonic so cart line ids are deterministic in tests.
	nextLineID int64
}

func NewStore() *Store {
	return &Store{storeStatus: models.StoreStatus{Mode: models.StoreModeAuto}}
}

// CurrentUser returns a copy of the signed-in profile, or nil.
func (s *Store) CurrentUser() *models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentUser == nil {
		return nil
	}
	p := *s.currentUser
	p.Coupons = append([]string(nil), s.currentUser.Coupons...)
	return &p
}

func (s *Store) SetCurrentUser(p *models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p == nil {
		s.currentUser = nil
		return
	}
	cp := *p
	cp.Coupons = append([]string(nil), p.Coupons...)
	s.currentUser = &cp
}

// Cart returns a snapshot of the cart in insertion order.
func (s *Store) Cart() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartLine, len(s.cart))
	for i, l := range s.cart {
		out[i] = l
		out[i].Customization = l.Customization.Clone()
	}
	return out
}

// CartCount is the total quantity across all lines, shown on the cart badge.
func (s *Store) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, l := range s.cart {
		total += l.Quantity
	}
	return total
}

// CartTotal is the sum of line subtotals in minor units.
func (s *Store) CartTotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, l := range s.cart {
		total += l.Subtotal()
	}
	return total
}

// AddToCart merges the item into an existing line with the same
// (item id, customization) pair, incrementing its quantity by one, or appends
// a new line with quantity 1. Returns the id of the affected line.
func (s *Store) AddToCart(item models.CatalogItem, customization models.Customization) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, l := range s.cart {
		if l.ItemID == item.ID && l.Customization.Equal(customization) {
			s.cart[i].Quantity++
			return l.LineID
		}
	}

	s.nextLineID++
	line := models.CartLine{
		LineID:        fmt.Sprintf("line-%d", s.nextLineID),
		ItemID:        item.ID,
		Name:          item.Name,
		UnitPrice:     item.Price,
		Quantity:      1,
		Customization: customization.Clone(),
	}
	s.cart = append(s.cart, line)
	return line.LineID
}

// UpdateCartQuantity sets the line's quantity when newQuantity > 0 and
// removes the line otherwise. Unknown line ids are a no-op.
func (s *Store) UpdateCartQuantity(lineID string, newQuantity int) {
	if newQuantity <= 0 {
		s.RemoveFromCart(lineID)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.cart {
		if l.LineID == lineID {
			s.cart[i].Quantity = newQuantity
			return
		}
	}
}

// RemoveFromCart filters the line out; idempotent.
func (s *Store) RemoveFromCart(lineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.cart[:0]
	for _, l := range s.cart {
		if l.LineID != lineID {
			kept = append(kept, l)
		}
	}
	s.cart = kept
}

// ClearCart empties the cart unconditionally.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
}

func (s *Store) Promotions() []models.Promotion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Promotion(nil), s.promotions...)
}

func (s *Store) SetPromotions(promos []models.Promotion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.promotions = append([]models.Promotion(nil), promos...)
}

func (s *Store) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Order(nil), s.orders...)
}

func (s *Store) SetOrders(orders []models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append([]models.Order(nil), orders...)
}

func (s *Store) ShippingInfo() *models.ShippingInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shipping == nil {
		return nil
	}
	cp := *s.shipping
	return &cp
}

func (s *Store) SetShippingInfo(info *models.ShippingInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if info == nil {
		s.shipping = nil
		return
	}
	cp := *info
	s.shipping = &cp
}

func (s *Store) StoreStatus() models.StoreStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storeStatus
}

func (s *Store) SetStoreStatus(st models.StoreStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.storeStatus = st
}
