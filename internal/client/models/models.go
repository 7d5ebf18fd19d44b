// Package models defines the client-side data shapes: the signed-in profile,
// catalog items, cart lines, promotions, orders, and store status. All money
// amounts are in minor units (centavos).
package models

import "time"

// Role determines which views a signed-in user is routed to.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleCourier  Role = "courier"
	RoleAdmin    Role = "admin"
)

// Profile is the user document fetched from the profile store after the
// external authentication event.
type Profile struct {
	UID          string
	Name         string
	Email        string
	Role         Role
	RewardPoints int
	Coupons      []string
	ReferralCode string
}

// Customization maps an option name to the chosen value, e.g.
// {"size": "large", "sugar": "50%"}.
type Customization map[string]string

// Equal reports whether two customizations pick exactly the same choices.
// Cart line identity is (item id, customization) equality.
func (c Customization) Equal(other Customization) bool {
	if len(c) != len(other) {
		return false
	}
	for k, v := range c {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Clone returns an independent copy so no caller can alias store-owned state.
func (c Customization) Clone() Customization {
	if c == nil {
		return nil
	}
	out := make(Customization, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// CatalogItem is one orderable drink with its available option sets.
type CatalogItem struct {
	ID      string
	Name    string
	Price   int64
	Options map[string][]string
}

// CartLine is one distinct cart entry, unique by (item id, customization).
type CartLine struct {
	LineID        string
	ItemID        string
	Name          string
	UnitPrice     int64
	Quantity      int
	Customization Customization
}

// Subtotal is the line total in minor units.
func (l CartLine) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// ShippingInfo is settable independently of the cart.
type ShippingInfo struct {
	Cost int64
}

// StoreMode is the manual override for store hours.
type StoreMode string

const (
	StoreModeOpen   StoreMode = "open"
	StoreModeClosed StoreMode = "closed"
	StoreModeAuto   StoreMode = "auto"
)

// StoreStatus combines the manual override with the derived open/closed
// state the UI reads.
type StoreStatus struct {
	Mode StoreMode
	Open bool
}

// Promotion is one active promotion shown on the home view.
type Promotion struct {
	ID          string
	Title       string
	Description string
	ImageURL    string
}

// OrderItem mirrors a cart line inside a placed order.
type OrderItem struct {
	Name      string
	UnitPrice int64
	Quantity  int
}

// Order is one entry in the customer's order history.
type Order struct {
	ID        string
	Status    string
	Total     int64
	Items     []OrderItem
	CreatedAt time.Time
}
