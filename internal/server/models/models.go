// Package models holds the server-side persistence types.
package models

import "time"

// User is one registered account. Coupons are stored as a JSON array in
// the database and decoded on the way out.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	Role         string
	RewardPoints int
	Coupons      []string
	ReferralCode string
	FCMToken     string
	CreatedAt    time.Time
}

// Promotion is one home-screen banner. ImageKey points at the banner
// object in the assets bucket; the public URL is presigned on read.
type Promotion struct {
	ID          string
	Title       string
	Description string
	ImageKey    string
	Active      bool
}

// OrderItem is one priced line inside an order.
type OrderItem struct {
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
}

// Order states. An order starts pending when the checkout session is
// created and moves on as payment and fulfilment progress.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusPreparing = "preparing"
	OrderStatusDelivered = "delivered"
)

// Order is one placed order, including the pending record written when a
// checkout session is opened.
type Order struct {
	ID                string
	UserID            string
	Status            string
	Total             int64
	Items             []OrderItem
	CheckoutSessionID string
	CreatedAt         time.Time
}

// StoreSettings drives the open/closed indicator. ManualStatus is the
// override ("open", "closed" or "auto"); in auto mode opening hours apply.
type StoreSettings struct {
	ManualStatus string
	OpenHour     int
	CloseHour    int
}
