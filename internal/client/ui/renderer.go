// Package ui is the painter: it turns state snapshots into user-visible
// output. Renderers only read; they never mutate the state store.
package ui

import "github.com/bobadragon/storefront/internal/client/models"

// View identifies a top-level screen of the app.
type View string

const (
	ViewAuthWall      View = "auth"
	ViewHome          View = "home"
	ViewMenu          View = "menu"
	ViewCart          View = "cart"
	ViewOrders        View = "orders"
	ViewDispatchPanel View = "dispatch"
)

// Renderer is the surface controllers draw through.
type Renderer interface {
	// Notify shows a transient user-facing notice.
	Notify(msg string, isError bool)

	// SetBusy and ClearBusy toggle the loading state of a named control,
	// e.g. the checkout button while the session call is in flight.
	SetBusy(control string)
	ClearBusy(control string)

	// NavigateTo switches the visible view.
	NavigateTo(view View)

	// SetNavVisible shows or hides the main navigation; couriers get no nav.
	SetNavVisible(visible bool)

	// CartBadge updates the cart indicator with the total item count.
	CartBadge(total int)

	Home(user *models.Profile, promos []models.Promotion)
	Menu(items []models.CatalogItem)
	Cart(lines []models.CartLine, total int64)
	Orders(orders []models.Order)
	AuthWall()
	DispatchPanel(user *models.Profile)
}
