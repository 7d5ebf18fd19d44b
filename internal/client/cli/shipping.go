package cli

import (
	"context"
	"fmt"

	"github.com/bobadragon/storefront/internal/client/models"
	"github.com/bobadragon/storefront/internal/client/ui"
)

// Deliver toggles between pickup and delivery. Turning delivery on resolves
// the address picker link through the maps loader and records the flat
// delivery fee; turning it off clears the shipping info again.
func (a *App) Deliver(ctx context.Context) error {
	if a.store.ShippingInfo() != nil {
		a.store.SetShippingInfo(nil)
		a.renderer.Notify("Switched to pickup. Delivery fee removed.", false)
		return nil
	}

	scriptURL, err := a.maps.ScriptURL(ctx)
	if err != nil {
		a.renderer.Notify("Address lookup is unavailable right now. Please try again.", true)
		return nil
	}
	a.renderer.Notify(fmt.Sprintf("Pick your address here: %s", scriptURL), false)

	a.store.SetShippingInfo(&models.ShippingInfo{Cost: a.config.DeliveryFee})
	a.renderer.Notify(fmt.Sprintf("Delivery added (%s).", ui.FormatMXN(a.config.DeliveryFee)), false)
	return nil
}
