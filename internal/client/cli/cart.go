package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/bobadragon/storefront/internal/client/models"
	"github.com/bobadragon/storefront/internal/client/ui"
)

// Home renders the landing view with the current promotions. Promotions
// are re-fetched on every visit rather than kept live-synced; a fetch
// failure renders the view with the last known set and a notice.
func (a *App) Home(ctx context.Context) error {
	if a.uid != "" {
		promos, err := a.api.ActivePromotions(ctx)
		if err != nil {
			a.renderer.Notify("Couldn't refresh promotions.", true)
		} else {
			a.store.SetPromotions(promos)
		}
	}
	a.renderer.NavigateTo(ui.ViewHome)
	a.renderer.Home(a.store.CurrentUser(), a.store.Promotions())
	return nil
}

// Menu lists the drink catalog.
func (a *App) Menu(ctx context.Context) error {
	a.renderer.NavigateTo(ui.ViewMenu)
	a.renderer.Menu(models.Catalog())
	return nil
}

// Add prompts for a drink and its customizations and puts it in the cart.
// An identical drink already in the cart has its quantity bumped instead
// of producing a second line.
func (a *App) Add(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Which drink? (e.g. taro, matcha)", os.Stdout)
	if err != nil {
		return err
	}

	item, ok := models.FindCatalogItem(id)
	if !ok {
		a.renderer.Notify("We don't have that drink.", true)
		return nil
	}

	customization, err := a.askCustomization(item)
	if err != nil {
		return err
	}

	a.store.AddToCart(item, customization)
	a.renderer.CartBadge(a.store.CartCount())
	a.renderer.Notify(fmt.Sprintf("%s added to cart.", item.Name), false)
	return nil
}

// askCustomization walks the item's option groups in a stable order and
// records a choice per group. An empty answer takes the first listed value.
func (a *App) askCustomization(item models.CatalogItem) (models.Customization, error) {
	if len(item.Options) == 0 {
		return nil, nil
	}

	groups := make([]string, 0, len(item.Options))
	for g := range item.Options {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	customization := models.Customization{}
	for _, group := range groups {
		values := item.Options[group]
		prompt := fmt.Sprintf("Choose %s %v (default %s)", group, values, values[0])
		answer, err := getSimpleText(a.reader, prompt, os.Stdout)
		if err != nil {
			return nil, err
		}
		if answer == "" {
			answer = values[0]
		}
		customization[group] = answer
	}
	return customization, nil
}

// Cart renders the cart contents with the running total.
func (a *App) Cart(ctx context.Context) error {
	a.renderer.NavigateTo(ui.ViewCart)
	a.renderer.Cart(a.store.Cart(), a.store.CartTotal())
	return nil
}

// Qty changes a cart line's quantity. Zero or less removes the line.
func (a *App) Qty(ctx context.Context) error {
	lineID, err := getSimpleText(a.reader, "Which line? (e.g. line-1)", os.Stdout)
	if err != nil {
		return err
	}
	raw, err := getSimpleText(a.reader, "New quantity", os.Stdout)
	if err != nil {
		return err
	}
	qty, err := strconv.Atoi(raw)
	if err != nil {
		a.renderer.Notify("Quantity must be a number.", true)
		return nil
	}

	a.store.UpdateCartQuantity(lineID, qty)
	a.renderer.CartBadge(a.store.CartCount())
	return a.Cart(ctx)
}

// Remove drops a line from the cart.
func (a *App) Remove(ctx context.Context) error {
	lineID, err := getSimpleText(a.reader, "Which line? (e.g. line-1)", os.Stdout)
	if err != nil {
		return err
	}

	a.store.RemoveFromCart(lineID)
	a.renderer.CartBadge(a.store.CartCount())
	return a.Cart(ctx)
}

// Checkout hands the cart to the checkout orchestrator.
func (a *App) Checkout(ctx context.Context) error {
	return a.checkout.ProceedToCheckout(ctx)
}

// ShowOrders renders the most recent snapshot of the user's orders.
func (a *App) ShowOrders(ctx context.Context) error {
	a.renderer.NavigateTo(ui.ViewOrders)
	a.renderer.Orders(a.store.Orders())
	return nil
}

// Status prints whether the store is currently taking orders.
func (a *App) Status(ctx context.Context) error {
	st := a.store.StoreStatus()
	if st.Open {
		a.renderer.Notify("We're open! Order away.", false)
	} else {
		a.renderer.Notify("Sorry, we're closed right now.", false)
	}
	return nil
}
