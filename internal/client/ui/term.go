package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/bobadragon/storefront/internal/client/models"
)

// Term renders the storefront to a terminal. It keeps only presentation
// state (current view, nav visibility, busy controls); everything it draws
// comes from the snapshots it is handed.
type Term struct {
	mu   sync.Mutex
	w    io.Writer
	view View
	nav  bool
	busy map[string]bool
}

func NewTerm(w io.Writer) *Term {
	return &Term{w: w, view: ViewAuthWall, busy: make(map[string]bool)}
}

// CurrentView reports the view last navigated to.
func (t *Term) CurrentView() View {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.view
}

func (t *Term) printf(format string, args ...any) {
	fmt.Fprintf(t.w, format+"\n", args...)
}

func (t *Term) Notify(msg string, isError bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	prefix := "[ok]"
	if isError {
		prefix = "[!!]"
	}
	t.printf("%s %s", prefix, msg)
}

func (t *Term) SetBusy(control string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.busy[control] = true
	t.printf("... %s", control)
}

func (t *Term) ClearBusy(control string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.busy, control)
}

// IsBusy reports whether the named control is in a loading state.
func (t *Term) IsBusy(control string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.busy[control]
}

func (t *Term) NavigateTo(view View) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.view = view
}

func (t *Term) SetNavVisible(visible bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nav = visible
}

// NavVisible reports whether the main navigation is shown.
func (t *Term) NavVisible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.nav
}

func (t *Term) CartBadge(total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if total > 0 {
		t.printf("cart: %d item(s)", total)
	}
}

func (t *Term) Home(user *models.Profile, promos []models.Promotion) {
	t.mu.Lock()
	defer t.mu.Unlock()
	name := "Dragon"
	if user != nil {
		name = strings.SplitN(user.Name, " ", 2)[0]
	}
	t.printf("== Hello, %s! Ready for your flavor fix? ==", name)
	for _, p := range promos {
		t.printf("  promo: %s | %s", p.Title, p.Description)
	}
}

func (t *Term) Menu(items []models.CatalogItem) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printf("== Menu ==")
	for _, item := range items {
		opts := make([]string, 0, len(item.Options))
		for name := range item.Options {
			opts = append(opts, name)
		}
		sort.Strings(opts)
		t.printf("  %-10s %-22s %s (%s)", item.ID, item.Name, FormatMXN(item.Price), strings.Join(opts, ", "))
	}
}

func (t *Term) Cart(lines []models.CartLine, total int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(lines) == 0 {
		t.printf("== Cart is empty ==")
		return
	}
	t.printf("== Cart ==")
	for _, l := range lines {
		t.printf("  %s  %dx %-22s %s %s", l.LineID, l.Quantity, l.Name, FormatMXN(l.Subtotal()), formatCustomization(l.Customization))
	}
	t.printf("  total: %s", FormatMXN(total))
}

func (t *Term) Orders(orders []models.Order) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printf("== My orders ==")
	if len(orders) == 0 {
		t.printf("  no orders yet")
		return
	}
	for _, o := range orders {
		t.printf("  %s  %-10s %s", o.ID, o.Status, FormatMXN(o.Total))
	}
}

func (t *Term) AuthWall() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printf("== Welcome, log in or register to order ==")
}

func (t *Term) DispatchPanel(user *models.Profile) {
	t.mu.Lock()
	defer t.mu.Unlock()
	name := ""
	if user != nil {
		name = user.Name
	}
	t.printf("== Dispatch panel (%s) ==", name)
}

func formatCustomization(c models.Customization) string {
	if len(c) == 0 {
		return ""
	}
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+c[k])
	}
	return "[" + strings.Join(parts, " ") + "]"
}

var _ Renderer = (*Term)(nil)
