package models

// drinkOptions are the customization sets shared by every drink on the menu.
var drinkOptions = map[string][]string{
	"size":  {"medium", "large"},
	"sugar": {"0%", "25%", "50%", "75%", "100%"},
	"ice":   {"none", "light", "regular"},
}

// Catalog returns the orderable menu. The menu ships with the client; only
// promotions, orders, and store hours come from the backend.
func Catalog() []CatalogItem {
	return []CatalogItem{
		{ID: "taro", Name: "Taro Milk Tea", Price: 6500, Options: drinkOptions},
		{ID: "chocolate", Name: "Chocolate Milk Tea", Price: 6000, Options: drinkOptions},
		{ID: "matcha", Name: "Matcha Latte", Price: 7000, Options: drinkOptions},
		{ID: "thai", Name: "Thai Tea", Price: 6000, Options: drinkOptions},
		{ID: "mango", Name: "Mango Green Tea", Price: 6500, Options: drinkOptions},
		{ID: "horchata", Name: "Horchata Boba", Price: 7000, Options: drinkOptions},
	}
}

// FindCatalogItem looks an item up by id; ok is false when absent.
func FindCatalogItem(id string) (CatalogItem, bool) {
	for _, item := range Catalog() {
		if item.ID == id {
			return item, true
		}
	}
	return CatalogItem{}, false
}
