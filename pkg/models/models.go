package models

import (
	"fmt"
	"time"
)

type Restaurant struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Cuisine     string     `json:"cuisine"`
	Description string     `json:"description"`
	Rating      float64    `json:"rating"`
	Menu        []MenuItem `json:"menu"`
}

type MenuItem struct {
	ID           string `json:"id"`
	RestaurantID string `json:"restaurant_id"`
	Name         string `json:"name"`
	PriceSen     int64  `json:"price_sen"`
	Calories     string `json:"calories"`
	Healthy      bool   `json:"healthy"`
}

// CartLine carries a snapshot of the item taken at add time; later catalog
// changes must not alter lines already in a cart or order.
type CartLine struct {
	ItemID         string    `json:"item_id"`
	Name           string    `json:"name"`
	RestaurantName string    `json:"restaurant_name"`
	PriceSen       int64     `json:"price_sen"`
	Quantity       int       `json:"quantity"`
	AddedAt        time.Time `json:"added_at"`
}

type CartSnapshot struct {
	Lines    []CartLine `json:"lines"`
	TotalSen int64      `json:"total_sen"`
	Total    string     `json:"total"`
}

type Order struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Lines     []CartLine `json:"lines"`
	TotalSen  int64      `json:"total_sen"`
	Total     string     `json:"total"`
	Status    string     `json:"status"`
}

type SessionSnapshot struct {
	LoggedIn bool         `json:"logged_in"`
	Username string       `json:"username,omitempty"`
	Page     string       `json:"page"`
	Cart     CartSnapshot `json:"cart"`
	Orders   []Order      `json:"orders"`
}

type MetricsSnapshot struct {
	Logins          int            `json:"logins"`
	Logouts         int            `json:"logouts"`
	CartAdds        int            `json:"cart_adds"`
	CartRemovals    int            `json:"cart_removals"`
	OrdersConfirmed int            `json:"orders_confirmed"`
	RevenueSen      int64          `json:"revenue_sen"`
	ErrorCounters   map[string]int `json:"error_counters"`
	StartedAt       time.Time      `json:"started_at"`
}

// FormatRM renders an amount of sen as the UI-facing ringgit string,
// e.g. 1550 -> "RM 15.50".
func FormatRM(sen int64) string {
	sign := ""
	if sen < 0 {
		sign = "-"
		sen = -sen
	}
	return fmt.Sprintf("%sRM %d.%02d", sign, sen/100, sen%100)
}
