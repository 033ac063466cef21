package app

import "nearbite/go-backend/pkg/models"

// CoreAPI is the operation surface the rendering layer drives. Every method
// is handled to completion before the next is considered.
type CoreAPI interface {
	Login(username, password string) (models.SessionSnapshot, error)
	Logout() (models.SessionSnapshot, error)

	ListRestaurants() []models.Restaurant
	GetRestaurant(restaurantID string) (models.Restaurant, error)
	SearchRestaurants(query string) []models.Restaurant

	AddToCart(itemID string, quantity int) (models.CartSnapshot, error)
	RemoveCartLine(index int) (models.CartSnapshot, error)
	GetCart() (models.CartSnapshot, error)

	ConfirmOrder() (models.Order, error)
	GetOrders() ([]models.Order, error)

	Navigate(page string) (models.SessionSnapshot, error)
	Apply(trigger string) (models.SessionSnapshot, error)
	Snapshot() models.SessionSnapshot

	GetMetrics() models.MetricsSnapshot
	SubscribeNotifications(fromSeq int64) ([]NotificationEvent, <-chan NotificationEvent, func())
}
