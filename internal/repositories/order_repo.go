package repositories

import (
	"kedai/internal/models"
)

// OrderFilter narrows admin order listings. Empty fields match all orders;
// set fields combine as a logical AND.
type OrderFilter struct {
	Status        string
	PaymentMethod string
}

// OrderRepository defines the interface for order data access. Updates are
// atomic at single-order granularity; there is no multi-order transaction.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
	// List applies the filter, sorts by descending date and paginates.
	// It returns the page of orders and the total count after filtering.
	List(filter OrderFilter, page, limit int) ([]models.Order, int64, error)
	UpdateStatus(id string, status string) error
	SetPayment(id string, paid bool) error
	Delete(id string) error
}
