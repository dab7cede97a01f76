package models

import "time"

// Payment methods.
const (
	PaymentMethodCOD    = "COD"
	PaymentMethodStripe = "stripe"
)

// Order statuses. UpdateStatus accepts any of these in any sequence; the
// service validates membership, not progression.
const (
	StatusPlaced         = "Order Placed"
	StatusProcessing     = "Processing"
	StatusPacked         = "Packed"
	StatusShipped        = "Shipped"
	StatusOutForDelivery = "Out for delivery"
	StatusDelivered      = "Delivered"
	StatusCancelled      = "Cancelled"
)

// OrderStatuses lists every recognized status value.
var OrderStatuses = []string{
	StatusPlaced,
	StatusProcessing,
	StatusPacked,
	StatusShipped,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

// ValidOrderStatus reports whether status is a recognized value.
func ValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// OrderItem is a line item snapshot captured at placement time. The name
// and price are copied from the catalog so later product edits do not
// rewrite order history.
type OrderItem struct {
	ID        uint    `json:"-" gorm:"primaryKey"`
	OrderID   string  `json:"-" gorm:"index;type:varchar(36)"`
	ProductID string  `json:"productId" gorm:"type:varchar(36)" validate:"required"`
	Name      string  `json:"name" gorm:"type:varchar(100)" validate:"required"`
	Price     float64 `json:"price" validate:"required,gt=0"`
	Size      string  `json:"size" gorm:"type:varchar(10)"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
}

// Address is the shipping address snapshot embedded in an order.
// Free-form beyond presence checks.
type Address struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"`
	Street    string `json:"street" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state"`
	Zipcode   string `json:"zipcode" validate:"required"`
	Country   string `json:"country" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
}

// Order is the aggregate with the lifecycle state machine. Items, Address
// and Amount are immutable once created; only Payment and Status mutate.
type Order struct {
	ID            string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID        string      `json:"userId" gorm:"index;type:varchar(36)"`
	Items         []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Address       Address     `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	Amount        float64     `json:"amount"`
	PaymentMethod string      `json:"paymentMethod" gorm:"type:varchar(20)"`
	Payment       bool        `json:"payment"`
	Status        string      `json:"status" gorm:"type:varchar(30)"`
	Date          time.Time   `json:"date"`
}
