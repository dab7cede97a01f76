package services

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"time"

	"kedai/internal/gateway"
	"kedai/internal/models"
	"kedai/internal/repositories"

	"github.com/google/uuid"
)

const (
	currency       = "inr"
	deliveryCharge = 49 // flat fee, added as its own gateway line item
)

// EventPublisher publishes order events to the message broker. A nil
// publisher is tolerated; events are then skipped.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// Pagination is the metadata returned with admin order listings.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalOrders int64 `json:"totalOrders"`
	HasMore     bool  `json:"hasMore"`
}

// OrderService orchestrates order creation, payment confirmation and
// status transitions.
type OrderService struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
	checkout  gateway.CheckoutGateway
	publisher EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository, checkout gateway.CheckoutGateway, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		checkout:  checkout,
		publisher: publisher,
	}
}

// newOrder builds an order record with deep-copied item and address
// snapshots. The amount is the client-computed total and is stored as
// submitted.
func newOrder(userID string, address models.Address, items []models.OrderItem, amount float64, method string) *models.Order {
	snapshot := make([]models.OrderItem, len(items))
	for i, item := range items {
		snapshot[i] = models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Size:      item.Size,
			Quantity:  item.Quantity,
		}
	}
	return &models.Order{
		ID:            uuid.New().String(),
		UserID:        userID,
		Items:         snapshot,
		Address:       address,
		Amount:        amount,
		PaymentMethod: method,
		Payment:       false,
		Status:        models.StatusPlaced,
		Date:          time.Now(),
	}
}

// PlaceOrder creates a cash-on-delivery order. The user must exist; on
// success the user's server-side cart is cleared.
func (s *OrderService) PlaceOrder(userID string, address models.Address, items []models.OrderItem, amount float64) (*models.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrInvalidInput)
	}
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}

	order := newOrder(userID, address, items, amount, models.PaymentMethodCOD)
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.userRepo.UpdateCart(userID, models.CartData{}); err != nil {
		// The order stands; cart clearing is a separate write with no
		// atomicity between the two.
		log.Printf("Warning: failed to clear cart for user %s after order %s: %v", userID, order.ID, err)
	}

	s.publishEvent("order.created", order)
	return order, nil
}

// PlaceOrderStripe creates an online order and a checkout session for it.
// The order row exists before payment is confirmed; the session callback
// carries the order ID back into VerifyStripePayment. The cart is cleared
// only once payment is confirmed.
func (s *OrderService) PlaceOrderStripe(userID string, address models.Address, items []models.OrderItem, amount float64, origin string) (*models.Order, string, error) {
	if len(items) == 0 {
		return nil, "", fmt.Errorf("%w: order must contain at least one item", ErrInvalidInput)
	}

	order := newOrder(userID, address, items, amount, models.PaymentMethodStripe)
	if err := s.orderRepo.Create(order); err != nil {
		return nil, "", fmt.Errorf("failed to create order: %w", err)
	}

	lineItems := make([]gateway.LineItem, 0, len(order.Items)+1)
	for _, item := range order.Items {
		lineItems = append(lineItems, gateway.LineItem{
			Name:       item.Name,
			UnitAmount: int64(math.Round(item.Price * 100)),
			Quantity:   item.Quantity,
		})
	}
	lineItems = append(lineItems, gateway.LineItem{
		Name:       "Delivery Charges",
		UnitAmount: deliveryCharge * 100,
		Quantity:   1,
	})

	session, err := s.checkout.CreateCheckoutSession(gateway.CheckoutParams{
		SuccessURL: fmt.Sprintf("%s/verify?success=true&orderId=%s", origin, order.ID),
		CancelURL:  fmt.Sprintf("%s/verify?success=false&orderId=%s", origin, order.ID),
		Currency:   currency,
		LineItems:  lineItems,
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrGateway, err)
	}

	s.publishEvent("order.created", order)
	return order, session.URL, nil
}

// VerifyStripePayment reconciles the callback redirect from the gateway.
// On success the payment flag is set (idempotently, status untouched) and
// the user's cart is cleared; on failure the order is hard-deleted and
// leaves no record.
func (s *OrderService) VerifyStripePayment(orderID, userID string, success bool) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return fmt.Errorf("%w: order %s", ErrNotFound, orderID)
	}

	if !success {
		if err := s.orderRepo.Delete(orderID); err != nil {
			return fmt.Errorf("failed to delete unpaid order %s: %w", orderID, err)
		}
		return nil
	}

	if err := s.orderRepo.SetPayment(orderID, true); err != nil {
		return fmt.Errorf("failed to confirm payment for order %s: %w", orderID, err)
	}
	if err := s.userRepo.UpdateCart(userID, models.CartData{}); err != nil {
		log.Printf("Warning: failed to clear cart for user %s after payment on order %s: %v", userID, orderID, err)
	}

	order.Payment = true
	s.publishEvent("order.payment_confirmed", order)
	return nil
}

// UpdateStatus overwrites an order's status. Any recognized status value
// may follow any other; only set membership is enforced.
func (s *OrderService) UpdateStatus(orderID, status string) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return fmt.Errorf("%w: order %s", ErrNotFound, orderID)
	}

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		return fmt.Errorf("failed to update status for order %s: %w", orderID, err)
	}

	order.Status = status
	s.publishEvent("order.status_updated", order)
	return nil
}

// ListOrders returns one page of the admin order listing. Filtering is
// applied before sorting and pagination.
func (s *OrderService) ListOrders(filter repositories.OrderFilter, page, limit int) ([]models.Order, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	orders, total, err := s.orderRepo.List(filter, page, limit)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("failed to list orders: %w", err)
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return orders, Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalOrders: total,
		HasMore:     page < totalPages,
	}, nil
}

// UserOrders returns every order owned by a user, unpaginated.
func (s *OrderService) UserOrders(userID string) ([]models.Order, error) {
	orders, err := s.orderRepo.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// publishEvent sends an order event to the broker. Publish failures are
// logged, never surfaced to the caller.
func (s *OrderService) publishEvent(routingKey string, order *models.Order) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"orderId":       order.ID,
		"userId":        order.UserID,
		"status":        order.Status,
		"payment":       order.Payment,
		"paymentMethod": order.PaymentMethod,
		"amount":        order.Amount,
	})
	if err != nil {
		log.Printf("Failed to marshal %s event for order %s: %v", routingKey, order.ID, err)
		return
	}
	if err := s.publisher.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", routingKey, order.ID, err)
	}
}
