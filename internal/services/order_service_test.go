package services_test

import (
	"testing"
	"time"

	"kedai/internal/gateway"
	"kedai/internal/models"
	"kedai/internal/repositories"
	"kedai/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock implementation of services.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}

type orderServiceFixture struct {
	orders    *repositories.MockOrderRepository
	users     *repositories.MockUserRepository
	checkout  *gateway.MockCheckoutGateway
	publisher *MockEventPublisher
	service   *services.OrderService
	userID    string
}

func newOrderServiceFixture(t *testing.T) *orderServiceFixture {
	t.Helper()

	f := &orderServiceFixture{
		orders:    repositories.NewMockOrderRepository(),
		users:     repositories.NewMockUserRepository(),
		checkout:  gateway.NewMockCheckoutGateway(),
		publisher: new(MockEventPublisher),
	}
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	f.service = services.NewOrderService(f.orders, f.users, f.checkout, f.publisher)

	user := &models.User{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "hashed",
		CartData: models.CartData{"prod-1": {"M": 2}},
	}
	assert.NoError(t, f.users.Create(user))
	f.userID = user.ID
	return f
}

func sampleAddress() models.Address {
	return models.Address{
		FirstName: "Asha",
		Street:    "12 MG Road",
		City:      "Bengaluru",
		State:     "KA",
		Zipcode:   "560001",
		Country:   "India",
		Phone:     "9999999999",
	}
}

func sampleItems() []models.OrderItem {
	return []models.OrderItem{
		{ProductID: "prod-1", Name: "Linen Shirt", Price: 299, Size: "M", Quantity: 1},
		{ProductID: "prod-2", Name: "Chinos", Price: 250, Size: "32", Quantity: 1},
	}
}

func TestOrderService_PlaceOrder(t *testing.T) {
	f := newOrderServiceFixture(t)
	address := sampleAddress()
	items := sampleItems()

	// 299 + 250 + 49 delivery, computed client-side and trusted as-is.
	order, err := f.service.PlaceOrder(f.userID, address, items, 598)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPlaced, order.Status)
	assert.Equal(t, models.PaymentMethodCOD, order.PaymentMethod)
	assert.False(t, order.Payment)
	assert.Equal(t, 598.0, order.Amount)
	assert.Equal(t, address, order.Address)

	// The items are a snapshot, deep-equal to the input.
	assert.Len(t, order.Items, 2)
	for i, item := range order.Items {
		assert.Equal(t, items[i].ProductID, item.ProductID)
		assert.Equal(t, items[i].Name, item.Name)
		assert.Equal(t, items[i].Price, item.Price)
		assert.Equal(t, items[i].Size, item.Size)
		assert.Equal(t, items[i].Quantity, item.Quantity)
	}

	// Mutating the caller's slice must not change the stored snapshot.
	items[0].Price = 1
	stored, err := f.orders.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, 299.0, stored.Items[0].Price)

	// COD placement clears the server-side cart immediately.
	user, err := f.users.GetByID(f.userID)
	assert.NoError(t, err)
	assert.Empty(t, user.CartData)

	f.publisher.AssertCalled(t, "Publish", "order.created", mock.Anything)
}

func TestOrderService_PlaceOrder_UserNotFound(t *testing.T) {
	f := newOrderServiceFixture(t)

	_, err := f.service.PlaceOrder("missing-user", sampleAddress(), sampleItems(), 598)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestOrderService_PlaceOrder_EmptyItems(t *testing.T) {
	f := newOrderServiceFixture(t)

	_, err := f.service.PlaceOrder(f.userID, sampleAddress(), nil, 49)
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestOrderService_PlaceOrderStripe(t *testing.T) {
	f := newOrderServiceFixture(t)

	order, sessionURL, err := f.service.PlaceOrderStripe(f.userID, sampleAddress(), sampleItems(), 598, "https://shop.example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, sessionURL)
	assert.Equal(t, models.PaymentMethodStripe, order.PaymentMethod)
	assert.False(t, order.Payment)

	// The order row exists before payment is confirmed.
	_, err = f.orders.GetByID(order.ID)
	assert.NoError(t, err)

	// The cart is untouched until payment confirmation.
	user, _ := f.users.GetByID(f.userID)
	assert.NotEmpty(t, user.CartData)

	// Line items are derived 1:1 from the snapshot plus one delivery line.
	params := f.checkout.LastParams
	assert.Equal(t, "inr", params.Currency)
	assert.Len(t, params.LineItems, 3)
	assert.Equal(t, "Linen Shirt", params.LineItems[0].Name)
	assert.Equal(t, int64(29900), params.LineItems[0].UnitAmount)
	assert.Equal(t, "Delivery Charges", params.LineItems[2].Name)
	assert.Equal(t, int64(4900), params.LineItems[2].UnitAmount)
	assert.Equal(t, 1, params.LineItems[2].Quantity)

	// Callback URLs embed the order ID and the result flag.
	assert.Contains(t, params.SuccessURL, "success=true")
	assert.Contains(t, params.SuccessURL, "orderId="+order.ID)
	assert.Contains(t, params.CancelURL, "success=false")
	assert.Contains(t, params.CancelURL, "orderId="+order.ID)
}

func TestOrderService_PlaceOrderStripe_GatewayFailure(t *testing.T) {
	f := newOrderServiceFixture(t)
	f.checkout.Fail = true

	_, _, err := f.service.PlaceOrderStripe(f.userID, sampleAddress(), sampleItems(), 598, "https://shop.example.com")
	assert.ErrorIs(t, err, services.ErrGateway)
}

func TestOrderService_VerifyStripePayment_Success(t *testing.T) {
	f := newOrderServiceFixture(t)
	order, _, err := f.service.PlaceOrderStripe(f.userID, sampleAddress(), sampleItems(), 598, "https://shop.example.com")
	assert.NoError(t, err)

	assert.NoError(t, f.service.VerifyStripePayment(order.ID, f.userID, true))

	stored, err := f.orders.GetByID(order.ID)
	assert.NoError(t, err)
	assert.True(t, stored.Payment)
	assert.Equal(t, models.StatusPlaced, stored.Status) // status untouched

	user, _ := f.users.GetByID(f.userID)
	assert.Empty(t, user.CartData)

	// Confirming twice yields the same observable state.
	assert.NoError(t, f.service.VerifyStripePayment(order.ID, f.userID, true))
	stored, err = f.orders.GetByID(order.ID)
	assert.NoError(t, err)
	assert.True(t, stored.Payment)
	assert.Equal(t, models.StatusPlaced, stored.Status)
}

func TestOrderService_VerifyStripePayment_Failure(t *testing.T) {
	f := newOrderServiceFixture(t)
	order, _, err := f.service.PlaceOrderStripe(f.userID, sampleAddress(), sampleItems(), 598, "https://shop.example.com")
	assert.NoError(t, err)

	assert.NoError(t, f.service.VerifyStripePayment(order.ID, f.userID, false))

	// The order is hard-deleted, not cancelled.
	_, err = f.orders.GetByID(order.ID)
	assert.Error(t, err)

	orders, _, err := f.service.ListOrders(repositories.OrderFilter{}, 1, 50)
	assert.NoError(t, err)
	for _, o := range orders {
		assert.NotEqual(t, order.ID, o.ID)
	}
}

func TestOrderService_VerifyStripePayment_OrderNotFound(t *testing.T) {
	f := newOrderServiceFixture(t)

	err := f.service.VerifyStripePayment("missing-order", f.userID, true)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	f := newOrderServiceFixture(t)
	order, err := f.service.PlaceOrder(f.userID, sampleAddress(), sampleItems(), 598)
	assert.NoError(t, err)

	// Any recognized value may follow any other, including backwards.
	assert.NoError(t, f.service.UpdateStatus(order.ID, models.StatusDelivered))
	assert.NoError(t, f.service.UpdateStatus(order.ID, models.StatusPacked))

	stored, err := f.orders.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPacked, stored.Status)

	f.publisher.AssertCalled(t, "Publish", "order.status_updated", mock.Anything)
}

func TestOrderService_UpdateStatus_Invalid(t *testing.T) {
	f := newOrderServiceFixture(t)
	order, err := f.service.PlaceOrder(f.userID, sampleAddress(), sampleItems(), 598)
	assert.NoError(t, err)

	err = f.service.UpdateStatus(order.ID, "Teleported")
	assert.ErrorIs(t, err, services.ErrInvalidStatus)

	// The order is left unchanged.
	stored, _ := f.orders.GetByID(order.ID)
	assert.Equal(t, models.StatusPlaced, stored.Status)
}

func TestOrderService_UpdateStatus_NotFound(t *testing.T) {
	f := newOrderServiceFixture(t)

	err := f.service.UpdateStatus("missing-order", models.StatusShipped)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestOrderService_ListOrders_Pagination(t *testing.T) {
	f := newOrderServiceFixture(t)

	base := time.Now()
	for i := 0; i < 7; i++ {
		order := &models.Order{
			UserID:        f.userID,
			Items:         []models.OrderItem{{ProductID: "p", Name: "Tee", Price: 100, Quantity: 1}},
			Amount:        149,
			PaymentMethod: models.PaymentMethodCOD,
			Status:        models.StatusPlaced,
			Date:          base.Add(time.Duration(i) * time.Minute),
		}
		assert.NoError(t, f.orders.Create(order))
	}

	orders, pagination, err := f.service.ListOrders(repositories.OrderFilter{}, 1, 3)
	assert.NoError(t, err)
	assert.Len(t, orders, 3)
	assert.Equal(t, int64(7), pagination.TotalOrders)
	assert.Equal(t, 3, pagination.TotalPages)
	assert.True(t, pagination.HasMore)

	// Most recent first.
	assert.True(t, orders[0].Date.After(orders[1].Date))
	assert.True(t, orders[1].Date.After(orders[2].Date))

	orders, pagination, err = f.service.ListOrders(repositories.OrderFilter{}, 3, 3)
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.False(t, pagination.HasMore) // 3 * 3 >= 7

	orders, pagination, err = f.service.ListOrders(repositories.OrderFilter{}, 4, 3)
	assert.NoError(t, err)
	assert.Empty(t, orders)
	assert.False(t, pagination.HasMore)
}

func TestOrderService_ListOrders_Filters(t *testing.T) {
	f := newOrderServiceFixture(t)

	mk := func(status, method string) {
		assert.NoError(t, f.orders.Create(&models.Order{
			UserID:        f.userID,
			Items:         []models.OrderItem{{ProductID: "p", Name: "Tee", Price: 100, Quantity: 1}},
			Amount:        149,
			PaymentMethod: method,
			Status:        status,
			Date:          time.Now(),
		}))
	}
	mk(models.StatusPlaced, models.PaymentMethodCOD)
	mk(models.StatusPlaced, models.PaymentMethodStripe)
	mk(models.StatusShipped, models.PaymentMethodCOD)

	orders, pagination, err := f.service.ListOrders(repositories.OrderFilter{Status: models.StatusPlaced}, 1, 10)
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, int64(2), pagination.TotalOrders)
	for _, o := range orders {
		assert.Equal(t, models.StatusPlaced, o.Status)
	}

	// Combined filters are a logical AND.
	orders, _, err = f.service.ListOrders(repositories.OrderFilter{
		Status:        models.StatusPlaced,
		PaymentMethod: models.PaymentMethodCOD,
	}, 1, 10)
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, models.PaymentMethodCOD, orders[0].PaymentMethod)
}

func TestOrderService_UserOrders(t *testing.T) {
	f := newOrderServiceFixture(t)

	other := &models.User{Name: "Ravi", Email: "ravi@example.com", Password: "hashed"}
	assert.NoError(t, f.users.Create(other))

	_, err := f.service.PlaceOrder(f.userID, sampleAddress(), sampleItems(), 598)
	assert.NoError(t, err)
	_, err = f.service.PlaceOrder(other.ID, sampleAddress(), sampleItems(), 598)
	assert.NoError(t, err)

	orders, err := f.service.UserOrders(f.userID)
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, f.userID, orders[0].UserID)
}
