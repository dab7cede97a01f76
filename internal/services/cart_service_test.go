package services_test

import (
	"testing"

	"kedai/internal/models"
	"kedai/internal/repositories"
	"kedai/internal/services"

	"github.com/stretchr/testify/assert"
)

func newCartFixture(t *testing.T) (*services.CartService, *repositories.MockUserRepository, string) {
	t.Helper()

	users := repositories.NewMockUserRepository()
	user := &models.User{Name: "Asha", Email: "asha@example.com", Password: "hashed"}
	assert.NoError(t, users.Create(user))
	return services.NewCartService(users), users, user.ID
}

func TestCartService_AddToCart(t *testing.T) {
	service, _, userID := newCartFixture(t)

	cart, err := service.AddToCart(userID, "prod-1", "M")
	assert.NoError(t, err)
	assert.Equal(t, 1, cart["prod-1"]["M"])

	// Adding again increments the same entry.
	cart, err = service.AddToCart(userID, "prod-1", "M")
	assert.NoError(t, err)
	assert.Equal(t, 2, cart["prod-1"]["M"])

	// A different size is tracked separately.
	cart, err = service.AddToCart(userID, "prod-1", "L")
	assert.NoError(t, err)
	assert.Equal(t, 2, cart["prod-1"]["M"])
	assert.Equal(t, 1, cart["prod-1"]["L"])
}

func TestCartService_AddToCart_Validation(t *testing.T) {
	service, _, userID := newCartFixture(t)

	_, err := service.AddToCart(userID, "", "M")
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = service.AddToCart(userID, "prod-1", "")
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = service.AddToCart("missing-user", "prod-1", "M")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCartService_UpdateCart(t *testing.T) {
	service, _, userID := newCartFixture(t)

	_, err := service.AddToCart(userID, "prod-1", "M")
	assert.NoError(t, err)

	cart, err := service.UpdateCart(userID, "prod-1", "M", 5)
	assert.NoError(t, err)
	assert.Equal(t, 5, cart["prod-1"]["M"])

	// Zero quantity removes the entry and prunes the empty product map.
	cart, err = service.UpdateCart(userID, "prod-1", "M", 0)
	assert.NoError(t, err)
	assert.NotContains(t, cart, "prod-1")
}

func TestCartService_GetCart_RoundTrip(t *testing.T) {
	service, users, userID := newCartFixture(t)

	_, err := service.AddToCart(userID, "prod-1", "M")
	assert.NoError(t, err)
	_, err = service.UpdateCart(userID, "prod-2", "S", 3)
	assert.NoError(t, err)

	cart, err := service.GetCart(userID)
	assert.NoError(t, err)
	assert.Equal(t, 1, cart["prod-1"]["M"])
	assert.Equal(t, 3, cart["prod-2"]["S"])

	// The persisted record matches what the service returns.
	user, err := users.GetByID(userID)
	assert.NoError(t, err)
	assert.Equal(t, cart, user.CartData)
}
