package services

import (
	"fmt"

	"kedai/internal/models"
	"kedai/internal/repositories"
)

// CartService handles the server-side mirror of a user's cart. The cart
// lives on the user record as productID -> size -> quantity.
type CartService struct {
	userRepo repositories.UserRepository
}

// NewCartService creates a new CartService.
func NewCartService(userRepo repositories.UserRepository) *CartService {
	return &CartService{
		userRepo: userRepo,
	}
}

// AddToCart increments the quantity of one product+size by one.
func (s *CartService) AddToCart(userID, itemID, size string) (models.CartData, error) {
	if itemID == "" || size == "" {
		return nil, fmt.Errorf("%w: itemId and size are required", ErrInvalidInput)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}

	cart := user.CartData
	if cart == nil {
		cart = models.CartData{}
	}
	if cart[itemID] == nil {
		cart[itemID] = map[string]int{}
	}
	cart[itemID][size]++

	if err := s.userRepo.UpdateCart(userID, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart for user %s: %w", userID, err)
	}
	return cart, nil
}

// UpdateCart sets the quantity of one product+size. A quantity of zero or
// less removes the entry.
func (s *CartService) UpdateCart(userID, itemID, size string, quantity int) (models.CartData, error) {
	if itemID == "" || size == "" {
		return nil, fmt.Errorf("%w: itemId and size are required", ErrInvalidInput)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}

	cart := user.CartData
	if cart == nil {
		cart = models.CartData{}
	}
	if quantity > 0 {
		if cart[itemID] == nil {
			cart[itemID] = map[string]int{}
		}
		cart[itemID][size] = quantity
	} else if cart[itemID] != nil {
		delete(cart[itemID], size)
		if len(cart[itemID]) == 0 {
			delete(cart, itemID)
		}
	}

	if err := s.userRepo.UpdateCart(userID, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart for user %s: %w", userID, err)
	}
	return cart, nil
}

// GetCart returns the user's cart.
func (s *CartService) GetCart(userID string) (models.CartData, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	if user.CartData == nil {
		return models.CartData{}, nil
	}
	return user.CartData, nil
}
