package gateway

import (
	"fmt"

	"github.com/google/uuid"
)

// MockCheckoutGateway is an in-memory CheckoutGateway for tests and
// keyless local runs. It records the last request so tests can assert on
// the line items the order service built.
type MockCheckoutGateway struct {
	Fail       bool
	LastParams CheckoutParams
	Created    int
}

// NewMockCheckoutGateway creates a new MockCheckoutGateway.
func NewMockCheckoutGateway() *MockCheckoutGateway {
	return &MockCheckoutGateway{}
}

// CreateCheckoutSession returns a synthetic session, or an error when
// Fail is set.
func (m *MockCheckoutGateway) CreateCheckoutSession(params CheckoutParams) (*CheckoutSession, error) {
	m.LastParams = params
	if m.Fail {
		return nil, fmt.Errorf("provider unavailable")
	}
	m.Created++
	id := "cs_mock_" + uuid.New().String()[:8]
	return &CheckoutSession{
		ID:  id,
		URL: "https://checkout.example.com/pay/" + id,
	}, nil
}
