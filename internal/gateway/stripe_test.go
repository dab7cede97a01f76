package gateway_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"kedai/internal/gateway"

	"github.com/stretchr/testify/assert"
)

func TestStripeGateway_CreateCheckoutSession(t *testing.T) {
	var gotForm map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)

		user, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "sk_test_123", user)

		assert.NoError(t, r.ParseForm())
		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_test_abc","url":"https://checkout.stripe.com/pay/cs_test_abc"}`))
	}))
	defer server.Close()

	g := gateway.NewStripeGatewayWithBaseURL("sk_test_123", server.URL)
	session, err := g.CreateCheckoutSession(gateway.CheckoutParams{
		SuccessURL: "https://shop.example.com/verify?success=true&orderId=o1",
		CancelURL:  "https://shop.example.com/verify?success=false&orderId=o1",
		Currency:   "inr",
		LineItems: []gateway.LineItem{
			{Name: "Linen Shirt", UnitAmount: 29900, Quantity: 1},
			{Name: "Delivery Charges", UnitAmount: 4900, Quantity: 1},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, "cs_test_abc", session.ID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_abc", session.URL)

	assert.Equal(t, "payment", gotForm["mode"])
	assert.Equal(t, "https://shop.example.com/verify?success=true&orderId=o1", gotForm["success_url"])
	assert.Equal(t, "inr", gotForm["line_items[0][price_data][currency]"])
	assert.Equal(t, "Linen Shirt", gotForm["line_items[0][price_data][product_data][name]"])
	assert.Equal(t, "29900", gotForm["line_items[0][price_data][unit_amount]"])
	assert.Equal(t, "1", gotForm["line_items[0][quantity]"])
	assert.Equal(t, "Delivery Charges", gotForm["line_items[1][price_data][product_data][name]"])
}

func TestStripeGateway_CreateCheckoutSession_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"message":"Your card was declined."}}`))
	}))
	defer server.Close()

	g := gateway.NewStripeGatewayWithBaseURL("sk_test_123", server.URL)
	_, err := g.CreateCheckoutSession(gateway.CheckoutParams{Currency: "inr"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Your card was declined.")
}

func TestStripeGateway_CreateCheckoutSession_MissingURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"cs_test_abc"}`))
	}))
	defer server.Close()

	g := gateway.NewStripeGatewayWithBaseURL("sk_test_123", server.URL)
	_, err := g.CreateCheckoutSession(gateway.CheckoutParams{Currency: "inr"})
	assert.Error(t, err)
}

func TestMockCheckoutGateway(t *testing.T) {
	m := gateway.NewMockCheckoutGateway()

	session, err := m.CreateCheckoutSession(gateway.CheckoutParams{Currency: "inr"})
	assert.NoError(t, err)
	assert.NotEmpty(t, session.URL)
	assert.Equal(t, 1, m.Created)

	m.Fail = true
	_, err = m.CreateCheckoutSession(gateway.CheckoutParams{Currency: "inr"})
	assert.Error(t, err)
}
