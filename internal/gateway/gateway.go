// Package gateway wraps the external hosted-checkout provider. The order
// service hands it a snapshot of line items and two redirect URLs; the
// provider collects payment and redirects the shopper back with a result.
package gateway

// LineItem is one billable line of a checkout session. UnitAmount is in
// the currency's smallest unit (paise for inr).
type LineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int
}

// CheckoutParams describes a checkout session to create.
type CheckoutParams struct {
	SuccessURL string
	CancelURL  string
	Currency   string
	LineItems  []LineItem
}

// CheckoutSession is the provider's handle for a created session.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CheckoutGateway creates hosted checkout sessions with an external
// payment provider.
type CheckoutGateway interface {
	CreateCheckoutSession(params CheckoutParams) (*CheckoutSession, error)
}
