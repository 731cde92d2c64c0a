// Package gateway wraps the external payment provider. The rest of the
// codebase consumes this contract only and never talks to the provider SDK
// directly.
package gateway

// Order is the provider-side handle for a checkout: the order reference plus
// the token/URL the frontend needs to open the payment page.
type Order struct {
	OrderId     string
	Token       string
	RedirectURL string
}

type Client interface {
	// CreateOrder registers a payment order for the given amount in minor
	// currency units and returns the provider's handle.
	CreateOrder(orderId string, amount int64, itemId, itemName string) (*Order, error)

	// VerifyCallback checks the integrity signature of a payment notification
	// against the shared server key.
	VerifyCallback(orderId, statusCode, grossAmount, signature string) bool

	// CreateRefund issues a refund for a captured payment and returns the
	// provider's refund transaction reference.
	CreateRefund(paymentId string, amount int64, reason string) (string, error)
}
