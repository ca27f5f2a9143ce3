// Package gateway abstracts the third-party payment gateway that hosts the
// actual payment-collection page. The service hands it an order description
// and gets back a URL to redirect the payer to; outcomes come back later via
// the callback routes.
package gateway

// Order describes one payment session to the gateway.
type Order struct {
	Amount        float64
	Currency      string
	TransactionID string

	// Callback URLs the gateway redirects/notifies; each of the first three
	// embeds the transaction id.
	SuccessURL string
	FailURL    string
	CancelURL  string
	NotifyURL  string

	ProductName     string
	ProductCategory string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	// Placeholder address block, from configuration.
	Address1 string
	Address2 string
	City     string
	State    string
	Postcode string
	Country  string
}

// Client creates a hosted payment session for an order and returns the
// page URL the payer should be redirected to.
type Client interface {
	CreateSession(order Order) (string, error)
}
