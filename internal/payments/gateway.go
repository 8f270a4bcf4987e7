// Package payments talks to the hosted payment gateway used for card/netbanking
// checkout. Manual UPI payments never reach this package.
package payments

import (
	"context"
	"errors"
)

const CurrencyINR = "INR"

var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

// RemoteOrder is the gateway's view of an order created for checkout.
type RemoteOrder struct {
	ID       string
	Amount   int64
	Currency string
}

type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*RemoteOrder, error)
}

// Credentials are the admin-managed gateway settings, read fresh for every checkout.
type Credentials struct {
	KeyID     string
	KeySecret string
	Enabled   bool
	Mode      string
}

// Usable reports whether a gateway client may be constructed from these credentials.
func (c Credentials) Usable() bool {
	return c.Enabled && c.KeyID != "" && c.KeySecret != ""
}

// Factory builds a Gateway from usable credentials.
type Factory func(creds Credentials) Gateway
