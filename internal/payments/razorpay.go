package payments

import (
	"context"
	"fmt"

	"github.com/razorpay/razorpay-go"
)

type RazorpayGateway struct {
	createOrder func(data map[string]interface{}) (map[string]interface{}, error)
}

func NewRazorpayGateway(creds Credentials) Gateway {
	client := razorpay.NewClient(creds.KeyID, creds.KeySecret)
	return &RazorpayGateway{
		createOrder: func(data map[string]interface{}) (map[string]interface{}, error) {
			return client.Order.Create(data, nil)
		},
	}
}

type createOrderResult struct {
	body map[string]interface{}
	err  error
}

// CreateOrder creates a Razorpay order for amount paise. The SDK call takes no
// context, so ctx only bounds how long we wait for it.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*RemoteOrder, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}

	done := make(chan createOrderResult, 1)
	go func() {
		body, err := g.createOrder(data)
		done <- createOrderResult{body: body, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, ctx.Err())
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, res.err)
		}
		return parseRazorpayOrder(res.body, amount, currency)
	}
}

func parseRazorpayOrder(body map[string]interface{}, amount int64, currency string) (*RemoteOrder, error) {
	id, ok := body["id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("%w: order id missing from gateway response", ErrGatewayUnavailable)
	}

	order := &RemoteOrder{
		ID:       id,
		Amount:   amount,
		Currency: currency,
	}
	switch v := body["amount"].(type) {
	case float64:
		order.Amount = int64(v)
	case int64:
		order.Amount = v
	case int:
		order.Amount = int64(v)
	}
	if c, ok := body["currency"].(string); ok && c != "" {
		order.Currency = c
	}
	return order, nil
}
