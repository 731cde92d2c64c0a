package gateway

import (
	"crypto/sha512"
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

type midtransClient struct {
	serverKey string
	snap      snap.Client
	core      coreapi.Client
	finishURL string
}

// NewMidtransClient builds a gateway client backed by midtrans. finishURL is
// where the payment page redirects the buyer after checkout.
func NewMidtransClient(serverKey string, production bool, finishURL string) Client {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	c := &midtransClient{
		serverKey: serverKey,
		finishURL: finishURL,
	}
	c.snap.New(serverKey, env)
	c.core.New(serverKey, env)
	return c
}

func (c *midtransClient) CreateOrder(orderId string, amount int64, itemId, itemName string) (*Order, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderId,
			GrossAmt: amount,
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: c.finishURL,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    itemId,
				Price: amount,
				Qty:   1,
				Name:  itemName,
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	resp, midErr := c.snap.CreateTransaction(req)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans create order: %v", midErr.GetMessage())
	}

	return &Order{
		OrderId:     orderId,
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
	}, nil
}

// VerifyCallback recomputes the midtrans notification signature:
// SHA512(order_id + status_code + gross_amount + server_key).
func (c *midtransClient) VerifyCallback(orderId, statusCode, grossAmount, signature string) bool {
	return Signature(orderId, statusCode, grossAmount, c.serverKey) == signature
}

func (c *midtransClient) CreateRefund(paymentId string, amount int64, reason string) (string, error) {
	req := &coreapi.RefundReq{
		Amount: amount,
		Reason: reason,
	}
	resp, midErr := c.core.RefundTransaction(paymentId, req)
	if midErr != nil {
		return "", fmt.Errorf("midtrans refund: %v", midErr.GetMessage())
	}
	if resp.RefundKey != "" {
		return resp.RefundKey, nil
	}
	return resp.TransactionID, nil
}

// Signature computes the integrity token of a payment notification. Exposed
// for tests and for the simulation client.
func Signature(orderId, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderId + statusCode + grossAmount + serverKey))
	return fmt.Sprintf("%x", sum)
}
