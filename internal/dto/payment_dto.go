package dto

import (
	"time"

	"github.com/google/uuid"
)

// GatewayCallbackRequest is the payment notification body posted by the
// gateway. Field names follow the midtrans notification payload.
type GatewayCallbackRequest struct {
	OrderId           string `json:"order_id"`
	TransactionId     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	PaymentType       string `json:"payment_type"`
	SignatureKey      string `json:"signature_key"`
}

type ConfirmedInvoiceResponse struct {
	InvoiceId     uuid.UUID  `json:"invoice_id"`
	InvoiceNumber string     `json:"invoice_number"`
	PaymentStatus string     `json:"payment_status"`
	PaymentId     *string    `json:"payment_id,omitempty"`
	TotalAmount   int64      `json:"total_amount"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}
