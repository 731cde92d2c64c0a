package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- User-Side Refund Request ---

type UserRefundRequest struct {
	InvoiceId uuid.UUID `json:"invoice_id" validate:"required"`
	Reason    string    `json:"reason" validate:"required,min=10"`
}

type RefundRequestResponse struct {
	Id           uuid.UUID  `json:"id"`
	InvoiceId    uuid.UUID  `json:"invoice_id"`
	ItemName     string     `json:"item_name"`
	RefundAmount int64      `json:"refund_amount"`
	Reason       string     `json:"reason"`
	Status       string     `json:"status"`
	AdminNotes   string     `json:"admin_notes,omitempty"`
	ProcessedAt  *time.Time `json:"processed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// --- Admin-Side Refund Management ---

type AdminRefundDecisionRequest struct {
	Decision   string `json:"decision" validate:"required,oneof=approve reject"`
	AdminNotes string `json:"admin_notes,omitempty"`
}

type AdminRefundDecisionResponse struct {
	Id                  uuid.UUID  `json:"id"`
	Status              string     `json:"status"`
	RefundAmount        int64      `json:"refund_amount"`
	RefundTransactionId *string    `json:"refund_transaction_id,omitempty"`
	ProcessedAt         *time.Time `json:"processed_at,omitempty"`
}

type AdminRefundListResponse struct {
	Id           uuid.UUID  `json:"id"`
	UserId       uuid.UUID  `json:"user_id"`
	InvoiceId    uuid.UUID  `json:"invoice_id"`
	ItemType     string     `json:"item_type"`
	ItemName     string     `json:"item_name"`
	RefundAmount int64      `json:"refund_amount"`
	Reason       string     `json:"reason"`
	Status       string     `json:"status"`
	AdminNotes   string     `json:"admin_notes,omitempty"`
	ProcessedAt  *time.Time `json:"processed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
