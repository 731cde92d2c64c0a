package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefundStatus represents the status of a refund request.
type RefundStatus string

const (
	RefundStatusPending   RefundStatus = "pending"
	RefundStatusApproved  RefundStatus = "approved"
	RefundStatusRejected  RefundStatus = "rejected"
	RefundStatusProcessed RefundStatus = "processed"
)

// MinRefundReasonLength rejects empty or placeholder refund reasons.
const MinRefundReasonLength = 10

// CanTransitionTo encodes the refund state machine:
// pending -> approved -> processed, pending -> rejected. Nothing else.
func (s RefundStatus) CanTransitionTo(next RefundStatus) bool {
	switch s {
	case RefundStatusPending:
		return next == RefundStatusApproved || next == RefundStatusRejected
	case RefundStatusApproved:
		return next == RefundStatusProcessed
	}
	return false
}

type RefundRequest struct {
	Id                  uuid.UUID
	UserId              uuid.UUID
	InvoiceId           uuid.UUID
	ItemType            ItemType
	ItemId              uuid.UUID
	ItemName            string
	RefundAmount        int64
	Reason              string
	Status              RefundStatus
	AdminNotes          string
	ProcessedBy         *uuid.UUID
	ProcessedAt         *time.Time
	RefundTransactionId *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
