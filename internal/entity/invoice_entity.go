package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// RefundWindow is how long after invoice creation a refund may be requested.
const RefundWindow = 7 * 24 * time.Hour

// Invoice is the canonical record of a single purchase attempt and its
// financial outcome. All amounts are minor units.
type Invoice struct {
	Id             uuid.UUID
	InvoiceNumber  string
	UserId         uuid.UUID
	ItemType       ItemType
	ItemId         uuid.UUID
	ItemName       string
	Amount         int64
	Tax            int64
	TotalAmount    int64
	DiscountAmount int64
	GatewayOrderId string
	CustomerEmail  *string
	PaymentId      *string
	PaymentMethod  *string
	PaymentStatus  PaymentStatus
	CouponCodeId   *uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CheckTotals verifies the money invariant before the invoice is persisted or
// sent to the gateway: total = amount - discount + tax, every quantity >= 0.
func (i *Invoice) CheckTotals() error {
	if i.Amount < 0 || i.Tax < 0 || i.DiscountAmount < 0 || i.TotalAmount < 0 {
		return ErrInvalidTotals
	}
	if i.DiscountAmount > i.Amount {
		return ErrInvalidTotals
	}
	if i.TotalAmount != i.Amount-i.DiscountAmount+i.Tax {
		return ErrInvalidTotals
	}
	return nil
}

// WithinRefundWindow reports whether a refund may still be requested.
func (i *Invoice) WithinRefundWindow(now time.Time) bool {
	return now.Sub(i.CreatedAt) <= RefundWindow
}
