package entity

import (
	"time"

	"edu-commerce-be/internal/pkg/money"

	"github.com/google/uuid"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

type CouponCode struct {
	Id                uuid.UUID
	Code              string
	DiscountType      DiscountType
	DiscountValue     int64 // percent (0-100) for percentage, minor units for fixed
	ScopeItemType     *ItemType
	ScopeItemId       *uuid.UUID
	MinPurchaseAmount *int64
	MaxDiscountAmount *int64
	UsageLimit        *int
	UsedCount         int
	UserUsageLimit    int
	ValidFrom         time.Time
	ValidUntil        *time.Time
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DiscountQuote is the read-only result of validating a coupon against a
// purchase. Nothing is reserved; the quote must be re-checked before commit.
type DiscountQuote struct {
	CouponId       uuid.UUID
	Code           string
	OriginalAmount int64
	DiscountAmount int64
	FinalAmount    int64
}

// CheckEligibility runs the validation checks in order and short-circuits on
// the first failure. userUseCount is how many times this user has already
// redeemed the coupon. The check reads current counters only; usage is
// committed when the invoice completes, so the caller must re-run this
// immediately before committing.
func (c *CouponCode) CheckEligibility(now time.Time, itemType ItemType, itemId uuid.UUID, purchaseAmount int64, userUseCount int) error {
	if !c.IsActive {
		return ErrCouponInactive
	}
	if now.Before(c.ValidFrom) {
		return ErrCouponNotYetValid
	}
	if c.ValidUntil != nil && now.After(*c.ValidUntil) {
		return ErrCouponExpired
	}
	if c.ScopeItemType != nil && *c.ScopeItemType != itemType {
		return ErrCouponScopeMismatch
	}
	if c.ScopeItemId != nil && *c.ScopeItemId != itemId {
		return ErrCouponScopeMismatch
	}
	if c.MinPurchaseAmount != nil && purchaseAmount < *c.MinPurchaseAmount {
		return ErrCouponMinPurchase
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return ErrCouponUsageLimit
	}
	if userUseCount >= c.UserUsageLimit {
		return ErrCouponUserUsageLimit
	}
	return nil
}

// ComputeDiscount applies the coupon to a purchase amount. The discount never
// exceeds the purchase amount and the final amount never goes negative.
func (c *CouponCode) ComputeDiscount(purchaseAmount int64) DiscountQuote {
	var discount int64
	switch c.DiscountType {
	case DiscountTypePercentage:
		discount = money.Percent(purchaseAmount, c.DiscountValue)
		if c.MaxDiscountAmount != nil {
			discount = money.Min(discount, *c.MaxDiscountAmount)
		}
	case DiscountTypeFixed:
		discount = c.DiscountValue
	}
	if discount < 0 {
		discount = 0
	}
	if discount > purchaseAmount {
		discount = purchaseAmount
	}
	return DiscountQuote{
		CouponId:       c.Id,
		Code:           c.Code,
		OriginalAmount: purchaseAmount,
		DiscountAmount: discount,
		FinalAmount:    purchaseAmount - discount,
	}
}

// CouponUsage records one successful redemption. Rows are inserted only when
// the owning invoice transitions to completed.
type CouponUsage struct {
	Id             uuid.UUID
	CouponCodeId   uuid.UUID
	UserId         uuid.UUID
	InvoiceId      uuid.UUID
	ItemType       ItemType
	ItemId         uuid.UUID
	OriginalAmount int64
	DiscountAmount int64
	FinalAmount    int64
	UsedAt         time.Time
}
