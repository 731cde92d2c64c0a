package entity

import "errors"

// Coupon validation failures, in the order the checks run.
var (
	ErrCouponNotFound       = errors.New("coupon not found")
	ErrCouponInactive       = errors.New("coupon is not active")
	ErrCouponNotYetValid    = errors.New("coupon is not valid yet")
	ErrCouponExpired        = errors.New("coupon has expired")
	ErrCouponScopeMismatch  = errors.New("coupon does not apply to this item")
	ErrCouponMinPurchase    = errors.New("purchase amount below coupon minimum")
	ErrCouponUsageLimit     = errors.New("coupon usage limit reached")
	ErrCouponUserUsageLimit = errors.New("coupon already used the maximum number of times by this user")
)

// Order and payment failures.
var (
	ErrItemNotFound     = errors.New("item not found")
	ErrItemAlreadyOwned = errors.New("item already owned")
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrInvalidSignature = errors.New("invalid gateway signature")
	ErrCouponExhausted  = errors.New("coupon exhausted before payment completed")
	ErrInvalidTotals    = errors.New("invoice totals do not reconcile")
	ErrGateway          = errors.New("payment gateway error")
)

// Refund lifecycle failures.
var (
	ErrRefundNotFound       = errors.New("refund request not found")
	ErrRefundNotAllowed     = errors.New("invoice is not eligible for refund")
	ErrRefundWindowExpired  = errors.New("refund window has expired")
	ErrRefundConflict       = errors.New("an open refund request already exists for this invoice")
	ErrRefundReasonTooShort = errors.New("refund reason is too short")
	ErrRefundState          = errors.New("illegal refund state transition")
)
