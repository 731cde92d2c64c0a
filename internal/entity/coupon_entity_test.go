package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func i64(v int64) *int64    { return &v }
func intp(v int) *int       { return &v }
func tp(v time.Time) *time.Time { return &v }

func percentCoupon() *CouponCode {
	return &CouponCode{
		Id:                uuid.New(),
		Code:              "PERCENT10",
		DiscountType:      DiscountTypePercentage,
		DiscountValue:     10,
		MinPurchaseAmount: i64(5000),
		MaxDiscountAmount: i64(950),
		UsageLimit:        intp(100),
		UserUsageLimit:    1,
		ValidFrom:         time.Now().Add(-24 * time.Hour),
		ValidUntil:        tp(time.Now().Add(24 * time.Hour)),
		IsActive:          true,
	}
}

func TestComputeDiscount(t *testing.T) {
	t.Run("percentage capped by max discount", func(t *testing.T) {
		c := percentCoupon()
		// 10% of 10000 is 1000, but the cap is 950.
		q := c.ComputeDiscount(10000)
		assert.Equal(t, int64(950), q.DiscountAmount)
		assert.Equal(t, int64(9050), q.FinalAmount)
	})

	t.Run("percentage without hitting cap", func(t *testing.T) {
		c := percentCoupon()
		q := c.ComputeDiscount(6000)
		assert.Equal(t, int64(600), q.DiscountAmount)
		assert.Equal(t, int64(5400), q.FinalAmount)
	})

	t.Run("fixed discount larger than purchase floors at zero", func(t *testing.T) {
		c := &CouponCode{
			Code:          "FLAT100",
			DiscountType:  DiscountTypeFixed,
			DiscountValue: 10000,
			IsActive:      true,
		}
		q := c.ComputeDiscount(7500)
		assert.Equal(t, int64(7500), q.DiscountAmount)
		assert.Equal(t, int64(0), q.FinalAmount)
	})

	t.Run("fixed discount below purchase", func(t *testing.T) {
		c := &CouponCode{
			Code:          "FLAT100",
			DiscountType:  DiscountTypeFixed,
			DiscountValue: 100,
			IsActive:      true,
		}
		q := c.ComputeDiscount(7500)
		assert.Equal(t, int64(100), q.DiscountAmount)
		assert.Equal(t, int64(7400), q.FinalAmount)
	})

	t.Run("quote carries original amount", func(t *testing.T) {
		c := percentCoupon()
		q := c.ComputeDiscount(6000)
		assert.Equal(t, int64(6000), q.OriginalAmount)
		assert.Equal(t, q.OriginalAmount-q.DiscountAmount, q.FinalAmount)
	})
}

func TestCheckEligibility(t *testing.T) {
	now := time.Now()
	itemId := uuid.New()

	t.Run("valid coupon passes", func(t *testing.T) {
		c := percentCoupon()
		err := c.CheckEligibility(now, ItemTypeCourse, itemId, 10000, 0)
		assert.NoError(t, err)
	})

	t.Run("inactive checked before dates", func(t *testing.T) {
		c := percentCoupon()
		c.IsActive = false
		c.ValidFrom = now.Add(time.Hour) // would also fail NotYetValid
		err := c.CheckEligibility(now, ItemTypeCourse, itemId, 10000, 0)
		assert.ErrorIs(t, err, ErrCouponInactive)
	})

	t.Run("not yet valid", func(t *testing.T) {
		c := percentCoupon()
		c.ValidFrom = now.Add(time.Hour)
		err := c.CheckEligibility(now, ItemTypeCourse, itemId, 10000, 0)
		assert.ErrorIs(t, err, ErrCouponNotYetValid)
	})

	t.Run("expired", func(t *testing.T) {
		c := percentCoupon()
		c.ValidUntil = tp(now.Add(-time.Minute))
		err := c.CheckEligibility(now, ItemTypeCourse, itemId, 10000, 0)
		assert.ErrorIs(t, err, ErrCouponExpired)
	})

	t.Run("scope item type mismatch", func(t *testing.T) {
		c := percentCoupon()
		scope := ItemTypeWorkshop
		c.ScopeItemType = &scope
		err := c.CheckEligibility(now, ItemTypeCourse, itemId, 10000, 0)
		assert.ErrorIs(t, err, ErrCouponScopeMismatch)
	})

	t.Run("scope item id mismatch", func(t *testing.T) {
		c := percentCoupon()
		other := uuid.New()
		c.ScopeItemId = &other
		err := c.CheckEligibility(now, ItemTypeCourse, itemId, 10000, 0)
		assert.ErrorIs(t, err, ErrCouponScopeMismatch)
	})

	t.Run("below minimum purchase", func(t *testing.T) {
		c := percentCoupon()
		err := c.CheckEligibility(now, ItemTypeCourse, itemId, 4999, 0)
		assert.ErrorIs(t, err, ErrCouponMinPurchase)
	})

	t.Run("global usage limit reached", func(t *testing.T) {
		c := percentCoupon()
		c.UsedCount = 100
		err := c.CheckEligibility(now, ItemTypeCourse, itemId, 10000, 0)
		assert.ErrorIs(t, err, ErrCouponUsageLimit)
	})

	t.Run("per user limit reached", func(t *testing.T) {
		c := percentCoupon()
		err := c.CheckEligibility(now, ItemTypeCourse, itemId, 10000, 1)
		assert.ErrorIs(t, err, ErrCouponUserUsageLimit)
	})

	t.Run("nil usage limit is unlimited", func(t *testing.T) {
		c := percentCoupon()
		c.UsageLimit = nil
		c.UsedCount = 1000000
		err := c.CheckEligibility(now, ItemTypeCourse, itemId, 10000, 0)
		assert.NoError(t, err)
	})

	t.Run("min purchase checked before usage limits", func(t *testing.T) {
		c := percentCoupon()
		c.UsedCount = 100
		err := c.CheckEligibility(now, ItemTypeCourse, itemId, 1000, 0)
		assert.ErrorIs(t, err, ErrCouponMinPurchase)
	})
}
