package service

import (
	"context"
	"testing"
	"time"

	"edu-commerce-be/internal/dto"
	"edu-commerce-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type couponFixture struct {
	uow     *stubUow
	coupons ICouponService
}

func newCouponFixture() *couponFixture {
	uow := newStubUow()
	factory := &stubFactory{uow: uow}
	catalog := NewCatalogService(factory, time.Minute)
	return &couponFixture{uow: uow, coupons: NewCouponService(factory, catalog)}
}

func (f *couponFixture) addWorkshop(price int64) *entity.CatalogItem {
	item := &entity.CatalogItem{
		ItemType: entity.ItemTypeWorkshop,
		ItemId:   uuid.New(),
		Title:    "Profiling Go Services",
		Price:    price,
		IsFree:   false,
	}
	f.uow.catalog.put(item)
	return item
}

func (f *couponFixture) addPercentCoupon(code string, percent int64) *entity.CouponCode {
	coupon := &entity.CouponCode{
		Id:             uuid.New(),
		Code:           code,
		DiscountType:   entity.DiscountTypePercentage,
		DiscountValue:  percent,
		UserUsageLimit: 1,
		ValidFrom:      time.Now().Add(-time.Hour),
		IsActive:       true,
	}
	if err := f.uow.coupons.Create(context.Background(), coupon); err != nil {
		panic(err)
	}
	return coupon
}

func TestValidateCoupon(t *testing.T) {
	ctx := context.Background()

	t.Run("eligible coupon returns the quote without consuming it", func(t *testing.T) {
		f := newCouponFixture()
		item := f.addWorkshop(200000)
		coupon := f.addPercentCoupon("LAUNCH15", 15)

		res, err := f.coupons.Validate(ctx, uuid.New(), &dto.ValidateCouponRequest{
			Code:     "LAUNCH15",
			ItemType: "workshop",
			ItemId:   item.ItemId,
		})
		require.NoError(t, err)

		assert.Equal(t, "LAUNCH15", res.Code)
		assert.Equal(t, int64(200000), res.OriginalAmount)
		assert.Equal(t, int64(30000), res.DiscountAmount)
		assert.Equal(t, int64(170000), res.FinalAmount)
		assert.Equal(t, 0, f.uow.coupons.usedCount(coupon.Id))
	})

	t.Run("unknown code", func(t *testing.T) {
		f := newCouponFixture()
		item := f.addWorkshop(200000)

		_, err := f.coupons.Validate(ctx, uuid.New(), &dto.ValidateCouponRequest{
			Code:     "NOSUCHCODE",
			ItemType: "workshop",
			ItemId:   item.ItemId,
		})
		assert.ErrorIs(t, err, entity.ErrCouponNotFound)
	})

	t.Run("unknown item", func(t *testing.T) {
		f := newCouponFixture()
		f.addPercentCoupon("LAUNCH15", 15)

		_, err := f.coupons.Validate(ctx, uuid.New(), &dto.ValidateCouponRequest{
			Code:     "LAUNCH15",
			ItemType: "workshop",
			ItemId:   uuid.New(),
		})
		assert.ErrorIs(t, err, entity.ErrItemNotFound)
	})

	t.Run("user over their per-user limit", func(t *testing.T) {
		f := newCouponFixture()
		item := f.addWorkshop(200000)
		coupon := f.addPercentCoupon("LAUNCH15", 15)
		userId := uuid.New()
		require.NoError(t, f.uow.coupons.CreateUsage(ctx, &entity.CouponUsage{
			Id:           uuid.New(),
			CouponCodeId: coupon.Id,
			UserId:       userId,
			UsedAt:       time.Now(),
		}))

		_, err := f.coupons.Validate(ctx, userId, &dto.ValidateCouponRequest{
			Code:     "LAUNCH15",
			ItemType: "workshop",
			ItemId:   item.ItemId,
		})
		assert.ErrorIs(t, err, entity.ErrCouponUserUsageLimit)

		// a different user still gets the quote
		_, err = f.coupons.Validate(ctx, uuid.New(), &dto.ValidateCouponRequest{
			Code:     "LAUNCH15",
			ItemType: "workshop",
			ItemId:   item.ItemId,
		})
		assert.NoError(t, err)
	})
}
