package service

import (
	"context"
	"testing"
	"time"

	"edu-commerce-be/internal/config"
	"edu-commerce-be/internal/dto"
	"edu-commerce-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBilling = config.BillingConfig{
	Currency:           "IDR",
	CurrencyExponent:   0,
	TaxRateBasisPoints: 1100,
	EnrollRetryTopic:   "FINALIZE_ENROLLMENT",
	CatalogCacheTTL:    60,
}

type orderFixture struct {
	uow     *stubUow
	gateway *stubGateway
	orders  IOrderService
	enroll  IEnrollmentService
}

func newOrderFixture() *orderFixture {
	uow := newStubUow()
	factory := &stubFactory{uow: uow}
	gw := &stubGateway{serverKey: "test-key"}
	catalog := NewCatalogService(factory, time.Minute)
	enroll := NewEnrollmentService(factory, nopLogger{})
	orders := NewOrderService(factory, catalog, enroll, gw, testBilling, nil, nopLogger{})
	return &orderFixture{uow: uow, gateway: gw, orders: orders, enroll: enroll}
}

func (f *orderFixture) addCourse(price int64, free bool) *entity.CatalogItem {
	item := &entity.CatalogItem{
		ItemType: entity.ItemTypeCourse,
		ItemId:   uuid.New(),
		Title:    "Intro to Distributed Systems",
		Price:    price,
		IsFree:   free,
	}
	f.uow.catalog.put(item)
	return item
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("paid item creates pending invoice with gateway handle", func(t *testing.T) {
		f := newOrderFixture()
		item := f.addCourse(150000, false)
		userId := uuid.New()

		res, err := f.orders.CreateOrder(ctx, userId, "buyer@example.com", &dto.CreateOrderRequest{
			ItemType: "course",
			ItemId:   item.ItemId,
		})
		require.NoError(t, err)

		assert.False(t, res.Completed)
		assert.NotEmpty(t, res.GatewayToken)
		assert.NotEmpty(t, res.InvoiceNumber)
		assert.Equal(t, int64(150000), res.Amount)
		assert.Equal(t, int64(16500), res.Tax)
		assert.Equal(t, int64(166500), res.TotalAmount)
		assert.Equal(t, "IDR", res.Currency)

		stored := f.uow.invoices.get(res.InvoiceId)
		assert.Equal(t, entity.PaymentStatusPending, stored.PaymentStatus)
		assert.NoError(t, stored.CheckTotals())
		require.NotNil(t, stored.CustomerEmail)
		assert.Equal(t, "buyer@example.com", *stored.CustomerEmail)
	})

	t.Run("free item completes without gateway", func(t *testing.T) {
		f := newOrderFixture()
		item := f.addCourse(0, true)
		userId := uuid.New()

		res, err := f.orders.CreateOrder(ctx, userId, "", &dto.CreateOrderRequest{
			ItemType: "course",
			ItemId:   item.ItemId,
		})
		require.NoError(t, err)

		assert.True(t, res.Completed)
		assert.Empty(t, res.GatewayToken)
		assert.Equal(t, int64(0), res.TotalAmount)
		assert.Equal(t, 0, f.gateway.orderCount())

		stored := f.uow.invoices.get(res.InvoiceId)
		assert.Equal(t, entity.PaymentStatusCompleted, stored.PaymentStatus)

		enrolled, err := f.enroll.IsEnrolled(ctx, userId, entity.ItemTypeCourse, item.ItemId)
		require.NoError(t, err)
		assert.True(t, enrolled)
	})

	t.Run("unknown item", func(t *testing.T) {
		f := newOrderFixture()
		_, err := f.orders.CreateOrder(ctx, uuid.New(), "", &dto.CreateOrderRequest{
			ItemType: "course",
			ItemId:   uuid.New(),
		})
		assert.ErrorIs(t, err, entity.ErrItemNotFound)
	})

	t.Run("already enrolled", func(t *testing.T) {
		f := newOrderFixture()
		item := f.addCourse(150000, false)
		userId := uuid.New()
		require.NoError(t, f.enroll.Finalize(ctx, userId, entity.ItemTypeCourse, item.ItemId, uuid.New()))

		_, err := f.orders.CreateOrder(ctx, userId, "", &dto.CreateOrderRequest{
			ItemType: "course",
			ItemId:   item.ItemId,
		})
		assert.ErrorIs(t, err, entity.ErrItemAlreadyOwned)
	})

	t.Run("second order reuses the pending invoice", func(t *testing.T) {
		f := newOrderFixture()
		item := f.addCourse(150000, false)
		userId := uuid.New()
		req := &dto.CreateOrderRequest{ItemType: "course", ItemId: item.ItemId}

		first, err := f.orders.CreateOrder(ctx, userId, "", req)
		require.NoError(t, err)
		second, err := f.orders.CreateOrder(ctx, userId, "", req)
		require.NoError(t, err)

		assert.Equal(t, first.InvoiceId, second.InvoiceId)
		assert.Equal(t, 1, f.uow.invoices.count())
		// each attempt gets a fresh gateway order reference
		assert.NotEqual(t, first.GatewayOrderId, second.GatewayOrderId)
		assert.Equal(t, 2, f.gateway.orderCount())
	})

	t.Run("coupon applies discount and tax on the discounted base", func(t *testing.T) {
		f := newOrderFixture()
		item := f.addCourse(10000, false)
		userId := uuid.New()

		couponId := uuid.New()
		maxDiscount := int64(950)
		minPurchase := int64(5000)
		limit := 100
		f.uow.coupons.coupons[couponId] = &entity.CouponCode{
			Id:                couponId,
			Code:              "PERCENT10",
			DiscountType:      entity.DiscountTypePercentage,
			DiscountValue:     10,
			MinPurchaseAmount: &minPurchase,
			MaxDiscountAmount: &maxDiscount,
			UsageLimit:        &limit,
			UserUsageLimit:    1,
			ValidFrom:         time.Now().Add(-time.Hour),
			IsActive:          true,
		}

		res, err := f.orders.CreateOrder(ctx, userId, "", &dto.CreateOrderRequest{
			ItemType:   "course",
			ItemId:     item.ItemId,
			CouponCode: "PERCENT10",
		})
		require.NoError(t, err)

		assert.Equal(t, int64(950), res.DiscountAmount)
		assert.Equal(t, int64(995), res.Tax)
		assert.Equal(t, int64(10045), res.TotalAmount)
		// validation is read-only, nothing consumed yet
		assert.Equal(t, 0, f.uow.coupons.usedCount(couponId))
	})

	t.Run("ineligible coupon aborts the order", func(t *testing.T) {
		f := newOrderFixture()
		item := f.addCourse(10000, false)

		_, err := f.orders.CreateOrder(ctx, uuid.New(), "", &dto.CreateOrderRequest{
			ItemType:   "course",
			ItemId:     item.ItemId,
			CouponCode: "NOSUCHCODE",
		})
		assert.ErrorIs(t, err, entity.ErrCouponNotFound)
		assert.Equal(t, 0, f.uow.invoices.count())
		assert.Equal(t, 0, f.gateway.orderCount())
	})
}

func TestGetOrderSummary(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()
	item := f.addCourse(150000, false)

	res, err := f.orders.GetOrderSummary(ctx, entity.ItemTypeCourse, item.ItemId)
	require.NoError(t, err)

	assert.Equal(t, int64(150000), res.Subtotal)
	assert.Equal(t, int64(16500), res.Tax)
	assert.Equal(t, int64(166500), res.Total)
	assert.Equal(t, "IDR 166500", res.DisplayTotal)

	_, err = f.orders.GetOrderSummary(ctx, entity.ItemTypeWorkshop, uuid.New())
	assert.ErrorIs(t, err, entity.ErrItemNotFound)
}
