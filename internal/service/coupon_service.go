package service

import (
	"context"
	"time"

	"edu-commerce-be/internal/dto"
	"edu-commerce-be/internal/entity"
	"edu-commerce-be/internal/repository/specification"
	"edu-commerce-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ICouponService interface {
	// Validate checks a coupon against an item for a user and returns the
	// discount quote. It writes nothing; the quote can be invalidated by
	// concurrent redemptions and is re-checked when the payment confirms.
	Validate(ctx context.Context, userId uuid.UUID, req *dto.ValidateCouponRequest) (*dto.ValidateCouponResponse, error)
}

type couponService struct {
	uowFactory     unitofwork.RepositoryFactory
	catalogService ICatalogService
}

func NewCouponService(uowFactory unitofwork.RepositoryFactory, catalogService ICatalogService) ICouponService {
	return &couponService{
		uowFactory:     uowFactory,
		catalogService: catalogService,
	}
}

func (s *couponService) Validate(ctx context.Context, userId uuid.UUID, req *dto.ValidateCouponRequest) (*dto.ValidateCouponResponse, error) {
	itemType := entity.ItemType(req.ItemType)

	item, err := s.catalogService.GetItem(ctx, itemType, req.ItemId)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, entity.ErrItemNotFound
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	quote, err := quoteCoupon(ctx, uow, userId, req.Code, itemType, req.ItemId, item.Price, time.Now())
	if err != nil {
		return nil, err
	}

	return &dto.ValidateCouponResponse{
		Code:           quote.Code,
		OriginalAmount: quote.OriginalAmount,
		DiscountAmount: quote.DiscountAmount,
		FinalAmount:    quote.FinalAmount,
	}, nil
}

// quoteCoupon runs the full eligibility chain against live counters and
// computes the discount. Shared by validation, order creation and the
// re-check inside the payment confirmation transaction.
func quoteCoupon(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, code string, itemType entity.ItemType, itemId uuid.UUID, purchaseAmount int64, now time.Time) (*entity.DiscountQuote, error) {
	coupon, err := uow.CouponRepository().FindOne(ctx, specification.ByCode{Code: code})
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, entity.ErrCouponNotFound
	}

	userUseCount, err := uow.CouponRepository().CountUsagesByUser(ctx, coupon.Id, userId)
	if err != nil {
		return nil, err
	}

	if err := coupon.CheckEligibility(now, itemType, itemId, purchaseAmount, userUseCount); err != nil {
		return nil, err
	}

	quote := coupon.ComputeDiscount(purchaseAmount)
	return &quote, nil
}
