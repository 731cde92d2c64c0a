package implementation

import (
	"context"

	"edu-commerce-be/internal/entity"
	"edu-commerce-be/internal/model"
	"edu-commerce-be/internal/repository/contract"
	"edu-commerce-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type couponRepositoryImpl struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) contract.CouponRepository {
	return &couponRepositoryImpl{db: db}
}

func (r *couponRepositoryImpl) Create(ctx context.Context, coupon *entity.CouponCode) error {
	return r.db.WithContext(ctx).Create(r.mapToModel(coupon)).Error
}

func (r *couponRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CouponCode, error) {
	var mc model.CouponCode
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&mc).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&mc), nil
}

func (r *couponRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CouponCode, error) {
	var mcs []*model.CouponCode
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mcs).Error; err != nil {
		return nil, err
	}

	var coupons []*entity.CouponCode
	for _, mc := range mcs {
		coupons = append(coupons, r.mapToEntity(mc))
	}
	return coupons, nil
}

func (r *couponRepositoryImpl) Update(ctx context.Context, coupon *entity.CouponCode) error {
	return r.db.WithContext(ctx).Model(&model.CouponCode{}).
		Where("id = ?", coupon.Id).
		Updates(map[string]interface{}{
			"discount_type":       string(coupon.DiscountType),
			"discount_value":      coupon.DiscountValue,
			"min_purchase_amount": coupon.MinPurchaseAmount,
			"max_discount_amount": coupon.MaxDiscountAmount,
			"usage_limit":         coupon.UsageLimit,
			"user_usage_limit":    coupon.UserUsageLimit,
			"valid_from":          coupon.ValidFrom,
			"valid_until":         coupon.ValidUntil,
			"is_active":           coupon.IsActive,
		}).Error
}

func (r *couponRepositoryImpl) CountUsagesByUser(ctx context.Context, couponId, userId uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CouponCodeUsage{}).
		Where("coupon_code_id = ? AND user_id = ?", couponId, userId).
		Count(&count).Error
	return int(count), err
}

// TryConsume is the single write that enforces the global usage limit under
// concurrency: the WHERE guard makes N parallel redemptions against a limit
// of N admit exactly N increments, and rows-affected tells the caller whether
// this one was admitted.
func (r *couponRepositoryImpl) TryConsume(ctx context.Context, couponId uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.CouponCode{}).
		Where("id = ? AND (usage_limit IS NULL OR used_count < usage_limit)", couponId).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *couponRepositoryImpl) CreateUsage(ctx context.Context, usage *entity.CouponUsage) error {
	mu := &model.CouponCodeUsage{
		Id:             usage.Id,
		CouponCodeId:   usage.CouponCodeId,
		UserId:         usage.UserId,
		InvoiceId:      usage.InvoiceId,
		ItemType:       string(usage.ItemType),
		ItemId:         usage.ItemId,
		OriginalAmount: usage.OriginalAmount,
		DiscountAmount: usage.DiscountAmount,
		FinalAmount:    usage.FinalAmount,
		UsedAt:         usage.UsedAt,
	}
	return r.db.WithContext(ctx).Create(mu).Error
}

func (r *couponRepositoryImpl) mapToModel(c *entity.CouponCode) *model.CouponCode {
	var scopeType *string
	if c.ScopeItemType != nil {
		s := string(*c.ScopeItemType)
		scopeType = &s
	}
	return &model.CouponCode{
		Id:                c.Id,
		Code:              c.Code,
		DiscountType:      string(c.DiscountType),
		DiscountValue:     c.DiscountValue,
		ScopeItemType:     scopeType,
		ScopeItemId:       c.ScopeItemId,
		MinPurchaseAmount: c.MinPurchaseAmount,
		MaxDiscountAmount: c.MaxDiscountAmount,
		UsageLimit:        c.UsageLimit,
		UsedCount:         c.UsedCount,
		UserUsageLimit:    c.UserUsageLimit,
		ValidFrom:         c.ValidFrom,
		ValidUntil:        c.ValidUntil,
		IsActive:          c.IsActive,
	}
}

func (r *couponRepositoryImpl) mapToEntity(mc *model.CouponCode) *entity.CouponCode {
	var scopeType *entity.ItemType
	if mc.ScopeItemType != nil {
		t := entity.ItemType(*mc.ScopeItemType)
		scopeType = &t
	}
	return &entity.CouponCode{
		Id:                mc.Id,
		Code:              mc.Code,
		DiscountType:      entity.DiscountType(mc.DiscountType),
		DiscountValue:     mc.DiscountValue,
		ScopeItemType:     scopeType,
		ScopeItemId:       mc.ScopeItemId,
		MinPurchaseAmount: mc.MinPurchaseAmount,
		MaxDiscountAmount: mc.MaxDiscountAmount,
		UsageLimit:        mc.UsageLimit,
		UsedCount:         mc.UsedCount,
		UserUsageLimit:    mc.UserUsageLimit,
		ValidFrom:         mc.ValidFrom,
		ValidUntil:        mc.ValidUntil,
		IsActive:          mc.IsActive,
		CreatedAt:         mc.CreatedAt,
		UpdatedAt:         mc.UpdatedAt,
	}
}
