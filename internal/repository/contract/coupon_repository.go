package contract

import (
	"context"

	"edu-commerce-be/internal/entity"
	"edu-commerce-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CouponRepository interface {
	Create(ctx context.Context, coupon *entity.CouponCode) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CouponCode, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CouponCode, error)
	Update(ctx context.Context, coupon *entity.CouponCode) error

	// CountUsagesByUser returns how many usage rows exist for (coupon, user).
	CountUsagesByUser(ctx context.Context, couponId, userId uuid.UUID) (int, error)

	// TryConsume increments used_count with a conditional update guarded by
	// usage_limit. It reports false when the guard rejected the increment,
	// i.e. the coupon is exhausted. Must run inside the caller's transaction.
	TryConsume(ctx context.Context, couponId uuid.UUID) (bool, error)

	CreateUsage(ctx context.Context, usage *entity.CouponUsage) error
}
