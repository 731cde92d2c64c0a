package contract

import (
	"context"

	"edu-commerce-be/internal/entity"
	"edu-commerce-be/internal/repository/specification"
)

type RefundRequestRepository interface {
	// Create inserts a new request. The partial unique index on live requests
	// makes concurrent submissions for the same invoice fail with ErrDuplicate.
	Create(ctx context.Context, req *entity.RefundRequest) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RefundRequest, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RefundRequest, error)
	Update(ctx context.Context, req *entity.RefundRequest) error
}
