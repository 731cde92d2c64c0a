package contract

import (
	"context"
	"errors"

	"edu-commerce-be/internal/entity"
	"edu-commerce-be/internal/repository/specification"
)

// ErrDuplicate is returned by Create calls that violate a unique index, e.g.
// a second pending invoice for the same user/item pair. Callers decide what
// the conflict means.
var ErrDuplicate = errors.New("duplicate record")

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Invoice, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
}
