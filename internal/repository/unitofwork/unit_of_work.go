package unitofwork

import (
	"context"

	"edu-commerce-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CouponRepository() contract.CouponRepository
	InvoiceRepository() contract.InvoiceRepository
	RefundRequestRepository() contract.RefundRequestRepository
	EnrollmentRepository() contract.EnrollmentRepository
	CatalogRepository() contract.CatalogRepository
}
