package implementation

import (
	"context"
	"errors"

	"edu-commerce-be/internal/entity"
	"edu-commerce-be/internal/model"
	"edu-commerce-be/internal/repository/contract"
	"edu-commerce-be/internal/repository/specification"

	"gorm.io/gorm"
)

type invoiceRepositoryImpl struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) contract.InvoiceRepository {
	return &invoiceRepositoryImpl{db: db}
}

func (r *invoiceRepositoryImpl) Create(ctx context.Context, invoice *entity.Invoice) error {
	mi := &model.Invoice{
		Id:             invoice.Id,
		InvoiceNumber:  invoice.InvoiceNumber,
		UserId:         invoice.UserId,
		ItemType:       string(invoice.ItemType),
		ItemId:         invoice.ItemId,
		ItemName:       invoice.ItemName,
		Amount:         invoice.Amount,
		Tax:            invoice.Tax,
		TotalAmount:    invoice.TotalAmount,
		DiscountAmount: invoice.DiscountAmount,
		GatewayOrderId: invoice.GatewayOrderId,
		CustomerEmail:  invoice.CustomerEmail,
		PaymentId:      invoice.PaymentId,
		PaymentMethod:  invoice.PaymentMethod,
		PaymentStatus:  string(invoice.PaymentStatus),
		CouponCodeId:   invoice.CouponCodeId,
	}
	err := r.db.WithContext(ctx).Create(mi).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return contract.ErrDuplicate
	}
	return err
}

func (r *invoiceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Invoice, error) {
	var mi model.Invoice
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&mi).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&mi), nil
}

func (r *invoiceRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Invoice, error) {
	var mis []*model.Invoice
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mis).Error; err != nil {
		return nil, err
	}

	var invoices []*entity.Invoice
	for _, mi := range mis {
		invoices = append(invoices, r.mapToEntity(mi))
	}
	return invoices, nil
}

func (r *invoiceRepositoryImpl) Update(ctx context.Context, invoice *entity.Invoice) error {
	err := r.db.WithContext(ctx).Model(&model.Invoice{}).
		Where("id = ?", invoice.Id).
		Updates(map[string]interface{}{
			"gateway_order_id": invoice.GatewayOrderId,
			"payment_id":       invoice.PaymentId,
			"payment_method":   invoice.PaymentMethod,
			"payment_status":   string(invoice.PaymentStatus),
		}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return contract.ErrDuplicate
	}
	return err
}

func (r *invoiceRepositoryImpl) mapToEntity(mi *model.Invoice) *entity.Invoice {
	return &entity.Invoice{
		Id:             mi.Id,
		InvoiceNumber:  mi.InvoiceNumber,
		UserId:         mi.UserId,
		ItemType:       entity.ItemType(mi.ItemType),
		ItemId:         mi.ItemId,
		ItemName:       mi.ItemName,
		Amount:         mi.Amount,
		Tax:            mi.Tax,
		TotalAmount:    mi.TotalAmount,
		DiscountAmount: mi.DiscountAmount,
		GatewayOrderId: mi.GatewayOrderId,
		CustomerEmail:  mi.CustomerEmail,
		PaymentId:      mi.PaymentId,
		PaymentMethod:  mi.PaymentMethod,
		PaymentStatus:  entity.PaymentStatus(mi.PaymentStatus),
		CouponCodeId:   mi.CouponCodeId,
		CreatedAt:      mi.CreatedAt,
		UpdatedAt:      mi.UpdatedAt,
	}
}
