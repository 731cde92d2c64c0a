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

type refundRequestRepositoryImpl struct {
	db *gorm.DB
}

func NewRefundRequestRepository(db *gorm.DB) contract.RefundRequestRepository {
	return &refundRequestRepositoryImpl{db: db}
}

func (r *refundRequestRepositoryImpl) Create(ctx context.Context, req *entity.RefundRequest) error {
	mr := &model.RefundRequest{
		Id:           req.Id,
		UserId:       req.UserId,
		InvoiceId:    req.InvoiceId,
		ItemType:     string(req.ItemType),
		ItemId:       req.ItemId,
		ItemName:     req.ItemName,
		RefundAmount: req.RefundAmount,
		Reason:       req.Reason,
		Status:       string(req.Status),
		AdminNotes:   req.AdminNotes,
	}
	err := r.db.WithContext(ctx).Create(mr).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return contract.ErrDuplicate
	}
	return err
}

func (r *refundRequestRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RefundRequest, error) {
	var mr model.RefundRequest
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&mr).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&mr), nil
}

func (r *refundRequestRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RefundRequest, error) {
	var mrs []*model.RefundRequest
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mrs).Error; err != nil {
		return nil, err
	}

	var reqs []*entity.RefundRequest
	for _, mr := range mrs {
		reqs = append(reqs, r.mapToEntity(mr))
	}
	return reqs, nil
}

func (r *refundRequestRepositoryImpl) Update(ctx context.Context, req *entity.RefundRequest) error {
	return r.db.WithContext(ctx).Model(&model.RefundRequest{}).
		Where("id = ?", req.Id).
		Updates(map[string]interface{}{
			"status":                string(req.Status),
			"admin_notes":           req.AdminNotes,
			"processed_by":          req.ProcessedBy,
			"processed_at":          req.ProcessedAt,
			"refund_transaction_id": req.RefundTransactionId,
		}).Error
}

func (r *refundRequestRepositoryImpl) mapToEntity(mr *model.RefundRequest) *entity.RefundRequest {
	return &entity.RefundRequest{
		Id:                  mr.Id,
		UserId:              mr.UserId,
		InvoiceId:           mr.InvoiceId,
		ItemType:            entity.ItemType(mr.ItemType),
		ItemId:              mr.ItemId,
		ItemName:            mr.ItemName,
		RefundAmount:        mr.RefundAmount,
		Reason:              mr.Reason,
		Status:              entity.RefundStatus(mr.Status),
		AdminNotes:          mr.AdminNotes,
		ProcessedBy:         mr.ProcessedBy,
		ProcessedAt:         mr.ProcessedAt,
		RefundTransactionId: mr.RefundTransactionId,
		CreatedAt:           mr.CreatedAt,
		UpdatedAt:           mr.UpdatedAt,
	}
}
