package mapper

import (
	"edu-commerce-be/internal/dto"
	"edu-commerce-be/internal/entity"
)

type InvoiceMapper struct{}

func NewInvoiceMapper() *InvoiceMapper {
	return &InvoiceMapper{}
}

func (m *InvoiceMapper) ToResponse(i *entity.Invoice) *dto.InvoiceResponse {
	if i == nil {
		return nil
	}
	return &dto.InvoiceResponse{
		Id:             i.Id,
		InvoiceNumber:  i.InvoiceNumber,
		ItemType:       string(i.ItemType),
		ItemId:         i.ItemId,
		ItemName:       i.ItemName,
		Amount:         i.Amount,
		DiscountAmount: i.DiscountAmount,
		Tax:            i.Tax,
		TotalAmount:    i.TotalAmount,
		PaymentStatus:  string(i.PaymentStatus),
		PaymentMethod:  i.PaymentMethod,
		CreatedAt:      i.CreatedAt,
	}
}

func (m *InvoiceMapper) ToConfirmedResponse(i *entity.Invoice) *dto.ConfirmedInvoiceResponse {
	if i == nil {
		return nil
	}
	res := &dto.ConfirmedInvoiceResponse{
		InvoiceId:     i.Id,
		InvoiceNumber: i.InvoiceNumber,
		PaymentStatus: string(i.PaymentStatus),
		PaymentId:     i.PaymentId,
		TotalAmount:   i.TotalAmount,
	}
	if i.PaymentStatus == entity.PaymentStatusCompleted {
		completedAt := i.UpdatedAt
		res.CompletedAt = &completedAt
	}
	return res
}

type RefundMapper struct{}

func NewRefundMapper() *RefundMapper {
	return &RefundMapper{}
}

func (m *RefundMapper) ToResponse(r *entity.RefundRequest) *dto.RefundRequestResponse {
	if r == nil {
		return nil
	}
	return &dto.RefundRequestResponse{
		Id:           r.Id,
		InvoiceId:    r.InvoiceId,
		ItemName:     r.ItemName,
		RefundAmount: r.RefundAmount,
		Reason:       r.Reason,
		Status:       string(r.Status),
		AdminNotes:   r.AdminNotes,
		ProcessedAt:  r.ProcessedAt,
		CreatedAt:    r.CreatedAt,
	}
}

func (m *RefundMapper) ToAdminListResponse(r *entity.RefundRequest) *dto.AdminRefundListResponse {
	if r == nil {
		return nil
	}
	return &dto.AdminRefundListResponse{
		Id:           r.Id,
		UserId:       r.UserId,
		InvoiceId:    r.InvoiceId,
		ItemType:     string(r.ItemType),
		ItemName:     r.ItemName,
		RefundAmount: r.RefundAmount,
		Reason:       r.Reason,
		Status:       string(r.Status),
		AdminNotes:   r.AdminNotes,
		ProcessedAt:  r.ProcessedAt,
		CreatedAt:    r.CreatedAt,
	}
}

func (m *RefundMapper) ToDecisionResponse(r *entity.RefundRequest) *dto.AdminRefundDecisionResponse {
	if r == nil {
		return nil
	}
	return &dto.AdminRefundDecisionResponse{
		Id:                  r.Id,
		Status:              string(r.Status),
		RefundAmount:        r.RefundAmount,
		RefundTransactionId: r.RefundTransactionId,
		ProcessedAt:         r.ProcessedAt,
	}
}
