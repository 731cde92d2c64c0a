package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"edu-commerce-be/internal/dto"
	"edu-commerce-be/internal/entity"
	"edu-commerce-be/internal/mapper"
	"edu-commerce-be/internal/pkg/logger"
	"edu-commerce-be/internal/pkg/mailer"
	"edu-commerce-be/internal/repository/contract"
	"edu-commerce-be/internal/repository/specification"
	"edu-commerce-be/internal/repository/unitofwork"
	"edu-commerce-be/pkg/events"
	"edu-commerce-be/pkg/gateway"
	pktNats "edu-commerce-be/pkg/nats"

	"github.com/google/uuid"
)

type IRefundService interface {
	// Request opens a refund request for a completed invoice. One live
	// request per invoice; full refund amount; seven-day window.
	Request(ctx context.Context, userId uuid.UUID, req *dto.UserRefundRequest) (*dto.RefundRequestResponse, error)

	ListMine(ctx context.Context, userId uuid.UUID) ([]*dto.RefundRequestResponse, error)
	ListAll(ctx context.Context, status string, limit, offset int) ([]*dto.AdminRefundListResponse, error)

	// Decide moves a pending request to approved or rejected. Approval
	// immediately attempts the gateway refund; a gateway failure leaves the
	// request approved for a later ProcessApproved retry.
	Decide(ctx context.Context, adminId, requestId uuid.UUID, req *dto.AdminRefundDecisionRequest) (*dto.AdminRefundDecisionResponse, error)

	// ProcessApproved retries the gateway refund for a stuck approved request.
	ProcessApproved(ctx context.Context, adminId, requestId uuid.UUID) (*dto.AdminRefundDecisionResponse, error)
}

type refundService struct {
	uowFactory     unitofwork.RepositoryFactory
	gatewayClient  gateway.Client
	eventPublisher *pktNats.Publisher
	emailService   mailer.IEmailService
	log            logger.ILogger
	refundMapper   *mapper.RefundMapper
}

func NewRefundService(
	uowFactory unitofwork.RepositoryFactory,
	gatewayClient gateway.Client,
	eventPublisher *pktNats.Publisher,
	emailService mailer.IEmailService,
	log logger.ILogger,
) IRefundService {
	return &refundService{
		uowFactory:     uowFactory,
		gatewayClient:  gatewayClient,
		eventPublisher: eventPublisher,
		emailService:   emailService,
		log:            log,
		refundMapper:   mapper.NewRefundMapper(),
	}
}

func (s *refundService) Request(ctx context.Context, userId uuid.UUID, req *dto.UserRefundRequest) (*dto.RefundRequestResponse, error) {
	if len(strings.TrimSpace(req.Reason)) < entity.MinRefundReasonLength {
		return nil, entity.ErrRefundReasonTooShort
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	invoice, err := uow.InvoiceRepository().FindOne(ctx,
		specification.ByID{ID: req.InvoiceId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, entity.ErrInvoiceNotFound
	}
	if invoice.PaymentStatus != entity.PaymentStatusCompleted {
		return nil, entity.ErrRefundNotAllowed
	}

	now := time.Now()
	if !invoice.WithinRefundWindow(now) {
		return nil, entity.ErrRefundWindowExpired
	}

	existing, err := uow.RefundRequestRepository().FindOne(ctx, specification.LiveRefundForInvoice{InvoiceId: invoice.Id})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, entity.ErrRefundConflict
	}

	request := &entity.RefundRequest{
		Id:           uuid.New(),
		UserId:       userId,
		InvoiceId:    invoice.Id,
		ItemType:     invoice.ItemType,
		ItemId:       invoice.ItemId,
		ItemName:     invoice.ItemName,
		RefundAmount: invoice.TotalAmount,
		Reason:       strings.TrimSpace(req.Reason),
		Status:       entity.RefundStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The partial unique index on live requests decides races the pre-check
	// above cannot see.
	if err := uow.RefundRequestRepository().Create(ctx, request); err != nil {
		if errors.Is(err, contract.ErrDuplicate) {
			return nil, entity.ErrRefundConflict
		}
		return nil, err
	}

	s.publishEvent(ctx, "REFUND_REQUESTED", map[string]interface{}{
		"refund_request_id": request.Id,
		"invoice_id":        invoice.Id,
		"user_id":           userId,
		"refund_amount":     request.RefundAmount,
	})

	return s.refundMapper.ToResponse(request), nil
}

func (s *refundService) ListMine(ctx context.Context, userId uuid.UUID) ([]*dto.RefundRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	requests, err := uow.RefundRequestRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.RefundRequestResponse, 0, len(requests))
	for _, r := range requests {
		res = append(res, s.refundMapper.ToResponse(r))
	}
	return res, nil
}

func (s *refundService) ListAll(ctx context.Context, status string, limit, offset int) ([]*dto.AdminRefundListResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	}
	if status != "" {
		specs = append(specs, specification.Filter("status", status))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	requests, err := uow.RefundRequestRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.AdminRefundListResponse, 0, len(requests))
	for _, r := range requests {
		res = append(res, s.refundMapper.ToAdminListResponse(r))
	}
	return res, nil
}

func (s *refundService) Decide(ctx context.Context, adminId, requestId uuid.UUID, req *dto.AdminRefundDecisionRequest) (*dto.AdminRefundDecisionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := uow.RefundRequestRepository().FindOne(ctx, specification.ByID{ID: requestId})
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, entity.ErrRefundNotFound
	}

	now := time.Now()

	switch req.Decision {
	case "reject":
		if !request.Status.CanTransitionTo(entity.RefundStatusRejected) {
			return nil, entity.ErrRefundState
		}
		request.Status = entity.RefundStatusRejected
		request.AdminNotes = req.AdminNotes
		request.ProcessedBy = &adminId
		request.ProcessedAt = &now
		request.UpdatedAt = now

		if err := uow.RefundRequestRepository().Update(ctx, request); err != nil {
			return nil, err
		}

		s.publishEvent(ctx, "REFUND_REJECTED", map[string]interface{}{
			"refund_request_id": request.Id,
			"invoice_id":        request.InvoiceId,
			"admin_id":          adminId,
		})
		s.notifyDecision(ctx, uow, request)

		return s.refundMapper.ToDecisionResponse(request), nil

	case "approve":
		if !request.Status.CanTransitionTo(entity.RefundStatusApproved) {
			return nil, entity.ErrRefundState
		}
		request.Status = entity.RefundStatusApproved
		request.AdminNotes = req.AdminNotes
		request.ProcessedBy = &adminId
		request.ProcessedAt = &now
		request.UpdatedAt = now

		if err := uow.RefundRequestRepository().Update(ctx, request); err != nil {
			return nil, err
		}

		s.publishEvent(ctx, "REFUND_APPROVED", map[string]interface{}{
			"refund_request_id": request.Id,
			"invoice_id":        request.InvoiceId,
			"admin_id":          adminId,
			"refund_amount":     request.RefundAmount,
		})

		// Gateway failure here is not fatal: the request stays approved and
		// the process endpoint retries it.
		if err := s.executeRefund(ctx, request); err != nil {
			s.log.Error("refund", "gateway refund failed, request stays approved", map[string]interface{}{
				"refund_request_id": request.Id,
				"error":             err.Error(),
			})
		} else {
			s.notifyDecision(ctx, uow, request)
		}

		return s.refundMapper.ToDecisionResponse(request), nil

	default:
		return nil, entity.ErrRefundState
	}
}

func (s *refundService) ProcessApproved(ctx context.Context, adminId, requestId uuid.UUID) (*dto.AdminRefundDecisionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := uow.RefundRequestRepository().FindOne(ctx, specification.ByID{ID: requestId})
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, entity.ErrRefundNotFound
	}
	if request.Status != entity.RefundStatusApproved {
		return nil, entity.ErrRefundState
	}

	if err := s.executeRefund(ctx, request); err != nil {
		return nil, err
	}

	s.log.Info("refund", "approved refund processed by retry", map[string]interface{}{
		"refund_request_id": request.Id,
		"admin_id":          adminId,
	})
	s.notifyDecision(ctx, uow, request)

	return s.refundMapper.ToDecisionResponse(request), nil
}

// executeRefund calls the gateway and, on success, moves the request to
// processed and the invoice to refunded in one transaction.
func (s *refundService) executeRefund(ctx context.Context, request *entity.RefundRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	invoice, err := uow.InvoiceRepository().FindOne(ctx, specification.ByID{ID: request.InvoiceId})
	if err != nil {
		return err
	}
	if invoice == nil {
		return entity.ErrInvoiceNotFound
	}
	if invoice.PaymentId == nil {
		return entity.ErrRefundNotAllowed
	}

	refundRef, gerr := s.gatewayClient.CreateRefund(*invoice.PaymentId, request.RefundAmount, request.Reason)
	if gerr != nil {
		return entity.ErrGateway
	}

	now := time.Now()
	request.Status = entity.RefundStatusProcessed
	request.RefundTransactionId = &refundRef
	request.ProcessedAt = &now
	request.UpdatedAt = now
	invoice.PaymentStatus = entity.PaymentStatusRefunded
	invoice.UpdatedAt = now

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.RefundRequestRepository().Update(ctx, request); err != nil {
		return err
	}
	if err := uow.InvoiceRepository().Update(ctx, invoice); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.publishEvent(ctx, "REFUND_PROCESSED", map[string]interface{}{
		"refund_request_id":     request.Id,
		"invoice_id":            invoice.Id,
		"refund_transaction_id": refundRef,
		"refund_amount":         request.RefundAmount,
	})

	return nil
}

func (s *refundService) notifyDecision(ctx context.Context, uow unitofwork.UnitOfWork, request *entity.RefundRequest) {
	invoice, err := uow.InvoiceRepository().FindOne(ctx, specification.ByID{ID: request.InvoiceId})
	if err != nil || invoice == nil || invoice.CustomerEmail == nil {
		return
	}
	if err := s.emailService.SendRefundDecision(*invoice.CustomerEmail, request.ItemName, string(request.Status), request.AdminNotes); err != nil {
		s.log.Warn("refund", "decision email failed", map[string]interface{}{
			"refund_request_id": request.Id,
			"error":             err.Error(),
		})
	}
}

func (s *refundService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("refund", "event publish failed", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}
