package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"edu-commerce-be/internal/config"
	"edu-commerce-be/internal/dto"
	"edu-commerce-be/internal/entity"
	"edu-commerce-be/internal/mapper"
	"edu-commerce-be/internal/pkg/logger"
	"edu-commerce-be/internal/pkg/mailer"
	"edu-commerce-be/internal/pkg/money"
	"edu-commerce-be/internal/repository/contract"
	"edu-commerce-be/internal/repository/specification"
	"edu-commerce-be/internal/repository/unitofwork"
	"edu-commerce-be/pkg/events"
	"edu-commerce-be/pkg/gateway"
	pktNats "edu-commerce-be/pkg/nats"

	"github.com/google/uuid"
)

type IPaymentService interface {
	// Confirm processes a gateway payment notification. It is idempotent on
	// the payment id: replaying a confirmation returns the finalized invoice
	// without changing state.
	Confirm(ctx context.Context, req *dto.GatewayCallbackRequest) (*dto.ConfirmedInvoiceResponse, error)
}

type paymentService struct {
	uowFactory        unitofwork.RepositoryFactory
	gatewayClient     gateway.Client
	enrollmentService IEnrollmentService
	retryPublisher    IPublisherService
	eventPublisher    *pktNats.Publisher
	emailService      mailer.IEmailService
	billing           config.BillingConfig
	log               logger.ILogger
	invoiceMapper     *mapper.InvoiceMapper
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	gatewayClient gateway.Client,
	enrollmentService IEnrollmentService,
	retryPublisher IPublisherService,
	eventPublisher *pktNats.Publisher,
	emailService mailer.IEmailService,
	billing config.BillingConfig,
	log logger.ILogger,
) IPaymentService {
	return &paymentService{
		uowFactory:        uowFactory,
		gatewayClient:     gatewayClient,
		enrollmentService: enrollmentService,
		retryPublisher:    retryPublisher,
		eventPublisher:    eventPublisher,
		emailService:      emailService,
		billing:           billing,
		log:               log,
		invoiceMapper:     mapper.NewInvoiceMapper(),
	}
}

func (s *paymentService) Confirm(ctx context.Context, req *dto.GatewayCallbackRequest) (*dto.ConfirmedInvoiceResponse, error) {
	if !s.gatewayClient.VerifyCallback(req.OrderId, req.StatusCode, req.GrossAmount, req.SignatureKey) {
		s.log.Warn("payment", "callback signature mismatch", map[string]interface{}{
			"order_id":    req.OrderId,
			"status_code": req.StatusCode,
		})
		return nil, entity.ErrInvalidSignature
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	invoice, err := uow.InvoiceRepository().FindOne(ctx, specification.ByGatewayOrderId{OrderId: req.OrderId})
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, entity.ErrInvoiceNotFound
	}

	switch req.TransactionStatus {
	case "capture", "settlement":
		return s.confirmSuccess(ctx, invoice, req)
	case "deny", "cancel", "expire":
		return s.markFailed(ctx, uow, invoice, req)
	default:
		// "pending" and anything unknown change nothing.
		s.log.Info("payment", "notification requires no action", map[string]interface{}{
			"invoice_id":         invoice.Id,
			"transaction_status": req.TransactionStatus,
		})
		return s.invoiceMapper.ToConfirmedResponse(invoice), nil
	}
}

func (s *paymentService) confirmSuccess(ctx context.Context, invoice *entity.Invoice, req *dto.GatewayCallbackRequest) (*dto.ConfirmedInvoiceResponse, error) {
	// Replayed notification for a payment already recorded. Replays answer
	// exactly as the first delivery did, including the exhausted-coupon
	// failure.
	if invoice.PaymentId != nil && *invoice.PaymentId == req.TransactionId {
		if invoice.PaymentStatus == entity.PaymentStatusFailed {
			return nil, entity.ErrCouponExhausted
		}
		return s.invoiceMapper.ToConfirmedResponse(invoice), nil
	}
	if invoice.PaymentStatus != entity.PaymentStatusPending {
		s.log.Warn("payment", "success notification for non-pending invoice", map[string]interface{}{
			"invoice_id":     invoice.Id,
			"payment_status": invoice.PaymentStatus,
			"transaction_id": req.TransactionId,
		})
		return s.invoiceMapper.ToConfirmedResponse(invoice), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// The coupon quote from order time is advisory only. Counters are
	// re-checked and committed here, inside the same transaction that
	// completes the invoice.
	if invoice.CouponCodeId != nil {
		if err := s.commitCouponUsage(ctx, uow, invoice); err != nil {
			if errors.Is(err, entity.ErrCouponExhausted) {
				return s.failExhaustedCoupon(ctx, invoice, req)
			}
			return nil, err
		}
	}

	now := time.Now()
	invoice.PaymentStatus = entity.PaymentStatusCompleted
	invoice.PaymentId = &req.TransactionId
	if req.PaymentType != "" {
		invoice.PaymentMethod = &req.PaymentType
	}
	invoice.UpdatedAt = now

	if err := uow.InvoiceRepository().Update(ctx, invoice); err != nil {
		if errors.Is(err, contract.ErrDuplicate) {
			// A concurrent callback recorded this payment id first.
			return s.invoiceMapper.ToConfirmedResponse(invoice), nil
		}
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// The payment is captured and committed. Everything below is follow-up
	// work and must never undo it.
	if err := s.enrollmentService.Finalize(ctx, invoice.UserId, invoice.ItemType, invoice.ItemId, invoice.Id); err != nil {
		s.log.Error("payment", "enrollment failed after completed payment, queueing retry", map[string]interface{}{
			"invoice_id": invoice.Id,
			"user_id":    invoice.UserId,
			"error":      err.Error(),
		})
		s.queueEnrollmentRetry(ctx, invoice)
	}

	s.publishEvent(ctx, "PAYMENT_COMPLETED", map[string]interface{}{
		"invoice_id":     invoice.Id,
		"invoice_number": invoice.InvoiceNumber,
		"user_id":        invoice.UserId,
		"payment_id":     req.TransactionId,
		"total_amount":   invoice.TotalAmount,
		"currency":       s.billing.Currency,
	})

	if invoice.CustomerEmail != nil {
		displayTotal := s.billing.Currency + " " + money.Format(invoice.TotalAmount, s.billing.CurrencyExponent)
		if err := s.emailService.SendPurchaseReceipt(*invoice.CustomerEmail, invoice.ItemName, invoice.InvoiceNumber, displayTotal); err != nil {
			s.log.Warn("payment", "receipt email failed", map[string]interface{}{
				"invoice_id": invoice.Id,
				"error":      err.Error(),
			})
		}
	}

	return s.invoiceMapper.ToConfirmedResponse(invoice), nil
}

// commitCouponUsage re-validates the coupon against live counters, takes a
// slot with the guarded increment, and writes the usage row. Must run inside
// the confirmation transaction.
func (s *paymentService) commitCouponUsage(ctx context.Context, uow unitofwork.UnitOfWork, invoice *entity.Invoice) error {
	coupon, err := uow.CouponRepository().FindOne(ctx, specification.ByID{ID: *invoice.CouponCodeId})
	if err != nil {
		return err
	}
	if coupon == nil {
		return entity.ErrCouponExhausted
	}

	userUseCount, err := uow.CouponRepository().CountUsagesByUser(ctx, coupon.Id, invoice.UserId)
	if err != nil {
		return err
	}
	if err := coupon.CheckEligibility(time.Now(), invoice.ItemType, invoice.ItemId, invoice.Amount, userUseCount); err != nil {
		s.log.Warn("payment", "coupon no longer eligible at confirmation", map[string]interface{}{
			"invoice_id": invoice.Id,
			"coupon_id":  coupon.Id,
			"reason":     err.Error(),
		})
		return entity.ErrCouponExhausted
	}

	consumed, err := uow.CouponRepository().TryConsume(ctx, coupon.Id)
	if err != nil {
		return err
	}
	if !consumed {
		return entity.ErrCouponExhausted
	}

	usage := &entity.CouponUsage{
		Id:             uuid.New(),
		CouponCodeId:   coupon.Id,
		UserId:         invoice.UserId,
		InvoiceId:      invoice.Id,
		ItemType:       invoice.ItemType,
		ItemId:         invoice.ItemId,
		OriginalAmount: invoice.Amount,
		DiscountAmount: invoice.DiscountAmount,
		FinalAmount:    invoice.Amount - invoice.DiscountAmount,
		UsedAt:         time.Now(),
	}
	return uow.CouponRepository().CreateUsage(ctx, usage)
}

// failExhaustedCoupon marks the invoice failed when its coupon ran out
// between order creation and payment capture. The captured payment itself is
// an operational follow-up (manual refund), surfaced through the error.
func (s *paymentService) failExhaustedCoupon(ctx context.Context, invoice *entity.Invoice, req *dto.GatewayCallbackRequest) (*dto.ConfirmedInvoiceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	invoice.PaymentStatus = entity.PaymentStatusFailed
	invoice.PaymentId = &req.TransactionId
	invoice.UpdatedAt = time.Now()
	if err := uow.InvoiceRepository().Update(ctx, invoice); err != nil {
		return nil, err
	}

	s.log.Error("payment", "coupon exhausted after payment capture", map[string]interface{}{
		"invoice_id": invoice.Id,
		"payment_id": req.TransactionId,
	})

	s.publishEvent(ctx, "PAYMENT_FAILED", map[string]interface{}{
		"invoice_id": invoice.Id,
		"user_id":    invoice.UserId,
		"reason":     "coupon_exhausted",
	})

	return nil, entity.ErrCouponExhausted
}

func (s *paymentService) markFailed(ctx context.Context, uow unitofwork.UnitOfWork, invoice *entity.Invoice, req *dto.GatewayCallbackRequest) (*dto.ConfirmedInvoiceResponse, error) {
	if invoice.PaymentStatus != entity.PaymentStatusPending {
		return s.invoiceMapper.ToConfirmedResponse(invoice), nil
	}

	invoice.PaymentStatus = entity.PaymentStatusFailed
	invoice.UpdatedAt = time.Now()
	if err := uow.InvoiceRepository().Update(ctx, invoice); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, "PAYMENT_FAILED", map[string]interface{}{
		"invoice_id": invoice.Id,
		"user_id":    invoice.UserId,
		"reason":     req.TransactionStatus,
	})

	return s.invoiceMapper.ToConfirmedResponse(invoice), nil
}

func (s *paymentService) queueEnrollmentRetry(ctx context.Context, invoice *entity.Invoice) {
	if s.retryPublisher == nil {
		return
	}
	msg := dto.FinalizeEnrollmentMessage{
		UserId:    invoice.UserId,
		ItemType:  string(invoice.ItemType),
		ItemId:    invoice.ItemId,
		InvoiceId: invoice.Id,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		s.log.Error("payment", "failed to marshal enrollment retry message", map[string]interface{}{
			"invoice_id": invoice.Id,
			"error":      err.Error(),
		})
		return
	}
	if err := s.retryPublisher.Publish(ctx, payload); err != nil {
		s.log.Error("payment", "failed to queue enrollment retry", map[string]interface{}{
			"invoice_id": invoice.Id,
			"error":      err.Error(),
		})
	}
}

func (s *paymentService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("payment", "event publish failed", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}
