package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"edu-commerce-be/internal/config"
	"edu-commerce-be/internal/dto"
	"edu-commerce-be/internal/entity"
	"edu-commerce-be/internal/mapper"
	"edu-commerce-be/internal/pkg/logger"
	"edu-commerce-be/internal/pkg/money"
	"edu-commerce-be/internal/repository/contract"
	"edu-commerce-be/internal/repository/specification"
	"edu-commerce-be/internal/repository/unitofwork"
	"edu-commerce-be/pkg/events"
	"edu-commerce-be/pkg/gateway"
	pktNats "edu-commerce-be/pkg/nats"

	"github.com/google/uuid"
)

type IOrderService interface {
	// CreateOrder builds the invoice for a purchase and registers it with the
	// payment gateway. Free or fully discounted orders complete immediately.
	// A pending invoice already existing for the same user/item is returned
	// instead of creating a second one.
	CreateOrder(ctx context.Context, userId uuid.UUID, email string, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)

	// GetOrderSummary is the public pricing preview for an item.
	GetOrderSummary(ctx context.Context, itemType entity.ItemType, itemId uuid.UUID) (*dto.OrderSummaryResponse, error)

	GetMyInvoices(ctx context.Context, userId uuid.UUID) ([]*dto.InvoiceResponse, error)
}

type orderService struct {
	uowFactory        unitofwork.RepositoryFactory
	catalogService    ICatalogService
	enrollmentService IEnrollmentService
	gatewayClient     gateway.Client
	billing           config.BillingConfig
	eventPublisher    *pktNats.Publisher
	log               logger.ILogger
	invoiceMapper     *mapper.InvoiceMapper
}

func NewOrderService(
	uowFactory unitofwork.RepositoryFactory,
	catalogService ICatalogService,
	enrollmentService IEnrollmentService,
	gatewayClient gateway.Client,
	billing config.BillingConfig,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IOrderService {
	return &orderService{
		uowFactory:        uowFactory,
		catalogService:    catalogService,
		enrollmentService: enrollmentService,
		gatewayClient:     gatewayClient,
		billing:           billing,
		eventPublisher:    eventPublisher,
		log:               log,
		invoiceMapper:     mapper.NewInvoiceMapper(),
	}
}

func (s *orderService) CreateOrder(ctx context.Context, userId uuid.UUID, email string, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	itemType := entity.ItemType(req.ItemType)

	item, err := s.catalogService.GetItem(ctx, itemType, req.ItemId)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, entity.ErrItemNotFound
	}

	owned, err := s.enrollmentService.IsEnrolled(ctx, userId, itemType, req.ItemId)
	if err != nil {
		return nil, err
	}
	if owned {
		return nil, entity.ErrItemAlreadyOwned
	}

	now := time.Now()
	amount := item.Price
	if item.IsFree {
		amount = 0
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	var discount int64
	var couponId *uuid.UUID
	if req.CouponCode != "" && amount > 0 {
		quote, err := quoteCoupon(ctx, uow, userId, req.CouponCode, itemType, req.ItemId, amount, now)
		if err != nil {
			return nil, err
		}
		discount = quote.DiscountAmount
		couponId = &quote.CouponId
	}

	tax := money.BasisPoints(amount-discount, s.billing.TaxRateBasisPoints)
	total := amount - discount + tax

	invoice := &entity.Invoice{
		Id:             uuid.New(),
		InvoiceNumber:  generateInvoiceNumber(now),
		UserId:         userId,
		ItemType:       itemType,
		ItemId:         req.ItemId,
		ItemName:       item.Title,
		Amount:         amount,
		Tax:            tax,
		TotalAmount:    total,
		DiscountAmount: discount,
		GatewayOrderId: uuid.NewString(),
		PaymentStatus:  entity.PaymentStatusPending,
		CouponCodeId:   couponId,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if email != "" {
		invoice.CustomerEmail = &email
	}

	// Totals must reconcile before anything is persisted or sent outside.
	if err := invoice.CheckTotals(); err != nil {
		return nil, err
	}

	if total == 0 {
		return s.completeZeroTotalOrder(ctx, invoice, req.CouponCode)
	}

	if err := uow.InvoiceRepository().Create(ctx, invoice); err != nil {
		if errors.Is(err, contract.ErrDuplicate) {
			return s.reuseExistingPendingOrder(ctx, uow, userId, itemType, req.ItemId)
		}
		return nil, err
	}

	order, gerr := s.gatewayClient.CreateOrder(invoice.GatewayOrderId, invoice.TotalAmount, invoice.ItemId.String(), invoice.ItemName)
	if gerr != nil {
		s.log.Error("order", "gateway order creation failed", map[string]interface{}{
			"invoice_id": invoice.Id,
			"error":      gerr.Error(),
		})
		return nil, fmt.Errorf("%w: %v", entity.ErrGateway, gerr)
	}

	s.publishEvent(ctx, "ORDER_CREATED", map[string]interface{}{
		"invoice_id":     invoice.Id,
		"invoice_number": invoice.InvoiceNumber,
		"user_id":        userId,
		"item_type":      itemType,
		"item_id":        req.ItemId,
		"total_amount":   invoice.TotalAmount,
		"currency":       s.billing.Currency,
	})

	return &dto.CreateOrderResponse{
		InvoiceId:      invoice.Id,
		InvoiceNumber:  invoice.InvoiceNumber,
		GatewayOrderId: order.OrderId,
		GatewayToken:   order.Token,
		RedirectUrl:    order.RedirectURL,
		ItemName:       invoice.ItemName,
		Amount:         invoice.Amount,
		DiscountAmount: invoice.DiscountAmount,
		Tax:            invoice.Tax,
		TotalAmount:    invoice.TotalAmount,
		Currency:       s.billing.Currency,
	}, nil
}

// completeZeroTotalOrder persists a completed invoice without any gateway
// involvement. Zero-total covers free catalog items and full-discount
// coupons; in the latter case the coupon usage is committed here because no
// payment confirmation will ever arrive for this invoice.
func (s *orderService) completeZeroTotalOrder(ctx context.Context, invoice *entity.Invoice, couponCode string) (*dto.CreateOrderResponse, error) {
	invoice.PaymentStatus = entity.PaymentStatusCompleted

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if invoice.CouponCodeId != nil {
		consumed, err := uow.CouponRepository().TryConsume(ctx, *invoice.CouponCodeId)
		if err != nil {
			return nil, err
		}
		if !consumed {
			return nil, entity.ErrCouponUsageLimit
		}
		usage := &entity.CouponUsage{
			Id:             uuid.New(),
			CouponCodeId:   *invoice.CouponCodeId,
			UserId:         invoice.UserId,
			InvoiceId:      invoice.Id,
			ItemType:       invoice.ItemType,
			ItemId:         invoice.ItemId,
			OriginalAmount: invoice.Amount,
			DiscountAmount: invoice.DiscountAmount,
			FinalAmount:    invoice.Amount - invoice.DiscountAmount,
			UsedAt:         time.Now(),
		}
		if err := uow.CouponRepository().CreateUsage(ctx, usage); err != nil {
			return nil, err
		}
	}

	if err := uow.InvoiceRepository().Create(ctx, invoice); err != nil {
		if errors.Is(err, contract.ErrDuplicate) {
			return nil, entity.ErrItemAlreadyOwned
		}
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if err := s.enrollmentService.Finalize(ctx, invoice.UserId, invoice.ItemType, invoice.ItemId, invoice.Id); err != nil {
		s.log.Error("order", "enrollment failed for zero-total order", map[string]interface{}{
			"invoice_id": invoice.Id,
			"error":      err.Error(),
		})
		return nil, err
	}

	s.publishEvent(ctx, "ENROLLMENT_GRANTED", map[string]interface{}{
		"invoice_id": invoice.Id,
		"user_id":    invoice.UserId,
		"item_type":  invoice.ItemType,
		"item_id":    invoice.ItemId,
	})

	return &dto.CreateOrderResponse{
		InvoiceId:      invoice.Id,
		InvoiceNumber:  invoice.InvoiceNumber,
		ItemName:       invoice.ItemName,
		Amount:         invoice.Amount,
		DiscountAmount: invoice.DiscountAmount,
		Tax:            invoice.Tax,
		TotalAmount:    invoice.TotalAmount,
		Currency:       s.billing.Currency,
		Completed:      true,
	}, nil
}

// reuseExistingPendingOrder resolves the unique-index conflict on pending
// invoices. The existing invoice keeps its amounts; it gets a fresh gateway
// order reference because the gateway rejects reused order ids.
func (s *orderService) reuseExistingPendingOrder(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, itemType entity.ItemType, itemId uuid.UUID) (*dto.CreateOrderResponse, error) {
	existing, err := uow.InvoiceRepository().FindOne(ctx,
		specification.ByUserItem{UserId: userId, ItemType: string(itemType), ItemId: itemId},
		specification.Filter("payment_status", string(entity.PaymentStatusPending)),
	)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		// The conflicting row finished or failed between insert and lookup.
		return nil, entity.ErrInvoiceNotFound
	}

	existing.GatewayOrderId = uuid.NewString()
	if err := uow.InvoiceRepository().Update(ctx, existing); err != nil {
		return nil, err
	}

	order, gerr := s.gatewayClient.CreateOrder(existing.GatewayOrderId, existing.TotalAmount, existing.ItemId.String(), existing.ItemName)
	if gerr != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrGateway, gerr)
	}

	s.log.Info("order", "returning existing pending invoice", map[string]interface{}{
		"invoice_id": existing.Id,
		"user_id":    userId,
	})

	return &dto.CreateOrderResponse{
		InvoiceId:      existing.Id,
		InvoiceNumber:  existing.InvoiceNumber,
		GatewayOrderId: order.OrderId,
		GatewayToken:   order.Token,
		RedirectUrl:    order.RedirectURL,
		ItemName:       existing.ItemName,
		Amount:         existing.Amount,
		DiscountAmount: existing.DiscountAmount,
		Tax:            existing.Tax,
		TotalAmount:    existing.TotalAmount,
		Currency:       s.billing.Currency,
	}, nil
}

func (s *orderService) GetOrderSummary(ctx context.Context, itemType entity.ItemType, itemId uuid.UUID) (*dto.OrderSummaryResponse, error) {
	item, err := s.catalogService.GetItem(ctx, itemType, itemId)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, entity.ErrItemNotFound
	}

	subtotal := item.Price
	if item.IsFree {
		subtotal = 0
	}
	tax := money.BasisPoints(subtotal, s.billing.TaxRateBasisPoints)
	total := subtotal + tax

	return &dto.OrderSummaryResponse{
		ItemName:     item.Title,
		ItemType:     string(item.ItemType),
		Subtotal:     subtotal,
		Tax:          tax,
		Total:        total,
		Currency:     s.billing.Currency,
		DisplayTotal: fmt.Sprintf("%s %s", s.billing.Currency, money.Format(total, s.billing.CurrencyExponent)),
	}, nil
}

func (s *orderService) GetMyInvoices(ctx context.Context, userId uuid.UUID) ([]*dto.InvoiceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	invoices, err := uow.InvoiceRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		res = append(res, s.invoiceMapper.ToResponse(inv))
	}
	return res, nil
}

func (s *orderService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("order", "event publish failed", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}

// generateInvoiceNumber produces a human-readable unique invoice reference,
// e.g. INV/20260828/3F2A9C1B. Uniqueness is backed by the column index.
func generateInvoiceNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("INV/%s/%s", now.Format("20060102"), suffix)
}
