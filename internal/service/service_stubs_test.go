package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"edu-commerce-be/internal/entity"
	"edu-commerce-be/internal/repository/contract"
	"edu-commerce-be/internal/repository/specification"
	"edu-commerce-be/internal/repository/unitofwork"
	"edu-commerce-be/pkg/gateway"

	"github.com/google/uuid"
)

// In-memory repository stubs honoring the same uniqueness and rows-affected
// semantics the Postgres indexes enforce, so service logic can be tested
// without a database.

type stubUow struct {
	coupons     *stubCouponRepo
	invoices    *stubInvoiceRepo
	refunds     *stubRefundRepo
	enrollments *stubEnrollmentRepo
	catalog     *stubCatalogRepo
}

func newStubUow() *stubUow {
	return &stubUow{
		coupons:     &stubCouponRepo{coupons: map[uuid.UUID]*entity.CouponCode{}},
		invoices:    &stubInvoiceRepo{invoices: map[uuid.UUID]*entity.Invoice{}},
		refunds:     &stubRefundRepo{requests: map[uuid.UUID]*entity.RefundRequest{}},
		enrollments: &stubEnrollmentRepo{rows: map[string]*entity.Enrollment{}},
		catalog:     &stubCatalogRepo{items: map[string]*entity.CatalogItem{}},
	}
}

func (u *stubUow) Begin(ctx context.Context) error { return nil }
func (u *stubUow) Commit() error                   { return nil }
func (u *stubUow) Rollback() error                 { return nil }

func (u *stubUow) CouponRepository() contract.CouponRepository               { return u.coupons }
func (u *stubUow) InvoiceRepository() contract.InvoiceRepository             { return u.invoices }
func (u *stubUow) RefundRequestRepository() contract.RefundRequestRepository { return u.refunds }
func (u *stubUow) EnrollmentRepository() contract.EnrollmentRepository       { return u.enrollments }
func (u *stubUow) CatalogRepository() contract.CatalogRepository             { return u.catalog }

type stubFactory struct{ uow *stubUow }

func (f *stubFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

// --- coupons ---

type stubCouponRepo struct {
	mu      sync.Mutex
	coupons map[uuid.UUID]*entity.CouponCode
	usages  []*entity.CouponUsage
}

func (r *stubCouponRepo) Create(ctx context.Context, c *entity.CouponCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.coupons[c.Id] = c
	return nil
}

func (r *stubCouponRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CouponCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.coupons {
		if couponMatches(c, specs) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubCouponRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CouponCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.CouponCode
	for _, c := range r.coupons {
		if couponMatches(c, specs) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubCouponRepo) Update(ctx context.Context, c *entity.CouponCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.coupons[c.Id] = c
	return nil
}

func (r *stubCouponRepo) CountUsagesByUser(ctx context.Context, couponId, userId uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, u := range r.usages {
		if u.CouponCodeId == couponId && u.UserId == userId {
			count++
		}
	}
	return count, nil
}

// TryConsume mirrors the guarded UPDATE: the increment and the limit check
// happen atomically under the lock, and exhaustion reports false.
func (r *stubCouponRepo) TryConsume(ctx context.Context, couponId uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.coupons[couponId]
	if !ok {
		return false, nil
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return false, nil
	}
	c.UsedCount++
	return true, nil
}

func (r *stubCouponRepo) CreateUsage(ctx context.Context, usage *entity.CouponUsage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.usages = append(r.usages, usage)
	return nil
}

func (r *stubCouponRepo) usedCount(couponId uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.coupons[couponId].UsedCount
}

func couponMatches(c *entity.CouponCode, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if c.Id != sp.ID {
				return false
			}
		case specification.ByCode:
			if c.Code != sp.Code {
				return false
			}
		}
	}
	return true
}

// --- invoices ---

type stubInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[uuid.UUID]*entity.Invoice
}

func (r *stubInvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inv.PaymentStatus == entity.PaymentStatusPending {
		for _, other := range r.invoices {
			if other.PaymentStatus == entity.PaymentStatusPending &&
				other.UserId == inv.UserId && other.ItemType == inv.ItemType && other.ItemId == inv.ItemId {
				return contract.ErrDuplicate
			}
		}
	}
	cp := *inv
	r.invoices[inv.Id] = &cp
	return nil
}

func (r *stubInvoiceRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invoices {
		if invoiceMatches(inv, specs) {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubInvoiceRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if invoiceMatches(inv, specs) {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Update writes the same column set as the GORM repository, so a field the
// real Updates map does not carry stays stale here too.
func (r *stubInvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inv.PaymentId != nil {
		for id, other := range r.invoices {
			if id != inv.Id && other.PaymentId != nil && *other.PaymentId == *inv.PaymentId {
				return contract.ErrDuplicate
			}
		}
	}
	stored, ok := r.invoices[inv.Id]
	if !ok {
		return nil
	}
	stored.GatewayOrderId = inv.GatewayOrderId
	stored.PaymentId = inv.PaymentId
	stored.PaymentMethod = inv.PaymentMethod
	stored.PaymentStatus = inv.PaymentStatus
	stored.UpdatedAt = inv.UpdatedAt
	return nil
}

func (r *stubInvoiceRepo) get(id uuid.UUID) *entity.Invoice {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *r.invoices[id]
	return &cp
}

func (r *stubInvoiceRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.invoices)
}

func invoiceMatches(inv *entity.Invoice, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if inv.Id != sp.ID {
				return false
			}
		case specification.ByGatewayOrderId:
			if inv.GatewayOrderId != sp.OrderId {
				return false
			}
		case specification.UserOwnedBy:
			if inv.UserId != sp.UserID {
				return false
			}
		case specification.ByUserItem:
			if inv.UserId != sp.UserId || string(inv.ItemType) != sp.ItemType || inv.ItemId != sp.ItemId {
				return false
			}
		case specification.FilterBy:
			if sp.Field == "payment_status" && string(inv.PaymentStatus) != sp.Value.(string) {
				return false
			}
		}
	}
	return true
}

// --- refund requests ---

type stubRefundRepo struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*entity.RefundRequest
}

func isLive(status entity.RefundStatus) bool {
	return status == entity.RefundStatusPending || status == entity.RefundStatusApproved
}

func (r *stubRefundRepo) Create(ctx context.Context, req *entity.RefundRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if isLive(req.Status) {
		for _, other := range r.requests {
			if other.InvoiceId == req.InvoiceId && isLive(other.Status) {
				return contract.ErrDuplicate
			}
		}
	}
	cp := *req
	r.requests[req.Id] = &cp
	return nil
}

func (r *stubRefundRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RefundRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if refundMatches(req, specs) {
			cp := *req
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubRefundRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RefundRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.RefundRequest
	for _, req := range r.requests {
		if refundMatches(req, specs) {
			cp := *req
			out = append(out, &cp)
		}
	}
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.OrderBy:
			sort.Slice(out, func(i, j int) bool {
				if sp.Desc {
					return out[i].CreatedAt.After(out[j].CreatedAt)
				}
				return out[i].CreatedAt.Before(out[j].CreatedAt)
			})
		case specification.Pagination:
			if sp.Offset >= len(out) {
				out = nil
				break
			}
			out = out[sp.Offset:]
			if sp.Limit < len(out) {
				out = out[:sp.Limit]
			}
		}
	}
	return out, nil
}

func (r *stubRefundRepo) Update(ctx context.Context, req *entity.RefundRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *req
	r.requests[req.Id] = &cp
	return nil
}

func (r *stubRefundRepo) get(id uuid.UUID) *entity.RefundRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *r.requests[id]
	return &cp
}

func refundMatches(req *entity.RefundRequest, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if req.Id != sp.ID {
				return false
			}
		case specification.UserOwnedBy:
			if req.UserId != sp.UserID {
				return false
			}
		case specification.LiveRefundForInvoice:
			if req.InvoiceId != sp.InvoiceId || !isLive(req.Status) {
				return false
			}
		case specification.FilterBy:
			if sp.Field == "status" && string(req.Status) != sp.Value.(string) {
				return false
			}
		}
	}
	return true
}

// --- enrollments ---

type stubEnrollmentRepo struct {
	mu         sync.Mutex
	rows       map[string]*entity.Enrollment
	upsertErrs int // fail this many Upsert calls before succeeding
}

func enrollKey(userId uuid.UUID, itemType entity.ItemType, itemId uuid.UUID) string {
	return fmt.Sprintf("%s|%s|%s", userId, itemType, itemId)
}

func (r *stubEnrollmentRepo) Upsert(ctx context.Context, e *entity.Enrollment) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErrs > 0 {
		r.upsertErrs--
		return false, fmt.Errorf("enrollment store unavailable")
	}
	key := enrollKey(e.UserId, e.ItemType, e.ItemId)
	if _, exists := r.rows[key]; exists {
		return false, nil
	}
	r.rows[key] = e
	return true, nil
}

func (r *stubEnrollmentRepo) Exists(ctx context.Context, userId uuid.UUID, itemType entity.ItemType, itemId uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[enrollKey(userId, itemType, itemId)]
	return ok, nil
}

func (r *stubEnrollmentRepo) FindByUserItem(ctx context.Context, userId uuid.UUID, itemType entity.ItemType, itemId uuid.UUID) (*entity.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.rows[enrollKey(userId, itemType, itemId)]
	if !ok {
		return nil, nil
	}
	return e, nil
}

// --- catalog ---

type stubCatalogRepo struct {
	mu    sync.Mutex
	items map[string]*entity.CatalogItem
}

func (r *stubCatalogRepo) put(item *entity.CatalogItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[fmt.Sprintf("%s|%s", item.ItemType, item.ItemId)] = item
}

func (r *stubCatalogRepo) GetPurchasableItem(ctx context.Context, itemType entity.ItemType, itemId uuid.UUID) (*entity.CatalogItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[fmt.Sprintf("%s|%s", itemType, itemId)]
	if !ok {
		return nil, nil
	}
	return item, nil
}

// --- gateway ---

type stubGateway struct {
	mu        sync.Mutex
	serverKey string
	orders    []string
	createErr error
	refundErr error
	refunds   []string
}

func (g *stubGateway) CreateOrder(orderId string, amount int64, itemId, itemName string) (*gateway.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.orders = append(g.orders, orderId)
	return &gateway.Order{
		OrderId:     orderId,
		Token:       "snap-" + orderId,
		RedirectURL: "https://app.sandbox.midtrans.com/snap/v4/redirection/" + orderId,
	}, nil
}

func (g *stubGateway) VerifyCallback(orderId, statusCode, grossAmount, signature string) bool {
	return gateway.Signature(orderId, statusCode, grossAmount, g.serverKey) == signature
}

func (g *stubGateway) CreateRefund(paymentId string, amount int64, reason string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.refundErr != nil {
		return "", g.refundErr
	}
	ref := fmt.Sprintf("rfnd-%d", len(g.refunds)+1)
	g.refunds = append(g.refunds, ref)
	return ref, nil
}

func (g *stubGateway) orderCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.orders)
}

// --- retry queue, mail, logging ---

type stubRetryPublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *stubRetryPublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *stubRetryPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

type stubMailer struct {
	mu        sync.Mutex
	receipts  []string
	decisions []string
}

func (m *stubMailer) SendPurchaseReceipt(toEmail, itemName, invoiceNumber, displayTotal string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receipts = append(m.receipts, toEmail)
	return nil
}

func (m *stubMailer) SendRefundDecision(toEmail, itemName, status, adminNotes string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decisions = append(m.decisions, status)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
