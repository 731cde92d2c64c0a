package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByCode filters coupons by their (unique) code.
type ByCode struct {
	Code string
}

func (s ByCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("code = ?", s.Code)
}

// ByGatewayOrderId locates the invoice created for a gateway order.
type ByGatewayOrderId struct {
	OrderId string
}

func (s ByGatewayOrderId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("gateway_order_id = ?", s.OrderId)
}

// ByUserItem scopes a query to one user/item pair.
type ByUserItem struct {
	UserId   uuid.UUID
	ItemType string
	ItemId   uuid.UUID
}

func (s ByUserItem) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ? AND item_type = ? AND item_id = ?", s.UserId, s.ItemType, s.ItemId)
}

// LiveRefundForInvoice matches refund requests still occupying an invoice's
// single live-request slot (pending or approved).
type LiveRefundForInvoice struct {
	InvoiceId uuid.UUID
}

func (s LiveRefundForInvoice) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("invoice_id = ? AND status IN ?", s.InvoiceId, []string{"pending", "approved"})
}
