package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateOrderRequest struct {
	ItemType   string    `json:"item_type" validate:"required,oneof=course workshop campaign"`
	ItemId     uuid.UUID `json:"item_id" validate:"required"`
	CouponCode string    `json:"coupon_code,omitempty"`
}

// CreateOrderResponse is the handle the frontend needs to open the gateway
// checkout. For free items the gateway fields are empty and Completed is true.
type CreateOrderResponse struct {
	InvoiceId      uuid.UUID `json:"invoice_id"`
	InvoiceNumber  string    `json:"invoice_number"`
	GatewayOrderId string    `json:"gateway_order_id,omitempty"`
	GatewayToken   string    `json:"gateway_token,omitempty"`
	RedirectUrl    string    `json:"redirect_url,omitempty"`
	ItemName       string    `json:"item_name"`
	Amount         int64     `json:"amount"`
	DiscountAmount int64     `json:"discount_amount"`
	Tax            int64     `json:"tax"`
	TotalAmount    int64     `json:"total_amount"`
	Currency       string    `json:"currency"`
	Completed      bool      `json:"completed"`
}

type OrderSummaryResponse struct {
	ItemName       string `json:"item_name"`
	ItemType       string `json:"item_type"`
	Subtotal       int64  `json:"subtotal"`
	DiscountAmount int64  `json:"discount_amount"`
	Tax            int64  `json:"tax"`
	Total          int64  `json:"total"`
	Currency       string `json:"currency"`
	DisplayTotal   string `json:"display_total"`
}

type InvoiceResponse struct {
	Id             uuid.UUID `json:"id"`
	InvoiceNumber  string    `json:"invoice_number"`
	ItemType       string    `json:"item_type"`
	ItemId         uuid.UUID `json:"item_id"`
	ItemName       string    `json:"item_name"`
	Amount         int64     `json:"amount"`
	DiscountAmount int64     `json:"discount_amount"`
	Tax            int64     `json:"tax"`
	TotalAmount    int64     `json:"total_amount"`
	PaymentStatus  string    `json:"payment_status"`
	PaymentMethod  *string   `json:"payment_method,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
