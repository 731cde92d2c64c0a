package model

import (
	"time"

	"github.com/google/uuid"
)

// Invoice rows are the purchase ledger. A partial unique index (created in
// cmd/migrate) on (user_id, item_type, item_id) WHERE payment_status='pending'
// guarantees at most one open order per user/item pair, and payment_id is
// globally unique so duplicate gateway callbacks cannot finalize twice.
type Invoice struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceNumber  string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	UserId         uuid.UUID  `gorm:"type:uuid;not null;index"`
	ItemType       string     `gorm:"type:varchar(20);not null"`
	ItemId         uuid.UUID  `gorm:"type:uuid;not null"`
	ItemName       string     `gorm:"type:varchar(255);not null"`
	Amount         int64      `gorm:"type:bigint;not null"`
	Tax            int64      `gorm:"type:bigint;not null;default:0"`
	TotalAmount    int64      `gorm:"type:bigint;not null"`
	DiscountAmount int64      `gorm:"type:bigint;not null;default:0"`
	GatewayOrderId string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	CustomerEmail  *string    `gorm:"type:varchar(255)"`
	PaymentId      *string    `gorm:"type:varchar(100);uniqueIndex"`
	PaymentMethod  *string    `gorm:"type:varchar(50)"`
	PaymentStatus  string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	CouponCodeId   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime"`

	// Relations
	CouponCode *CouponCode `gorm:"foreignKey:CouponCodeId"`
}

func (Invoice) TableName() string {
	return "invoices"
}
