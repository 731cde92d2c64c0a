package model

import (
	"time"

	"github.com/google/uuid"
)

type CouponCode struct {
	Id                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code              string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	DiscountType      string     `gorm:"type:varchar(20);not null"` // percentage, fixed
	DiscountValue     int64      `gorm:"type:bigint;not null"`
	ScopeItemType     *string    `gorm:"type:varchar(20)"`
	ScopeItemId       *uuid.UUID `gorm:"type:uuid"`
	MinPurchaseAmount *int64     `gorm:"type:bigint"`
	MaxDiscountAmount *int64     `gorm:"type:bigint"`
	UsageLimit        *int       `gorm:"type:int"`
	UsedCount         int        `gorm:"type:int;not null;default:0"`
	UserUsageLimit    int        `gorm:"type:int;not null;default:1"`
	ValidFrom         time.Time  `gorm:"not null"`
	ValidUntil        *time.Time
	IsActive          bool      `gorm:"not null;default:true"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (CouponCode) TableName() string {
	return "coupon_codes"
}

type CouponCodeUsage struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CouponCodeId   uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId         uuid.UUID `gorm:"type:uuid;not null;index:idx_coupon_usages_user_coupon"`
	InvoiceId      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	ItemType       string    `gorm:"type:varchar(20);not null"`
	ItemId         uuid.UUID `gorm:"type:uuid;not null"`
	OriginalAmount int64     `gorm:"type:bigint;not null"`
	DiscountAmount int64     `gorm:"type:bigint;not null"`
	FinalAmount    int64     `gorm:"type:bigint;not null"`
	UsedAt         time.Time `gorm:"not null"`

	// Relations
	CouponCode CouponCode `gorm:"foreignKey:CouponCodeId"`
}

func (CouponCodeUsage) TableName() string {
	return "coupon_code_usages"
}
