package model

import (
	"time"

	"github.com/google/uuid"
)

// RefundRequest rows carry the refund state machine. A partial unique index
// (created in cmd/migrate) on invoice_id WHERE status IN ('pending','approved')
// keeps at most one live request per invoice.
type RefundRequest struct {
	Id                  uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId              uuid.UUID  `gorm:"type:uuid;not null;index"`
	InvoiceId           uuid.UUID  `gorm:"type:uuid;not null;index"`
	ItemType            string     `gorm:"type:varchar(20);not null"`
	ItemId              uuid.UUID  `gorm:"type:uuid;not null"`
	ItemName            string     `gorm:"type:varchar(255);not null"`
	RefundAmount        int64      `gorm:"type:bigint;not null"`
	Reason              string     `gorm:"type:text;not null"`
	Status              string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	AdminNotes          string     `gorm:"type:text"`
	ProcessedBy         *uuid.UUID `gorm:"type:uuid"`
	ProcessedAt         *time.Time
	RefundTransactionId *string   `gorm:"type:varchar(100)"`
	CreatedAt           time.Time `gorm:"autoCreateTime"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`

	// Relations
	Invoice Invoice `gorm:"foreignKey:InvoiceId"`
}

func (RefundRequest) TableName() string {
	return "refund_requests"
}
