package model

import (
	"time"

	"github.com/google/uuid"
)

type Enrollment struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_user_item"`
	ItemType   string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_enrollments_user_item"`
	ItemId     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollments_user_item"`
	InvoiceId  uuid.UUID `gorm:"type:uuid;not null"`
	EnrolledAt time.Time `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
