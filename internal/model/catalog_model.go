package model

import (
	"time"

	"github.com/google/uuid"
)

// The catalog tables are owned by the content-management side of the platform;
// this service only reads the pricing columns it needs.

type Course struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Price     int64     `gorm:"type:bigint;not null;default:0"`
	IsFree    bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Course) TableName() string {
	return "courses"
}

type Workshop struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Price     int64     `gorm:"type:bigint;not null;default:0"`
	IsFree    bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Workshop) TableName() string {
	return "workshops"
}

type Campaign struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Price     int64     `gorm:"type:bigint;not null;default:0"`
	IsFree    bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Campaign) TableName() string {
	return "campaigns"
}
