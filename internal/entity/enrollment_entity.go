package entity

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment grants a user access to a purchased item. At most one active
// enrollment exists per (user, item type, item) triple.
type Enrollment struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	ItemType   ItemType
	ItemId     uuid.UUID
	InvoiceId  uuid.UUID
	EnrolledAt time.Time
}
