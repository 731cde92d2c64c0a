package contract

import (
	"context"

	"edu-commerce-be/internal/entity"

	"github.com/google/uuid"
)

type EnrollmentRepository interface {
	// Upsert inserts the enrollment if the (user, item) triple is not taken,
	// and is a no-op otherwise. Reports whether a new row was created.
	Upsert(ctx context.Context, enrollment *entity.Enrollment) (bool, error)
	Exists(ctx context.Context, userId uuid.UUID, itemType entity.ItemType, itemId uuid.UUID) (bool, error)
	FindByUserItem(ctx context.Context, userId uuid.UUID, itemType entity.ItemType, itemId uuid.UUID) (*entity.Enrollment, error)
}
