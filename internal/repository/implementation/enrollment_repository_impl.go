package implementation

import (
	"context"

	"edu-commerce-be/internal/entity"
	"edu-commerce-be/internal/model"
	"edu-commerce-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type enrollmentRepositoryImpl struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) contract.EnrollmentRepository {
	return &enrollmentRepositoryImpl{db: db}
}

// Upsert relies on ON CONFLICT DO NOTHING against the (user, item) unique
// index, so duplicate confirmations and concurrent retries collapse into a
// single enrollment without an error.
func (r *enrollmentRepositoryImpl) Upsert(ctx context.Context, enrollment *entity.Enrollment) (bool, error) {
	me := &model.Enrollment{
		Id:         enrollment.Id,
		UserId:     enrollment.UserId,
		ItemType:   string(enrollment.ItemType),
		ItemId:     enrollment.ItemId,
		InvoiceId:  enrollment.InvoiceId,
		EnrolledAt: enrollment.EnrolledAt,
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "item_type"}, {Name: "item_id"}},
			DoNothing: true,
		}).
		Create(me)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *enrollmentRepositoryImpl) Exists(ctx context.Context, userId uuid.UUID, itemType entity.ItemType, itemId uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Enrollment{}).
		Where("user_id = ? AND item_type = ? AND item_id = ?", userId, string(itemType), itemId).
		Count(&count).Error
	return count > 0, err
}

func (r *enrollmentRepositoryImpl) FindByUserItem(ctx context.Context, userId uuid.UUID, itemType entity.ItemType, itemId uuid.UUID) (*entity.Enrollment, error) {
	var me model.Enrollment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND item_type = ? AND item_id = ?", userId, string(itemType), itemId).
		First(&me).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &entity.Enrollment{
		Id:         me.Id,
		UserId:     me.UserId,
		ItemType:   entity.ItemType(me.ItemType),
		ItemId:     me.ItemId,
		InvoiceId:  me.InvoiceId,
		EnrolledAt: me.EnrolledAt,
	}, nil
}
