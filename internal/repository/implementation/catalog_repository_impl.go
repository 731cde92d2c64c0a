package implementation

import (
	"context"

	"edu-commerce-be/internal/entity"
	"edu-commerce-be/internal/model"
	"edu-commerce-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type catalogRepositoryImpl struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) contract.CatalogRepository {
	return &catalogRepositoryImpl{db: db}
}

func (r *catalogRepositoryImpl) GetPurchasableItem(ctx context.Context, itemType entity.ItemType, itemId uuid.UUID) (*entity.CatalogItem, error) {
	var (
		title  string
		price  int64
		isFree bool
	)

	var err error
	switch itemType {
	case entity.ItemTypeCourse:
		var m model.Course
		err = r.db.WithContext(ctx).Select("id", "title", "price", "is_free").First(&m, "id = ?", itemId).Error
		title, price, isFree = m.Title, m.Price, m.IsFree
	case entity.ItemTypeWorkshop:
		var m model.Workshop
		err = r.db.WithContext(ctx).Select("id", "title", "price", "is_free").First(&m, "id = ?", itemId).Error
		title, price, isFree = m.Title, m.Price, m.IsFree
	case entity.ItemTypeCampaign:
		var m model.Campaign
		err = r.db.WithContext(ctx).Select("id", "title", "price", "is_free").First(&m, "id = ?", itemId).Error
		title, price, isFree = m.Title, m.Price, m.IsFree
	default:
		return nil, nil
	}

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &entity.CatalogItem{
		ItemType: itemType,
		ItemId:   itemId,
		Title:    title,
		Price:    price,
		IsFree:   isFree,
	}, nil
}
