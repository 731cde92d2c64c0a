package contract

import (
	"context"

	"edu-commerce-be/internal/entity"

	"github.com/google/uuid"
)

// CatalogRepository is the read-only boundary to the catalog tables. It
// returns nil (no error) when the item does not exist.
type CatalogRepository interface {
	GetPurchasableItem(ctx context.Context, itemType entity.ItemType, itemId uuid.UUID) (*entity.CatalogItem, error)
}
