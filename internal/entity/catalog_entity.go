package entity

import "github.com/google/uuid"

// ItemType identifies which catalog a purchasable item belongs to.
type ItemType string

const (
	ItemTypeCourse   ItemType = "course"
	ItemTypeWorkshop ItemType = "workshop"
	ItemTypeCampaign ItemType = "campaign"
)

func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeCourse, ItemTypeWorkshop, ItemTypeCampaign:
		return true
	}
	return false
}

// CatalogItem is the read-only pricing view of a purchasable item as supplied
// by the catalog provider. Content management for these items lives elsewhere.
type CatalogItem struct {
	ItemType ItemType
	ItemId   uuid.UUID
	Title    string
	Price    int64 // minor units
	IsFree   bool
}
