package dto

import "github.com/google/uuid"

type ValidateCouponRequest struct {
	Code     string    `json:"code" validate:"required"`
	ItemType string    `json:"item_type" validate:"required,oneof=course workshop campaign"`
	ItemId   uuid.UUID `json:"item_id" validate:"required"`
}

type ValidateCouponResponse struct {
	Code           string `json:"code"`
	OriginalAmount int64  `json:"original_amount"`
	DiscountAmount int64  `json:"discount_amount"`
	FinalAmount    int64  `json:"final_amount"`
}
