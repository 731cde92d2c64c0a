package dto

import "github.com/google/uuid"

// FinalizeEnrollmentMessage is the retry-queue payload published when a
// captured payment could not be enrolled synchronously.
type FinalizeEnrollmentMessage struct {
	UserId    uuid.UUID `json:"user_id"`
	ItemType  string    `json:"item_type"`
	ItemId    uuid.UUID `json:"item_id"`
	InvoiceId uuid.UUID `json:"invoice_id"`
}
