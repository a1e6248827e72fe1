package models

import "time"

// Share is a directed permission edge: the invitee may read and write the
// owner's records. The reverse direction is a separate row.
type Share struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	InviteeID string    `json:"inviteeId"`
	CreatedAt time.Time `json:"createdAt"`
}
