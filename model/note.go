package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Note struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Text       string               `bson:"text" json:"text"`
	Owner      primitive.ObjectID   `bson:"owner" json:"owner"`
	SharedWith []primitive.ObjectID `bson:"sharedWith" json:"sharedWith"`
	CreatedAt  time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt" json:"updatedAt"`
	// Only populated by text search.
	Score float64 `bson:"score,omitempty" json:"score,omitempty"`
}

// IsOwnedBy reports whether userID created the note.
func (n *Note) IsOwnedBy(userID primitive.ObjectID) bool {
	return n.Owner == userID
}

// IsSharedWith reports whether userID is already in the share list.
func (n *Note) IsSharedWith(userID primitive.ObjectID) bool {
	for _, id := range n.SharedWith {
		if id == userID {
			return true
		}
	}
	return false
}
