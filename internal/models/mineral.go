package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Mineral struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MineralID   string             `bson:"mineralId" json:"mineralId"` // User-friendly unique ID, e.g. "MIN-001"
	Name        string             `bson:"name" json:"name"`
	Grade       string             `bson:"grade" json:"grade"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
