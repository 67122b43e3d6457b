package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductionStatus string

const (
	ProductionPending  ProductionStatus = "Pending"
	ProductionApproved ProductionStatus = "Approved"
	ProductionRejected ProductionStatus = "Rejected"
)

func (s ProductionStatus) IsValid() bool {
	switch s {
	case ProductionPending, ProductionApproved, ProductionRejected:
		return true
	}
	return false
}

type ProductionRecord struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	RecordID      string              `bson:"recordId" json:"recordId"` // User-friendly unique ID, e.g. "PR-2026-001"
	Date          time.Time           `bson:"date" json:"date"`
	Quantity      float64             `bson:"quantity" json:"quantity"` // tonnes
	Mineral       primitive.ObjectID  `bson:"mineral" json:"mineral"`   // ref Mineral
	Location      string              `bson:"location" json:"location"`
	Shift         primitive.ObjectID  `bson:"shift" json:"shift"` // ref Shift
	Supervisor    *primitive.ObjectID `bson:"supervisor,omitempty" json:"supervisor,omitempty"`
	FieldOperator primitive.ObjectID  `bson:"fieldOperator" json:"fieldOperator"`
	WorkingHours  float64             `bson:"workingHours" json:"workingHours"`
	Remarks       string              `bson:"remarks,omitempty" json:"remarks,omitempty"`
	Status        ProductionStatus    `bson:"status" json:"status"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}
