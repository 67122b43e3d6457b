package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EquipmentType string

const (
	EquipmentExcavator EquipmentType = "Excavator"
	EquipmentDrill     EquipmentType = "Drill"
	EquipmentTruck     EquipmentType = "Truck"
	EquipmentLoader    EquipmentType = "Loader"
	EquipmentOther     EquipmentType = "Other"
)

func (t EquipmentType) IsValid() bool {
	switch t {
	case EquipmentExcavator, EquipmentDrill, EquipmentTruck, EquipmentLoader, EquipmentOther:
		return true
	}
	return false
}

type EquipmentStatus string

const (
	EquipmentOperational      EquipmentStatus = "Operational"
	EquipmentUnderMaintenance EquipmentStatus = "UnderMaintenance"
	EquipmentBroken           EquipmentStatus = "Broken"
	EquipmentIdle             EquipmentStatus = "Idle"
)

func (s EquipmentStatus) IsValid() bool {
	switch s {
	case EquipmentOperational, EquipmentUnderMaintenance, EquipmentBroken, EquipmentIdle:
		return true
	}
	return false
}

type Equipment struct {
	ID                  primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	EquipmentID         string              `bson:"equipmentId" json:"equipmentId"` // User-friendly unique ID, e.g. "EQ-EX-01"
	Name                string              `bson:"name" json:"name"`
	Type                EquipmentType       `bson:"type" json:"type"`
	Status              EquipmentStatus     `bson:"status" json:"status"`
	Location            string              `bson:"location,omitempty" json:"location,omitempty"`
	LastMaintenanceDate *time.Time          `bson:"lastMaintenanceDate,omitempty" json:"lastMaintenanceDate,omitempty"`
	NextMaintenanceDate *time.Time          `bson:"nextMaintenanceDate,omitempty" json:"nextMaintenanceDate,omitempty"`
	AssignedTo          *primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"` // ref User
	CreatedAt           time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time           `bson:"updatedAt" json:"updatedAt"`
}
