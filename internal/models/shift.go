package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ShiftName string

const (
	ShiftMorning   ShiftName = "Morning"
	ShiftAfternoon ShiftName = "Afternoon"
	ShiftNight     ShiftName = "Night"
)

func (s ShiftName) IsValid() bool {
	switch s {
	case ShiftMorning, ShiftAfternoon, ShiftNight:
		return true
	}
	return false
}

type Shift struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ShiftID   string             `bson:"shiftId" json:"shiftId"` // User-friendly unique ID, e.g. "SH-A"
	Name      ShiftName          `bson:"name" json:"name"`
	StartTime string             `bson:"startTime" json:"startTime"` // "06:00"
	EndTime   string             `bson:"endTime" json:"endTime"`     // "14:00"
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
