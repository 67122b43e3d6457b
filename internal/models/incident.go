package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type IncidentType string

const (
	IncidentSafety        IncidentType = "Safety"
	IncidentEquipment     IncidentType = "Equipment"
	IncidentEnvironmental IncidentType = "Environmental"
	IncidentProduction    IncidentType = "Production"
	IncidentOther         IncidentType = "Other"
)

func (t IncidentType) IsValid() bool {
	switch t {
	case IncidentSafety, IncidentEquipment, IncidentEnvironmental, IncidentProduction, IncidentOther:
		return true
	}
	return false
}

type IncidentSeverity string

const (
	SeverityLow      IncidentSeverity = "Low"
	SeverityMedium   IncidentSeverity = "Medium"
	SeverityHigh     IncidentSeverity = "High"
	SeverityCritical IncidentSeverity = "Critical"
)

func (s IncidentSeverity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

type IncidentStatus string

const (
	IncidentOpen       IncidentStatus = "Open"
	IncidentInProgress IncidentStatus = "InProgress"
	IncidentResolved   IncidentStatus = "Resolved"
	IncidentClosed     IncidentStatus = "Closed"
)

func (s IncidentStatus) IsValid() bool {
	switch s {
	case IncidentOpen, IncidentInProgress, IncidentResolved, IncidentClosed:
		return true
	}
	return false
}

// Photo points at an evidence image stored on S3.
type Photo struct {
	ID       string `bson:"id" json:"id"`
	URL      string `bson:"url" json:"url"`
	FileName string `bson:"fileName" json:"fileName"`
}

type Incident struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	IncidentID   string              `bson:"incidentId" json:"incidentId"` // User-friendly unique ID, e.g. "INC-0042"
	Title        string              `bson:"title" json:"title"`
	Description  string              `bson:"description" json:"description"`
	Type         IncidentType        `bson:"type" json:"type"`
	Severity     IncidentSeverity    `bson:"severity" json:"severity"`
	Location     string              `bson:"location" json:"location"`
	Date         time.Time           `bson:"date" json:"date"`
	ReportedBy   primitive.ObjectID  `bson:"reportedBy" json:"reportedBy"` // ref User
	Equipment    *primitive.ObjectID `bson:"equipment,omitempty" json:"equipment,omitempty"`
	Status       IncidentStatus      `bson:"status" json:"status"`
	ActionTaken  string              `bson:"actionTaken,omitempty" json:"actionTaken,omitempty"`
	ResolvedBy   *primitive.ObjectID `bson:"resolvedBy,omitempty" json:"resolvedBy,omitempty"`
	ResolvedDate *time.Time          `bson:"resolvedDate,omitempty" json:"resolvedDate,omitempty"`
	Photos       []Photo             `bson:"photos,omitempty" json:"photos,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}
