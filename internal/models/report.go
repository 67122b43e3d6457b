package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReportType string

const (
	ReportProduction    ReportType = "Production"
	ReportEquipment     ReportType = "Equipment"
	ReportEnvironmental ReportType = "Environmental"
	ReportSafety        ReportType = "Safety"
	ReportGeneral       ReportType = "General"
)

func (t ReportType) IsValid() bool {
	switch t {
	case ReportProduction, ReportEquipment, ReportEnvironmental, ReportSafety, ReportGeneral:
		return true
	}
	return false
}

type ReportStatus string

const (
	ReportDraft     ReportStatus = "Draft"
	ReportGenerated ReportStatus = "Generated"
	ReportApproved  ReportStatus = "Approved"
)

func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportDraft, ReportGenerated, ReportApproved:
		return true
	}
	return false
}

// Report carries a payload whose concrete shape depends on Type; the
// aggregation engine writes typed payloads, manual reports may attach
// arbitrary structured data.
type Report struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReportID    string             `bson:"reportId" json:"reportId"` // e.g. "RPT-<uuid>"
	Title       string             `bson:"title" json:"title"`
	Type        ReportType         `bson:"type" json:"type"`
	GeneratedBy primitive.ObjectID `bson:"generatedBy" json:"generatedBy"` // ref User
	DateFrom    time.Time          `bson:"dateFrom" json:"dateFrom"`
	DateTo      time.Time          `bson:"dateTo" json:"dateTo"`
	Data        interface{}        `bson:"data,omitempty" json:"data,omitempty"`
	Status      ReportStatus       `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
