package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mining-ops-api-server/internal/models"
)

func TestProductionSummary(t *testing.T) {
	copperID := primitive.NewObjectID()
	ironID := primitive.NewObjectID()
	minerals := map[string]models.Mineral{
		copperID.Hex(): {ID: copperID, Name: "Copper", Grade: "A"},
		ironID.Hex():   {ID: ironID, Name: "Iron", Grade: "B"},
	}
	records := []models.ProductionRecord{
		{Mineral: copperID, Quantity: 10},
		{Mineral: copperID, Quantity: 20},
		{Mineral: ironID, Quantity: 5},
	}

	data := ProductionSummary(records, minerals)

	assert.Equal(t, 3, data.TotalRecords)
	assert.Equal(t, 35.0, data.TotalProduction)
	if assert.Len(t, data.Summary, 2) {
		copper := data.Summary[0]
		assert.Equal(t, "Copper", copper.MineralName)
		assert.Equal(t, "A", copper.MineralGrade)
		assert.Equal(t, 30.0, copper.TotalQuantity)
		assert.Equal(t, 2, copper.RecordCount)
		assert.Equal(t, 15.0, copper.AvgQuantity)

		iron := data.Summary[1]
		assert.Equal(t, "Iron", iron.MineralName)
		assert.Equal(t, 5.0, iron.TotalQuantity)
		assert.Equal(t, 1, iron.RecordCount)
		assert.Equal(t, 5.0, iron.AvgQuantity)
	}
}

func TestProductionSummaryEmpty(t *testing.T) {
	data := ProductionSummary(nil, nil)
	assert.Empty(t, data.Summary)
	assert.Zero(t, data.TotalRecords)
	assert.Zero(t, data.TotalProduction)
}

func TestProductionSummaryUnknownMineral(t *testing.T) {
	// A dangling mineral reference still gets a partition, just without the
	// joined name and grade.
	ghostID := primitive.NewObjectID()
	data := ProductionSummary([]models.ProductionRecord{{Mineral: ghostID, Quantity: 7}}, nil)

	if assert.Len(t, data.Summary, 1) {
		assert.Equal(t, ghostID.Hex(), data.Summary[0].MineralID)
		assert.Empty(t, data.Summary[0].MineralName)
		assert.Equal(t, 7.0, data.Summary[0].TotalQuantity)
	}
}

func TestOverallProduction(t *testing.T) {
	records := []models.ProductionRecord{
		{Quantity: 10}, {Quantity: 20}, {Quantity: 5},
	}
	overall := OverallProduction(records)
	assert.Equal(t, 35.0, overall.TotalProduction)
	assert.Equal(t, 3, overall.RecordCount)
	assert.InDelta(t, 35.0/3.0, overall.AverageProduction, 1e-9)
}

func TestOverallProductionEmpty(t *testing.T) {
	overall := OverallProduction(nil)
	assert.Zero(t, overall.TotalProduction)
	assert.Zero(t, overall.AverageProduction)
	assert.Zero(t, overall.RecordCount)
}

func TestEquipmentReport(t *testing.T) {
	equipment := []models.Equipment{
		{EquipmentID: "EQ-1", Name: "EX-100", Type: models.EquipmentExcavator, Status: models.EquipmentOperational},
		{EquipmentID: "EQ-2", Name: "EX-200", Type: models.EquipmentExcavator, Status: models.EquipmentOperational},
		{EquipmentID: "EQ-3", Name: "TR-10", Type: models.EquipmentTruck, Status: models.EquipmentOperational},
		{EquipmentID: "EQ-4", Name: "DR-5", Type: models.EquipmentDrill, Status: models.EquipmentBroken},
	}

	data := EquipmentReport(equipment)

	assert.Equal(t, 4, data.TotalEquipment)
	// Only statuses that actually occur get a group; no Idle with count zero.
	if assert.Len(t, data.ByStatus, 2) {
		assert.Equal(t, models.EquipmentBroken, data.ByStatus[0].Status)
		assert.Equal(t, 1, data.ByStatus[0].Count)
		assert.Len(t, data.ByStatus[0].Equipment, 1)

		assert.Equal(t, models.EquipmentOperational, data.ByStatus[1].Status)
		assert.Equal(t, 3, data.ByStatus[1].Count)
		assert.Len(t, data.ByStatus[1].Equipment, 3)
	}
	assert.Equal(t, []FieldCount{
		{Value: "Drill", Count: 1},
		{Value: "Excavator", Count: 2},
		{Value: "Truck", Count: 1},
	}, data.ByType)
}

func TestEquipmentStats(t *testing.T) {
	equipment := []models.Equipment{
		{Type: models.EquipmentTruck, Status: models.EquipmentOperational},
		{Type: models.EquipmentTruck, Status: models.EquipmentIdle},
	}
	stats := EquipmentStats(equipment)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, []FieldCount{
		{Value: "Idle", Count: 1},
		{Value: "Operational", Count: 1},
	}, stats.ByStatus)
	assert.Equal(t, []FieldCount{{Value: "Truck", Count: 2}}, stats.ByType)
}

func TestIncidentStats(t *testing.T) {
	incidents := []models.Incident{
		{Type: models.IncidentSafety, Severity: models.SeverityHigh, Status: models.IncidentOpen},
		{Type: models.IncidentSafety, Severity: models.SeverityLow, Status: models.IncidentResolved},
		{Type: models.IncidentEquipment, Severity: models.SeverityHigh, Status: models.IncidentOpen},
	}
	stats := IncidentStats(incidents)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, []FieldCount{
		{Value: "Equipment", Count: 1},
		{Value: "Safety", Count: 2},
	}, stats.ByType)
	assert.Equal(t, []FieldCount{
		{Value: "High", Count: 2},
		{Value: "Low", Count: 1},
	}, stats.BySeverity)
	assert.Equal(t, []FieldCount{
		{Value: "Open", Count: 2},
		{Value: "Resolved", Count: 1},
	}, stats.ByStatus)
}

func TestIncidentStatsEmpty(t *testing.T) {
	stats := IncidentStats(nil)
	assert.Zero(t, stats.Total)
	assert.Empty(t, stats.ByType)
	assert.Empty(t, stats.BySeverity)
	assert.Empty(t, stats.ByStatus)
}
