package aggregate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mining-ops-api-server/internal/models"
	"mining-ops-api-server/internal/store"
	"mining-ops-api-server/internal/store/memstore"
)

func newTestEngine(t *testing.T) (*Engine, store.Stores) {
	t.Helper()
	stores := memstore.New()
	engine := NewEngine(stores)
	engine.NewReportID = func() string { return "RPT-TEST" }
	return engine, stores
}

func seedMineral(t *testing.T, stores store.Stores, mineralID, name, grade string) models.Mineral {
	t.Helper()
	m := models.Mineral{MineralID: mineralID, Name: name, Grade: grade}
	require.NoError(t, stores.Minerals.Create(context.Background(), &m))
	return m
}

func seedRecord(t *testing.T, stores store.Stores, recordID string, mineral primitive.ObjectID, quantity float64, date time.Time) models.ProductionRecord {
	t.Helper()
	r := models.ProductionRecord{
		RecordID:      recordID,
		Date:          date,
		Quantity:      quantity,
		Mineral:       mineral,
		Shift:         primitive.NewObjectID(),
		FieldOperator: primitive.NewObjectID(),
		Status:        models.ProductionPending,
	}
	require.NoError(t, stores.Production.Create(context.Background(), &r))
	return r
}

func TestProductionStatistics(t *testing.T) {
	engine, stores := newTestEngine(t)
	ctx := context.Background()

	copper := seedMineral(t, stores, "MIN-CU", "Copper", "A")
	iron := seedMineral(t, stores, "MIN-FE", "Iron", "B")
	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	seedRecord(t, stores, "PR-1", copper.ID, 10, day)
	seedRecord(t, stores, "PR-2", copper.ID, 20, day.Add(time.Hour))
	seedRecord(t, stores, "PR-3", iron.ID, 5, day.Add(2*time.Hour))

	overall, byMineral, err := engine.ProductionStatistics(ctx, store.DateRange{})
	require.NoError(t, err)

	assert.Equal(t, 35.0, overall.TotalProduction)
	assert.Equal(t, 3, overall.RecordCount)
	require.Len(t, byMineral, 2)
	assert.Equal(t, "Copper", byMineral[0].MineralName)
	assert.Equal(t, 15.0, byMineral[0].AvgQuantity)
	assert.Equal(t, "Iron", byMineral[1].MineralName)
}

func TestProductionStatisticsWindow(t *testing.T) {
	engine, stores := newTestEngine(t)
	ctx := context.Background()

	copper := seedMineral(t, stores, "MIN-CU", "Copper", "A")
	seedRecord(t, stores, "PR-1", copper.ID, 10, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	seedRecord(t, stores, "PR-2", copper.ID, 20, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)
	overall, byMineral, err := engine.ProductionStatistics(ctx, store.DateRange{From: &from, To: &to})
	require.NoError(t, err)

	// The boundary record is inside the window; April's is not.
	assert.Equal(t, 10.0, overall.TotalProduction)
	assert.Equal(t, 1, overall.RecordCount)
	require.Len(t, byMineral, 1)
	assert.Equal(t, 1, byMineral[0].RecordCount)
}

func TestProductionStatisticsEmptyWindow(t *testing.T) {
	engine, stores := newTestEngine(t)
	ctx := context.Background()

	copper := seedMineral(t, stores, "MIN-CU", "Copper", "A")
	seedRecord(t, stores, "PR-1", copper.ID, 10, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	overall, byMineral, err := engine.ProductionStatistics(ctx, store.DateRange{From: &from, To: &to})
	require.NoError(t, err)

	assert.Zero(t, overall.TotalProduction)
	assert.Zero(t, overall.AverageProduction)
	assert.Zero(t, overall.RecordCount)
	assert.Empty(t, byMineral)
}

func TestGenerateProductionSummary(t *testing.T) {
	engine, stores := newTestEngine(t)
	ctx := context.Background()

	copper := seedMineral(t, stores, "MIN-CU", "Copper", "A")
	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	seedRecord(t, stores, "PR-1", copper.ID, 10, day)
	seedRecord(t, stores, "PR-2", copper.ID, 20, day.Add(time.Hour))

	generatedBy := primitive.NewObjectID()
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	report, err := engine.GenerateProductionSummary(ctx, from, to, generatedBy)
	require.NoError(t, err)

	assert.Equal(t, "RPT-TEST", report.ReportID)
	assert.Equal(t, "Production Summary Report (2026-03-01 to 2026-03-31)", report.Title)
	assert.Equal(t, models.ReportProduction, report.Type)
	assert.Equal(t, models.ReportGenerated, report.Status)
	assert.Equal(t, generatedBy, report.GeneratedBy)
	assert.Equal(t, from, report.DateFrom)
	assert.Equal(t, to, report.DateTo)

	data, ok := report.Data.(ProductionReportData)
	require.True(t, ok)
	assert.Equal(t, 2, data.TotalRecords)
	assert.Equal(t, 30.0, data.TotalProduction)

	// The report must actually be persisted, not just returned.
	stored, err := stores.Reports.GetByID(ctx, report.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "RPT-TEST", stored.ReportID)
}

func TestGenerateEquipmentReport(t *testing.T) {
	engine, stores := newTestEngine(t)
	ctx := context.Background()

	for _, e := range []models.Equipment{
		{EquipmentID: "EQ-1", Name: "EX-100", Type: models.EquipmentExcavator, Status: models.EquipmentOperational},
		{EquipmentID: "EQ-2", Name: "DR-5", Type: models.EquipmentDrill, Status: models.EquipmentBroken},
	} {
		e := e
		require.NoError(t, stores.Equipment.Create(ctx, &e))
	}

	report, err := engine.GenerateEquipmentReport(ctx, primitive.NewObjectID())
	require.NoError(t, err)

	assert.Equal(t, "Equipment Status Report", report.Title)
	assert.Equal(t, models.ReportEquipment, report.Type)
	assert.Equal(t, models.ReportGenerated, report.Status)

	data, ok := report.Data.(EquipmentReportData)
	require.True(t, ok)
	assert.Equal(t, 2, data.TotalEquipment)
	assert.Len(t, data.ByStatus, 2)
}

func TestDefaultReportIDsDistinct(t *testing.T) {
	engine := NewEngine(memstore.New())
	a := engine.NewReportID()
	b := engine.NewReportID()
	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "RPT-")
}

func TestIncidentStatisticsEngine(t *testing.T) {
	engine, stores := newTestEngine(t)
	ctx := context.Background()

	for i, inc := range []models.Incident{
		{IncidentID: "INC-1", Title: "Rockfall", Type: models.IncidentSafety, Severity: models.SeverityHigh, Status: models.IncidentOpen, Date: time.Now()},
		{IncidentID: "INC-2", Title: "Hydraulic leak", Type: models.IncidentEquipment, Severity: models.SeverityMedium, Status: models.IncidentResolved, Date: time.Now()},
	} {
		inc := inc
		inc.ReportedBy = primitive.NewObjectID()
		require.NoError(t, stores.Incidents.Create(ctx, &inc), "incident %d", i)
	}

	stats, err := engine.IncidentStatistics(ctx, store.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Len(t, stats.ByType, 2)
}
