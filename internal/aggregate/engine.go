package aggregate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mining-ops-api-server/internal/models"
	"mining-ops-api-server/internal/store"
)

// Engine reads through the store interfaces, computes the grouped statistics,
// and materializes Report entities. Aggregation and persistence are two
// separate store operations; there is no cross-record transaction, so a
// materialized report reflects the data as read at aggregation time.
type Engine struct {
	Production store.ProductionStore
	Minerals   store.MineralStore
	Equipment  store.EquipmentStore
	Incidents  store.IncidentStore
	Reports    store.ReportStore

	// NewReportID generates human-readable report ids. The default source is
	// random rather than wall-clock time, so concurrent callers cannot
	// collide. Tests pin it.
	NewReportID func() string
}

func NewEngine(stores store.Stores) *Engine {
	return &Engine{
		Production:  stores.Production,
		Minerals:    stores.Minerals,
		Equipment:   stores.Equipment,
		Incidents:   stores.Incidents,
		Reports:     stores.Reports,
		NewReportID: defaultReportID,
	}
}

func defaultReportID() string {
	return "RPT-" + uuid.New().String()
}

// mineralIndex maps internal id hex to the Mineral entity for the summary
// join.
func (e *Engine) mineralIndex(ctx context.Context) (map[string]models.Mineral, error) {
	minerals, err := e.Minerals.List(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]models.Mineral, len(minerals))
	for _, m := range minerals {
		index[m.ID.Hex()] = m
	}
	return index, nil
}

// ProductionStatistics computes the overall row plus the per-mineral
// partitions for the given window.
func (e *Engine) ProductionStatistics(ctx context.Context, dateRange store.DateRange) (ProductionOverall, []MineralProduction, error) {
	records, err := e.Production.List(ctx, store.ProductionFilter{Date: dateRange})
	if err != nil {
		return ProductionOverall{}, nil, err
	}
	index, err := e.mineralIndex(ctx)
	if err != nil {
		return ProductionOverall{}, nil, err
	}
	summary := ProductionSummary(records, index)
	return OverallProduction(records), summary.Summary, nil
}

// EquipmentStatistics computes the counts-only statistics view. Equipment
// state is point-in-time; no date range applies.
func (e *Engine) EquipmentStatistics(ctx context.Context) (EquipmentStatistics, error) {
	equipment, err := e.Equipment.List(ctx, store.EquipmentFilter{})
	if err != nil {
		return EquipmentStatistics{}, err
	}
	return EquipmentStats(equipment), nil
}

// IncidentStatistics computes grouped incident counts for the given window.
func (e *Engine) IncidentStatistics(ctx context.Context, dateRange store.DateRange) (IncidentStatistics, error) {
	incidents, err := e.Incidents.List(ctx, store.IncidentFilter{Date: dateRange})
	if err != nil {
		return IncidentStatistics{}, err
	}
	return IncidentStats(incidents), nil
}

// GenerateProductionSummary aggregates the window and persists the result as
// a Generated report. If persistence fails the caller retries the whole flow.
func (e *Engine) GenerateProductionSummary(ctx context.Context, dateFrom, dateTo time.Time, generatedBy primitive.ObjectID) (*models.Report, error) {
	dateRange := store.DateRange{From: &dateFrom, To: &dateTo}
	records, err := e.Production.List(ctx, store.ProductionFilter{Date: dateRange})
	if err != nil {
		return nil, err
	}
	index, err := e.mineralIndex(ctx)
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		ReportID: e.NewReportID(),
		Title: fmt.Sprintf("Production Summary Report (%s to %s)",
			dateFrom.Format("2006-01-02"), dateTo.Format("2006-01-02")),
		Type:        models.ReportProduction,
		GeneratedBy: generatedBy,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		Data:        ProductionSummary(records, index),
		Status:      models.ReportGenerated,
	}
	if err := e.Reports.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// GenerateEquipmentReport snapshots the current equipment state as a
// Generated report.
func (e *Engine) GenerateEquipmentReport(ctx context.Context, generatedBy primitive.ObjectID) (*models.Report, error) {
	equipment, err := e.Equipment.List(ctx, store.EquipmentFilter{})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	report := &models.Report{
		ReportID:    e.NewReportID(),
		Title:       "Equipment Status Report",
		Type:        models.ReportEquipment,
		GeneratedBy: generatedBy,
		DateFrom:    now,
		DateTo:      now,
		Data:        EquipmentReport(equipment),
		Status:      models.ReportGenerated,
	}
	if err := e.Reports.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}
