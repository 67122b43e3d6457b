// Package aggregate computes grouped statistics over stored collections and
// materializes them as Report entities.
//
// Grouping runs in-process over records fetched through the store interfaces,
// so both store implementations share one code path. A partition only exists
// when at least one record matched; zero-count groups are never emitted.
package aggregate

import (
	"sort"

	"mining-ops-api-server/internal/models"
)

// FieldCount is one partition of a group-by: the distinct value and how many
// records carried it.
type FieldCount struct {
	Value string `bson:"value" json:"value"`
	Count int    `bson:"count" json:"count"`
}

// countByValue partitions values and returns one FieldCount per distinct
// value, sorted by value for deterministic output.
func countByValue(values []string) []FieldCount {
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}

	result := make([]FieldCount, 0, len(counts))
	for value, count := range counts {
		result = append(result, FieldCount{Value: value, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Value < result[j].Value
	})
	return result
}

// MineralProduction is the per-mineral partition of a production summary.
type MineralProduction struct {
	MineralID     string  `bson:"mineralId" json:"mineralId"` // internal id hex
	MineralName   string  `bson:"mineralName" json:"mineralName"`
	MineralGrade  string  `bson:"mineralGrade" json:"mineralGrade"`
	TotalQuantity float64 `bson:"totalQuantity" json:"totalQuantity"`
	RecordCount   int     `bson:"recordCount" json:"recordCount"`
	AvgQuantity   float64 `bson:"avgQuantity" json:"avgQuantity"`
}

// ProductionReportData is the payload of a Production report.
type ProductionReportData struct {
	Summary         []MineralProduction `bson:"summary" json:"summary"`
	TotalRecords    int                 `bson:"totalRecords" json:"totalRecords"`
	TotalProduction float64             `bson:"totalProduction" json:"totalProduction"`
}

// ProductionSummary partitions records by mineral reference and joins each
// partition to its Mineral entity (keyed by internal id hex) for name/grade.
// Averages are returned unrounded; rounding is a display concern.
func ProductionSummary(records []models.ProductionRecord, minerals map[string]models.Mineral) ProductionReportData {
	type bucket struct {
		total float64
		count int
	}
	buckets := make(map[string]*bucket)
	for _, r := range records {
		key := r.Mineral.Hex()
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.total += r.Quantity
		b.count++
	}

	data := ProductionReportData{Summary: make([]MineralProduction, 0, len(buckets))}
	for key, b := range buckets {
		partition := MineralProduction{
			MineralID:     key,
			TotalQuantity: b.total,
			RecordCount:   b.count,
			AvgQuantity:   b.total / float64(b.count),
		}
		if mineral, ok := minerals[key]; ok {
			partition.MineralName = mineral.Name
			partition.MineralGrade = mineral.Grade
		}
		data.Summary = append(data.Summary, partition)
		data.TotalRecords += b.count
		data.TotalProduction += b.total
	}
	sort.Slice(data.Summary, func(i, j int) bool {
		return data.Summary[i].MineralName < data.Summary[j].MineralName
	})
	return data
}

// ProductionOverall is the ungrouped statistics row for a record set.
type ProductionOverall struct {
	TotalProduction   float64 `bson:"totalProduction" json:"totalProduction"`
	AverageProduction float64 `bson:"averageProduction" json:"averageProduction"`
	RecordCount       int     `bson:"recordCount" json:"recordCount"`
}

// OverallProduction sums and averages quantity over all records. An empty set
// yields the zero row, not an error.
func OverallProduction(records []models.ProductionRecord) ProductionOverall {
	var overall ProductionOverall
	for _, r := range records {
		overall.TotalProduction += r.Quantity
		overall.RecordCount++
	}
	if overall.RecordCount > 0 {
		overall.AverageProduction = overall.TotalProduction / float64(overall.RecordCount)
	}
	return overall
}

// EquipmentSummary identifies one machine inside a status group.
type EquipmentSummary struct {
	Name        string `bson:"name" json:"name"`
	Type        string `bson:"type" json:"type"`
	EquipmentID string `bson:"equipmentId" json:"equipmentId"`
}

// EquipmentStatusGroup is one status partition with its member machines.
type EquipmentStatusGroup struct {
	Status    models.EquipmentStatus `bson:"status" json:"status"`
	Count     int                    `bson:"count" json:"count"`
	Equipment []EquipmentSummary     `bson:"equipment" json:"equipment"`
}

// EquipmentReportData is the payload of an Equipment report. Equipment state
// is point-in-time, so there is no date range.
type EquipmentReportData struct {
	ByStatus       []EquipmentStatusGroup `bson:"byStatus" json:"byStatus"`
	ByType         []FieldCount           `bson:"byType" json:"byType"`
	TotalEquipment int                    `bson:"totalEquipment" json:"totalEquipment"`
}

// EquipmentReport groups equipment by status (carrying member summaries) and
// by type.
func EquipmentReport(equipment []models.Equipment) EquipmentReportData {
	groups := make(map[models.EquipmentStatus]*EquipmentStatusGroup)
	types := make([]string, 0, len(equipment))
	for _, e := range equipment {
		g, ok := groups[e.Status]
		if !ok {
			g = &EquipmentStatusGroup{Status: e.Status}
			groups[e.Status] = g
		}
		g.Count++
		g.Equipment = append(g.Equipment, EquipmentSummary{
			Name:        e.Name,
			Type:        string(e.Type),
			EquipmentID: e.EquipmentID,
		})
		types = append(types, string(e.Type))
	}

	data := EquipmentReportData{
		ByStatus:       make([]EquipmentStatusGroup, 0, len(groups)),
		ByType:         countByValue(types),
		TotalEquipment: len(equipment),
	}
	for _, g := range groups {
		data.ByStatus = append(data.ByStatus, *g)
	}
	sort.Slice(data.ByStatus, func(i, j int) bool {
		return data.ByStatus[i].Status < data.ByStatus[j].Status
	})
	return data
}

// EquipmentStatistics is the counts-only view served by the statistics
// endpoint (no member lists).
type EquipmentStatistics struct {
	Total    int          `bson:"total" json:"total"`
	ByStatus []FieldCount `bson:"byStatus" json:"byStatus"`
	ByType   []FieldCount `bson:"byType" json:"byType"`
}

func EquipmentStats(equipment []models.Equipment) EquipmentStatistics {
	statuses := make([]string, len(equipment))
	types := make([]string, len(equipment))
	for i, e := range equipment {
		statuses[i] = string(e.Status)
		types[i] = string(e.Type)
	}
	return EquipmentStatistics{
		Total:    len(equipment),
		ByStatus: countByValue(statuses),
		ByType:   countByValue(types),
	}
}

// IncidentStatistics is the grouped view over a (possibly date-ranged)
// incident set.
type IncidentStatistics struct {
	Total      int          `bson:"total" json:"total"`
	ByType     []FieldCount `bson:"byType" json:"byType"`
	BySeverity []FieldCount `bson:"bySeverity" json:"bySeverity"`
	ByStatus   []FieldCount `bson:"byStatus" json:"byStatus"`
}

func IncidentStats(incidents []models.Incident) IncidentStatistics {
	types := make([]string, len(incidents))
	severities := make([]string, len(incidents))
	statuses := make([]string, len(incidents))
	for i, inc := range incidents {
		types[i] = string(inc.Type)
		severities[i] = string(inc.Severity)
		statuses[i] = string(inc.Status)
	}
	return IncidentStatistics{
		Total:      len(incidents),
		ByType:     countByValue(types),
		BySeverity: countByValue(severities),
		ByStatus:   countByValue(statuses),
	}
}
