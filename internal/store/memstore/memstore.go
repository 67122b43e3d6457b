// Package memstore is an in-memory implementation of the store interfaces.
// It backs the test suites, which must run without external services, and
// mirrors mongostore's semantics: business-id uniqueness, inclusive date
// ranges, and the per-entity sort orders.
package memstore

import (
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mining-ops-api-server/internal/models"
	"mining-ops-api-server/internal/store"
)

// New returns a fresh set of empty in-memory stores sharing one lock.
func New() store.Stores {
	db := &database{
		minerals:   make(map[string]models.Mineral),
		shifts:     make(map[string]models.Shift),
		equipment:  make(map[string]models.Equipment),
		users:      make(map[string]models.User),
		production: make(map[string]models.ProductionRecord),
		incidents:  make(map[string]models.Incident),
		reports:    make(map[string]models.Report),
	}
	return store.Stores{
		Minerals:   &MineralStore{db: db},
		Shifts:     &ShiftStore{db: db},
		Equipment:  &EquipmentStore{db: db},
		Users:      &UserStore{db: db},
		Production: &ProductionStore{db: db},
		Incidents:  &IncidentStore{db: db},
		Reports:    &ReportStore{db: db},
	}
}

type database struct {
	mu         sync.RWMutex
	minerals   map[string]models.Mineral
	shifts     map[string]models.Shift
	equipment  map[string]models.Equipment
	users      map[string]models.User
	production map[string]models.ProductionRecord
	incidents  map[string]models.Incident
	reports    map[string]models.Report
}

func newID() primitive.ObjectID {
	return primitive.NewObjectID()
}

func lower(s string) string { return strings.ToLower(s) }

// byDateDesc sorts event records newest-first, matching mongostore.
func byDateDesc[T any](items []T, date func(T) int64) {
	sort.SliceStable(items, func(i, j int) bool {
		return date(items[i]) > date(items[j])
	})
}
