// Package store defines the persistence boundary of the engine. Each entity
// gets its own interface; implementations live in mongostore (production) and
// memstore (tests). The engine never assumes more than per-record atomicity.
package store

import (
	"context"
	"errors"
	"time"

	"mining-ops-api-server/internal/models"
)

var (
	// ErrNotFound means no record exists for the given internal id.
	ErrNotFound = errors.New("record not found")
	// ErrConflict means a record with the same business id already exists.
	ErrConflict = errors.New("duplicate business id")
)

// DateRange filters on a date field, inclusive on both ends. The filter only
// applies when both bounds are set.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Bounded reports whether the range is complete enough to apply.
func (r DateRange) Bounded() bool {
	return r.From != nil && r.To != nil
}

// Contains reports whether t falls inside the range. An unbounded range
// matches everything.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Bounded() {
		return true
	}
	return !t.Before(*r.From) && !t.After(*r.To)
}

type MineralStore interface {
	Create(ctx context.Context, m *models.Mineral) error
	GetByID(ctx context.Context, id string) (*models.Mineral, error)
	List(ctx context.Context) ([]models.Mineral, error)
	Update(ctx context.Context, id string, upd MineralUpdate) (*models.Mineral, error)
	Delete(ctx context.Context, id string) error
}

// MineralUpdate is a partial update; nil fields are left unchanged.
type MineralUpdate struct {
	MineralID   *string
	Name        *string
	Grade       *string
	Description *string
}

type ShiftStore interface {
	Create(ctx context.Context, s *models.Shift) error
	GetByID(ctx context.Context, id string) (*models.Shift, error)
	// List returns shifts ordered by name ascending; activeOnly narrows to
	// shifts still in rotation.
	List(ctx context.Context, activeOnly bool) ([]models.Shift, error)
	Update(ctx context.Context, id string, upd ShiftUpdate) (*models.Shift, error)
	Delete(ctx context.Context, id string) error
}

type ShiftUpdate struct {
	ShiftID   *string
	Name      *models.ShiftName
	StartTime *string
	EndTime   *string
	IsActive  *bool
}

type EquipmentFilter struct {
	Type     models.EquipmentType
	Status   models.EquipmentStatus
	Location string
}

type EquipmentStore interface {
	Create(ctx context.Context, e *models.Equipment) error
	GetByID(ctx context.Context, id string) (*models.Equipment, error)
	List(ctx context.Context, filter EquipmentFilter) ([]models.Equipment, error)
	Update(ctx context.Context, id string, upd EquipmentUpdate) (*models.Equipment, error)
	Delete(ctx context.Context, id string) error
}

type EquipmentUpdate struct {
	EquipmentID         *string
	Name                *string
	Type                *models.EquipmentType
	Status              *models.EquipmentStatus
	Location            *string
	LastMaintenanceDate *time.Time
	NextMaintenanceDate *time.Time
	AssignedTo          *string
}

type UserStore interface {
	// Create fails with ErrConflict when the email or userId is taken.
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id string, upd UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type UserUpdate struct {
	UserName *string
	Email    *string
	Role     *models.Role
	Password *string
	IsActive *bool
}

type ProductionFilter struct {
	Mineral string // internal id hex
	Shift   string
	Status  models.ProductionStatus
	Date    DateRange
}

type ProductionStore interface {
	Create(ctx context.Context, r *models.ProductionRecord) error
	GetByID(ctx context.Context, id string) (*models.ProductionRecord, error)
	// List returns matching records ordered by date descending.
	List(ctx context.Context, filter ProductionFilter) ([]models.ProductionRecord, error)
	Update(ctx context.Context, id string, upd ProductionUpdate) (*models.ProductionRecord, error)
	Delete(ctx context.Context, id string) error
}

type ProductionUpdate struct {
	RecordID      *string
	Date          *time.Time
	Quantity      *float64
	Mineral       *string
	Location      *string
	Shift         *string
	Supervisor    *string
	FieldOperator *string
	WorkingHours  *float64
	Remarks       *string
	Status        *models.ProductionStatus
}

type IncidentFilter struct {
	Type     models.IncidentType
	Severity models.IncidentSeverity
	Status   models.IncidentStatus
	Date     DateRange
}

type IncidentStore interface {
	Create(ctx context.Context, i *models.Incident) error
	GetByID(ctx context.Context, id string) (*models.Incident, error)
	// List returns matching incidents ordered by date descending.
	List(ctx context.Context, filter IncidentFilter) ([]models.Incident, error)
	Update(ctx context.Context, id string, upd IncidentUpdate) (*models.Incident, error)
	Delete(ctx context.Context, id string) error
	AddPhoto(ctx context.Context, id string, photo models.Photo) (*models.Incident, error)
}

type IncidentUpdate struct {
	IncidentID   *string
	Title        *string
	Description  *string
	Type         *models.IncidentType
	Severity     *models.IncidentSeverity
	Location     *string
	Date         *time.Time
	Equipment    *string
	Status       *models.IncidentStatus
	ActionTaken  *string
	ResolvedBy   *string
	ResolvedDate *time.Time
}

type ReportFilter struct {
	Type    models.ReportType
	Status  models.ReportStatus
	Created DateRange // filters on createdAt
}

type ReportStore interface {
	Create(ctx context.Context, r *models.Report) error
	GetByID(ctx context.Context, id string) (*models.Report, error)
	// List returns matching reports ordered by creation time descending.
	List(ctx context.Context, filter ReportFilter) ([]models.Report, error)
	Update(ctx context.Context, id string, upd ReportUpdate) (*models.Report, error)
	Delete(ctx context.Context, id string) error
}

type ReportUpdate struct {
	ReportID *string
	Title    *string
	Type     *models.ReportType
	DateFrom *time.Time
	DateTo   *time.Time
	Data     interface{}
	Status   *models.ReportStatus
}

// Stores bundles every entity store for wiring through the router.
type Stores struct {
	Minerals   MineralStore
	Shifts     ShiftStore
	Equipment  EquipmentStore
	Users      UserStore
	Production ProductionStore
	Incidents  IncidentStore
	Reports    ReportStore
}
