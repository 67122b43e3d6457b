package memstore

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mining-ops-api-server/internal/models"
	"mining-ops-api-server/internal/store"
)

type EquipmentStore struct {
	db *database
}

func (s *EquipmentStore) Create(ctx context.Context, e *models.Equipment) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, existing := range s.db.equipment {
		if existing.EquipmentID == e.EquipmentID {
			return store.ErrConflict
		}
	}

	now := time.Now()
	e.ID = newID()
	e.CreatedAt = now
	e.UpdatedAt = now
	s.db.equipment[e.ID.Hex()] = *e
	return nil
}

func (s *EquipmentStore) GetByID(ctx context.Context, id string) (*models.Equipment, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	equipment, ok := s.db.equipment[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &equipment, nil
}

func (s *EquipmentStore) List(ctx context.Context, filter store.EquipmentFilter) ([]models.Equipment, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	equipment := make([]models.Equipment, 0, len(s.db.equipment))
	for _, e := range s.db.equipment {
		if filter.Type != "" && e.Type != filter.Type {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.Location != "" && e.Location != filter.Location {
			continue
		}
		equipment = append(equipment, e)
	}
	sort.SliceStable(equipment, func(i, j int) bool {
		return equipment[i].Name < equipment[j].Name
	})
	return equipment, nil
}

func (s *EquipmentStore) Update(ctx context.Context, id string, upd store.EquipmentUpdate) (*models.Equipment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	equipment, ok := s.db.equipment[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	if upd.EquipmentID != nil {
		for key, existing := range s.db.equipment {
			if key != id && existing.EquipmentID == *upd.EquipmentID {
				return nil, store.ErrConflict
			}
		}
		equipment.EquipmentID = *upd.EquipmentID
	}
	if upd.Name != nil {
		equipment.Name = *upd.Name
	}
	if upd.Type != nil {
		equipment.Type = *upd.Type
	}
	if upd.Status != nil {
		equipment.Status = *upd.Status
	}
	if upd.Location != nil {
		equipment.Location = *upd.Location
	}
	if upd.LastMaintenanceDate != nil {
		d := *upd.LastMaintenanceDate
		equipment.LastMaintenanceDate = &d
	}
	if upd.NextMaintenanceDate != nil {
		d := *upd.NextMaintenanceDate
		equipment.NextMaintenanceDate = &d
	}
	if upd.AssignedTo != nil {
		assignee, err := primitive.ObjectIDFromHex(*upd.AssignedTo)
		if err != nil {
			return nil, store.ErrNotFound
		}
		equipment.AssignedTo = &assignee
	}
	equipment.UpdatedAt = time.Now()

	s.db.equipment[id] = equipment
	return &equipment, nil
}

func (s *EquipmentStore) Delete(ctx context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.equipment[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.db.equipment, id)
	return nil
}
