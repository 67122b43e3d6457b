package memstore

import (
	"context"
	"sort"
	"time"

	"mining-ops-api-server/internal/models"
	"mining-ops-api-server/internal/store"
)

type ShiftStore struct {
	db *database
}

func (s *ShiftStore) Create(ctx context.Context, shift *models.Shift) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, existing := range s.db.shifts {
		if existing.ShiftID == shift.ShiftID {
			return store.ErrConflict
		}
	}

	now := time.Now()
	shift.ID = newID()
	shift.CreatedAt = now
	shift.UpdatedAt = now
	s.db.shifts[shift.ID.Hex()] = *shift
	return nil
}

func (s *ShiftStore) GetByID(ctx context.Context, id string) (*models.Shift, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	shift, ok := s.db.shifts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &shift, nil
}

func (s *ShiftStore) List(ctx context.Context, activeOnly bool) ([]models.Shift, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	shifts := make([]models.Shift, 0, len(s.db.shifts))
	for _, shift := range s.db.shifts {
		if activeOnly && !shift.IsActive {
			continue
		}
		shifts = append(shifts, shift)
	}
	sort.SliceStable(shifts, func(i, j int) bool {
		return shifts[i].Name < shifts[j].Name
	})
	return shifts, nil
}

func (s *ShiftStore) Update(ctx context.Context, id string, upd store.ShiftUpdate) (*models.Shift, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	shift, ok := s.db.shifts[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	if upd.ShiftID != nil {
		for key, existing := range s.db.shifts {
			if key != id && existing.ShiftID == *upd.ShiftID {
				return nil, store.ErrConflict
			}
		}
		shift.ShiftID = *upd.ShiftID
	}
	if upd.Name != nil {
		shift.Name = *upd.Name
	}
	if upd.StartTime != nil {
		shift.StartTime = *upd.StartTime
	}
	if upd.EndTime != nil {
		shift.EndTime = *upd.EndTime
	}
	if upd.IsActive != nil {
		shift.IsActive = *upd.IsActive
	}
	shift.UpdatedAt = time.Now()

	s.db.shifts[id] = shift
	return &shift, nil
}

func (s *ShiftStore) Delete(ctx context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.shifts[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.db.shifts, id)
	return nil
}
