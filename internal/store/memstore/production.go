package memstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mining-ops-api-server/internal/models"
	"mining-ops-api-server/internal/store"
)

type ProductionStore struct {
	db *database
}

func (s *ProductionStore) Create(ctx context.Context, r *models.ProductionRecord) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, existing := range s.db.production {
		if existing.RecordID == r.RecordID {
			return store.ErrConflict
		}
	}

	now := time.Now()
	r.ID = newID()
	r.CreatedAt = now
	r.UpdatedAt = now
	s.db.production[r.ID.Hex()] = *r
	return nil
}

func (s *ProductionStore) GetByID(ctx context.Context, id string) (*models.ProductionRecord, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	record, ok := s.db.production[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &record, nil
}

func (s *ProductionStore) List(ctx context.Context, filter store.ProductionFilter) ([]models.ProductionRecord, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	records := make([]models.ProductionRecord, 0, len(s.db.production))
	for _, r := range s.db.production {
		if filter.Mineral != "" && r.Mineral.Hex() != filter.Mineral {
			continue
		}
		if filter.Shift != "" && r.Shift.Hex() != filter.Shift {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if !filter.Date.Contains(r.Date) {
			continue
		}
		records = append(records, r)
	}
	byDateDesc(records, func(r models.ProductionRecord) int64 { return r.Date.UnixNano() })
	return records, nil
}

func (s *ProductionStore) Update(ctx context.Context, id string, upd store.ProductionUpdate) (*models.ProductionRecord, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	record, ok := s.db.production[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	if upd.RecordID != nil {
		for key, existing := range s.db.production {
			if key != id && existing.RecordID == *upd.RecordID {
				return nil, store.ErrConflict
			}
		}
		record.RecordID = *upd.RecordID
	}
	if upd.Date != nil {
		record.Date = *upd.Date
	}
	if upd.Quantity != nil {
		record.Quantity = *upd.Quantity
	}
	if upd.Mineral != nil {
		mineralID, err := primitive.ObjectIDFromHex(*upd.Mineral)
		if err != nil {
			return nil, store.ErrNotFound
		}
		record.Mineral = mineralID
	}
	if upd.Location != nil {
		record.Location = *upd.Location
	}
	if upd.Shift != nil {
		shiftID, err := primitive.ObjectIDFromHex(*upd.Shift)
		if err != nil {
			return nil, store.ErrNotFound
		}
		record.Shift = shiftID
	}
	if upd.Supervisor != nil {
		supervisorID, err := primitive.ObjectIDFromHex(*upd.Supervisor)
		if err != nil {
			return nil, store.ErrNotFound
		}
		record.Supervisor = &supervisorID
	}
	if upd.FieldOperator != nil {
		operatorID, err := primitive.ObjectIDFromHex(*upd.FieldOperator)
		if err != nil {
			return nil, store.ErrNotFound
		}
		record.FieldOperator = operatorID
	}
	if upd.WorkingHours != nil {
		record.WorkingHours = *upd.WorkingHours
	}
	if upd.Remarks != nil {
		record.Remarks = *upd.Remarks
	}
	if upd.Status != nil {
		record.Status = *upd.Status
	}
	record.UpdatedAt = time.Now()

	s.db.production[id] = record
	return &record, nil
}

func (s *ProductionStore) Delete(ctx context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.production[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.db.production, id)
	return nil
}
