package memstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"mining-ops-api-server/internal/models"
	"mining-ops-api-server/internal/store"
)

type IncidentStore struct {
	db *database
}

func (s *IncidentStore) Create(ctx context.Context, i *models.Incident) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, existing := range s.db.incidents {
		if existing.IncidentID == i.IncidentID {
			return store.ErrConflict
		}
	}

	now := time.Now()
	i.ID = newID()
	i.CreatedAt = now
	i.UpdatedAt = now
	s.db.incidents[i.ID.Hex()] = *i
	return nil
}

func (s *IncidentStore) GetByID(ctx context.Context, id string) (*models.Incident, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	incident, ok := s.db.incidents[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &incident, nil
}

func (s *IncidentStore) List(ctx context.Context, filter store.IncidentFilter) ([]models.Incident, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	incidents := make([]models.Incident, 0, len(s.db.incidents))
	for _, i := range s.db.incidents {
		if filter.Type != "" && i.Type != filter.Type {
			continue
		}
		if filter.Severity != "" && i.Severity != filter.Severity {
			continue
		}
		if filter.Status != "" && i.Status != filter.Status {
			continue
		}
		if !filter.Date.Contains(i.Date) {
			continue
		}
		incidents = append(incidents, i)
	}
	byDateDesc(incidents, func(i models.Incident) int64 { return i.Date.UnixNano() })
	return incidents, nil
}

func (s *IncidentStore) Update(ctx context.Context, id string, upd store.IncidentUpdate) (*models.Incident, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	incident, ok := s.db.incidents[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	if upd.IncidentID != nil {
		for key, existing := range s.db.incidents {
			if key != id && existing.IncidentID == *upd.IncidentID {
				return nil, store.ErrConflict
			}
		}
		incident.IncidentID = *upd.IncidentID
	}
	if upd.Title != nil {
		incident.Title = *upd.Title
	}
	if upd.Description != nil {
		incident.Description = *upd.Description
	}
	if upd.Type != nil {
		incident.Type = *upd.Type
	}
	if upd.Severity != nil {
		incident.Severity = *upd.Severity
	}
	if upd.Location != nil {
		incident.Location = *upd.Location
	}
	if upd.Date != nil {
		incident.Date = *upd.Date
	}
	if upd.Equipment != nil {
		equipmentID, err := primitive.ObjectIDFromHex(*upd.Equipment)
		if err != nil {
			return nil, store.ErrNotFound
		}
		incident.Equipment = &equipmentID
	}
	if upd.Status != nil {
		incident.Status = *upd.Status
	}
	if upd.ActionTaken != nil {
		incident.ActionTaken = *upd.ActionTaken
	}
	if upd.ResolvedBy != nil {
		resolverID, err := primitive.ObjectIDFromHex(*upd.ResolvedBy)
		if err != nil {
			return nil, store.ErrNotFound
		}
		incident.ResolvedBy = &resolverID
	}
	if upd.ResolvedDate != nil {
		d := *upd.ResolvedDate
		incident.ResolvedDate = &d
	}
	incident.UpdatedAt = time.Now()

	s.db.incidents[id] = incident
	return &incident, nil
}

func (s *IncidentStore) Delete(ctx context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.incidents[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.db.incidents, id)
	return nil
}

func (s *IncidentStore) AddPhoto(ctx context.Context, id string, photo models.Photo) (*models.Incident, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	incident, ok := s.db.incidents[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	photos := make([]models.Photo, len(incident.Photos), len(incident.Photos)+1)
	copy(photos, incident.Photos)
	incident.Photos = append(photos, photo)
	incident.UpdatedAt = time.Now()

	s.db.incidents[id] = incident
	return &incident, nil
}
