package memstore

import (
	"context"
	"sort"
	"time"

	"mining-ops-api-server/internal/models"
	"mining-ops-api-server/internal/store"
)

type MineralStore struct {
	db *database
}

func (s *MineralStore) Create(ctx context.Context, m *models.Mineral) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, existing := range s.db.minerals {
		if existing.MineralID == m.MineralID {
			return store.ErrConflict
		}
	}

	now := time.Now()
	m.ID = newID()
	m.CreatedAt = now
	m.UpdatedAt = now
	s.db.minerals[m.ID.Hex()] = *m
	return nil
}

func (s *MineralStore) GetByID(ctx context.Context, id string) (*models.Mineral, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	mineral, ok := s.db.minerals[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &mineral, nil
}

func (s *MineralStore) List(ctx context.Context) ([]models.Mineral, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	minerals := make([]models.Mineral, 0, len(s.db.minerals))
	for _, mineral := range s.db.minerals {
		minerals = append(minerals, mineral)
	}
	sort.SliceStable(minerals, func(i, j int) bool {
		return minerals[i].Name < minerals[j].Name
	})
	return minerals, nil
}

func (s *MineralStore) Update(ctx context.Context, id string, upd store.MineralUpdate) (*models.Mineral, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	mineral, ok := s.db.minerals[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	if upd.MineralID != nil {
		for key, existing := range s.db.minerals {
			if key != id && existing.MineralID == *upd.MineralID {
				return nil, store.ErrConflict
			}
		}
		mineral.MineralID = *upd.MineralID
	}
	if upd.Name != nil {
		mineral.Name = *upd.Name
	}
	if upd.Grade != nil {
		mineral.Grade = *upd.Grade
	}
	if upd.Description != nil {
		mineral.Description = *upd.Description
	}
	mineral.UpdatedAt = time.Now()

	s.db.minerals[id] = mineral
	return &mineral, nil
}

func (s *MineralStore) Delete(ctx context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.minerals[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.db.minerals, id)
	return nil
}
