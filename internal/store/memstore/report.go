package memstore

import (
	"context"
	"time"

	"mining-ops-api-server/internal/models"
	"mining-ops-api-server/internal/store"
)

type ReportStore struct {
	db *database
}

func (s *ReportStore) Create(ctx context.Context, r *models.Report) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, existing := range s.db.reports {
		if existing.ReportID == r.ReportID {
			return store.ErrConflict
		}
	}

	now := time.Now()
	r.ID = newID()
	r.CreatedAt = now
	r.UpdatedAt = now
	s.db.reports[r.ID.Hex()] = *r
	return nil
}

func (s *ReportStore) GetByID(ctx context.Context, id string) (*models.Report, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	report, ok := s.db.reports[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &report, nil
}

func (s *ReportStore) List(ctx context.Context, filter store.ReportFilter) ([]models.Report, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	reports := make([]models.Report, 0, len(s.db.reports))
	for _, r := range s.db.reports {
		if filter.Type != "" && r.Type != filter.Type {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if !filter.Created.Contains(r.CreatedAt) {
			continue
		}
		reports = append(reports, r)
	}
	byDateDesc(reports, func(r models.Report) int64 { return r.CreatedAt.UnixNano() })
	return reports, nil
}

func (s *ReportStore) Update(ctx context.Context, id string, upd store.ReportUpdate) (*models.Report, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	report, ok := s.db.reports[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	if upd.ReportID != nil {
		for key, existing := range s.db.reports {
			if key != id && existing.ReportID == *upd.ReportID {
				return nil, store.ErrConflict
			}
		}
		report.ReportID = *upd.ReportID
	}
	if upd.Title != nil {
		report.Title = *upd.Title
	}
	if upd.Type != nil {
		report.Type = *upd.Type
	}
	if upd.DateFrom != nil {
		report.DateFrom = *upd.DateFrom
	}
	if upd.DateTo != nil {
		report.DateTo = *upd.DateTo
	}
	if upd.Data != nil {
		report.Data = upd.Data
	}
	if upd.Status != nil {
		report.Status = *upd.Status
	}
	report.UpdatedAt = time.Now()

	s.db.reports[id] = report
	return &report, nil
}

func (s *ReportStore) Delete(ctx context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.reports[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.db.reports, id)
	return nil
}
