package memstore

import (
	"context"
	"sort"
	"time"

	"mining-ops-api-server/internal/models"
	"mining-ops-api-server/internal/store"
)

type UserStore struct {
	db *database
}

func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u.Email = lower(u.Email)
	for _, existing := range s.db.users {
		if existing.UserID == u.UserID || existing.Email == u.Email {
			return store.ErrConflict
		}
	}

	now := time.Now()
	u.ID = newID()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.db.users[u.ID.Hex()] = *u
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	user, ok := s.db.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &user, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	email = lower(email)
	for _, user := range s.db.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	users := make([]models.User, 0, len(s.db.users))
	for _, user := range s.db.users {
		users = append(users, user)
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (s *UserStore) Update(ctx context.Context, id string, upd store.UserUpdate) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	user, ok := s.db.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	if upd.Email != nil {
		email := lower(*upd.Email)
		for key, existing := range s.db.users {
			if key != id && existing.Email == email {
				return nil, store.ErrConflict
			}
		}
		user.Email = email
	}
	if upd.UserName != nil {
		user.UserName = *upd.UserName
	}
	if upd.Role != nil {
		user.Role = *upd.Role
	}
	if upd.Password != nil {
		user.Password = *upd.Password
	}
	if upd.IsActive != nil {
		user.IsActive = *upd.IsActive
	}
	user.UpdatedAt = time.Now()

	s.db.users[id] = user
	return &user, nil
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.db.users, id)
	return nil
}
