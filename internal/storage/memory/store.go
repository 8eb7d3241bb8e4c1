// Package memory is an in-process storage backend for local runs and tests.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aarthiksaathi/aarthik-be/internal/models"
	"github.com/aarthiksaathi/aarthik-be/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps users and profiles in maps guarded by a single mutex.
type Store struct {
	mu       sync.RWMutex
	nextID   int64
	users    map[int64]models.User
	profiles map[int64]models.Profile
	now      func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users:    make(map[int64]models.User),
		profiles: make(map[int64]models.Profile),
		now:      time.Now,
	}
}

// Close is a no-op.
func (s *Store) Close() {}

func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username || strings.EqualFold(u.Email, user.Email) {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = s.now().UTC()
	s.users[user.ID] = user
	return user, nil
}

func (s *Store) FindByUsername(_ context.Context, username string) (models.User, error) {
	return s.findUser(func(u models.User) bool { return u.Username == username })
}

func (s *Store) FindByEmail(_ context.Context, email string) (models.User, error) {
	return s.findUser(func(u models.User) bool { return strings.EqualFold(u.Email, email) })
}

func (s *Store) FindByUsernameOrEmail(_ context.Context, identifier string) (models.User, error) {
	return s.findUser(func(u models.User) bool {
		return u.Username == identifier || strings.EqualFold(u.Email, identifier)
	})
}

// findUser returns the lowest-id match so lookups are deterministic.
func (s *Store) findUser(match func(models.User) bool) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var found models.User
	for _, u := range s.users {
		if match(u) && (found.ID == 0 || u.ID < found.ID) {
			found = u
		}
	}
	if found.ID == 0 {
		return models.User{}, storage.ErrNotFound
	}
	return found, nil
}

func (s *Store) GetProfile(_ context.Context, userID int64) (models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return models.Profile{}, storage.ErrNotFound
	}
	return p, nil
}

func (s *Store) UpsertProfile(_ context.Context, userID int64, form models.ProfileForm) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return models.Profile{}, storage.ErrNotFound
	}
	now := s.now().UTC()
	p, ok := s.profiles[userID]
	if !ok {
		p = models.Profile{ID: uuid.NewString(), UserID: userID, CreatedAt: now}
	}
	form.Apply(&p)
	p.UpdatedAt = now
	s.profiles[userID] = p
	return p, nil
}
