package storage

import (
	"context"
	"errors"

	"github.com/aarthiksaathi/aarthik-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures persistence operations needed by handlers.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByUsernameOrEmail(ctx context.Context, identifier string) (models.User, error)
}

// ProfileStore persists the single profile each user owns.
type ProfileStore interface {
	// GetProfile returns ErrNotFound when the user has not onboarded yet.
	GetProfile(ctx context.Context, userID int64) (models.Profile, error)
	// UpsertProfile creates the profile on first save and replaces its
	// editable fields afterwards. ID and CreatedAt survive replacement.
	UpsertProfile(ctx context.Context, userID int64, form models.ProfileForm) (models.Profile, error)
}

// Store is everything the HTTP layer needs from persistence.
type Store interface {
	UserStore
	ProfileStore
	Close()
}
