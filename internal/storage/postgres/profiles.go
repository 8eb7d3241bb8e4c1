package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aarthiksaathi/aarthik-be/internal/models"
	"github.com/aarthiksaathi/aarthik-be/internal/storage"
)

const profileColumns = `id::text, user_id, name, age, gender, state, income, occupation, caste, category, created_at, updated_at`

// GetProfile fetches the profile owned by userID.
func (s *Store) GetProfile(ctx context.Context, userID int64) (models.Profile, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)
	p, err := scanProfile(row)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return models.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, err
}

// UpsertProfile inserts or replaces the profile owned by userID in one statement.
func (s *Store) UpsertProfile(ctx context.Context, userID int64, form models.ProfileForm) (models.Profile, error) {
	const query = `
		INSERT INTO profiles (id, user_id, name, age, gender, state, income, occupation, caste, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			state = EXCLUDED.state,
			income = EXCLUDED.income,
			occupation = EXCLUDED.occupation,
			caste = EXCLUDED.caste,
			category = EXCLUDED.category,
			updated_at = NOW()
		RETURNING ` + profileColumns
	row := s.pool.QueryRow(ctx, query,
		uuid.New(), userID, form.Name, form.Age, form.Gender, form.State,
		form.Income, form.Occupation, form.Caste, form.Category,
	)
	p, err := scanProfile(row)
	if err != nil {
		if isForeignKeyViolation(err) {
			return models.Profile{}, fmt.Errorf("upsert profile for user %d: %w", userID, storage.ErrNotFound)
		}
		return models.Profile{}, fmt.Errorf("upsert profile: %w", err)
	}
	return p, nil
}

func scanProfile(row pgx.Row) (models.Profile, error) {
	var p models.Profile
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Age, &p.Gender, &p.State,
		&p.Income, &p.Occupation, &p.Caste, &p.Category, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Profile{}, storage.ErrNotFound
		}
		return models.Profile{}, err
	}
	return p, nil
}
