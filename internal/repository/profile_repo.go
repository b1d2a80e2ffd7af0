package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/oggyb/sparkswipe/internal/db"
	apperr "github.com/oggyb/sparkswipe/internal/errors"
)

// ProfileRepository provides data access methods for the Profile model.
// Profiles are static seed data; only reads live here.
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new repository bound to the given DB connection.
func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: database}
}

// GetByID loads a profile by primary key. Returns ErrProfileNotFound if absent.
func (r *ProfileRepository) GetByID(ctx context.Context, id uint64) (*db.Profile, error) {
	var profile db.Profile
	err := r.db.WithContext(ctx).First(&profile, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Random returns one uniformly random profile for the swipe screen.
// Returns ErrProfileNotFound on an empty table.
func (r *ProfileRepository) Random(ctx context.Context) (*db.Profile, error) {
	var profile db.Profile
	order := "RAND()"
	if r.db.Dialector.Name() == "sqlite" {
		order = "RANDOM()"
	}
	err := r.db.WithContext(ctx).Order(order).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
