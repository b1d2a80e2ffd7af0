package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/oggyb/sparkswipe/internal/db"
	apperr "github.com/oggyb/sparkswipe/internal/errors"
)

// MatchRepository provides data access methods for the Match model.
// Match rows are immutable once created.
type MatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new repository bound to the given DB connection.
func NewMatchRepository(database *gorm.DB) *MatchRepository {
	return &MatchRepository{db: database}
}

// Create inserts a match pairing two user ids.
func (r *MatchRepository) Create(ctx context.Context, user1ID, user2ID uint64) (*db.Match, error) {
	match := db.Match{
		User1ID: user1ID,
		User2ID: user2ID,
	}
	if err := r.db.WithContext(ctx).Create(&match).Error; err != nil {
		return nil, err
	}
	return &match, nil
}

// GetByID loads a match by primary key. Returns ErrMatchNotFound if absent.
func (r *MatchRepository) GetByID(ctx context.Context, id uint64) (*db.Match, error) {
	var match db.Match
	err := r.db.WithContext(ctx).First(&match, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// ListForUser returns every match where the user occupies either
// participant slot, oldest first.
func (r *MatchRepository) ListForUser(ctx context.Context, userID uint64) ([]db.Match, error) {
	var matches []db.Match
	err := r.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("id ASC").
		Find(&matches).Error
	return matches, err
}
