package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/oggyb/sparkswipe/internal/db"
)

// LikeRepository provides data access methods for the Like model.
// Likes are append-only; there is deliberately no uniqueness constraint,
// a user may like the same profile repeatedly.
type LikeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new repository bound to the given DB connection.
func NewLikeRepository(database *gorm.DB) *LikeRepository {
	return &LikeRepository{db: database}
}

// Create appends a like row for (fromUserID, profileID).
func (r *LikeRepository) Create(ctx context.Context, fromUserID, profileID uint64) (*db.Like, error) {
	like := db.Like{
		FromUserID: fromUserID,
		ProfileID:  profileID,
	}
	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

// CountByUser returns how many likes the user has recorded in total.
func (r *LikeRepository) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Like{}).
		Where("from_user_id = ?", userID).
		Count(&count).Error
	return count, err
}
