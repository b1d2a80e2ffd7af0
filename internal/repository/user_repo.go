package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/oggyb/sparkswipe/internal/db"
	apperr "github.com/oggyb/sparkswipe/internal/errors"
)

// UserRepository provides data access methods for the User model.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository bound to the given DB connection.
func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{db: database}
}

// Create inserts a new user row.
//
// Behavior:
//   - A unique-constraint hit on email is returned as ErrDuplicateEmail;
//     the table gains no row in that case.
func (r *UserRepository) Create(ctx context.Context, user *db.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.ErrDuplicateEmail
	}
	return err
}

// GetByID loads a user by primary key. Returns ErrUserNotFound if absent.
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*db.User, error) {
	var user db.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail loads a user by email. Returns ErrUserNotFound if absent.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*db.User, error) {
	var user db.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DecrementLikes consumes one unit of the like allowance.
//
// Behavior:
//   - Single conditional UPDATE (`likes = likes - 1 WHERE id = ? AND
//     likes > 0`), so concurrent requests from the same user cannot
//     drive the counter negative.
//   - Returns (true, remaining) when a unit was consumed, (false, 0)
//     when the counter was already at zero.
func (r *UserRepository) DecrementLikes(ctx context.Context, id uint64) (bool, int, error) {
	res := r.db.WithContext(ctx).
		Model(&db.User{}).
		Where("id = ? AND likes > 0", id).
		UpdateColumn("likes", gorm.Expr("likes - 1"))
	if res.Error != nil {
		return false, 0, res.Error
	}
	if res.RowsAffected == 0 {
		return false, 0, nil
	}

	var user db.User
	if err := r.db.WithContext(ctx).Select("likes").First(&user, id).Error; err != nil {
		return true, 0, err
	}
	return true, user.Likes, nil
}

// SetPremium flips the premium flag for the given user.
func (r *UserRepository) SetPremium(ctx context.Context, id uint64, premium bool) error {
	res := r.db.WithContext(ctx).
		Model(&db.User{}).
		Where("id = ?", id).
		Update("premium", premium)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrUserNotFound
	}
	return nil
}

// SetPhoto records the uploaded photo filename for the given user.
func (r *UserRepository) SetPhoto(ctx context.Context, id uint64, filename string) error {
	res := r.db.WithContext(ctx).
		Model(&db.User{}).
		Where("id = ?", id).
		Update("photo", filename)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrUserNotFound
	}
	return nil
}
