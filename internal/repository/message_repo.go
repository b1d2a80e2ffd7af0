package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/oggyb/sparkswipe/internal/db"
)

// MessageRepository provides data access methods for the Message model.
// Messages are append-only and ordered by their autoincrement id; no
// update or delete path exists.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new repository bound to the given DB connection.
func NewMessageRepository(database *gorm.DB) *MessageRepository {
	return &MessageRepository{db: database}
}

// Create appends a message to a match's thread and returns the row with
// its assigned ordering id.
func (r *MessageRepository) Create(ctx context.Context, matchID, senderID uint64, text string) (*db.Message, error) {
	msg := db.Message{
		MatchID:  matchID,
		SenderID: senderID,
		Text:     text,
	}
	if err := r.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListByMatch returns the full thread for a match, oldest first.
// A snapshot read: repeated calls with no intervening append return
// identical results.
func (r *MessageRepository) ListByMatch(ctx context.Context, matchID uint64) ([]db.Message, error) {
	var messages []db.Message
	err := r.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("id ASC").
		Find(&messages).Error
	return messages, err
}
