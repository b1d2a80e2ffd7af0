package db

import (
	"time"
)

// User is an account that can swipe, match and chat.
//
// Likes is the remaining like allowance for non-premium users; it is
// never read when Premium is true. New accounts start with
// DefaultLikeAllowance.
type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Email        string    `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Premium      bool      `gorm:"not null;default:false"`
	Likes        int       `gorm:"not null;default:10"`
	Photo        string    `gorm:"size:255"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// DefaultLikeAllowance is the like quota granted at registration.
const DefaultLikeAllowance = 10

// Profile is a browsable card shown on the swipe screen. Each profile
// belongs to a user account (UserID) so that matches can pair two user
// ids; the card data itself is static seed content.
type Profile struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement"`
	UserID uint64 `gorm:"index;not null"`
	Name   string `gorm:"size:64;not null"`
	Age    int    `gorm:"not null"`
	Bio    string `gorm:"size:512"`
	Photo  string `gorm:"size:255"`
}

// Like records a single like action. Append-only; the same user may
// like the same profile any number of times and each row is rolled for
// a match independently.
type Like struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	FromUserID uint64    `gorm:"index;not null"`
	ProfileID  uint64    `gorm:"index;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// Match pairs two user ids. User1ID is the user whose like produced the
// match, User2ID is the owner of the liked profile. Immutable.
type Match struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	User1ID   uint64    `gorm:"index;not null"`
	User2ID   uint64    `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Message is one chat line inside a match. The autoincrement id doubles
// as the ordering key; rows are never edited or deleted.
type Message struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	MatchID   uint64    `gorm:"index;not null"`
	SenderID  uint64    `gorm:"not null"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
