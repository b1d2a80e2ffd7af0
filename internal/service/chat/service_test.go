package chat_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/oggyb/sparkswipe/internal/app"
	"github.com/oggyb/sparkswipe/internal/cache"
	"github.com/oggyb/sparkswipe/internal/config"
	"github.com/oggyb/sparkswipe/internal/db"
	"github.com/oggyb/sparkswipe/internal/service/chat"
	"github.com/oggyb/sparkswipe/internal/session"
)

func setupService(t *testing.T) (*chat.Service, *gorm.DB) {
	t.Helper()

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()

	redisCache := cache.NewRedisCache(cfg)
	sessions := session.NewStore(redisCache, time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	appCtx := app.New(gdb, redisCache, sessions, logger)
	return chat.NewService(appCtx), gdb
}

// seedMatch inserts one match between users 1 and 2 and returns its id.
func seedMatch(t *testing.T, gdb *gorm.DB) uint64 {
	t.Helper()
	match := db.Match{User1ID: 1, User2ID: 2}
	require.NoError(t, gdb.Create(&match).Error)
	return match.ID
}

// TestAuthorizeMatchAccess covers both participant slots, a stranger,
// and a match id that does not exist.
func TestAuthorizeMatchAccess(t *testing.T) {
	ctx := context.Background()
	svc, gdb := setupService(t)
	matchID := seedMatch(t, gdb)

	for _, userID := range []uint64{1, 2} {
		ok, err := svc.AuthorizeMatchAccess(ctx, userID, matchID)
		require.NoError(t, err)
		assert.True(t, ok, "participant %d should be allowed", userID)
	}

	ok, err := svc.AuthorizeMatchAccess(ctx, 3, matchID)
	require.NoError(t, err)
	assert.False(t, ok, "third party must be rejected")

	// a missing match is indistinguishable from a foreign one
	ok, err = svc.AuthorizeMatchAccess(ctx, 1, matchID+100)
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestMessagesOrderedAndIdempotent: messages come back oldest first and
// repeated polls with no intervening append return identical results.
func TestMessagesOrderedAndIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, gdb := setupService(t)
	matchID := seedMatch(t, gdb)

	texts := []string{"hola", "¿cómo estás?", "bien :)"}
	senders := []uint64{1, 2, 1}
	var lastID uint64
	for i, text := range texts {
		id, err := svc.AppendMessage(ctx, matchID, senders[i], text)
		require.NoError(t, err)
		assert.Greater(t, id, lastID, "ordering ids must be strictly increasing")
		lastID = id
	}

	first, err := svc.ListMessages(ctx, matchID)
	require.NoError(t, err)
	require.Len(t, first, 3)
	for i, m := range first {
		assert.Equal(t, senders[i], m.SenderID)
		assert.Equal(t, texts[i], m.Text)
		if i > 0 {
			assert.Greater(t, m.ID, first[i-1].ID)
		}
	}

	second, err := svc.ListMessages(ctx, matchID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// TestListMessagesScopedToMatch: threads never bleed across matches.
func TestListMessagesScopedToMatch(t *testing.T) {
	ctx := context.Background()
	svc, gdb := setupService(t)
	matchID := seedMatch(t, gdb)

	other := db.Match{User1ID: 3, User2ID: 4}
	require.NoError(t, gdb.Create(&other).Error)

	_, err := svc.AppendMessage(ctx, matchID, 1, "ours")
	require.NoError(t, err)
	_, err = svc.AppendMessage(ctx, other.ID, 3, "theirs")
	require.NoError(t, err)

	msgs, err := svc.ListMessages(ctx, matchID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "ours", msgs[0].Text)
}

func TestListMatchesEitherSlot(t *testing.T) {
	ctx := context.Background()
	svc, gdb := setupService(t)

	require.NoError(t, gdb.Create(&db.Match{User1ID: 1, User2ID: 2}).Error)
	require.NoError(t, gdb.Create(&db.Match{User1ID: 3, User2ID: 1}).Error)
	require.NoError(t, gdb.Create(&db.Match{User1ID: 3, User2ID: 4}).Error)

	matches, err := svc.ListMatches(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	matches, err = svc.ListMatches(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, matches, 0)
}
