package swipe_test

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
	apperr "github.com/oggyb/sparkswipe/internal/errors"
	"github.com/oggyb/sparkswipe/internal/service/swipe"
	"github.com/oggyb/sparkswipe/internal/session"
)

//
// Test helpers
//

// setupService spins up an in-memory SQLite DB, applies migrations,
// starts a miniredis, and wires everything into a swipe.Service.
//
// Each test gets its own isolated DB + Redis.
func setupService(t *testing.T) (*swipe.Service, *gorm.DB) {
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
	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // discard logs in tests

	appCtx := app.New(gdb, redisCache, sessions, logger)
	return swipe.NewService(appCtx), gdb
}

// seedUserAndProfile inserts a swiping user plus one profile with its
// owning account, and returns (userID, profileID, ownerID).
func seedUserAndProfile(t *testing.T, gdb *gorm.DB, premium bool, likes int) (uint64, uint64, uint64) {
	t.Helper()

	user := db.User{Email: "swiper@test.com", PasswordHash: "x", Premium: premium, Likes: likes}
	require.NoError(t, gdb.Create(&user).Error)

	owner := db.User{Email: "owner@test.com", PasswordHash: "x", Likes: db.DefaultLikeAllowance}
	require.NoError(t, gdb.Create(&owner).Error)

	profile := db.Profile{UserID: owner.ID, Name: "Valeria", Age: 23, Bio: "café"}
	require.NoError(t, gdb.Create(&profile).Error)

	return user.ID, profile.ID, owner.ID
}

func fixedDraw(n int) func() int { return func() int { return n } }

func countRows(t *testing.T, gdb *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gdb.Model(model).Count(&n).Error)
	return n
}

//
// Tests
//

// TestAttemptLikeDecrementsQuota walks a non-premium allowance down to
// zero and checks the counter never goes negative.
func TestAttemptLikeDecrementsQuota(t *testing.T) {
	ctx := context.Background()
	svc, gdb := setupService(t)
	userID, profileID, _ := seedUserAndProfile(t, gdb, false, 3)
	svc.WithDraw(fixedDraw(99)) // never match

	for want := 2; want >= 0; want-- {
		res, err := svc.AttemptLike(ctx, userID, profileID)
		require.NoError(t, err)
		assert.Equal(t, swipe.OutcomeLiked, res.Outcome)
		assert.Equal(t, want, res.RemainingLikes)
	}

	// allowance is spent now
	_, err := svc.AttemptLike(ctx, userID, profileID)
	require.ErrorIs(t, err, apperr.ErrQuotaExhausted)

	var user db.User
	require.NoError(t, gdb.First(&user, userID).Error)
	assert.Equal(t, 0, user.Likes)
	assert.EqualValues(t, 3, countRows(t, gdb, &db.Like{}))
	assert.EqualValues(t, 0, countRows(t, gdb, &db.Match{}))
}

// TestAttemptLikeQuotaExhaustedIsNoOp checks the hard rule: an
// exhausted non-premium user mutates nothing at all.
func TestAttemptLikeQuotaExhaustedIsNoOp(t *testing.T) {
	ctx := context.Background()
	svc, gdb := setupService(t)
	userID, profileID, _ := seedUserAndProfile(t, gdb, false, 0)
	svc.WithDraw(fixedDraw(1)) // would match if it ever got that far

	_, err := svc.AttemptLike(ctx, userID, profileID)
	require.ErrorIs(t, err, apperr.ErrQuotaExhausted)

	var user db.User
	require.NoError(t, gdb.First(&user, userID).Error)
	assert.Equal(t, 0, user.Likes)
	assert.EqualValues(t, 0, countRows(t, gdb, &db.Like{}))
	assert.EqualValues(t, 0, countRows(t, gdb, &db.Match{}))
}

// TestAttemptLikeMatchBoundary: a draw of exactly 30 matches, 31 does not.
func TestAttemptLikeMatchBoundary(t *testing.T) {
	ctx := context.Background()
	svc, gdb := setupService(t)
	userID, profileID, ownerID := seedUserAndProfile(t, gdb, false, 10)

	svc.WithDraw(fixedDraw(30))
	res, err := svc.AttemptLike(ctx, userID, profileID)
	require.NoError(t, err)
	assert.Equal(t, swipe.OutcomeMatched, res.Outcome)
	require.NotZero(t, res.MatchID)

	// the match pairs two user ids, the profile owner on the second slot
	var match db.Match
	require.NoError(t, gdb.First(&match, res.MatchID).Error)
	assert.Equal(t, userID, match.User1ID)
	assert.Equal(t, ownerID, match.User2ID)

	svc.WithDraw(fixedDraw(31))
	res, err = svc.AttemptLike(ctx, userID, profileID)
	require.NoError(t, err)
	assert.Equal(t, swipe.OutcomeLiked, res.Outcome)
	assert.EqualValues(t, 1, countRows(t, gdb, &db.Match{}))
}

// TestAttemptLikeScenarioSingleAllowance: likes=1, forced draw 50 →
// Liked with likes=0, one like row, no match; the second attempt is a
// strict no-op.
func TestAttemptLikeScenarioSingleAllowance(t *testing.T) {
	ctx := context.Background()
	svc, gdb := setupService(t)
	userID, profileID, _ := seedUserAndProfile(t, gdb, false, 1)
	svc.WithDraw(fixedDraw(50))

	res, err := svc.AttemptLike(ctx, userID, profileID)
	require.NoError(t, err)
	assert.Equal(t, swipe.OutcomeLiked, res.Outcome)
	assert.Equal(t, 0, res.RemainingLikes)
	assert.EqualValues(t, 1, countRows(t, gdb, &db.Like{}))
	assert.EqualValues(t, 0, countRows(t, gdb, &db.Match{}))

	_, err = svc.AttemptLike(ctx, userID, profileID)
	require.ErrorIs(t, err, apperr.ErrQuotaExhausted)
	assert.EqualValues(t, 1, countRows(t, gdb, &db.Like{}))
	assert.EqualValues(t, 0, countRows(t, gdb, &db.Match{}))
}

// TestAttemptLikePremiumIgnoresQuota: premium likes are never charged;
// draws 10 and 99 produce Matched then Liked and exactly one match row.
func TestAttemptLikePremiumIgnoresQuota(t *testing.T) {
	ctx := context.Background()
	svc, gdb := setupService(t)
	userID, profileID, _ := seedUserAndProfile(t, gdb, true, 7)

	svc.WithDraw(fixedDraw(10))
	res, err := svc.AttemptLike(ctx, userID, profileID)
	require.NoError(t, err)
	assert.Equal(t, swipe.OutcomeMatched, res.Outcome)
	assert.Equal(t, 7, res.RemainingLikes)

	svc.WithDraw(fixedDraw(99))
	res, err = svc.AttemptLike(ctx, userID, profileID)
	require.NoError(t, err)
	assert.Equal(t, swipe.OutcomeLiked, res.Outcome)
	assert.Equal(t, 7, res.RemainingLikes)

	var user db.User
	require.NoError(t, gdb.First(&user, userID).Error)
	assert.Equal(t, 7, user.Likes)
	assert.EqualValues(t, 1, countRows(t, gdb, &db.Match{}))
}

// TestAttemptLikeRepeatSameProfile: no uniqueness constraint, every
// repeat like lands as its own row.
func TestAttemptLikeRepeatSameProfile(t *testing.T) {
	ctx := context.Background()
	svc, gdb := setupService(t)
	userID, profileID, _ := seedUserAndProfile(t, gdb, true, 0)
	svc.WithDraw(fixedDraw(99))

	for i := 0; i < 4; i++ {
		_, err := svc.AttemptLike(ctx, userID, profileID)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 4, countRows(t, gdb, &db.Like{}))
}

func TestAttemptLikeUnknownUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	_, err := svc.AttemptLike(ctx, 4242, 1)
	require.ErrorIs(t, err, apperr.ErrUserNotFound)
}

// TestMatchRateConverges runs the engine with the production draw
// source and checks the matched fraction lands near 30%.
func TestMatchRateConverges(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping statistical convergence test in short mode")
	}

	ctx := context.Background()
	svc, gdb := setupService(t)
	userID, profileID, _ := seedUserAndProfile(t, gdb, true, 0) // premium, no quota in the way

	const trials = 100_000
	matched := 0
	for i := 0; i < trials; i++ {
		res, err := svc.AttemptLike(ctx, userID, profileID)
		require.NoError(t, err)
		if res.Outcome == swipe.OutcomeMatched {
			matched++
		}
	}

	rate := float64(matched) / float64(trials)
	assert.InDelta(t, 0.30, rate, 0.01, "match rate %f drifted from 30%%", rate)
}

func TestRandomProfile(t *testing.T) {
	ctx := context.Background()
	svc, gdb := setupService(t)
	_, profileID, _ := seedUserAndProfile(t, gdb, false, 1)

	profile, err := svc.RandomProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, profileID, profile.ID)
}

func TestRandomProfileEmptyTable(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	_, err := svc.RandomProfile(ctx)
	require.ErrorIs(t, err, apperr.ErrProfileNotFound)
}
