package swipe

import (
	"context"
	"math/rand"

	"github.com/oggyb/sparkswipe/internal/app"
	"github.com/oggyb/sparkswipe/internal/db"
	apperr "github.com/oggyb/sparkswipe/internal/errors"
	"github.com/oggyb/sparkswipe/internal/repository"
)

// Outcome of a like attempt, in wire form.
type Outcome string

const (
	OutcomeLiked   Outcome = "liked"
	OutcomeMatched Outcome = "match"
)

// Match odds: a uniform draw in [1, matchDrawMax] at or below
// matchThreshold creates a match. Exactly 30%.
const (
	matchThreshold = 30
	matchDrawMax   = 100
)

// LikeResult carries the outcome of a successful like attempt.
// RemainingLikes is the post-decrement counter; for premium users it is
// the untouched stored value.
type LikeResult struct {
	Outcome        Outcome
	RemainingLikes int
	MatchID        uint64 // set when Outcome == OutcomeMatched
}

// Service implements the like/match/quota engine and the swipe-screen
// profile feed.
type Service struct {
	appCtx   *app.AppContext
	users    *repository.UserRepository
	profiles *repository.ProfileRepository
	likes    *repository.LikeRepository
	matches  *repository.MatchRepository

	// draw returns a uniform integer in [1, matchDrawMax]. Injectable
	// so tests can force specific rolls.
	draw func() int
}

// NewService creates the swipe service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		users:    repository.NewUserRepository(appCtx.DB),
		profiles: repository.NewProfileRepository(appCtx.DB),
		likes:    repository.NewLikeRepository(appCtx.DB),
		matches:  repository.NewMatchRepository(appCtx.DB),
		draw:     func() int { return rand.Intn(matchDrawMax) + 1 },
	}
}

// WithDraw overrides the random draw source. Test hook.
func (s *Service) WithDraw(draw func() int) *Service {
	s.draw = draw
	return s
}

// AttemptLike runs the like/match/quota rules for actingUserID liking
// targetProfileID.
//
// Behavior:
//  1. Loads the acting user; ErrUserNotFound if absent.
//  2. Non-premium with an exhausted allowance → ErrQuotaExhausted, and
//     nothing is written (strict no-op).
//  3. Non-premium → one allowance unit is consumed via an atomic
//     conditional decrement; losing the race to a concurrent request
//     also yields ErrQuotaExhausted with no further writes.
//  4. The like row is appended. Repeat likes of the same profile are
//     allowed and each one is rolled independently.
//  5. A uniform draw in [1,100] at or below 30 resolves the profile's
//     owning user and creates a match.
//
// Each mutation commits on its own; there is no rollback once the
// decrement has landed. A failure between steps leaves the earlier
// writes visible.
func (s *Service) AttemptLike(ctx context.Context, actingUserID, targetProfileID uint64) (*LikeResult, error) {
	log := s.appCtx.Logger

	user, err := s.users.GetByID(ctx, actingUserID)
	if err != nil {
		return nil, apperr.Map(err)
	}

	remaining := user.Likes
	if !user.Premium {
		if user.Likes <= 0 {
			return nil, apperr.ErrQuotaExhausted
		}
		consumed, left, err := s.users.DecrementLikes(ctx, actingUserID)
		if err != nil {
			return nil, apperr.Map(err)
		}
		if !consumed {
			// concurrent request drained the last unit first
			return nil, apperr.ErrQuotaExhausted
		}
		remaining = left
	}

	if _, err := s.likes.Create(ctx, actingUserID, targetProfileID); err != nil {
		return nil, apperr.Map(err)
	}

	if s.draw() <= matchThreshold {
		profile, err := s.profiles.GetByID(ctx, targetProfileID)
		if err != nil {
			return nil, apperr.Map(err)
		}
		match, err := s.matches.Create(ctx, actingUserID, profile.UserID)
		if err != nil {
			return nil, apperr.Map(err)
		}
		log.Info("match created", "user", actingUserID, "profile", targetProfileID, "match_id", match.ID)
		return &LikeResult{Outcome: OutcomeMatched, RemainingLikes: remaining, MatchID: match.ID}, nil
	}

	log.Debug("like recorded", "user", actingUserID, "profile", targetProfileID, "remaining", remaining)
	return &LikeResult{Outcome: OutcomeLiked, RemainingLikes: remaining}, nil
}

// RandomProfile returns one random profile card for the swipe screen.
func (s *Service) RandomProfile(ctx context.Context) (*db.Profile, error) {
	profile, err := s.profiles.Random(ctx)
	if err != nil {
		return nil, apperr.Map(err)
	}
	return profile, nil
}
