package chat

import (
	"context"
	"errors"

	"github.com/oggyb/sparkswipe/internal/app"
	"github.com/oggyb/sparkswipe/internal/db"
	apperr "github.com/oggyb/sparkswipe/internal/errors"
	"github.com/oggyb/sparkswipe/internal/repository"
)

// Service holds the match access gate and the per-match message channel.
type Service struct {
	appCtx   *app.AppContext
	matches  *repository.MatchRepository
	messages *repository.MessageRepository
}

// NewService creates the chat service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		matches:  repository.NewMatchRepository(appCtx.DB),
		messages: repository.NewMessageRepository(appCtx.DB),
	}
}

// AuthorizeMatchAccess reports whether userID may read or post in the
// given match's thread: true iff the user occupies either participant
// slot. A missing match is simply unauthorized, so callers leak nothing
// about which match ids exist.
func (s *Service) AuthorizeMatchAccess(ctx context.Context, userID, matchID uint64) (bool, error) {
	match, err := s.matches.GetByID(ctx, matchID)
	if errors.Is(err, apperr.ErrMatchNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperr.Map(err)
	}
	return match.User1ID == userID || match.User2ID == userID, nil
}

// AppendMessage adds a message to the match's thread and returns its
// ordering id. The caller must have passed AuthorizeMatchAccess first.
func (s *Service) AppendMessage(ctx context.Context, matchID, senderID uint64, text string) (uint64, error) {
	msg, err := s.messages.Create(ctx, matchID, senderID, text)
	if err != nil {
		return 0, apperr.Map(err)
	}
	s.appCtx.Logger.Debug("message appended", "match_id", matchID, "sender", senderID, "message_id", msg.ID)
	return msg.ID, nil
}

// ListMessages returns the match's full thread oldest-first. A snapshot
// read backing the client's polling loop; the caller must have passed
// AuthorizeMatchAccess first.
func (s *Service) ListMessages(ctx context.Context, matchID uint64) ([]db.Message, error) {
	messages, err := s.messages.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, apperr.Map(err)
	}
	return messages, nil
}

// ListMatches returns every match the user participates in.
func (s *Service) ListMatches(ctx context.Context, userID uint64) ([]db.Match, error) {
	matches, err := s.matches.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperr.Map(err)
	}
	return matches, nil
}
