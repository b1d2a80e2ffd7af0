package account

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/oggyb/sparkswipe/internal/app"
	"github.com/oggyb/sparkswipe/internal/db"
	apperr "github.com/oggyb/sparkswipe/internal/errors"
	"github.com/oggyb/sparkswipe/internal/repository"
)

// Service implements registration, login and account mutations.
type Service struct {
	appCtx *app.AppContext
	users  *repository.UserRepository
}

// NewService creates the account service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx: appCtx,
		users:  repository.NewUserRepository(appCtx.DB),
	}
}

// Register creates a new account with the default like allowance.
// photo may be empty. Returns ErrDuplicateEmail when the address is
// already taken; the users table gains no row in that case.
func (s *Service) Register(ctx context.Context, email, password, photo string) (*db.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperr.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Map(err)
	}

	user := &db.User{
		Email:        email,
		PasswordHash: string(hash),
		Likes:        db.DefaultLikeAllowance,
		Photo:        photo,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperr.Map(err)
	}

	s.appCtx.Logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login checks the credentials and returns the matching user.
// Unknown email and wrong password both come back as
// ErrInvalidCredentials; callers cannot tell the two apart.
func (s *Service) Login(ctx context.Context, email, password string) (*db.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, apperr.ErrUserNotFound) {
		// burn a comparison anyway so both failure paths cost the same
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$000000000000000000000uGfLuLOYITUpbVScRO6g3K9Z5JC1kGzm"), []byte(password))
		return nil, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, apperr.Map(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperr.ErrInvalidCredentials
	}
	return user, nil
}

// GetUser loads the account behind the profile page.
func (s *Service) GetUser(ctx context.Context, userID uint64) (*db.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperr.Map(err)
	}
	return user, nil
}

// ActivatePremium lifts the like quota for the given user.
func (s *Service) ActivatePremium(ctx context.Context, userID uint64) error {
	if err := s.users.SetPremium(ctx, userID, true); err != nil {
		return apperr.Map(err)
	}
	s.appCtx.Logger.Info("premium activated", "user_id", userID)
	return nil
}

// SetPhoto records the stored filename of an uploaded profile photo.
func (s *Service) SetPhoto(ctx context.Context, userID uint64, filename string) error {
	if err := s.users.SetPhoto(ctx, userID, filename); err != nil {
		return apperr.Map(err)
	}
	return nil
}
