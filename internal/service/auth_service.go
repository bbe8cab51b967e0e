package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"dailydiet/internal/auth"
	apperrors "dailydiet/internal/errors"
	"dailydiet/internal/metrics"
	"dailydiet/internal/model"
	"dailydiet/internal/repository"
)

const bcryptCost = 10

// AuthService handles sign-up, sign-in and session resolution.
type AuthService interface {
	SignUp(ctx context.Context, name, email, password string) (*model.User, error)
	SignIn(ctx context.Context, email, password string) (sessionID string, user *model.User, err error)
	SignOut(ctx context.Context, user *model.User) error
	Authenticate(ctx context.Context, sessionID string) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	sessions auth.SessionStoreInterface
	log      logrus.FieldLogger
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, sessions auth.SessionStoreInterface, log logrus.FieldLogger) AuthService {
	return &authService{
		userRepo: userRepo,
		sessions: sessions,
		log:      log,
	}
}

// SignUp creates a user with a hashed password. No session is issued;
// the caller signs in afterwards.
func (s *authService) SignUp(ctx context.Context, name, email, password string) (*model.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	// the unique email index decides, so concurrent sign-ups cannot both win
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.WithField("user_id", user.ID).Info("user signed up")
	return user, nil
}

// SignIn verifies credentials and replaces the user's session identifier.
// Any previously issued session stops resolving.
func (s *authService) SignIn(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrUserNotFound
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidPassword
	}

	sessionID := auth.NewSessionID()
	// The cache moves to the new session before the row does, so a lookup
	// of the old session racing this sign-in cannot be cached again.
	if err := s.sessions.SetActive(ctx, user.ID, sessionID); err != nil {
		return "", nil, fmt.Errorf("activate session: %w", err)
	}
	if err := s.userRepo.UpdateSessionID(ctx, user.ID, &sessionID); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	if user.SessionID != nil {
		s.sessions.Forget(ctx, *user.SessionID)
	}
	user.SessionID = &sessionID
	s.cacheSession(ctx, sessionID, user)

	s.log.WithField("user_id", user.ID).Info("user signed in")
	return sessionID, user, nil
}

// SignOut clears the user's session identifier.
func (s *authService) SignOut(ctx context.Context, user *model.User) error {
	if user == nil {
		return apperrors.ErrUnauthorized
	}
	if err := s.sessions.SetActive(ctx, user.ID, ""); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	if err := s.userRepo.UpdateSessionID(ctx, user.ID, nil); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if user.SessionID != nil {
		s.sessions.Forget(ctx, *user.SessionID)
	}

	s.log.WithField("user_id", user.ID).Info("user signed out")
	return nil
}

// Authenticate resolves a session identifier to its user.
func (s *authService) Authenticate(ctx context.Context, sessionID string) (*model.User, error) {
	if sessionID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	if user, ok := s.sessions.Get(ctx, sessionID); ok {
		metrics.RecordSessionLookup(metrics.SessionFromCache)
		return user, nil
	}

	user, err := s.userRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.RecordSessionLookup(metrics.SessionUnknown)
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	metrics.RecordSessionLookup(metrics.SessionFromDatabase)
	s.cacheSession(ctx, sessionID, user)
	return user, nil
}

// cacheSession stores the session in the cache. The database stays
// authoritative, so a failed write only costs a lookup later.
func (s *authService) cacheSession(ctx context.Context, sessionID string, user *model.User) {
	if err := s.sessions.Put(ctx, sessionID, user); err != nil {
		s.log.WithError(err).WithField("user_id", user.ID).Debug("session not cached")
	}
}
