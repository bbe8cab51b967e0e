package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dailydiet/internal/model"
)

const (
	sessionKeyPrefix = "session:"
	activeKeyPrefix  = "user_session:"
)

// ErrSessionSuperseded is returned by Put when the user's active session
// is no longer the one being cached.
var ErrSessionSuperseded = errors.New("session superseded")

// SessionCache is the part of cache.Client the session store uses.
type SessionCache interface {
	Enabled() bool
	GetJSON(ctx context.Context, key string, dst interface{}) bool
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, bool)
	SetString(ctx context.Context, key, value string, ttl time.Duration) error
	SetStringNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, keys ...string)
}

// SessionStoreInterface caches session identifier to user lookups.
// The users table stays authoritative; a miss means "ask the database".
type SessionStoreInterface interface {
	// SetActive records sessionID as the user's only valid session.
	// An empty sessionID revokes every cached session of the user.
	SetActive(ctx context.Context, userID uuid.UUID, sessionID string) error
	Put(ctx context.Context, sessionID string, user *model.User) error
	Get(ctx context.Context, sessionID string) (*model.User, bool)
	Forget(ctx context.Context, sessionID string)
}

// SessionStore keeps resolved sessions in Redis.
//
// Two keys are involved: session:<id> holds the cached user and
// user_session:<userID> names the user's active session. A cached entry
// only resolves while the active key still names it.
type SessionStore struct {
	cache SessionCache
	ttl   time.Duration
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store. Entries expire after ttl.
func NewSessionStore(cache SessionCache, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{cache: cache, ttl: ttl}
}

// cachedUser is the subset of a user kept in Redis. No credentials.
type cachedUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func activeKey(userID uuid.UUID) string {
	return activeKeyPrefix + userID.String()
}

// SetActive points the user's active key at sessionID. Redis errors are
// returned: a stale active key would keep a replaced session alive.
func (s *SessionStore) SetActive(ctx context.Context, userID uuid.UUID, sessionID string) error {
	if !s.cache.Enabled() {
		return nil
	}
	if err := s.cache.SetString(ctx, activeKey(userID), sessionID, s.ttl); err != nil {
		return fmt.Errorf("set active session: %w", err)
	}
	return nil
}

// Put caches the user resolved for sessionID. The active key is only
// claimed when absent, so a lookup that raced a newer sign-in cannot
// reinstate its session.
func (s *SessionStore) Put(ctx context.Context, sessionID string, user *model.User) error {
	if sessionID == "" || user == nil || !s.cache.Enabled() {
		return nil
	}

	key := activeKey(user.ID)
	if _, err := s.cache.SetStringNX(ctx, key, sessionID, s.ttl); err != nil {
		return fmt.Errorf("claim active session: %w", err)
	}
	if active, ok := s.cache.GetString(ctx, key); !ok || active != sessionID {
		return ErrSessionSuperseded
	}

	return s.cache.SetJSON(ctx, sessionKeyPrefix+sessionID, cachedUser{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, s.ttl)
}

// Get returns the cached user for sessionID while it is the user's
// active session.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*model.User, bool) {
	if sessionID == "" {
		return nil, false
	}
	var cached cachedUser
	if !s.cache.GetJSON(ctx, sessionKeyPrefix+sessionID, &cached) {
		return nil, false
	}
	id, err := uuid.Parse(cached.ID)
	if err != nil {
		return nil, false
	}
	if active, ok := s.cache.GetString(ctx, activeKey(id)); !ok || active != sessionID {
		s.Forget(ctx, sessionID)
		return nil, false
	}

	sid := sessionID
	return &model.User{
		ID:        id,
		Name:      cached.Name,
		Email:     cached.Email,
		SessionID: &sid,
		CreatedAt: cached.CreatedAt,
	}, true
}

// Forget evicts sessionID. Failures are ignored; Get rejects entries
// that are not the active session anyway.
func (s *SessionStore) Forget(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}
	s.cache.Delete(ctx, sessionKeyPrefix+sessionID)
}
