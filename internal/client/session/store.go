package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/amishiro/userportal/internal/client/models"
	"github.com/amishiro/userportal/internal/logging"
)

// authKey is the repository key holding the persisted session record.
const authKey = "auth"

// ErrNotAuthenticated is returned by Set for a user whose LoginCheck is
// false. A negative-check response must never reach the store.
var ErrNotAuthenticated = errors.New("session user must be authenticated")

// persistedState is the durable record layout: {"user": <SessionUser|null>}.
type persistedState struct {
	User *models.SessionUser `json:"user"`
}

// Store holds at most one authenticated user. All reads and writes go
// through it; every mutation is written through to the repository and then
// announced to subscribers. The UI drives it from a single goroutine, but a
// mutex keeps it safe for the gateway's unauthorized hook as well.
type Store struct {
	mu   sync.Mutex
	user *models.SessionUser
	repo Repository
	subs []func(*models.SessionUser)
	log  logging.Logger
}

func NewStore(repo Repository, log logging.Logger) *Store {
	return &Store{repo: repo, log: log}
}

// Load rehydrates the store from the repository. Call once at startup,
// before any view renders. A corrupt record is discarded rather than fatal:
// the user just has to log in again.
func (s *Store) Load(ctx context.Context) error {
	data, err := s.repo.Get(ctx, authKey)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if data == nil {
		return nil
	}

	var st persistedState
	if err := json.Unmarshal(data, &st); err != nil {
		s.log.Warn(ctx, "discarding unreadable session record", "error", err)
		return nil
	}
	if st.User != nil && !st.User.LoginCheck {
		s.log.Warn(ctx, "discarding persisted session with loginCheck=false")
		return nil
	}

	s.mu.Lock()
	s.user = st.User
	s.mu.Unlock()
	return nil
}

// Current returns a copy of the stored user, or nil when signed out.
func (s *Store) Current() *models.SessionUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Set stores user, overwriting any existing record, persists it, and
// notifies subscribers. Users with LoginCheck false are rejected.
func (s *Store) Set(ctx context.Context, user *models.SessionUser) error {
	if user == nil || !user.LoginCheck {
		return ErrNotAuthenticated
	}

	u := *user
	if err := s.persist(ctx, &u); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = &u
	subs := append([]func(*models.SessionUser){}, s.subs...)
	s.mu.Unlock()

	s.notify(subs, &u)
	return nil
}

// Clear removes the stored user, persists the empty record, and notifies
// subscribers with nil.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.persist(ctx, nil); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = nil
	subs := append([]func(*models.SessionUser){}, s.subs...)
	s.mu.Unlock()

	s.notify(subs, nil)
	return nil
}

// Subscribe registers fn to run after every mutation with the new state
// (nil on clear). Subscriptions last for the process lifetime.
func (s *Store) Subscribe(fn func(*models.SessionUser)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) persist(ctx context.Context, user *models.SessionUser) error {
	data, err := json.Marshal(persistedState{User: user})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.repo.Set(ctx, authKey, data); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (s *Store) notify(subs []func(*models.SessionUser), user *models.SessionUser) {
	for _, fn := range subs {
		var u *models.SessionUser
		if user != nil {
			cp := *user
			u = &cp
		}
		fn(u)
	}
}
