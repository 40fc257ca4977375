// internal/client/session.go
package client

import (
	"sync"
	"time"

	"github.com/javajoker/farmfresh/internal/models"
)

// Session holds the bearer token for one signed-in user. It is set on login and
// cleared on logout or when the server rejects the token.
type Session struct {
	mu    sync.RWMutex
	token string
	user  models.User
	store SessionStore
}

// NewSession restores a previously saved session from store, if any.
// A nil store keeps the session in memory only.
func NewSession(store SessionStore) (*Session, error) {
	if store == nil {
		store = NewMemorySessionStore()
	}

	s := &Session{store: store}
	data, err := store.Load()
	if err != nil {
		return s, err
	}
	if data != nil {
		s.token = data.Token
		s.user = models.User{
			BaseModel: models.BaseModel{ID: data.UserID},
			Name:      data.Name,
			Email:     data.Email,
			Role:      data.Role,
		}
	}
	return s, nil
}

func (s *Session) Set(token string, user models.User) error {
	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()

	return s.store.Save(&SessionData{
		Token:   token,
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Role:    user.Role,
		SavedAt: time.Now().UTC(),
	})
}

func (s *Session) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.user = models.User{}
	s.mu.Unlock()

	return s.store.Clear()
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}
