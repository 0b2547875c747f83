package services

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/sunshinej01/second-hand/internal/models"
	"github.com/sunshinej01/second-hand/internal/remote"
)

// SessionEvent describes an auth state change delivered to subscribers.
type SessionEvent struct {
	Event string          `json:"event"`
	User  *models.AuthUser `json:"user,omitempty"`
}

// SessionService wraps the backend's auth endpoints and tracks the current
// session in memory, notifying subscribers on every state change.
type SessionService struct {
	remote *remote.Client

	mu      sync.RWMutex
	token   string
	user    *models.AuthUser
	profile *models.Profile
	subs    map[string]func(SessionEvent)
}

func NewSessionService(rc *remote.Client) *SessionService {
	return &SessionService{
		remote: rc,
		subs:   make(map[string]func(SessionEvent)),
	}
}

// SignUp registers a user. The backend provisions the profile row from the
// signup metadata; a session is returned when email confirmation is off.
func (s *SessionService) SignUp(ctx context.Context, req *models.SignUpRequest) (*models.AuthSession, error) {
	meta := map[string]string{}
	if req.Nickname != "" {
		meta["nickname"] = req.Nickname
	}
	if req.FullName != "" {
		meta["full_name"] = req.FullName
	}

	session, err := s.remote.SignUp(ctx, req.Email, req.Password, meta)
	if err != nil {
		return nil, err
	}

	if session.AccessToken != "" {
		s.adopt(session)
		s.notify(SessionEvent{Event: "SIGNED_IN", User: session.User})
	}
	return session, nil
}

// SignIn exchanges credentials for a session and makes it current.
func (s *SessionService) SignIn(ctx context.Context, req *models.SignInRequest) (*models.AuthSession, error) {
	session, err := s.remote.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	s.adopt(session)
	s.notify(SessionEvent{Event: "SIGNED_IN", User: session.User})
	return session, nil
}

// SignOut revokes the current session. Revocation failures are logged; the
// local session is cleared either way.
func (s *SessionService) SignOut(ctx context.Context) {
	s.mu.Lock()
	token := s.token
	s.token = ""
	s.user = nil
	s.profile = nil
	s.mu.Unlock()

	if token != "" {
		if err := s.remote.SignOut(ctx, token); err != nil {
			log.Printf("Warning: sign out revocation failed: %v", err)
		}
	}
	s.notify(SessionEvent{Event: "SIGNED_OUT"})
}

func (s *SessionService) adopt(session *models.AuthSession) {
	s.mu.Lock()
	s.token = session.AccessToken
	s.user = session.User
	s.profile = nil
	s.mu.Unlock()
}

// Resolve returns the identity behind an access token. The in-process
// session answers when the token matches it; otherwise the backend's auth
// service resolves it, so tokens issued in another session still work.
func (s *SessionService) Resolve(ctx context.Context, token string) (*models.AuthUser, error) {
	if token == "" {
		return s.Current(), nil
	}

	s.mu.RLock()
	current, currentToken := s.user, s.token
	s.mu.RUnlock()

	if current != nil && currentToken == token {
		return current, nil
	}
	return s.remote.CurrentUser(ctx, token)
}

// Current returns the signed-in user, or nil.
func (s *SessionService) Current() *models.AuthUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Token returns the current access token, empty when signed out.
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Profile returns one user's profile row. The acting identity comes from
// the caller, never from the in-process session; the cached copy answers
// only when the caller is the session holder.
func (s *SessionService) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	if userID == "" {
		return nil, nil
	}

	s.mu.RLock()
	user, cached := s.user, s.profile
	s.mu.RUnlock()

	if user != nil && user.ID == userID && cached != nil {
		return cached, nil
	}

	profile, err := s.remote.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.user != nil && s.user.ID == userID {
		s.profile = profile
	}
	s.mu.Unlock()
	return profile, nil
}

// UpdateProfile patches the caller's profile row using the caller's own
// token. When the caller is the session holder the cached copy is refreshed
// and subscribers are notified.
func (s *SessionService) UpdateProfile(ctx context.Context, token, userID string, req *models.UpdateProfileRequest) (*models.Profile, error) {
	if userID == "" {
		return nil, nil
	}

	profile, err := s.remote.UpdateProfile(ctx, token, userID, req.Patch())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	sessionHolder := s.user != nil && s.user.ID == userID
	if sessionHolder {
		s.profile = profile
	}
	user := s.user
	s.mu.Unlock()

	if sessionHolder {
		s.notify(SessionEvent{Event: "USER_UPDATED", User: user})
	}
	return profile, nil
}

// Subscribe registers a callback for auth state changes and returns an
// unsubscribe handle.
func (s *SessionService) Subscribe(fn func(SessionEvent)) string {
	handle := uuid.New().String()
	s.mu.Lock()
	s.subs[handle] = fn
	s.mu.Unlock()
	return handle
}

func (s *SessionService) Unsubscribe(handle string) {
	s.mu.Lock()
	delete(s.subs, handle)
	s.mu.Unlock()
}

func (s *SessionService) notify(event SessionEvent) {
	s.mu.RLock()
	fns := make([]func(SessionEvent), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(event)
	}
}
