package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/edusaas/portal-gate/internal/core/domain"
	"github.com/edusaas/portal-gate/internal/core/ports"
	"github.com/edusaas/portal-gate/internal/metrics"
)

// SessionService issues session tokens and keeps the live sessions of this
// process. Sessions are rebuilt lazily from storage, so a token stays usable
// across restarts for as long as its persisted state lives.
type SessionService struct {
	deps      SessionDeps
	jwtSecret string
	tokenTTL  time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

var _ ports.SessionService = (*SessionService)(nil)

func NewSessionService(deps SessionDeps, jwtSecret string, tokenTTL time.Duration) *SessionService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &SessionService{
		deps:      deps,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		sessions:  make(map[string]*Session),
	}
}

// Open starts a fresh session and signs a token carrying its id.
func (s *SessionService) Open(ctx context.Context) (string, string, error) {
	id := uuid.NewString()
	token, err := s.generateToken(id)
	if err != nil {
		return "", "", fmt.Errorf("sign session token: %w", err)
	}
	s.session(ctx, id)
	s.deps.Log.Info().Str("session_id", id).Msg("session opened")
	return token, id, nil
}

// Session returns the live session for id, rebuilding it when this process
// has not seen it yet.
func (s *SessionService) Session(ctx context.Context, id string) (ports.Session, error) {
	if id == "" {
		return nil, domain.ErrSessionNotFound
	}
	return s.session(ctx, id), nil
}

func (s *SessionService) session(ctx context.Context, id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		return sess
	}
	sess := NewSession(ctx, id, s.deps)
	s.sessions[id] = sess
	metrics.SessionsActive.Set(float64(len(s.sessions)))
	return sess
}

// Evict drops sessions idle since before now minus the token lifetime and
// deletes their persisted state. It returns how many were dropped.
func (s *SessionService) Evict(ctx context.Context, now time.Time) int {
	cutoff := now.Add(-s.tokenTTL)

	s.mu.Lock()
	var idle []string
	for id, sess := range s.sessions {
		if sess.idleSince().Before(cutoff) {
			idle = append(idle, id)
			delete(s.sessions, id)
		}
	}
	metrics.SessionsActive.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	for _, id := range idle {
		if err := s.deps.Storage.DeleteSession(ctx, id); err != nil {
			s.deps.Log.Warn().Err(err).Str("session_id", id).Msg("failed to delete idle session state")
		}
	}
	if len(idle) > 0 {
		s.deps.Log.Info().Int("evicted", len(idle)).Msg("idle sessions evicted")
	}
	return len(idle)
}

// RunJanitor evicts idle sessions every interval until ctx is done.
func (s *SessionService) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Evict(ctx, now)
		}
	}
}

func (s *SessionService) generateToken(sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid": sessionID,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
