package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edusaas/portal-gate/internal/core/domain"
	"github.com/edusaas/portal-gate/internal/core/ports"
)

// PrincipalStore keeps one session's principal under a single storage key.
// It is the only place that decides what a readable record is.
type PrincipalStore struct {
	storage   ports.SessionStorage
	sessionID string
	log       zerolog.Logger
}

var _ ports.PrincipalStore = (*PrincipalStore)(nil)

func NewPrincipalStore(storage ports.SessionStorage, sessionID string, log zerolog.Logger) *PrincipalStore {
	return &PrincipalStore{storage: storage, sessionID: sessionID, log: log}
}

// Get returns the stored principal. Storage errors and corrupt records both
// read as "absent".
func (s *PrincipalStore) Get(ctx context.Context) (*domain.Principal, bool) {
	raw, found, err := s.storage.Get(ctx, s.sessionID, ports.KeyPrincipal)
	if err != nil {
		s.log.Warn().Err(err).Str("session_id", s.sessionID).Msg("principal read failed, treating as absent")
		return nil, false
	}
	if !found {
		return nil, false
	}

	p, err := domain.DecodePrincipal([]byte(raw))
	if err != nil {
		s.log.Warn().Err(err).Str("session_id", s.sessionID).Msg("corrupt principal record, treating as absent")
		if err := s.storage.Delete(ctx, s.sessionID, ports.KeyPrincipal); err != nil {
			s.log.Warn().Err(err).Str("session_id", s.sessionID).Msg("corrupt principal record not removed")
		}
		return nil, false
	}
	return p, true
}

// Set overwrites the stored principal.
func (s *PrincipalStore) Set(ctx context.Context, p *domain.Principal) error {
	raw, err := domain.EncodePrincipal(p)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, s.sessionID, ports.KeyPrincipal, string(raw)); err != nil {
		return fmt.Errorf("store principal: %w", err)
	}
	return nil
}

// Merge shallow-merges patch into the stored principal and persists the
// result. Nothing is written if the merged record would be malformed.
func (s *PrincipalStore) Merge(ctx context.Context, patch map[string]json.RawMessage) (*domain.Principal, error) {
	current, ok := s.Get(ctx)
	if !ok {
		return nil, domain.ErrAuthAbsent
	}
	merged, err := domain.MergePrincipal(current, patch)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPrincipal) {
			return nil, err
		}
		return nil, fmt.Errorf("merge principal: %w", err)
	}
	if err := s.Set(ctx, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// Clear removes the stored principal.
func (s *PrincipalStore) Clear(ctx context.Context) error {
	if err := s.storage.Delete(ctx, s.sessionID, ports.KeyPrincipal); err != nil {
		return fmt.Errorf("clear principal: %w", err)
	}
	return nil
}
