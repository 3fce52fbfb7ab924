package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/edusaas/portal-gate/internal/core/domain"
	"github.com/edusaas/portal-gate/internal/core/routing"
)

type stubStorage struct {
	mu      sync.Mutex
	values  map[string]map[string]string
	failSet bool
	deleted []string
}

func newStubStorage() *stubStorage {
	return &stubStorage{values: make(map[string]map[string]string)}
}

func (s *stubStorage) Get(_ context.Context, sessionID, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[sessionID][key]
	return v, ok, nil
}

func (s *stubStorage) Set(_ context.Context, sessionID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return errors.New("storage full")
	}
	if s.values[sessionID] == nil {
		s.values[sessionID] = make(map[string]string)
	}
	s.values[sessionID][key] = value
	return nil
}

func (s *stubStorage) Delete(_ context.Context, sessionID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values[sessionID], key)
	return nil
}

func (s *stubStorage) DeleteSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, sessionID)
	s.deleted = append(s.deleted, sessionID)
	return nil
}

func (s *stubStorage) raw(sessionID, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[sessionID][key]
	return v, ok
}

type stubStatus struct {
	state domain.StatusState
}

func (s *stubStatus) Snapshot() domain.StatusState               { return s.state }
func (s *stubStatus) Refresh(context.Context) domain.StatusState { return s.state }

func readyStatus(maintenance bool) *stubStatus {
	st := domain.DefaultOperationalStatus()
	st.MaintenanceMode = maintenance
	return &stubStatus{state: domain.StatusState{Load: domain.LoadReady, Status: st}}
}

type stubConfigs struct {
	mu      sync.Mutex
	configs map[string]domain.TenantConfig
	slugs   []string
	// gate, when set, holds fetches until it is closed.
	gate chan struct{}
}

func (s *stubConfigs) FetchTenantConfig(_ context.Context, slug string) (domain.TenantConfig, error) {
	s.mu.Lock()
	gate := s.gate
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.slugs = append(s.slugs, slug)
	cfg, ok := s.configs[slug]
	if !ok {
		return domain.TenantConfig{}, errors.New("school not found")
	}
	return cfg, nil
}

func (s *stubConfigs) fetched() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.slugs...)
}

type stubAudit struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (a *stubAudit) Record(event domain.AuditEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
}

func (a *stubAudit) kinds() []domain.AuditKind {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.AuditKind, 0, len(a.events))
	for _, e := range a.events {
		out = append(out, e.Kind)
	}
	return out
}

type fixture struct {
	storage *stubStorage
	configs *stubConfigs
	audit   *stubAudit
	deps    SessionDeps
}

func newFixture(t *testing.T, status *stubStatus) *fixture {
	t.Helper()
	router, err := routing.New(routing.DefaultRoutes())
	if err != nil {
		t.Fatalf("routing.New returned error: %v", err)
	}
	f := &fixture{
		storage: newStubStorage(),
		configs: &stubConfigs{configs: map[string]domain.TenantConfig{
			"acme": {SchoolName: "Acme High", Plan: "basic", Features: []domain.Feature{domain.FeatureSchedule}},
			"zen":  {SchoolName: "Zen Academy", Plan: "premium", Features: []domain.Feature{domain.FeatureFinanceManagement}},
		}},
		audit: &stubAudit{},
	}
	f.deps = SessionDeps{
		Storage: f.storage,
		Status:  status,
		Configs: f.configs,
		Router:  router,
		Audit:   f.audit,
		Log:     zerolog.Nop(),
	}
	return f
}

func waitSettled(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("provider did not settle")
	}
}
