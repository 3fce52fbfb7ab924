package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/edusaas/portal-gate/internal/core/ports"
)

func TestSessionStorage_SetOverwritesAndIsolates(t *testing.T) {
	s, err := NewSessionStorage()
	if err != nil {
		t.Fatalf("NewSessionStorage returned error: %v", err)
	}
	ctx := context.Background()

	_ = s.Set(ctx, "s1", ports.KeyTenantSlug, "acme")
	_ = s.Set(ctx, "s1", ports.KeyTenantSlug, "zen")
	_ = s.Set(ctx, "s2", ports.KeyTenantSlug, "acme")

	if v, found, _ := s.Get(ctx, "s1", ports.KeyTenantSlug); !found || v != "zen" {
		t.Fatalf("expected zen, got %q found=%v", v, found)
	}
	if v, _, _ := s.Get(ctx, "s2", ports.KeyTenantSlug); v != "acme" {
		t.Fatalf("expected acme for s2, got %q", v)
	}
}

func TestSessionStorage_DeleteAndDeleteSession(t *testing.T) {
	s, _ := NewSessionStorage()
	ctx := context.Background()

	_ = s.Set(ctx, "s1", ports.KeyPrincipal, "{}")
	_ = s.Set(ctx, "s1", ports.KeyTheme, "dark")
	_ = s.Set(ctx, "s2", ports.KeyTheme, "light")

	if err := s.Delete(ctx, "s1", ports.KeyPrincipal); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if _, found, _ := s.Get(ctx, "s1", ports.KeyPrincipal); found {
		t.Fatalf("expected principal deleted")
	}
	if _, found, _ := s.Get(ctx, "s1", ports.KeyTheme); !found {
		t.Fatalf("delete must only remove one key")
	}
	if err := s.Delete(ctx, "s1", "missing"); err != nil {
		t.Fatalf("deleting a missing key must not fail: %v", err)
	}

	if err := s.DeleteSession(ctx, "s1"); err != nil {
		t.Fatalf("delete session error: %v", err)
	}
	if _, found, _ := s.Get(ctx, "s1", ports.KeyTheme); found {
		t.Fatalf("expected s1 to be dropped")
	}
	if _, found, _ := s.Get(ctx, "s2", ports.KeyTheme); !found {
		t.Fatalf("s2 must survive")
	}
}

func TestSessionStorage_ConcurrentWriters(t *testing.T) {
	s, _ := NewSessionStorage()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Set(ctx, "s1", ports.KeyTheme, "dark")
			_, _, _ = s.Get(ctx, "s1", ports.KeyTheme)
		}()
	}
	wg.Wait()

	if v, _, _ := s.Get(ctx, "s1", ports.KeyTheme); v != "dark" {
		t.Fatalf("expected dark, got %q", v)
	}
}
