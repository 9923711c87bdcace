//go:build integration
// +build integration

package test

import (
	"context"
	"errors"
	"testing"

	goGate "github.com/MrEthical07/goGate"
)

func TestEvaluateAgainstRedisAuthenticated(t *testing.T) {
	s, _, cleanup := newIntegrationStore(t)
	defer cleanup()

	nav := &trackingNavigator{}
	g := newIntegrationGuard(t, s, nav)

	ctx := context.Background()
	if err := s.Set(ctx, g.StorageKey(), mintCredential(t, `{"sub":"user-1","exp":9999999999}`)); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	res := g.Evaluate(ctx)
	if res.State != goGate.StateAuthenticated {
		t.Fatalf("expected authenticated, got %+v", res)
	}
	if sub, ok := res.Payload.Subject(); !ok || sub != "user-1" {
		t.Fatalf("expected decoded subject, got %q (%v)", sub, ok)
	}
	if len(nav.redirects()) != 0 {
		t.Fatalf("unexpected redirects: %v", nav.redirects())
	}
}

func TestEvaluateAgainstRedisExpiredClears(t *testing.T) {
	s, _, cleanup := newIntegrationStore(t)
	defer cleanup()

	nav := &trackingNavigator{}
	g := newIntegrationGuard(t, s, nav)

	ctx := context.Background()
	if err := s.Set(ctx, g.StorageKey(), mintCredential(t, `{"exp":1}`)); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	res := g.Evaluate(ctx)
	if res.State != goGate.StateUnauthenticated || !errors.Is(res.Reason, goGate.ErrExpiredCredential) {
		t.Fatalf("expected expired rejection, got %+v", res)
	}
	if !res.Cleared {
		t.Fatal("expired credential must be cleared")
	}

	// The key must actually be gone from Redis.
	if _, present, err := s.Get(ctx, g.StorageKey()); err != nil || present {
		t.Fatalf("credential still present after clear (present=%v err=%v)", present, err)
	}

	if got := nav.redirects(); len(got) != 1 || got[0] != g.LoginPath() {
		t.Fatalf("expected one redirect to %q, got %v", g.LoginPath(), got)
	}
}

func TestMountLifecycleAgainstRedis(t *testing.T) {
	s, _, cleanup := newIntegrationStore(t)
	defer cleanup()

	nav := &trackingNavigator{}
	g := newIntegrationGuard(t, s, nav)

	ctx := context.Background()
	if err := s.Set(ctx, g.StorageKey(), mintCredential(t, `{"exp":9999999999}`)); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	m := g.NewMount(ctx)
	defer m.Close()

	if m.State() != goGate.StateLoading {
		t.Fatalf("expected loading before start, got %v", m.State())
	}

	m.Start()
	res, err := m.Wait(ctx)
	if err != nil {
		t.Fatalf("wait failed: %v", err)
	}
	if res.State != goGate.StateAuthenticated {
		t.Fatalf("expected authenticated, got %+v", res)
	}
}

func TestEvaluateAgainstUnreachableRedis(t *testing.T) {
	s, mr, cleanup := newIntegrationStore(t)
	defer cleanup()

	nav := &trackingNavigator{}
	g := newIntegrationGuard(t, s, nav)

	mr.Close()

	res := g.Evaluate(context.Background())
	if res.State != goGate.StateUnauthenticated || !errors.Is(res.Reason, goGate.ErrMissingCredential) {
		t.Fatalf("store outage must gate closed, got %+v", res)
	}
}
