package store_test

import (
	"context"
	"testing"

	goGate "github.com/MrEthical07/goGate"
	"github.com/MrEthical07/goGate/store"
)

var (
	_ goGate.Store = (*store.Memory)(nil)
	_ goGate.Store = (*store.Redis)(nil)
	_ goGate.Store = (*store.SQLite)(nil)
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()

	if _, ok, err := s.Get(ctx, "access_token"); err != nil || ok {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, "access_token", "abc.def.ghi"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	value, ok, err := s.Get(ctx, "access_token")
	if err != nil || !ok {
		t.Fatalf("expected credential, got ok=%v err=%v", ok, err)
	}
	if value != "abc.def.ghi" {
		t.Fatalf("value mismatch: %q", value)
	}

	if err := s.Remove(ctx, "access_token"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "access_token"); ok {
		t.Fatal("expected credential removed")
	}
}

func TestMemoryRemoveAbsentIsNoOp(t *testing.T) {
	s := store.NewMemory()
	if err := s.Remove(context.Background(), "access_token"); err != nil {
		t.Fatalf("remove of absent key must not error: %v", err)
	}
}

func TestMemoryKeysIndependent(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()

	if err := s.Set(ctx, "access_token", "a"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := s.Set(ctx, "theme", "dark"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := s.Remove(ctx, "access_token"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if _, ok, _ := s.Get(ctx, "theme"); !ok {
		t.Fatal("unrelated key must survive removal")
	}
}
