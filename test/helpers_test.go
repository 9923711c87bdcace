//go:build integration
// +build integration

package test

import (
	"encoding/base64"
	"fmt"
	"sync"
	"testing"

	goGate "github.com/MrEthical07/goGate"
	"github.com/MrEthical07/goGate/store"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newIntegrationStore(t *testing.T) (*store.Redis, *miniredis.Miniredis, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	return store.NewRedis(rdb, "gg"), mr, func() {
		_ = rdb.Close()
		mr.Close()
	}
}

type trackingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *trackingNavigator) Replace(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *trackingNavigator) redirects() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.paths))
	copy(out, n.paths)
	return out
}

// mintCredential builds an unsigned three-segment credential around the
// given claims document.
func mintCredential(t *testing.T, claimsDoc string) string {
	t.Helper()

	enc := base64.RawURLEncoding
	header := enc.EncodeToString([]byte(`{"alg":"none"}`))
	payload := enc.EncodeToString([]byte(claimsDoc))
	return fmt.Sprintf("%s.%s.sig", header, payload)
}

func newIntegrationGuard(t *testing.T, s goGate.Store, nav goGate.Navigator) *goGate.Guard {
	t.Helper()

	cfg := goGate.DefaultConfig()
	cfg.Audit.Enabled = false

	g, err := goGate.New().
		WithConfig(cfg).
		WithStore(s).
		WithNavigator(nav).
		Build()
	if err != nil {
		t.Fatalf("guard build failed: %v", err)
	}
	t.Cleanup(g.Close)

	return g
}
