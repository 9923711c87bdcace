package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	goGate "github.com/MrEthical07/goGate"
	"github.com/MrEthical07/goGate/store"
	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

type nopNavigator struct{}

func (nopNavigator) Replace(string) {}

func main() {
	var (
		ops          = flag.Int("ops", 200000, "evaluations per phase")
		concurrency  = flag.Int("concurrency", 256, "number of concurrent workers")
		backend      = flag.String("store", "memory", "credential store backend: memory or redis")
		redisAddr    = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		prefix       = flag.String("prefix", "gg", "redis key prefix")
		expiredPct   = flag.Int("expired-pct", 10, "percentage of workers seeded with an expired credential")
		malformedPct = flag.Int("malformed-pct", 10, "percentage of workers seeded with a malformed credential")
	)
	flag.Parse()

	if *ops <= 0 || *concurrency <= 0 {
		fmt.Fprintln(os.Stderr, "ops and concurrency must be > 0")
		os.Exit(2)
	}
	if *expiredPct < 0 || *malformedPct < 0 || *expiredPct+*malformedPct > 100 {
		fmt.Fprintln(os.Stderr, "expired-pct and malformed-pct must be >= 0 and sum to <= 100")
		os.Exit(2)
	}

	ctx := context.Background()

	cfg := goGate.DefaultConfig()
	cfg.Audit.Enabled = false
	cfg.Metrics.EnableLatencyHistograms = true

	guard, err := goGate.New().
		WithConfig(cfg).
		WithStore(store.NewMemory()).
		WithNavigator(nopNavigator{}).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "guard build failed: %v\n", err)
		os.Exit(1)
	}
	defer guard.Close()

	stores, cleanup, err := seedStores(ctx, guard, *backend, *redisAddr, *prefix, *concurrency, *expiredPct, *malformedPct)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	stats := runEvaluatePhase(ctx, guard, stores, *ops, *concurrency)

	fmt.Println("---- results ----")
	printStats("evaluate", stats)

	snap := guard.MetricsSnapshot()
	fmt.Printf("authenticated=%d missing=%d malformed=%d expired=%d cleared=%d redirects=%d\n",
		snap.Counters[goGate.MetricEvaluateAuthenticated],
		snap.Counters[goGate.MetricEvaluateMissing],
		snap.Counters[goGate.MetricEvaluateMalformed],
		snap.Counters[goGate.MetricEvaluateExpired],
		snap.Counters[goGate.MetricCredentialCleared],
		snap.Counters[goGate.MetricRedirectIssued],
	)
}

// seedStores gives every worker its own store so that clears on invalid
// credentials do not race across workers. The mix of valid, expired, and
// malformed credentials is controlled by the percentage flags.
func seedStores(ctx context.Context, guard *goGate.Guard, backend, redisAddr, prefix string, workers, expiredPct, malformedPct int) ([]goGate.Store, func(), error) {
	cleanup := func() {}

	var client redis.UniversalClient
	if backend == "redis" {
		addr := redisAddr
		if addr == "" {
			addr = os.Getenv("REDIS_ADDR")
		}
		if addr == "" {
			mr, err := miniredis.Run()
			if err != nil {
				return nil, cleanup, fmt.Errorf("start miniredis: %w", err)
			}
			addr = mr.Addr()
			client = redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}})
			cleanup = func() {
				_ = client.Close()
				mr.Close()
			}
			fmt.Printf("using miniredis at %s\n", addr)
		} else {
			client = redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}})
			cleanup = func() { _ = client.Close() }
			fmt.Printf("using redis at %s\n", addr)
		}
	}

	valid, err := mintCredential(time.Now().Add(24 * time.Hour))
	if err != nil {
		return nil, cleanup, err
	}
	expired, err := mintCredential(time.Now().Add(-time.Hour))
	if err != nil {
		return nil, cleanup, err
	}

	fmt.Printf("seeding %d worker stores...\n", workers)
	startSeed := time.Now()

	stores := make([]goGate.Store, workers)
	for i := 0; i < workers; i++ {
		var s goGate.Store
		if backend == "redis" {
			s = store.NewRedis(client, fmt.Sprintf("%s:%d", prefix, i))
		} else {
			s = store.NewMemory()
		}

		credential := valid
		switch bucket := i * 100 / workers; {
		case bucket < expiredPct:
			credential = expired
		case bucket < expiredPct+malformedPct:
			credential = "not-a-credential"
		}

		if err := s.Set(ctx, guard.StorageKey(), credential); err != nil {
			return nil, cleanup, fmt.Errorf("seed store %d: %w", i, err)
		}
		stores[i] = s
	}
	fmt.Printf("seeded in %s\n", time.Since(startSeed).Round(time.Millisecond))

	return stores, cleanup, nil
}

func mintCredential(exp time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": "load-test",
		"exp": exp.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
}

func runEvaluatePhase(ctx context.Context, guard *goGate.Guard, stores []goGate.Store, ops, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*7919))
			nav := nopNavigator{}
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				idx := r.Intn(len(stores))
				t0 := time.Now()
				res := guard.EvaluateWith(ctx, stores[idx], nav)
				d := time.Since(t0)
				if res.Reason == goGate.ErrGuardNotReady {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}
