package lazycache_test

import (
	"context"
	"math/rand/v2"
	"slices"
	"sync"
	"testing"

	"github.com/creativecreature/lazycache"
)

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

func randKey(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.IntN(len(letters))]
	}
	return string(b)
}

func sortedKeys[T any](c *lazycache.Cache[T]) []string {
	keys := slices.Collect(c.Keys())
	slices.Sort(keys)
	return keys
}

type TestMetricsRecorder struct {
	sync.Mutex
	cacheHits      int
	cacheMisses    int
	vacuums        int
	expiredEntries int
	evictedEntries int
	coalesced      int
}

func newTestMetricsRecorder() *TestMetricsRecorder {
	return &TestMetricsRecorder{}
}

func (r *TestMetricsRecorder) CacheHit() {
	r.Lock()
	defer r.Unlock()
	r.cacheHits++
}

func (r *TestMetricsRecorder) CacheMiss() {
	r.Lock()
	defer r.Unlock()
	r.cacheMisses++
}

func (r *TestMetricsRecorder) Vacuum() {
	r.Lock()
	defer r.Unlock()
	r.vacuums++
}

func (r *TestMetricsRecorder) EntriesExpired(n int) {
	r.Lock()
	defer r.Unlock()
	r.expiredEntries += n
}

func (r *TestMetricsRecorder) EntriesEvicted(n int) {
	r.Lock()
	defer r.Unlock()
	r.evictedEntries += n
}

func (r *TestMetricsRecorder) ProviderCoalesced() {
	r.Lock()
	defer r.Unlock()
	r.coalesced++
}

func (r *TestMetricsRecorder) ObserveCacheSize(_ func() int) {}

// manualScheduler holds on to deferred vacuums until the test runs them.
type manualScheduler struct {
	mu    sync.Mutex
	tasks []func()
}

func (s *manualScheduler) Schedule(task func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
}

func (s *manualScheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// RunAll runs the queued tasks outside of the scheduler's lock.
func (s *manualScheduler) RunAll() {
	s.mu.Lock()
	tasks := s.tasks
	s.tasks = nil
	s.mu.Unlock()
	for _, task := range tasks {
		task()
	}
}

type ProviderObserver struct {
	sync.Mutex
	fetchCount    int
	requestedArgs [][]any
	response      string
	err           error
	release       chan struct{}
	FetchStarted  chan struct{}
}

// NewProviderObserver creates an observer whose fetches block until Release is called.
func NewProviderObserver(bufferSize int) *ProviderObserver {
	return &ProviderObserver{
		release:      make(chan struct{}),
		FetchStarted: make(chan struct{}, bufferSize),
	}
}

func (f *ProviderObserver) Response(value string) {
	f.Lock()
	defer f.Unlock()
	f.response = value
}

func (f *ProviderObserver) Err(err error) {
	f.Lock()
	defer f.Unlock()
	f.err = err
}

// Release unblocks every fetch, current and future.
func (f *ProviderObserver) Release() {
	close(f.release)
}

func (f *ProviderObserver) Fetch(_ context.Context, args ...any) (string, error) {
	f.Lock()
	f.fetchCount++
	f.requestedArgs = append(f.requestedArgs, args)
	f.Unlock()

	f.FetchStarted <- struct{}{}
	<-f.release

	f.Lock()
	defer f.Unlock()
	return f.response, f.err
}

func (f *ProviderObserver) AssertFetchCount(t *testing.T, count int) {
	t.Helper()
	f.Lock()
	defer f.Unlock()

	if count != f.fetchCount {
		t.Errorf("expected fetch count %d, got %d", count, f.fetchCount)
	}
}
