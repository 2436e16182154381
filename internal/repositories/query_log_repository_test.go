package repositories

import (
	"context"
	"dbconsultor-ai/internal/models"
	"errors"
	"testing"
	"time"
)

type fakeListStore struct {
	lists   map[string][]string
	ttls    map[string]time.Duration
	pushErr error
	pingErr error
}

func newFakeListStore() *fakeListStore {
	return &fakeListStore{lists: map[string][]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeListStore) PushCapped(_ context.Context, key string, value []byte, maxLen int64, ttl time.Duration) error {
	if f.pushErr != nil {
		return f.pushErr
	}
	list := append([]string{string(value)}, f.lists[key]...)
	if maxLen > 0 && int64(len(list)) > maxLen {
		list = list[:maxLen]
	}
	f.lists[key] = list
	f.ttls[key] = ttl
	return nil
}

func (f *fakeListStore) Range(_ context.Context, key string, start, stop int64) ([]string, error) {
	list := f.lists[key]
	if start >= int64(len(list)) {
		return []string{}, nil
	}
	if stop >= int64(len(list)) {
		stop = int64(len(list)) - 1
	}
	return list[start : stop+1], nil
}

func (f *fakeListStore) Ping(context.Context) error { return f.pingErr }

func TestQueryLogKeepsNewestEntriesFirst(t *testing.T) {
	store := newFakeListStore()
	repo := NewQueryLogRepository(store, 2, time.Hour)
	ctx := context.Background()

	for _, question := range []string{"primeira", "segunda", "terceira"} {
		if err := repo.Record(ctx, models.NewQueryLog("mysql", question)); err != nil {
			t.Fatalf("Record(%q) error = %v", question, err)
		}
	}

	entries, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries after trimming, got %d", len(entries))
	}
	if entries[0].Question != "terceira" || entries[1].Question != "segunda" {
		t.Fatalf("unexpected order: %q, %q", entries[0].Question, entries[1].Question)
	}
	if entries[0].ID == "" || entries[0].CreatedAt.IsZero() {
		t.Fatalf("entry should carry id and timestamp: %+v", entries[0])
	}
	if store.ttls[queryLogKey] != time.Hour {
		t.Fatalf("ttl = %v", store.ttls[queryLogKey])
	}

	one, err := repo.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent(1) error = %v", err)
	}
	if len(one) != 1 || one[0].Question != "terceira" {
		t.Fatalf("Recent(1) = %+v", one)
	}
}

func TestQueryLogSkipsMalformedEntries(t *testing.T) {
	store := newFakeListStore()
	store.lists[queryLogKey] = []string{`{"backend":"postgresql","question":"ok","outcome":"success"}`, `not json`}
	repo := NewQueryLogRepository(store, 5, 0)

	entries, err := repo.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Backend != "postgresql" {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestQueryLogRecordWrapsStoreErrors(t *testing.T) {
	store := newFakeListStore()
	store.pushErr = errors.New("connection refused")
	repo := NewQueryLogRepository(store, 5, time.Minute)

	err := repo.Record(context.Background(), models.NewQueryLog("mysql", "q"))
	if err == nil || !errors.Is(err, store.pushErr) {
		t.Fatalf("Record() error = %v", err)
	}
}

func TestQueryLogPingReachesStore(t *testing.T) {
	store := newFakeListStore()
	repo := NewQueryLogRepository(store, 10, time.Hour)

	if err := repo.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	store.pingErr = errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")
	if err := repo.Ping(context.Background()); !errors.Is(err, store.pingErr) {
		t.Fatalf("Ping() error = %v, want %v", err, store.pingErr)
	}
	if err := NewNoopQueryLogRepository().Ping(context.Background()); err != nil {
		t.Fatalf("noop Ping() error = %v", err)
	}
}

func TestNoopQueryLog(t *testing.T) {
	repo := NewNoopQueryLogRepository()
	if repo.Enabled() {
		t.Fatal("noop repository must report disabled")
	}
	if err := repo.Record(context.Background(), models.NewQueryLog("mysql", "q")); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	entries, err := repo.Recent(context.Background(), 5)
	if err != nil || len(entries) != 0 {
		t.Fatalf("Recent() = %v, %v", entries, err)
	}
}
