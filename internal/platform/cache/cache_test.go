package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/football-tournament/internal/platform/logging"
)

type teamRow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestGetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	c := New(NewMemoryStore(time.Minute), logging.NewNop())
	var calls atomic.Int32

	loader := func(context.Context) ([]teamRow, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return []teamRow{{ID: "t1", Name: "Lions"}}, nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg conc.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Go(func() {
			<-start
			rows, err := GetOrLoad(t.Context(), c, "teams:list", loader)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if len(rows) != 1 || rows[0].Name != "Lions" {
				t.Errorf("unexpected rows: %+v", rows)
			}
		})
	}

	close(start)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestGetOrLoad_DecodesCachedValue(t *testing.T) {
	t.Parallel()

	c := New(NewMemoryStore(time.Minute), logging.NewNop())
	var calls atomic.Int32

	loader := func(context.Context) (teamRow, error) {
		calls.Add(1)
		return teamRow{ID: "t1", Name: "Lions"}, nil
	}

	if _, err := GetOrLoad(t.Context(), c, "teams:t1", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	got, err := GetOrLoad(t.Context(), c, "teams:t1", loader)
	if err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if calls.Load() != 1 {
		t.Fatalf("loader called %d times, want 1", calls.Load())
	}
	if got.Name != "Lions" {
		t.Fatalf("unexpected cached value: %+v", got)
	}
}

func TestGetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	c := New(NewMemoryStore(time.Minute), logging.NewNop())
	boom := errors.New("db down")

	_, err := GetOrLoad(t.Context(), c, "k", func(context.Context) (string, error) {
		return "", boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}

	got, err := GetOrLoad(t.Context(), c, "k", func(context.Context) (string, error) {
		return "fresh", nil
	})
	if err != nil || got != "fresh" {
		t.Fatalf("expected fresh load, got %q err=%v", got, err)
	}
}

func TestMemoryStore_ExpiresEntries(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := NewMemoryStoreWithClock(time.Minute, clock)
	ctx := t.Context()

	if err := store.Set(ctx, "tournament", []byte(`{}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "tournament"); !ok {
		t.Fatalf("expected entry before ttl")
	}

	clock.Advance(2 * time.Minute)
	if _, ok, _ := store.Get(ctx, "tournament"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestCache_InvalidatePrefix(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	c := New(store, logging.NewNop())
	ctx := t.Context()

	_ = store.Set(ctx, "teams:list", []byte(`[]`))
	_ = store.Set(ctx, "teams:t1", []byte(`{}`))
	_ = store.Set(ctx, "tournament", []byte(`{}`))

	c.InvalidatePrefix(ctx, "teams:")

	if _, ok, _ := store.Get(ctx, "teams:list"); ok {
		t.Fatalf("expected teams:list to be dropped")
	}
	if _, ok, _ := store.Get(ctx, "teams:t1"); ok {
		t.Fatalf("expected teams:t1 to be dropped")
	}
	if _, ok, _ := store.Get(ctx, "tournament"); !ok {
		t.Fatalf("expected tournament to survive")
	}
}

func TestGetOrLoad_SkipsStoreWhenInvalidatedDuringLoad(t *testing.T) {
	t.Parallel()

	c := New(NewMemoryStore(time.Minute), logging.NewNop())
	var calls atomic.Int32

	stale := func(ctx context.Context) ([]teamRow, error) {
		calls.Add(1)
		// A write lands while this read is still in flight.
		c.InvalidatePrefix(ctx, "teams:")
		return []teamRow{{ID: "t1", Name: "Old Name"}}, nil
	}
	rows, err := GetOrLoad(t.Context(), c, "teams:list", stale)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Old Name" {
		t.Fatalf("expected loader result to be returned, got %+v", rows)
	}

	fresh := func(context.Context) ([]teamRow, error) {
		calls.Add(1)
		return []teamRow{{ID: "t1", Name: "New Name"}}, nil
	}
	rows, err = GetOrLoad(t.Context(), c, "teams:list", fresh)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if rows[0].Name != "New Name" {
		t.Fatalf("expected stale rows to stay out of the store, got %+v", rows)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("loader called %d times, want 2", got)
	}
}
