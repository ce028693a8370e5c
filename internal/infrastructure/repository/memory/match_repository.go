package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/riskibarqy/football-tournament/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches map[string]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	r := &MatchRepository{matches: make(map[string]match.Match, len(matches))}
	for _, m := range matches {
		r.matches[m.ID] = cloneMatch(m)
	}
	return r
}

func (r *MatchRepository) List(_ context.Context, filter match.Filter) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.matches))
	for _, m := range r.matches {
		if filter.Matches(m) {
			out = append(out, cloneMatch(m))
		}
	}
	slices.SortFunc(out, func(a, b match.Match) int {
		return cmp.Or(
			kickoffOrder(a.KickoffAt).Compare(kickoffOrder(b.KickoffAt)),
			a.CreatedAt.Compare(b.CreatedAt),
			cmp.Compare(a.ID, b.ID),
		)
	})

	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.matches[matchID]
	if !ok {
		return match.Match{}, false, nil
	}
	return cloneMatch(m), true, nil
}

func (r *MatchRepository) Create(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.matches[m.ID]; exists {
		return fmt.Errorf("match %s already exists", m.ID)
	}
	r.matches[m.ID] = cloneMatch(m)
	return nil
}

func (r *MatchRepository) Update(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.matches[m.ID]; !exists {
		return fmt.Errorf("match %s not found", m.ID)
	}
	r.matches[m.ID] = cloneMatch(m)
	return nil
}

func (r *MatchRepository) Delete(_ context.Context, matchID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.matches, matchID)
	return nil
}

func (r *MatchRepository) all() []match.Match {
	items, _ := r.List(context.Background(), match.Filter{})
	return items
}

func (r *MatchRepository) replace(items []match.Match) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.matches = make(map[string]match.Match, len(items))
	for _, m := range items {
		r.matches[m.ID] = cloneMatch(m)
	}
}

// Events are copied so callers cannot mutate stored timelines in place.
func cloneMatch(m match.Match) match.Match {
	events := make([]match.Event, len(m.Events))
	copy(events, m.Events)
	m.Events = events
	if m.KickoffAt != nil {
		kickoff := *m.KickoffAt
		m.KickoffAt = &kickoff
	}
	return m
}

// Unscheduled matches sort last.
func kickoffOrder(t *time.Time) time.Time {
	if t == nil {
		return time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	}
	return *t
}
