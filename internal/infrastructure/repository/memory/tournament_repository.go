package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/football-tournament/internal/domain/tournament"
)

type TournamentRepository struct {
	mu    sync.RWMutex
	value *tournament.Tournament
}

func NewTournamentRepository(initial *tournament.Tournament) *TournamentRepository {
	r := &TournamentRepository{}
	if initial != nil {
		item := *initial
		r.value = &item
	}
	return r
}

func (r *TournamentRepository) Get(_ context.Context) (tournament.Tournament, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.value == nil {
		return tournament.Tournament{}, false, nil
	}
	return *r.value, true, nil
}

func (r *TournamentRepository) Upsert(_ context.Context, item tournament.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.value = &item
	return nil
}

func (r *TournamentRepository) all() []tournament.Tournament {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.value == nil {
		return nil
	}
	return []tournament.Tournament{*r.value}
}

func (r *TournamentRepository) replace(items []tournament.Tournament) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.value = nil
	if len(items) > 0 {
		item := items[len(items)-1]
		r.value = &item
	}
}
