package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/riskibarqy/football-tournament/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	r := &PlayerRepository{players: make(map[string]player.Player, len(players))}
	for _, p := range players {
		r.players[p.ID] = p
	}
	return r
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(player.Player) bool { return true }), nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(p player.Player) bool { return p.TeamID == teamID }), nil
}

func (r *PlayerRepository) ListByTeamFresh(ctx context.Context, teamID string) ([]player.Player, error) {
	return r.ListByTeam(ctx, teamID)
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[playerID]
	return p, ok, nil
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.players[p.ID]; exists {
		return fmt.Errorf("player %s already exists", p.ID)
	}
	r.players[p.ID] = p
	return nil
}

func (r *PlayerRepository) Update(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.players[p.ID]; !exists {
		return fmt.Errorf("player %s not found", p.ID)
	}
	r.players[p.ID] = p
	return nil
}

func (r *PlayerRepository) Delete(_ context.Context, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.players, playerID)
	return nil
}

func (r *PlayerRepository) DeleteByTeam(_ context.Context, teamID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for id, p := range r.players {
		if p.TeamID == teamID {
			delete(r.players, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *PlayerRepository) collect(keep func(player.Player) bool) []player.Player {
	out := make([]player.Player, 0, len(r.players))
	for _, p := range r.players {
		if keep(p) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b player.Player) int {
		return cmp.Or(
			cmp.Compare(a.TeamID, b.TeamID),
			cmp.Compare(a.JerseyNumber, b.JerseyNumber),
			cmp.Compare(a.ID, b.ID),
		)
	})
	return out
}

func (r *PlayerRepository) all() []player.Player {
	items, _ := r.List(context.Background())
	return items
}

func (r *PlayerRepository) replace(items []player.Player) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players = make(map[string]player.Player, len(items))
	for _, p := range items {
		r.players[p.ID] = p
	}
}
