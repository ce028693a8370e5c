package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/football-tournament/internal/domain/team"
	"github.com/riskibarqy/football-tournament/internal/domain/tournament"
	"github.com/riskibarqy/football-tournament/internal/infrastructure/repository/memory"
	teammock "github.com/riskibarqy/football-tournament/internal/mocks/domain/team"
	basecache "github.com/riskibarqy/football-tournament/internal/platform/cache"
	"github.com/riskibarqy/football-tournament/internal/platform/logging"
)

func newTestCache() *basecache.Cache {
	return basecache.New(basecache.NewMemoryStore(time.Minute), logging.NewNop())
}

func TestTeamRepository_GetByIDCachesMissesUsingMockery(t *testing.T) {
	t.Parallel()

	next := teammock.NewRepository(t)
	repo := NewTeamRepository(next, newTestCache())

	next.
		On("GetByID", mock.Anything, "ghost").
		Return(team.Team{}, false, nil).
		Once()

	for range 3 {
		_, exists, err := repo.GetByID(t.Context(), "ghost")
		if err != nil || exists {
			t.Fatalf("expected cached miss, exists=%v err=%v", exists, err)
		}
	}
}

func TestTeamRepository_WritesInvalidate(t *testing.T) {
	next := memory.NewTeamRepository(memory.SeedTeams())
	repo := NewTeamRepository(next, newTestCache())
	ctx := t.Context()

	before, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}

	if err := repo.Create(ctx, team.Team{ID: "team-new", Name: "Harimau"}); err != nil {
		t.Fatalf("create team: %v", err)
	}

	after, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Fatalf("expected list to refresh after create: before=%d after=%d", len(before), len(after))
	}

	if _, exists, _ := repo.GetByID(ctx, "team-new"); !exists {
		t.Fatalf("expected created team to be visible")
	}
	if err := repo.Delete(ctx, "team-new"); err != nil {
		t.Fatalf("delete team: %v", err)
	}
	if _, exists, _ := repo.GetByID(ctx, "team-new"); exists {
		t.Fatalf("expected deleted team to be gone")
	}
}

func TestPlayerRepository_ListByTeamRefreshesAfterWrite(t *testing.T) {
	next := memory.NewPlayerRepository(memory.SeedPlayers())
	repo := NewPlayerRepository(next, newTestCache())
	ctx := context.Background()

	players, err := repo.ListByTeam(ctx, memory.TeamIDGaruda)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}

	removed, err := repo.DeleteByTeam(ctx, memory.TeamIDGaruda)
	if err != nil || removed != len(players) {
		t.Fatalf("unexpected delete result: removed=%d err=%v", removed, err)
	}

	players, err = repo.ListByTeam(ctx, memory.TeamIDGaruda)
	if err != nil || len(players) != 0 {
		t.Fatalf("expected empty roster after delete, got %d err=%v", len(players), err)
	}
}

func TestTournamentRepository_UpsertInvalidates(t *testing.T) {
	repo := NewTournamentRepository(memory.NewTournamentRepository(nil), newTestCache())
	ctx := t.Context()

	if _, exists, _ := repo.Get(ctx); exists {
		t.Fatalf("expected no tournament yet")
	}
	if err := repo.Upsert(ctx, tournament.Tournament{ID: tournament.SingletonID, Name: "Cup", StartDate: "2026-01-01", EndDate: "2026-01-02"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, exists, err := repo.Get(ctx)
	if err != nil || !exists || got.Name != "Cup" {
		t.Fatalf("expected fresh tournament, got %+v exists=%v err=%v", got, exists, err)
	}
}
