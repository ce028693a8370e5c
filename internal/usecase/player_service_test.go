package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/football-tournament/internal/domain/player"
	"github.com/riskibarqy/football-tournament/internal/domain/roster"
	"github.com/riskibarqy/football-tournament/internal/domain/team"
	cacherepo "github.com/riskibarqy/football-tournament/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/football-tournament/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/football-tournament/internal/platform/cache"
	"github.com/riskibarqy/football-tournament/internal/platform/lock"
	"github.com/riskibarqy/football-tournament/internal/platform/logging"
)

const emptyTeamID = "team-empty"

func newPlayerServiceForTest(players []player.Player) (*PlayerService, *memory.PlayerRepository) {
	teams := memory.NewTeamRepository([]team.Team{{ID: emptyTeamID, Name: "Empty FC"}})
	playerRepo := memory.NewPlayerRepository(players)
	service := NewPlayerService(teams, playerRepo, roster.DefaultRules(), nil, &sequentialIDGenerator{prefix: "player"}, logging.NewNop())
	return service, playerRepo
}

func TestPlayerService_Create_FillsStartersThenSubstitutes(t *testing.T) {
	for n := 0; n <= 12; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			service, repo := newPlayerServiceForTest(nil)

			for i := 1; i <= n; i++ {
				_, err := service.Create(t.Context(), CreatePlayerInput{
					TeamID:       emptyTeamID,
					Name:         fmt.Sprintf("Player %d", i),
					JerseyNumber: i,
				})
				if i <= 10 && err != nil {
					t.Fatalf("create player %d: %v", i, err)
				}
				if i > 10 && !errors.Is(err, roster.ErrRosterFull) {
					t.Fatalf("expected roster full for player %d, got %v", i, err)
				}
			}

			players, _ := repo.ListByTeam(t.Context(), emptyTeamID)
			counts := roster.CountPlayers(players)
			if counts.Starters != min(n, 7) {
				t.Fatalf("expected %d starters, got %d", min(n, 7), counts.Starters)
			}
			if counts.Substitutes != max(0, min(n-7, 3)) {
				t.Fatalf("expected %d substitutes, got %d", max(0, min(n-7, 3)), counts.Substitutes)
			}
		})
	}
}

func TestPlayerService_Create_SevenStartersTwoSubsScenario(t *testing.T) {
	var existing []player.Player
	for i := 1; i <= 9; i++ {
		existing = append(existing, player.Player{
			ID:           fmt.Sprintf("existing-%d", i),
			TeamID:       emptyTeamID,
			Name:         fmt.Sprintf("Existing %d", i),
			JerseyNumber: i,
			IsSubstitute: i > 7,
		})
	}
	service, _ := newPlayerServiceForTest(existing)

	created, err := service.Create(t.Context(), CreatePlayerInput{TeamID: emptyTeamID, Name: "Tenth", JerseyNumber: 10})
	if err != nil {
		t.Fatalf("create tenth player: %v", err)
	}
	if !created.IsSubstitute {
		t.Fatalf("expected tenth player to be the third substitute")
	}

	_, err = service.Create(t.Context(), CreatePlayerInput{TeamID: emptyTeamID, Name: "Eleventh", JerseyNumber: 11})
	if !errors.Is(err, roster.ErrRosterFull) {
		t.Fatalf("expected roster full, got %v", err)
	}
}

func TestPlayerService_Create_RejectsDuplicateJerseyForStarterAndSubstitute(t *testing.T) {
	existing := []player.Player{
		{ID: "starter", TeamID: emptyTeamID, Name: "Starter", JerseyNumber: 4},
		{ID: "sub", TeamID: emptyTeamID, Name: "Sub", JerseyNumber: 14, IsSubstitute: true},
	}
	service, _ := newPlayerServiceForTest(existing)

	for _, number := range []int{4, 14} {
		_, err := service.Create(t.Context(), CreatePlayerInput{TeamID: emptyTeamID, Name: "New", JerseyNumber: number})
		if !errors.Is(err, roster.ErrDuplicateJersey) {
			t.Fatalf("jersey %d: expected duplicate jersey, got %v", number, err)
		}
		var dup *roster.DuplicateJerseyError
		if !errors.As(err, &dup) || dup.Number != number {
			t.Fatalf("jersey %d: expected typed duplicate error, got %v", number, err)
		}
	}
}

func TestPlayerService_Create_ValidatesInput(t *testing.T) {
	service, _ := newPlayerServiceForTest(nil)

	_, err := service.Create(t.Context(), CreatePlayerInput{TeamID: emptyTeamID, Name: "X", JerseyNumber: 0})
	if !errors.Is(err, roster.ErrInvalidJerseyNumber) {
		t.Fatalf("expected invalid jersey number, got %v", err)
	}

	_, err = service.Create(t.Context(), CreatePlayerInput{TeamID: "missing", Name: "X", JerseyNumber: 5})
	if !errors.Is(err, ErrTeamNotFound) || !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected team not found, got %v", err)
	}

	_, err = service.Create(t.Context(), CreatePlayerInput{TeamID: emptyTeamID, Name: "  ", JerseyNumber: 5})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestPlayerService_Create_IgnoresSubstituteHint(t *testing.T) {
	service, _ := newPlayerServiceForTest(nil)
	wantSub := true

	created, err := service.Create(t.Context(), CreatePlayerInput{
		TeamID:       emptyTeamID,
		Name:         "Keen Bencher",
		JerseyNumber: 21,
		IsSubstitute: &wantSub,
	})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	if created.IsSubstitute {
		t.Fatalf("expected computed starter placement to win over hint")
	}
}

func TestPlayerService_Create_ConcurrentCreationsRespectCaps(t *testing.T) {
	service, repo := newPlayerServiceForTest(nil)

	const attempts = 30
	start := make(chan struct{})
	var wg conc.WaitGroup
	for i := 1; i <= attempts; i++ {
		wg.Go(func() {
			<-start
			_, err := service.Create(t.Context(), CreatePlayerInput{
				TeamID:       emptyTeamID,
				Name:         fmt.Sprintf("Racer %d", i),
				JerseyNumber: i,
			})
			if err != nil && !errors.Is(err, roster.ErrRosterFull) {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
	close(start)
	wg.Wait()

	players, _ := repo.ListByTeam(t.Context(), emptyTeamID)
	counts := roster.CountPlayers(players)
	if counts.Starters != 7 || counts.Substitutes != 3 {
		t.Fatalf("expected 7 starters and 3 substitutes, got %+v", counts)
	}
}

func TestPlayerService_Update_JerseyChecks(t *testing.T) {
	existing := []player.Player{
		{ID: "a", TeamID: emptyTeamID, Name: "A", JerseyNumber: 7},
		{ID: "b", TeamID: emptyTeamID, Name: "B", JerseyNumber: 8},
	}
	service, _ := newPlayerServiceForTest(existing)
	fixedNow := time.Date(2026, 7, 2, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return fixedNow }

	taken := 8
	_, err := service.Update(t.Context(), "a", UpdatePlayerInput{JerseyNumber: &taken})
	if !errors.Is(err, roster.ErrDuplicateJersey) {
		t.Fatalf("expected duplicate jersey, got %v", err)
	}

	same := 7
	name := "Renamed"
	updated, err := service.Update(t.Context(), "a", UpdatePlayerInput{JerseyNumber: &same, Name: &name})
	if err != nil {
		t.Fatalf("update with own jersey: %v", err)
	}
	if updated.Name != "Renamed" || !updated.UpdatedAt.Equal(fixedNow) {
		t.Fatalf("unexpected updated player: %+v", updated)
	}

	_, err = service.Update(t.Context(), "missing", UpdatePlayerInput{Name: &name})
	if !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("expected player not found, got %v", err)
	}
}

func TestPlayerService_Delete_DoesNotRebalance(t *testing.T) {
	var existing []player.Player
	for i := 1; i <= 8; i++ {
		existing = append(existing, player.Player{
			ID:           fmt.Sprintf("p%d", i),
			TeamID:       emptyTeamID,
			Name:         fmt.Sprintf("P%d", i),
			JerseyNumber: i,
			IsSubstitute: i == 8,
		})
	}
	service, repo := newPlayerServiceForTest(existing)

	if err := service.Delete(t.Context(), "p1"); err != nil {
		t.Fatalf("delete player: %v", err)
	}

	sub, _, _ := repo.GetByID(t.Context(), "p8")
	if !sub.IsSubstitute {
		t.Fatalf("expected substitute to stay on the bench after a starter leaves")
	}
}

// slowReadPlayerRepo holds its first ListByTeam call after reading, like a
// request that loaded rows just before a concurrent insert.
type slowReadPlayerRepo struct {
	*memory.PlayerRepository
	loaded chan struct{}
	resume chan struct{}
	once   sync.Once
}

func (r *slowReadPlayerRepo) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	items, err := r.PlayerRepository.ListByTeam(ctx, teamID)
	r.once.Do(func() {
		close(r.loaded)
		<-r.resume
	})
	return items, err
}

func TestPlayerService_Create_RosterCheckIgnoresStaleCache(t *testing.T) {
	teams := memory.NewTeamRepository([]team.Team{{ID: emptyTeamID, Name: "Empty FC"}})
	base := memory.NewPlayerRepository(nil)
	slow := &slowReadPlayerRepo{PlayerRepository: base, loaded: make(chan struct{}), resume: make(chan struct{})}
	cached := cacherepo.NewPlayerRepository(slow, basecache.New(basecache.NewMemoryStore(time.Minute), logging.NewNop()))
	service := NewPlayerService(teams, cached, roster.DefaultRules(), nil, &sequentialIDGenerator{prefix: "player"}, logging.NewNop())

	var wg conc.WaitGroup
	wg.Go(func() {
		if _, err := cached.ListByTeam(t.Context(), emptyTeamID); err != nil {
			t.Errorf("list players: %v", err)
		}
	})
	<-slow.loaded

	if _, err := service.Create(t.Context(), CreatePlayerInput{TeamID: emptyTeamID, Name: "First Nine", JerseyNumber: 9}); err != nil {
		t.Fatalf("create first player: %v", err)
	}
	close(slow.resume)
	wg.Wait()

	_, err := service.Create(t.Context(), CreatePlayerInput{TeamID: emptyTeamID, Name: "Second Nine", JerseyNumber: 9})
	if !errors.Is(err, roster.ErrDuplicateJersey) {
		t.Fatalf("expected duplicate jersey, got %v", err)
	}

	stored, _ := base.ListByTeam(t.Context(), emptyTeamID)
	if len(stored) != 1 {
		t.Fatalf("expected one stored player, got %d", len(stored))
	}
}

// pausedInsertPlayerRepo blocks its first Create until release is closed.
type pausedInsertPlayerRepo struct {
	*memory.PlayerRepository
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (r *pausedInsertPlayerRepo) Create(ctx context.Context, p player.Player) error {
	r.once.Do(func() {
		close(r.entered)
		<-r.release
	})
	return r.PlayerRepository.Create(ctx, p)
}

func TestTeamService_Delete_WaitsForInFlightPlayerCreate(t *testing.T) {
	teams := memory.NewTeamRepository([]team.Team{{ID: emptyTeamID, Name: "Empty FC"}})
	players := &pausedInsertPlayerRepo{
		PlayerRepository: memory.NewPlayerRepository(nil),
		entered:          make(chan struct{}),
		release:          make(chan struct{}),
	}
	teamLocks := lock.NewKeyedMutex()
	playerService := NewPlayerService(teams, players, roster.DefaultRules(), teamLocks, &sequentialIDGenerator{prefix: "player"}, logging.NewNop())
	teamService := NewTeamService(teams, players, teamLocks, staticIDGenerator{id: "unused"}, logging.NewNop())

	var wg conc.WaitGroup
	wg.Go(func() {
		if _, err := playerService.Create(t.Context(), CreatePlayerInput{TeamID: emptyTeamID, Name: "Late Signing", JerseyNumber: 5}); err != nil {
			t.Errorf("create player: %v", err)
		}
	})
	<-players.entered

	deleted := make(chan error, 1)
	go func() { deleted <- teamService.Delete(t.Context(), emptyTeamID) }()

	select {
	case err := <-deleted:
		t.Fatalf("team delete finished while a player insert was pending: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(players.release)
	wg.Wait()
	if err := <-deleted; err != nil {
		t.Fatalf("delete team: %v", err)
	}

	if _, exists, _ := teams.GetByID(t.Context(), emptyTeamID); exists {
		t.Fatalf("expected team to be deleted")
	}
	remaining, _ := players.ListByTeam(t.Context(), emptyTeamID)
	if len(remaining) != 0 {
		t.Fatalf("expected no orphaned players, got %+v", remaining)
	}
}
