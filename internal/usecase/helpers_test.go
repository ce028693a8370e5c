package usecase

import (
	"fmt"
	"sync/atomic"

	"github.com/riskibarqy/football-tournament/internal/infrastructure/repository/memory"
)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

// sequentialIDGenerator issues prefix-1, prefix-2, ... and is safe for
// concurrent use.
type sequentialIDGenerator struct {
	prefix string
	next   atomic.Int64
}

func (g *sequentialIDGenerator) NewID() (string, error) {
	return fmt.Sprintf("%s-%d", g.prefix, g.next.Add(1)), nil
}

type testRepos struct {
	users       *memory.UserRepository
	teams       *memory.TeamRepository
	players     *memory.PlayerRepository
	matches     *memory.MatchRepository
	tournaments *memory.TournamentRepository
}

func newSeededRepos() testRepos {
	return testRepos{
		users:       memory.NewUserRepository(nil),
		teams:       memory.NewTeamRepository(memory.SeedTeams()),
		players:     memory.NewPlayerRepository(memory.SeedPlayers()),
		matches:     memory.NewMatchRepository(memory.SeedMatches()),
		tournaments: memory.NewTournamentRepository(nil),
	}
}
