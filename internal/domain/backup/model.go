package backup

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

const FormatVersion = 1

const (
	CollectionTeams      = "teams"
	CollectionPlayers    = "players"
	CollectionMatches    = "matches"
	CollectionUsers      = "users"
	CollectionTournament = "tournament"
)

// Collections lists every collection in insert order; restore deletes in
// the reverse order.
var Collections = []string{
	CollectionTeams,
	CollectionPlayers,
	CollectionMatches,
	CollectionUsers,
	CollectionTournament,
}

// Document is one stored record kept verbatim.
type Document = json.RawMessage

// Snapshot is a full dump of every collection.
type Snapshot struct {
	Version     int                   `json:"version"`
	CreatedAt   time.Time             `json:"created_at"`
	Collections map[string][]Document `json:"collections"`
}

func (s Snapshot) Validate() error {
	if s.Version != FormatVersion {
		return fmt.Errorf("unsupported backup version %d", s.Version)
	}
	for name := range s.Collections {
		if !slices.Contains(Collections, name) {
			return fmt.Errorf("unknown collection %q", name)
		}
	}
	return nil
}

// Count returns the number of documents across all collections.
func (s Snapshot) Count() int {
	total := 0
	for _, docs := range s.Collections {
		total += len(docs)
	}
	return total
}
