package roster

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/football-tournament/internal/domain/player"
)

const (
	MinJerseyNumber = 1
	MaxJerseyNumber = 99
)

var (
	ErrRosterFull          = errors.New("roster is full")
	ErrDuplicateJersey     = errors.New("jersey number already taken")
	ErrInvalidJerseyNumber = errors.New("invalid jersey number")
)

// DuplicateJerseyError names the player already wearing the number.
type DuplicateJerseyError struct {
	Number     int
	PlayerID   string
	PlayerName string
}

func (e *DuplicateJerseyError) Error() string {
	return fmt.Sprintf("%s: #%d is worn by %s (%s)", ErrDuplicateJersey, e.Number, e.PlayerName, e.PlayerID)
}

func (e *DuplicateJerseyError) Is(target error) bool {
	return target == ErrDuplicateJersey
}

// Rules caps how many starters and substitutes a team may register.
type Rules struct {
	MaxStarters    int
	MaxSubstitutes int
	MaxPlayers     int
}

func DefaultRules() Rules {
	return Rules{
		MaxStarters:    7,
		MaxSubstitutes: 3,
		MaxPlayers:     11,
	}
}

// Counts is a team's current roster split by substitute flag.
type Counts struct {
	Starters    int
	Substitutes int
}

func (c Counts) Total() int {
	return c.Starters + c.Substitutes
}

// CountPlayers partitions players by their substitute flag.
func CountPlayers(players []player.Player) Counts {
	var c Counts
	for _, p := range players {
		if p.IsSubstitute {
			c.Substitutes++
			continue
		}
		c.Starters++
	}
	return c
}

// Placement is the slot a new player is assigned to.
type Placement struct {
	IsSubstitute bool
}

// Assign decides where a new player goes given the team's current counts.
// The requested hint is ignored; placement always follows the counts.
func (r Rules) Assign(counts Counts, _ *bool) (Placement, error) {
	if counts.Total() >= r.MaxPlayers {
		return Placement{}, fmt.Errorf("%w: team already has %d players, max=%d", ErrRosterFull, counts.Total(), r.MaxPlayers)
	}
	if counts.Starters < r.MaxStarters {
		return Placement{IsSubstitute: false}, nil
	}
	if counts.Substitutes < r.MaxSubstitutes {
		return Placement{IsSubstitute: true}, nil
	}

	// Reachable only when MaxStarters+MaxSubstitutes < MaxPlayers or counts
	// were read under a race.
	return Placement{}, fmt.Errorf("%w: starters=%d/%d substitutes=%d/%d", ErrRosterFull, counts.Starters, r.MaxStarters, counts.Substitutes, r.MaxSubstitutes)
}

func ValidateJerseyNumber(number int) error {
	if number < MinJerseyNumber || number > MaxJerseyNumber {
		return fmt.Errorf("%w: %d must be between %d and %d", ErrInvalidJerseyNumber, number, MinJerseyNumber, MaxJerseyNumber)
	}
	return nil
}

// CheckJerseyAvailable fails when another player on the team already wears
// number. excludePlayerID skips the player being edited.
func CheckJerseyAvailable(number int, teammates []player.Player, excludePlayerID string) error {
	for _, p := range teammates {
		if p.ID == excludePlayerID {
			continue
		}
		if p.JerseyNumber == number {
			return &DuplicateJerseyError{Number: number, PlayerID: p.ID, PlayerName: p.Name}
		}
	}
	return nil
}
