package postgres

import (
	"database/sql"
	"errors"

	"github.com/bytedance/sonic"
	"github.com/lib/pq"

	"github.com/riskibarqy/football-tournament/internal/domain/match"
)

const uniqueViolationCode = "23505"

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isUniqueViolation reports whether err is a unique violation on constraint.
// An empty constraint matches any unique violation.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if string(pqErr.Code) != uniqueViolationCode {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

func encodeEvents(events []match.Event) (string, error) {
	if events == nil {
		events = []match.Event{}
	}
	raw, err := sonic.Marshal(events)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeEvents(raw string) ([]match.Event, error) {
	if raw == "" || raw == "null" {
		return []match.Event{}, nil
	}
	var events []match.Event
	if err := sonic.UnmarshalString(raw, &events); err != nil {
		return nil, err
	}
	return events, nil
}
