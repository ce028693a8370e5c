package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/football-tournament/internal/domain/tournament"
	"github.com/riskibarqy/football-tournament/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-tournament/internal/platform/logging"
)

func TestTournamentService_GetBeforeAndAfterUpsert(t *testing.T) {
	service := NewTournamentService(memory.NewTournamentRepository(nil), logging.NewNop())
	fixedNow := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return fixedNow }

	if _, err := service.Get(t.Context()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found before configuration, got %v", err)
	}

	saved, err := service.Upsert(t.Context(), UpsertTournamentInput{
		Name:      "Piala Kemerdekaan",
		Location:  "Jakarta",
		StartDate: "2026-07-01",
		EndDate:   "2026-08-17",
	})
	if err != nil {
		t.Fatalf("upsert tournament: %v", err)
	}
	if saved.ID != tournament.SingletonID || !saved.UpdatedAt.Equal(fixedNow) {
		t.Fatalf("unexpected tournament: %+v", saved)
	}

	got, err := service.Get(t.Context())
	if err != nil || got.Name != "Piala Kemerdekaan" {
		t.Fatalf("unexpected get result: %+v err=%v", got, err)
	}

	_, err = service.Upsert(t.Context(), UpsertTournamentInput{Name: "Bad", StartDate: "2026-08-01", EndDate: "2026-07-01"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for reversed dates, got %v", err)
	}
}
