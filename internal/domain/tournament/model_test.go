package tournament

import "testing"

func TestTournament_Validate(t *testing.T) {
	valid := Tournament{Name: "Liga Kampung", StartDate: "2026-07-01", EndDate: "2026-07-20"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sameDay := valid
	sameDay.EndDate = sameDay.StartDate
	if err := sameDay.Validate(); err != nil {
		t.Fatalf("expected single-day tournament to be valid: %v", err)
	}

	reversed := valid
	reversed.EndDate = "2026-06-30"
	if err := reversed.Validate(); err == nil {
		t.Fatalf("expected error for end before start")
	}

	badDate := valid
	badDate.StartDate = "01/07/2026"
	if err := badDate.Validate(); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}
