package id

import "testing"

func TestUUIDGenerator_NewID(t *testing.T) {
	gen := NewUUIDGenerator()

	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}

	if first == second {
		t.Fatalf("expected distinct ids, got %s twice", first)
	}
	if !IsValid(first) {
		t.Fatalf("expected valid uuid, got %s", first)
	}
	if IsValid("not-a-uuid") {
		t.Fatalf("expected invalid uuid to be rejected")
	}
}
