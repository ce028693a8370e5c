package main

import "testing"

func TestParseSteps(t *testing.T) {
	cases := []struct {
		name    string
		args    []string
		want    int
		wantErr bool
	}{
		{name: "default one step", args: nil, want: 1},
		{name: "explicit", args: []string{" 3 "}, want: 3},
		{name: "zero", args: []string{"0"}, wantErr: true},
		{name: "not a number", args: []string{"many"}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseSteps(tc.args)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestParseVersion_RejectsNegative(t *testing.T) {
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	got, err := parseVersion("1")
	if err != nil || got != 1 {
		t.Fatalf("expected version 1, got %d (%v)", got, err)
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("MIGRATION_TEST_FLAG", "")
	if !envBool("MIGRATION_TEST_FLAG", true) {
		t.Fatalf("expected fallback for empty value")
	}

	t.Setenv("MIGRATION_TEST_FLAG", "off")
	if envBool("MIGRATION_TEST_FLAG", true) {
		t.Fatalf("expected off to parse as false")
	}

	t.Setenv("MIGRATION_TEST_FLAG", "YES")
	if !envBool("MIGRATION_TEST_FLAG", false) {
		t.Fatalf("expected YES to parse as true")
	}
}
