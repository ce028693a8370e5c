package user

import "testing"

func TestUser_Validate(t *testing.T) {
	base := User{ID: "u1", Username: "coach", PasswordHash: "hash", Role: RoleSpectator}

	tests := []struct {
		name    string
		mutate  func(*User)
		wantErr bool
	}{
		{name: "valid spectator", mutate: func(*User) {}},
		{name: "short username", mutate: func(u *User) { u.Username = "ab" }, wantErr: true},
		{name: "unknown role", mutate: func(u *User) { u.Role = "referee" }, wantErr: true},
		{name: "captain without team", mutate: func(u *User) { u.Role = RoleCaptain }, wantErr: true},
		{name: "captain with team", mutate: func(u *User) { u.Role = RoleCaptain; u.TeamID = "t1" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := base
			tc.mutate(&u)
			err := u.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestUser_CanManageTeam(t *testing.T) {
	captain := User{Role: RoleCaptain, TeamID: "t1"}
	if !captain.CanManageTeam("t1") {
		t.Fatalf("expected captain to manage own team")
	}
	if captain.CanManageTeam("t2") {
		t.Fatalf("expected captain to be denied other team")
	}
	if !(User{Role: RoleManagement}).CanManageTeam("t2") {
		t.Fatalf("expected management to manage any team")
	}
	if (User{Role: RoleSpectator}).CanManageTeam("t1") {
		t.Fatalf("expected spectator to be denied")
	}
}
