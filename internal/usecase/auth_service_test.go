package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"

	"github.com/riskibarqy/football-tournament/internal/domain/user"
	"github.com/riskibarqy/football-tournament/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-tournament/internal/platform/logging"
)

func newAuthServiceForTest(repos testRepos, clock clockwork.Clock) *AuthService {
	return NewAuthService(
		repos.users,
		repos.teams,
		AuthConfig{Secret: []byte("test-secret"), TokenTTL: time.Hour, BcryptCost: bcrypt.MinCost},
		&sequentialIDGenerator{prefix: "user"},
		logging.NewNop(),
		clock,
	)
}

func TestAuthService_RegisterLoginVerify(t *testing.T) {
	repos := newSeededRepos()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC))
	service := newAuthServiceForTest(repos, clock)

	registered, err := service.Register(t.Context(), RegisterInput{
		Username: " captain1 ",
		Password: "secret123",
		Role:     user.RoleCaptain,
		TeamID:   memory.TeamIDGaruda,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if registered.Username != "captain1" || registered.PasswordHash == "secret123" {
		t.Fatalf("unexpected registered user: %+v", registered)
	}

	token, err := service.Login(t.Context(), "captain1", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !token.ExpiresAt.Equal(clock.Now().UTC().Add(time.Hour)) {
		t.Fatalf("unexpected expiry: %v", token.ExpiresAt)
	}

	principal, err := service.VerifyAccessToken(t.Context(), token.AccessToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if principal.UserID != registered.ID || principal.Role != user.RoleCaptain || principal.TeamID != memory.TeamIDGaruda {
		t.Fatalf("unexpected principal: %+v", principal)
	}
	if !principal.CanManageTeam(memory.TeamIDGaruda) || principal.CanManageTeam(memory.TeamIDRajawali) {
		t.Fatalf("unexpected team permissions for captain")
	}
}

func TestAuthService_Login_RejectsBadCredentials(t *testing.T) {
	repos := newSeededRepos()
	service := newAuthServiceForTest(repos, clockwork.NewFakeClock())

	if _, err := service.Register(t.Context(), RegisterInput{Username: "fan01", Password: "goodpass"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := service.Login(t.Context(), "fan01", "wrongpass"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized for wrong password, got %v", err)
	}
	if _, err := service.Login(t.Context(), "nobody", "goodpass"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized for unknown user, got %v", err)
	}
}

func TestAuthService_VerifyAccessToken_Expired(t *testing.T) {
	repos := newSeededRepos()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC))
	service := newAuthServiceForTest(repos, clock)

	if _, err := service.Register(t.Context(), RegisterInput{Username: "fan01", Password: "goodpass"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, err := service.Login(t.Context(), "fan01", "goodpass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	clock.Advance(2 * time.Hour)
	if _, err := service.VerifyAccessToken(t.Context(), token.AccessToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized for expired token, got %v", err)
	}
}

func TestAuthService_VerifyAccessToken_ReflectsRoleChange(t *testing.T) {
	repos := newSeededRepos()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC))
	service := newAuthServiceForTest(repos, clock)
	users := NewUserService(repos.users, repos.teams, logging.NewNop())

	registered, err := service.Register(t.Context(), RegisterInput{Username: "fan01", Password: "goodpass"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	token, err := service.Login(t.Context(), "fan01", "goodpass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := users.UpdateRole(t.Context(), registered.ID, user.RoleManagement, ""); err != nil {
		t.Fatalf("update role: %v", err)
	}

	principal, err := service.VerifyAccessToken(t.Context(), token.AccessToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if principal.Role != user.RoleManagement {
		t.Fatalf("expected promoted role on existing token, got %s", principal.Role)
	}
}

func TestAuthService_Register_Rules(t *testing.T) {
	repos := newSeededRepos()
	service := newAuthServiceForTest(repos, clockwork.NewFakeClock())

	tests := []struct {
		name      string
		input     RegisterInput
		targetErr error
	}{
		{name: "management cannot self register", input: RegisterInput{Username: "boss", Password: "secret1", Role: user.RoleManagement}, targetErr: ErrForbidden},
		{name: "captain needs team", input: RegisterInput{Username: "cap", Password: "secret1", Role: user.RoleCaptain}, targetErr: ErrInvalidInput},
		{name: "captain team must exist", input: RegisterInput{Username: "cap", Password: "secret1", Role: user.RoleCaptain, TeamID: "ghost"}, targetErr: ErrTeamNotFound},
		{name: "short password", input: RegisterInput{Username: "fan", Password: "123"}, targetErr: ErrInvalidInput},
		{name: "unknown role", input: RegisterInput{Username: "fan", Password: "secret1", Role: "referee"}, targetErr: ErrInvalidInput},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := service.Register(t.Context(), tc.input); !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected %v, got %v", tc.targetErr, err)
			}
		})
	}

	if _, err := service.Register(t.Context(), RegisterInput{Username: "taken", Password: "secret1"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := service.Register(t.Context(), RegisterInput{Username: "TAKEN", Password: "secret1"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for duplicate username, got %v", err)
	}
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	repos := newSeededRepos()
	service := newAuthServiceForTest(repos, clockwork.NewFakeClock())

	admin, created, err := service.EnsureAdmin(t.Context(), "admin", "admin-pass")
	if err != nil || !created {
		t.Fatalf("expected admin to be created: created=%v err=%v", created, err)
	}
	if admin.Role != user.RoleManagement {
		t.Fatalf("expected management role, got %s", admin.Role)
	}

	_, created, err = service.EnsureAdmin(t.Context(), "admin", "admin-pass")
	if err != nil || created {
		t.Fatalf("expected existing admin to be reused: created=%v err=%v", created, err)
	}
}
