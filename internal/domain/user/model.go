package user

import (
	"fmt"
	"time"
)

// Role gates which HTTP operations a user may perform.
type Role string

const (
	RoleManagement Role = "management"
	RoleCaptain    Role = "captain"
	RoleSpectator  Role = "spectator"
)

func (r Role) Valid() bool {
	switch r {
	case RoleManagement, RoleCaptain, RoleSpectator:
		return true
	}
	return false
}

// User is an account able to sign in to the tournament API.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Role         Role      `json:"role"`
	TeamID       string    `json:"team_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if n := len(u.Username); n < 3 || n > 50 {
		return fmt.Errorf("username must be between 3 and 50 characters")
	}
	if u.PasswordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	if !u.Role.Valid() {
		return fmt.Errorf("invalid role: %s", u.Role)
	}
	if u.Role == RoleCaptain && u.TeamID == "" {
		return fmt.Errorf("captain must be assigned to a team")
	}

	return nil
}

// CanManageTeam reports whether the user may edit the given team's roster.
func (u User) CanManageTeam(teamID string) bool {
	switch u.Role {
	case RoleManagement:
		return true
	case RoleCaptain:
		return teamID != "" && u.TeamID == teamID
	}
	return false
}
