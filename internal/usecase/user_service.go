package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/football-tournament/internal/domain/team"
	"github.com/riskibarqy/football-tournament/internal/domain/user"
	"github.com/riskibarqy/football-tournament/internal/platform/logging"
)

type UserService struct {
	userRepo user.Repository
	teamRepo team.Repository
	logger   *logging.Logger
	now      func() time.Time
}

func NewUserService(userRepo user.Repository, teamRepo team.Repository, logger *logging.Logger) *UserService {
	if logger == nil {
		logger = logging.Default()
	}
	return &UserService{
		userRepo: userRepo,
		teamRepo: teamRepo,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *UserService) List(ctx context.Context) ([]user.User, error) {
	items, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return items, nil
}

// UpdateRole changes a user's role. teamID is required for captains and
// cleared for every other role.
func (s *UserService) UpdateRole(ctx context.Context, userID string, role user.Role, teamID string) (user.User, error) {
	userID = strings.TrimSpace(userID)
	teamID = strings.TrimSpace(teamID)
	if userID == "" {
		return user.User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if !role.Valid() {
		return user.User{}, fmt.Errorf("%w: invalid role %q", ErrInvalidInput, role)
	}

	item, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user by id: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: user=%s", ErrUserNotFound, userID)
	}

	if role == user.RoleCaptain {
		if teamID == "" {
			return user.User{}, fmt.Errorf("%w: captain must be assigned to a team", ErrInvalidInput)
		}
		_, teamExists, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return user.User{}, fmt.Errorf("get team by id: %w", err)
		}
		if !teamExists {
			return user.User{}, fmt.Errorf("%w: team=%s", ErrTeamNotFound, teamID)
		}
	} else {
		teamID = ""
	}

	previous := item.Role
	item.Role = role
	item.TeamID = teamID
	item.UpdatedAt = s.now().UTC()
	if err := s.userRepo.Update(ctx, item); err != nil {
		return user.User{}, fmt.Errorf("update user: %w", err)
	}

	s.logger.InfoContext(ctx, "user role updated",
		"user_id", item.ID,
		"from", previous,
		"to", item.Role,
		"team_id", item.TeamID,
	)

	return item, nil
}

// Delete removes userID. actorID is the caller, who may not delete themself.
func (s *UserService) Delete(ctx context.Context, userID, actorID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if userID == actorID {
		return fmt.Errorf("%w: cannot delete your own account", ErrInvalidInput)
	}

	_, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: user=%s", ErrUserNotFound, userID)
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.InfoContext(ctx, "user deleted", "user_id", userID, "actor_id", actorID)
	return nil
}
