package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"

	"github.com/riskibarqy/football-tournament/internal/domain/team"
	"github.com/riskibarqy/football-tournament/internal/domain/user"
	idgen "github.com/riskibarqy/football-tournament/internal/platform/id"
	"github.com/riskibarqy/football-tournament/internal/platform/logging"
)

const (
	minPasswordLength = 6
	// bcrypt ignores input beyond 72 bytes.
	maxPasswordLength = 72
)

// Principal is the authenticated caller resolved from an access token.
type Principal struct {
	UserID   string
	Username string
	Role     user.Role
	TeamID   string
}

func (p Principal) HasRole(roles ...user.Role) bool {
	for _, role := range roles {
		if p.Role == role {
			return true
		}
	}
	return false
}

// CanManageTeam reports whether the caller may edit teamID's roster.
func (p Principal) CanManageTeam(teamID string) bool {
	return user.User{Role: p.Role, TeamID: p.TeamID}.CanManageTeam(teamID)
}

type AuthConfig struct {
	Secret     []byte
	TokenTTL   time.Duration
	BcryptCost int
	Issuer     string
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     user.Role
	TeamID   string
}

type AuthToken struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	User        user.User
}

type AuthService struct {
	userRepo user.Repository
	teamRepo team.Repository
	cfg      AuthConfig
	idGen    idgen.Generator
	logger   *logging.Logger
	clock    clockwork.Clock
}

func NewAuthService(
	userRepo user.Repository,
	teamRepo team.Repository,
	cfg AuthConfig,
	idGen idgen.Generator,
	logger *logging.Logger,
	clock clockwork.Clock,
) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		cfg.BcryptCost = bcrypt.DefaultCost
	}

	return &AuthService{
		userRepo: userRepo,
		teamRepo: teamRepo,
		cfg:      cfg,
		idGen:    idGen,
		logger:   logger,
		clock:    clock,
	}
}

// Register creates a spectator or captain account. Management accounts come
// from EnsureAdmin or a role change by another manager.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Register")
	defer span.End()

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	input.TeamID = strings.TrimSpace(input.TeamID)
	if input.Role == "" {
		input.Role = user.RoleSpectator
	}

	if err := validateCredentials(input.Username, input.Password); err != nil {
		return user.User{}, err
	}
	if !input.Role.Valid() {
		return user.User{}, fmt.Errorf("%w: invalid role %q", ErrInvalidInput, input.Role)
	}
	if input.Role == user.RoleManagement {
		return user.User{}, fmt.Errorf("%w: management accounts cannot self-register", ErrForbidden)
	}
	if input.Role != user.RoleCaptain {
		input.TeamID = ""
	}
	if err := s.ensureCaptainTeam(ctx, input.Role, input.TeamID); err != nil {
		return user.User{}, err
	}

	return s.createUser(ctx, input)
}

// EnsureAdmin creates a management account with the given credentials when
// no user with that username exists yet.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (user.User, bool, error) {
	username = strings.TrimSpace(username)
	if err := validateCredentials(username, password); err != nil {
		return user.User{}, false, err
	}

	existing, exists, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return user.User{}, false, fmt.Errorf("get user by username: %w", err)
	}
	if exists {
		return existing, false, nil
	}

	created, err := s.createUser(ctx, RegisterInput{Username: username, Password: password, Role: user.RoleManagement})
	if err != nil {
		return user.User{}, false, err
	}
	return created, true, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (AuthToken, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return AuthToken{}, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	item, exists, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return AuthToken{}, fmt.Errorf("get user by username: %w", err)
	}
	if !exists {
		return AuthToken{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(item.PasswordHash), []byte(password)); err != nil {
		s.logger.WarnContext(ctx, "login rejected", "username", username)
		return AuthToken{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	now := s.clock.Now().UTC()
	expiresAt := now.Add(s.cfg.TokenTTL)
	claims := jwt.MapClaims{
		"sub":      item.ID,
		"username": item.Username,
		"role":     string(item.Role),
		"team_id":  item.TeamID,
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
	}
	if s.cfg.Issuer != "" {
		claims["iss"] = s.cfg.Issuer
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
	if err != nil {
		return AuthToken{}, fmt.Errorf("sign access token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in", "user_id", item.ID, "role", item.Role)

	return AuthToken{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        item,
	}, nil
}

// VerifyAccessToken validates the token and reloads the user so role and
// team changes apply to tokens already issued.
func (s *AuthService) VerifyAccessToken(ctx context.Context, token string) (Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Principal{}, fmt.Errorf("%w: access token is required", ErrUnauthorized)
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, fmt.Errorf("%w: access token expired", ErrUnauthorized)
		}
		return Principal{}, fmt.Errorf("%w: invalid access token", ErrUnauthorized)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, fmt.Errorf("%w: invalid token claims", ErrUnauthorized)
	}
	userID, err := claims.GetSubject()
	if err != nil || userID == "" {
		return Principal{}, fmt.Errorf("%w: token subject is missing", ErrUnauthorized)
	}

	item, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: load token user: %v", ErrDependencyUnavailable, err)
	}
	if !exists {
		return Principal{}, fmt.Errorf("%w: user no longer exists", ErrUnauthorized)
	}

	return Principal{
		UserID:   item.ID,
		Username: item.Username,
		Role:     item.Role,
		TeamID:   item.TeamID,
	}, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (user.User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return user.User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	item, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user by id: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: user=%s", ErrUserNotFound, userID)
	}
	return item, nil
}

func (s *AuthService) createUser(ctx context.Context, input RegisterInput) (user.User, error) {
	_, exists, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return user.User{}, fmt.Errorf("get user by username: %w", err)
	}
	if exists {
		return user.User{}, fmt.Errorf("%w: username %s is taken", ErrConflict, input.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}

	userID, err := s.idGen.NewID()
	if err != nil {
		return user.User{}, fmt.Errorf("generate user id: %w", err)
	}

	now := s.clock.Now().UTC()
	item := user.User{
		ID:           userID,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
		TeamID:       input.TeamID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := item.Validate(); err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.userRepo.Create(ctx, item); err != nil {
		return user.User{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered",
		"user_id", item.ID,
		"username", item.Username,
		"role", item.Role,
		"team_id", item.TeamID,
	)

	return item, nil
}

func (s *AuthService) ensureCaptainTeam(ctx context.Context, role user.Role, teamID string) error {
	if role != user.RoleCaptain {
		return nil
	}
	if teamID == "" {
		return fmt.Errorf("%w: captain must be assigned to a team", ErrInvalidInput)
	}
	_, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: team=%s", ErrTeamNotFound, teamID)
	}
	return nil
}

func validateCredentials(username, password string) error {
	if n := len(username); n < 3 || n > 50 {
		return fmt.Errorf("%w: username must be between 3 and 50 characters", ErrInvalidInput)
	}
	if n := len(password); n < minPasswordLength || n > maxPasswordLength {
		return fmt.Errorf("%w: password must be between %d and %d characters", ErrInvalidInput, minPasswordLength, maxPasswordLength)
	}
	return nil
}
