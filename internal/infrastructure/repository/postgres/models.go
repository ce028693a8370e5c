package postgres

import "time"

type userTableModel struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	TeamID       string    `db:"team_id"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type teamTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	ShortName string    `db:"short_name"`
	Coach     string    `db:"coach"`
	LogoURL   string    `db:"logo_url"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type playerTableModel struct {
	ID           string    `db:"id"`
	TeamID       string    `db:"team_id"`
	Name         string    `db:"name"`
	Position     string    `db:"position"`
	JerseyNumber int       `db:"jersey_number"`
	IsSubstitute bool      `db:"is_substitute"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// matchTableModel stores events as a JSONB array.
type matchTableModel struct {
	ID         string     `db:"id"`
	HomeTeamID string     `db:"home_team_id"`
	AwayTeamID string     `db:"away_team_id"`
	KickoffAt  *time.Time `db:"kickoff_at"`
	Venue      string     `db:"venue"`
	Status     string     `db:"status"`
	HomeScore  int        `db:"home_score"`
	AwayScore  int        `db:"away_score"`
	Events     string     `db:"events"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
}

type tournamentTableModel struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Location    string    `db:"location"`
	StartDate   string    `db:"start_date"`
	EndDate     string    `db:"end_date"`
	UpdatedAt   time.Time `db:"updated_at"`
}
