package team

import (
	"fmt"
	"time"
)

// Team is a club registered in the tournament.
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ShortName string    `json:"short_name"`
	Coach     string    `json:"coach"`
	LogoURL   string    `json:"logo_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if n := len(t.Name); n < 2 || n > 100 {
		return fmt.Errorf("team name must be between 2 and 100 characters")
	}

	return nil
}
