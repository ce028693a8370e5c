package tournament

import (
	"fmt"
	"time"
)

// SingletonID is the fixed key of the only tournament record.
const SingletonID = "current"

// Tournament describes the competition itself. Dates use YYYY-MM-DD.
type Tournament struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (t Tournament) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("tournament name is required")
	}
	start, err := time.Parse(time.DateOnly, t.StartDate)
	if err != nil {
		return fmt.Errorf("start date must be YYYY-MM-DD")
	}
	end, err := time.Parse(time.DateOnly, t.EndDate)
	if err != nil {
		return fmt.Errorf("end date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return fmt.Errorf("end date must not be before start date")
	}

	return nil
}
