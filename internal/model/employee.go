package model

import "time"

// Employee is a caregiver on the team roster.
type Employee struct {
	ID         int       `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Position   string    `db:"position" json:"position"`
	HourlyRate float64   `db:"hourly_rate" json:"hourly_rate"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
