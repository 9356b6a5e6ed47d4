package models

import "time"

// Exam represents an exam event that students register for
type Exam struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"date,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
