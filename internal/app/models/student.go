package models

import "time"

// Student represents one registrant's record, linked to exactly one exam.
// Photo holds the stored asset filename, not the original upload name.
type Student struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Surname       string    `json:"surname"`
	FatherName    string    `json:"father_name,omitempty"`
	FatherSurname string    `json:"father_surname,omitempty"`
	MotherName    string    `json:"mother_name,omitempty"`
	MotherSurname string    `json:"mother_surname,omitempty"`
	Phone         string    `json:"phone"`
	School        string    `json:"school"`
	Grade         string    `json:"grade"`
	Address       string    `json:"address"`
	Birthday      time.Time `json:"birthday"`
	Photo         string    `json:"photo"`
	Language      string    `json:"language"`
	ExamID        int64     `json:"exam_id"`
	CreatedAt     time.Time `json:"created_at"`
}
