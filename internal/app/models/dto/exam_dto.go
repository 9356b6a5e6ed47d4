package dto

// CreateExamRequest carries the form fields for exam creation
type CreateExamRequest struct {
	Name        string `form:"name" json:"name" binding:"required"`
	Description string `form:"description" json:"description"`
	Date        string `form:"date" json:"date"`
}

// UpdateExamRequest carries the form fields for exam editing.
// Name presence is checked in the service so the error names the field.
type UpdateExamRequest struct {
	Name        string `form:"name" json:"name"`
	Description string `form:"description" json:"description"`
	Date        string `form:"date" json:"date"`
}

// ExamResponse represents an exam in API responses
type ExamResponse struct {
	ID          int64  `json:"id" example:"1"`
	Name        string `json:"name" example:"Spring Placement Exam"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty" example:"2026-05-10"`
}
