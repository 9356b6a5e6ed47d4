package services

import (
	"context"

	"github.com/tolga/examreg/internal/app/models"
)

// ExamStore is the persistence surface exam-facing services depend on.
// Implemented by repositories.ExamRepository.
type ExamStore interface {
	Create(ctx context.Context, exam *models.Exam) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Exam, error)
	GetAll(ctx context.Context) ([]models.Exam, error)
	Update(ctx context.Context, exam *models.Exam) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// StudentStore is the persistence surface student-facing services depend on.
// Implemented by repositories.StudentRepository.
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetAllByExam(ctx context.Context, examID int64) ([]models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}
