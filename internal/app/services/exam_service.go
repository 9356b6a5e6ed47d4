package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tolga/examreg/internal/app/models"
	"github.com/tolga/examreg/internal/app/models/dto"
	"github.com/tolga/examreg/internal/pkg/apperrors"
)

// ExamService defines the interface for exam operations
type ExamService interface {
	CreateExam(ctx context.Context, req *dto.CreateExamRequest) (*dto.ExamResponse, error)
	UpdateExam(ctx context.Context, id int64, req *dto.UpdateExamRequest) (*dto.ExamResponse, error)
	GetExamByID(ctx context.Context, id int64) (*dto.ExamResponse, error)
	GetAllExams(ctx context.Context) ([]dto.ExamResponse, error)
}

// examServiceImpl implements ExamService
type examServiceImpl struct {
	examStore ExamStore
}

// NewExamService creates a new ExamService
func NewExamService(examStore ExamStore) ExamService {
	return &examServiceImpl{examStore: examStore}
}

// toExamResponse converts an Exam model to its response DTO
func toExamResponse(exam *models.Exam) *dto.ExamResponse {
	return &dto.ExamResponse{
		ID:          exam.ID,
		Name:        exam.Name,
		Description: exam.Description,
		Date:        exam.Date,
	}
}

// CreateExam creates a new exam
func (s *examServiceImpl) CreateExam(ctx context.Context, req *dto.CreateExamRequest) (*dto.ExamResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewValidationError("name", "invalid exam name")
	}

	exam := &models.Exam{
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
	}

	id, err := s.examStore.Create(ctx, exam)
	if err != nil {
		return nil, fmt.Errorf("error creating exam: %w", err)
	}
	exam.ID = id

	return toExamResponse(exam), nil
}

// UpdateExam overwrites an exam's name, description and date.
// An empty name rejects the whole update; nothing is written.
func (s *examServiceImpl) UpdateExam(ctx context.Context, id int64, req *dto.UpdateExamRequest) (*dto.ExamResponse, error) {
	exam, err := s.examStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewValidationError("name", "invalid exam name")
	}

	exam.Name = req.Name
	exam.Description = req.Description
	exam.Date = req.Date

	if err := s.examStore.Update(ctx, exam); err != nil {
		return nil, err
	}

	return toExamResponse(exam), nil
}

// GetExamByID retrieves one exam
func (s *examServiceImpl) GetExamByID(ctx context.Context, id int64) (*dto.ExamResponse, error) {
	exam, err := s.examStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toExamResponse(exam), nil
}

// GetAllExams retrieves all exams
func (s *examServiceImpl) GetAllExams(ctx context.Context) ([]dto.ExamResponse, error) {
	exams, err := s.examStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting exams: %w", err)
	}

	responses := make([]dto.ExamResponse, 0, len(exams))
	for i := range exams {
		responses = append(responses, *toExamResponse(&exams[i]))
	}
	return responses, nil
}
