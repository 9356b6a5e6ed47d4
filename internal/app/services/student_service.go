package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/tolga/examreg/internal/app/models"
	"github.com/tolga/examreg/internal/app/models/dto"
	"github.com/tolga/examreg/internal/pkg/apperrors"
	"github.com/tolga/examreg/internal/pkg/filestorage"
	"github.com/tolga/examreg/internal/pkg/logger"
)

// requiredStudentFields lists required form fields in check order; the
// first missing one is named in the validation error.
var requiredStudentFields = []string{
	"name", "surname", "grade", "school", "birthday", "address", "phone", "language",
}

// StudentService defines the interface for student operations
type StudentService interface {
	RegisterStudent(ctx context.Context, examID int64, form *dto.StudentForm, photo *multipart.FileHeader) (*dto.StudentResponse, error)
	UpdateStudent(ctx context.Context, id int64, form *dto.StudentForm, photo *multipart.FileHeader) (*dto.StudentResponse, error)
	DeleteStudent(ctx context.Context, id int64) (*dto.DeletedStudentResponse, error)
	GetStudentByID(ctx context.Context, id int64) (*dto.StudentResponse, error)
	GetStudentsByExam(ctx context.Context, examID int64) ([]dto.StudentResponse, error)
	GetBadge(ctx context.Context, id int64) (*dto.BadgeResponse, error)
}

// studentServiceImpl implements StudentService
type studentServiceImpl struct {
	studentStore StudentStore
	examStore    ExamStore
	photos       filestorage.PhotoStorage
}

// NewStudentService creates a new StudentService
func NewStudentService(studentStore StudentStore, examStore ExamStore, photos filestorage.PhotoStorage) StudentService {
	return &studentServiceImpl{
		studentStore: studentStore,
		examStore:    examStore,
		photos:       photos,
	}
}

// toStudentResponse converts a Student model to its response DTO
func toStudentResponse(student *models.Student) *dto.StudentResponse {
	return &dto.StudentResponse{
		ID:            student.ID,
		Name:          student.Name,
		Surname:       student.Surname,
		FatherName:    student.FatherName,
		FatherSurname: student.FatherSurname,
		MotherName:    student.MotherName,
		MotherSurname: student.MotherSurname,
		Phone:         student.Phone,
		School:        student.School,
		Grade:         student.Grade,
		Address:       student.Address,
		Birthday:      student.Birthday.Format("2006-01-02"),
		Photo:         student.Photo,
		PhotoURL:      "/api/v1/photos/" + student.Photo,
		Language:      student.Language,
		ExamID:        student.ExamID,
	}
}

// fieldValue returns the submitted value for a required form field name
func fieldValue(form *dto.StudentForm, field string) string {
	switch field {
	case "name":
		return form.Name
	case "surname":
		return form.Surname
	case "grade":
		return form.Grade
	case "school":
		return form.School
	case "birthday":
		return form.Birthday
	case "address":
		return form.Address
	case "phone":
		return form.Phone
	case "language":
		return form.Language
	}
	return ""
}

// validateStudentForm checks required fields in order and parses the
// birthday. Runs before any photo is stored so a rejected submission
// never leaves an orphaned asset behind.
func validateStudentForm(form *dto.StudentForm) (time.Time, error) {
	for _, field := range requiredStudentFields {
		if strings.TrimSpace(fieldValue(form, field)) == "" {
			return time.Time{}, apperrors.NewValidationError(field, fmt.Sprintf("please fill %s", field))
		}
	}
	return parseBirthday(form.Birthday)
}

// parseBirthday parses a YYYY-M-D date. Each segment must be numeric and
// the triple must name a real calendar date.
func parseBirthday(value string) (time.Time, error) {
	parts := strings.Split(value, "-")
	if len(parts) != 3 {
		return time.Time{}, apperrors.NewValidationError("birthday", fmt.Sprintf("invalid birthday %q, expected YYYY-M-D", value))
	}

	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return time.Time{}, apperrors.NewValidationError("birthday", fmt.Sprintf("invalid birthday %q, expected YYYY-M-D", value))
		}
		nums[i] = n
	}

	parsed := time.Date(nums[0], time.Month(nums[1]), nums[2], 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components, so an impossible date
	// like 2010-2-30 only shows up as a mismatch after the round trip.
	if parsed.Year() != nums[0] || int(parsed.Month()) != nums[1] || parsed.Day() != nums[2] {
		return time.Time{}, apperrors.NewValidationError("birthday", fmt.Sprintf("no such calendar date %q", value))
	}

	return parsed, nil
}

// applyForm overwrites all student fields from the submitted form values
func applyForm(student *models.Student, form *dto.StudentForm, birthday time.Time) {
	student.Name = form.Name
	student.Surname = form.Surname
	student.FatherName = form.FatherName
	student.FatherSurname = form.FatherSurname
	student.MotherName = form.MotherName
	student.MotherSurname = form.MotherSurname
	student.Phone = form.Phone
	student.School = form.School
	student.Grade = form.Grade
	student.Address = form.Address
	student.Birthday = birthday
	student.Language = form.Language
}

// RegisterStudent registers a new student for an exam. The photo is
// mandatory and is stored only after all field validations pass.
func (s *studentServiceImpl) RegisterStudent(ctx context.Context, examID int64, form *dto.StudentForm, photo *multipart.FileHeader) (*dto.StudentResponse, error) {
	exists, err := s.examStore.Exists(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("error checking exam: %w", err)
	}
	if !exists {
		return nil, apperrors.ErrExamNotFound
	}

	birthday, err := validateStudentForm(form)
	if err != nil {
		return nil, err
	}

	if photo == nil {
		return nil, apperrors.NewValidationError("photo", "please select photo")
	}

	storedName, err := s.photos.SaveFile(photo)
	if err != nil {
		return nil, err
	}

	student := &models.Student{ExamID: examID, Photo: storedName}
	applyForm(student, form, birthday)

	id, err := s.studentStore.Create(ctx, student)
	if err != nil {
		// The row never landed, so the freshly stored photo is already an orphan
		if delErr := s.photos.DeleteFile(storedName); delErr != nil {
			logger.Warn().Err(delErr).Str("photo", storedName).Msg("Unable to remove photo after failed registration")
		}
		return nil, err
	}
	student.ID = id

	return toStudentResponse(student), nil
}

// UpdateStudent overwrites a student's fields. A new photo is optional;
// when supplied and valid it replaces the old asset, which is then
// removed best-effort. When absent the old photo reference is kept.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id int64, form *dto.StudentForm, photo *multipart.FileHeader) (*dto.StudentResponse, error) {
	student, err := s.studentStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	birthday, err := validateStudentForm(form)
	if err != nil {
		return nil, err
	}

	oldPhoto := ""
	if photo != nil {
		storedName, err := s.photos.SaveFile(photo)
		if err != nil {
			// Record and old asset stay untouched
			return nil, err
		}
		oldPhoto = student.Photo
		student.Photo = storedName
	}

	applyForm(student, form, birthday)

	if err := s.studentStore.Update(ctx, student); err != nil {
		if photo != nil {
			if delErr := s.photos.DeleteFile(student.Photo); delErr != nil {
				logger.Warn().Err(delErr).Str("photo", student.Photo).Msg("Unable to remove photo after failed update")
			}
		}
		return nil, err
	}

	if oldPhoto != "" && oldPhoto != student.Photo {
		if delErr := s.photos.DeleteFile(oldPhoto); delErr != nil {
			logger.Warn().Err(delErr).Str("photo", oldPhoto).Msg("Unable to remove old photo")
		}
	}

	return toStudentResponse(student), nil
}

// DeleteStudent removes a student and, best-effort, its photo asset.
// A failed photo removal never fails the deletion.
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) (*dto.DeletedStudentResponse, error) {
	student, err := s.studentStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.studentStore.Delete(ctx, id); err != nil {
		return nil, err
	}

	if delErr := s.photos.DeleteFile(student.Photo); delErr != nil {
		logger.Warn().Err(delErr).Str("photo", student.Photo).Int64("studentID", id).Msg("Unable to remove photo of deleted student")
	}

	return &dto.DeletedStudentResponse{
		ID:      student.ID,
		Name:    student.Name,
		Surname: student.Surname,
	}, nil
}

// GetStudentByID retrieves one student
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id int64) (*dto.StudentResponse, error) {
	student, err := s.studentStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStudentResponse(student), nil
}

// GetStudentsByExam retrieves all students registered for one exam
func (s *studentServiceImpl) GetStudentsByExam(ctx context.Context, examID int64) ([]dto.StudentResponse, error) {
	exists, err := s.examStore.Exists(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("error checking exam: %w", err)
	}
	if !exists {
		return nil, apperrors.ErrExamNotFound
	}

	students, err := s.studentStore.GetAllByExam(ctx, examID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		responses = append(responses, *toStudentResponse(&students[i]))
	}
	return responses, nil
}

// GetBadge builds the single-student badge view
func (s *studentServiceImpl) GetBadge(ctx context.Context, id int64) (*dto.BadgeResponse, error) {
	student, err := s.studentStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	exam, err := s.examStore.GetByID(ctx, student.ExamID)
	if err != nil {
		return nil, err
	}

	return &dto.BadgeResponse{
		Student: *toStudentResponse(student),
		Exam:    *toExamResponse(exam),
	}, nil
}
