package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tolga/examreg/internal/app/models"
	"github.com/tolga/examreg/internal/db"
	"github.com/tolga/examreg/internal/pkg/apperrors"
	"github.com/tolga/examreg/internal/pkg/logger"
)

var studentColumns = []string{
	"id", "name", "surname", "father_name", "father_surname",
	"mother_name", "mother_surname", "phone", "school", "grade",
	"address", "birthday", "photo", "language", "exam_id", "created_at",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// scanStudent scans one student row in studentColumns order
func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	var fatherName, fatherSurname, motherName, motherSurname sql.NullString
	err := row.Scan(
		&student.ID, &student.Name, &student.Surname, &fatherName, &fatherSurname,
		&motherName, &motherSurname, &student.Phone, &student.School, &student.Grade,
		&student.Address, &student.Birthday, &student.Photo, &student.Language,
		&student.ExamID, &student.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	student.FatherName = fatherName.String
	student.FatherSurname = fatherSurname.String
	student.MotherName = motherName.String
	student.MotherSurname = motherSurname.String
	return &student, nil
}

// Create inserts a new student after verifying the referenced exam still
// exists. Both steps run in one transaction so the FK can't go stale
// between the check and the insert.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (int64, error) {
	sqlQuery, args, err := r.sb.Insert("students").
		Columns(
			"name", "surname", "father_name", "father_surname",
			"mother_name", "mother_surname", "phone", "school", "grade",
			"address", "birthday", "photo", "language", "exam_id",
		).
		Values(
			student.Name, student.Surname, getNullString(student.FatherName), getNullString(student.FatherSurname),
			getNullString(student.MotherName), getNullString(student.MotherSurname), student.Phone, student.School,
			student.Grade, student.Address, student.Birthday, student.Photo, student.Language, student.ExamID,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id int64
	err = db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM exams WHERE id = $1)`, student.ExamID).Scan(&exists); err != nil {
			return fmt.Errorf("error checking exam existence: %w", err)
		}
		if !exists {
			return apperrors.ErrExamNotFound
		}
		return tx.QueryRow(ctx, sqlQuery, args...).Scan(&id)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrExamNotFound) {
			logger.Warn().Int64("examID", student.ExamID).Msg("Attempted to register student for non-existent exam")
			return 0, err
		}
		logger.Error().Err(err).Msg("Error executing create student query")
		return 0, fmt.Errorf("error inserting student: %w", err)
	}

	logger.Info().Int64("studentID", id).Int64("examID", student.ExamID).Msg("Student created successfully")
	return id, nil
}

// GetByID retrieves a student by its ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sqlQuery, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by ID SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sqlQuery, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Warn().Int64("studentID", id).Msg("Student not found by ID")
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row by ID")
		return nil, fmt.Errorf("error querying student ID=%d: %w", id, err)
	}

	return student, nil
}

// GetAllByExam retrieves all students registered for one exam
func (r *StudentRepository) GetAllByExam(ctx context.Context, examID int64) ([]models.Student, error) {
	sqlQuery, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"exam_id": examID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get students by exam SQL")
		return nil, fmt.Errorf("failed to build get students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Int64("examID", examID).Msg("Error executing get students by exam query")
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning student row")
			return nil, fmt.Errorf("failed to scan student row: %w", err)
		}
		students = append(students, *student)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating student rows")
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// Update overwrites all mutable fields of an existing student
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	sqlQuery, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"name":           student.Name,
			"surname":        student.Surname,
			"father_name":    getNullString(student.FatherName),
			"father_surname": getNullString(student.FatherSurname),
			"mother_name":    getNullString(student.MotherName),
			"mother_surname": getNullString(student.MotherSurname),
			"phone":          student.Phone,
			"school":         student.School,
			"grade":          student.Grade,
			"address":        student.Address,
			"birthday":       student.Birthday,
			"photo":          student.Photo,
			"language":       student.Language,
		}).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error building update student SQL")
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error executing update student query")
		return fmt.Errorf("error updating student ID=%d: %w", student.ID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		logger.Warn().Int64("studentID", student.ID).Msg("Attempted to update non-existent student")
		return apperrors.ErrStudentNotFound
	}

	logger.Info().Int64("studentID", student.ID).Msg("Student updated successfully")
	return nil
}

// Delete removes a student row
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	sqlQuery, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error building delete student SQL")
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student ID=%d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		logger.Warn().Int64("studentID", id).Msg("Attempted to delete non-existent student")
		return apperrors.ErrStudentNotFound
	}

	logger.Info().Int64("studentID", id).Msg("Student deleted successfully")
	return nil
}
