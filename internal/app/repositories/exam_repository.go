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
	"github.com/tolga/examreg/internal/pkg/apperrors"
	"github.com/tolga/examreg/internal/pkg/logger"
)

// ExamRepository handles exam database operations
type ExamRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewExamRepository creates a new ExamRepository
func NewExamRepository(db *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// getNullString converts an empty string to a SQL NULL
func getNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Create inserts a new exam and returns its assigned ID
func (r *ExamRepository) Create(ctx context.Context, exam *models.Exam) (int64, error) {
	sqlQuery, args, err := r.sb.Insert("exams").
		Columns("name", "description", "date").
		Values(exam.Name, getNullString(exam.Description), getNullString(exam.Date)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create exam SQL")
		return 0, fmt.Errorf("failed to build create exam query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sqlQuery, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create exam query")
		return 0, fmt.Errorf("error inserting exam: %w", err)
	}

	logger.Info().Int64("examID", id).Str("name", exam.Name).Msg("Exam created successfully")
	return id, nil
}

// GetByID retrieves an exam by its ID
func (r *ExamRepository) GetByID(ctx context.Context, id int64) (*models.Exam, error) {
	sqlQuery, args, err := r.sb.Select("id", "name", "description", "date", "created_at").
		From("exams").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get exam by ID SQL")
		return nil, fmt.Errorf("failed to build get exam query: %w", err)
	}

	var exam models.Exam
	var description, date sql.NullString
	err = r.db.QueryRow(ctx, sqlQuery, args...).Scan(&exam.ID, &exam.Name, &description, &date, &exam.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Warn().Int64("examID", id).Msg("Exam not found by ID")
			return nil, apperrors.ErrExamNotFound
		}
		logger.Error().Err(err).Int64("examID", id).Msg("Error scanning exam row by ID")
		return nil, fmt.Errorf("error querying exam ID=%d: %w", id, err)
	}

	exam.Description = description.String
	exam.Date = date.String
	return &exam, nil
}

// GetAll retrieves all exams in insertion order
func (r *ExamRepository) GetAll(ctx context.Context) ([]models.Exam, error) {
	sqlQuery, args, err := r.sb.Select("id", "name", "description", "date", "created_at").
		From("exams").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all exams SQL")
		return nil, fmt.Errorf("failed to build get exams query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all exams query")
		return nil, fmt.Errorf("failed to query exams: %w", err)
	}
	defer rows.Close()

	var exams []models.Exam
	for rows.Next() {
		var exam models.Exam
		var description, date sql.NullString
		if err := rows.Scan(&exam.ID, &exam.Name, &description, &date, &exam.CreatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning exam row")
			return nil, fmt.Errorf("failed to scan exam row: %w", err)
		}
		exam.Description = description.String
		exam.Date = date.String
		exams = append(exams, exam)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating exam rows")
		return nil, fmt.Errorf("error iterating exam rows: %w", err)
	}

	return exams, nil
}

// Update overwrites an existing exam's mutable fields
func (r *ExamRepository) Update(ctx context.Context, exam *models.Exam) error {
	sqlQuery, args, err := r.sb.Update("exams").
		SetMap(map[string]interface{}{
			"name":        exam.Name,
			"description": getNullString(exam.Description),
			"date":        getNullString(exam.Date),
		}).
		Where(squirrel.Eq{"id": exam.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Int64("examID", exam.ID).Msg("Error building update exam SQL")
		return fmt.Errorf("failed to build update exam query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sqlQuery, args...)
	if err != nil {
		logger.Error().Err(err).Int64("examID", exam.ID).Msg("Error executing update exam query")
		return fmt.Errorf("error updating exam ID=%d: %w", exam.ID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		logger.Warn().Int64("examID", exam.ID).Msg("Attempted to update non-existent exam")
		return apperrors.ErrExamNotFound
	}

	logger.Info().Int64("examID", exam.ID).Msg("Exam updated successfully")
	return nil
}

// Exists reports whether an exam row with the given ID is present
func (r *ExamRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM exams WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Int64("examID", id).Msg("Error checking exam existence")
		return false, fmt.Errorf("error checking exam existence: %w", err)
	}
	return exists, nil
}
