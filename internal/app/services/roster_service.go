package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tolga/examreg/internal/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// rosterHeaders are the roster sheet columns, in export order
var rosterHeaders = []string{
	"ID", "Name", "Surname", "Grade", "School", "Address", "Birthday",
	"Phone", "Language", "Father Name", "Father Surname", "Mother Name", "Mother Surname",
}

const rosterSheetName = "Students"

// RosterService defines the interface for roster export operations
type RosterService interface {
	ExportRoster(ctx context.Context, examID int64) ([]byte, string, error)
}

// rosterServiceImpl implements RosterService
type rosterServiceImpl struct {
	examStore    ExamStore
	studentStore StudentStore
}

// NewRosterService creates a new RosterService
func NewRosterService(examStore ExamStore, studentStore StudentStore) RosterService {
	return &rosterServiceImpl{
		examStore:    examStore,
		studentStore: studentStore,
	}
}

// ExportRoster serializes all students of one exam into a single-sheet
// xlsx document and returns the bytes plus a suggested filename. The
// operation is read-only.
func (s *rosterServiceImpl) ExportRoster(ctx context.Context, examID int64) ([]byte, string, error) {
	exam, err := s.examStore.GetByID(ctx, examID)
	if err != nil {
		return nil, "", err
	}

	students, err := s.studentStore.GetAllByExam(ctx, examID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close xlsx file")
		}
	}()

	if err := f.SetSheetName("Sheet1", rosterSheetName); err != nil {
		return nil, "", fmt.Errorf("failed to rename sheet: %w", err)
	}

	for i, header := range rosterHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(rosterSheetName, cell, header); err != nil {
			return nil, "", fmt.Errorf("failed to set header cell: %w", err)
		}
	}

	// Bold header row
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create header style: %w", err)
	}
	lastHeaderCell, err := excelize.CoordinatesToCellName(len(rosterHeaders), 1)
	if err != nil {
		return nil, "", fmt.Errorf("failed to compute last header cell: %w", err)
	}
	if err := f.SetCellStyle(rosterSheetName, "A1", lastHeaderCell, headerStyle); err != nil {
		return nil, "", fmt.Errorf("failed to style header row: %w", err)
	}

	for i, student := range students {
		row := i + 2
		values := []interface{}{
			student.ID, student.Name, student.Surname, student.Grade, student.School,
			student.Address, student.Birthday.Format("January 2 2006"), student.Phone,
			student.Language, student.FatherName, student.FatherSurname,
			student.MotherName, student.MotherSurname,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, "", fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := f.SetCellValue(rosterSheetName, cell, value); err != nil {
				return nil, "", fmt.Errorf("failed to set cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to serialize roster: %w", err)
	}

	filename := sanitizeFilename(exam.Name) + "-student-list.xlsx"
	logger.Info().Int64("examID", examID).Int("students", len(students)).Str("filename", filename).Msg("Roster exported")
	return buf.Bytes(), filename, nil
}

// sanitizeFilename strips filesystem-unsafe characters from an exam name
// so it can be used as a download filename.
func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	sanitized := b.String()
	if sanitized == "" {
		sanitized = "exam"
	}
	return sanitized
}
