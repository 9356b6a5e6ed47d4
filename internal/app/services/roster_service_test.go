package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tolga/examreg/internal/app/models"
	"github.com/tolga/examreg/internal/pkg/apperrors"
	"github.com/xuri/excelize/v2"
)

func rosterRows(t *testing.T, data []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Students")
	require.NoError(t, err)
	return rows
}

func addStudent(store *fakeStudentStore, examID int64, name string, birthday time.Time) int64 {
	id, _ := store.Create(context.Background(), &models.Student{
		ExamID:        examID,
		Name:          name,
		Surname:       "Yilmaz",
		FatherName:    "Mehmet",
		FatherSurname: "Yilmaz",
		MotherName:    "Zeynep",
		MotherSurname: "Yilmaz",
		Phone:         "5551234567",
		School:        "Ataturk Middle School",
		Grade:         "7",
		Address:       "12 Cedar Street",
		Birthday:      birthday,
		Language:      "English",
		Photo:         "photo.jpg",
	})
	return id
}

func TestExportRoster(t *testing.T) {
	examStore := newFakeExamStore()
	studentStore := newFakeStudentStore()
	examID := examStore.addExam("Placement Exam 2026")
	otherExam := examStore.addExam("Other")

	addStudent(studentStore, examID, "Ayse", time.Date(2012, 9, 5, 0, 0, 0, 0, time.UTC))
	addStudent(studentStore, examID, "Kemal", time.Date(2011, 1, 20, 0, 0, 0, 0, time.UTC))
	addStudent(studentStore, otherExam, "Elif", time.Date(2013, 3, 3, 0, 0, 0, 0, time.UTC))

	svc := NewRosterService(examStore, studentStore)
	data, filename, err := svc.ExportRoster(context.Background(), examID)
	require.NoError(t, err)

	assert.Equal(t, "Placement_Exam_2026-student-list.xlsx", filename)

	rows := rosterRows(t, data)
	require.Len(t, rows, 3, "header plus one row per student of this exam")

	assert.Equal(t, []string{
		"ID", "Name", "Surname", "Grade", "School", "Address", "Birthday",
		"Phone", "Language", "Father Name", "Father Surname", "Mother Name", "Mother Surname",
	}, rows[0])

	assert.Equal(t, []string{
		"1", "Ayse", "Yilmaz", "7", "Ataturk Middle School", "12 Cedar Street",
		"September 5 2012", "5551234567", "English", "Mehmet", "Yilmaz", "Zeynep", "Yilmaz",
	}, rows[1])
	assert.Equal(t, "Kemal", rows[2][1])
	assert.Equal(t, "January 20 2011", rows[2][6])
}

func TestExportRosterEmptyExam(t *testing.T) {
	examStore := newFakeExamStore()
	studentStore := newFakeStudentStore()
	examID := examStore.addExam("Empty")

	svc := NewRosterService(examStore, studentStore)
	data, _, err := svc.ExportRoster(context.Background(), examID)
	require.NoError(t, err)

	rows := rosterRows(t, data)
	require.Len(t, rows, 1, "only the header row")
}

func TestExportRosterUnknownExam(t *testing.T) {
	svc := NewRosterService(newFakeExamStore(), newFakeStudentStore())

	_, _, err := svc.ExportRoster(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrExamNotFound)
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Placement Exam", "Placement_Exam"},
		{"math-2026.v2", "math-2026.v2"},
		{"a/b\\c:d", "abcd"},
		{"///", "exam"},
		{"", "exam"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, sanitizeFilename(tc.name), "input %q", tc.name)
	}
}
