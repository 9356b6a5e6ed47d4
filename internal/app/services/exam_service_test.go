package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tolga/examreg/internal/app/models/dto"
	"github.com/tolga/examreg/internal/pkg/apperrors"
)

func TestCreateExam(t *testing.T) {
	store := newFakeExamStore()
	svc := NewExamService(store)

	exam, err := svc.CreateExam(context.Background(), &dto.CreateExamRequest{
		Name:        "Spring Placement",
		Description: "entry level",
		Date:        "2026-05-10",
	})
	require.NoError(t, err)

	assert.Equal(t, "Spring Placement", exam.Name)
	assert.Equal(t, "entry level", exam.Description)
	assert.Equal(t, "2026-05-10", exam.Date)
	assert.NotZero(t, exam.ID)

	second, err := svc.CreateExam(context.Background(), &dto.CreateExamRequest{Name: "Fall Placement"})
	require.NoError(t, err)
	assert.NotEqual(t, exam.ID, second.ID)
}

func TestCreateExamRequiresName(t *testing.T) {
	store := newFakeExamStore()
	svc := NewExamService(store)

	for _, name := range []string{"", "   "} {
		_, err := svc.CreateExam(context.Background(), &dto.CreateExamRequest{Name: name})
		require.ErrorIs(t, err, apperrors.ErrValidationFailed)
		assert.Equal(t, "name", apperrors.FieldOf(err))
	}
	assert.Empty(t, store.exams)
}

func TestUpdateExam(t *testing.T) {
	store := newFakeExamStore()
	id := store.addExam("Old Name")
	svc := NewExamService(store)

	exam, err := svc.UpdateExam(context.Background(), id, &dto.UpdateExamRequest{
		Name: "New Name",
		Date: "2026-06-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", exam.Name)
	assert.Equal(t, "New Name", store.exams[id].Name)
	assert.Equal(t, "2026-06-01", store.exams[id].Date)
}

func TestUpdateExamUnknownID(t *testing.T) {
	svc := NewExamService(newFakeExamStore())

	_, err := svc.UpdateExam(context.Background(), 42, &dto.UpdateExamRequest{Name: "X"})
	assert.ErrorIs(t, err, apperrors.ErrExamNotFound)
}

func TestUpdateExamEmptyNameWritesNothing(t *testing.T) {
	store := newFakeExamStore()
	id := store.addExam("Keep Me")
	svc := NewExamService(store)

	_, err := svc.UpdateExam(context.Background(), id, &dto.UpdateExamRequest{Name: ""})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "name", apperrors.FieldOf(err))

	assert.Equal(t, "Keep Me", store.exams[id].Name)
	assert.Zero(t, store.updateCalls)
}

func TestGetAllExams(t *testing.T) {
	store := newFakeExamStore()
	first := store.addExam("First")
	second := store.addExam("Second")
	svc := NewExamService(store)

	exams, err := svc.GetAllExams(context.Background())
	require.NoError(t, err)
	require.Len(t, exams, 2)
	assert.Equal(t, first, exams[0].ID)
	assert.Equal(t, second, exams[1].ID)
}

func TestGetExamByID(t *testing.T) {
	store := newFakeExamStore()
	id := store.addExam("Findable")
	svc := NewExamService(store)

	exam, err := svc.GetExamByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Findable", exam.Name)

	_, err = svc.GetExamByID(context.Background(), id+100)
	assert.ErrorIs(t, err, apperrors.ErrExamNotFound)
}
