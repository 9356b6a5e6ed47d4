package services

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tolga/examreg/internal/app/models"
	"github.com/tolga/examreg/internal/pkg/apperrors"
)

// fakeExamStore is an in-memory ExamStore
type fakeExamStore struct {
	exams       map[int64]models.Exam
	nextID      int64
	updateCalls int
	failCreate  error
}

func newFakeExamStore() *fakeExamStore {
	return &fakeExamStore{exams: make(map[int64]models.Exam), nextID: 1}
}

func (f *fakeExamStore) addExam(name string) int64 {
	id := f.nextID
	f.nextID++
	f.exams[id] = models.Exam{ID: id, Name: name}
	return id
}

func (f *fakeExamStore) Create(_ context.Context, exam *models.Exam) (int64, error) {
	if f.failCreate != nil {
		return 0, f.failCreate
	}
	id := f.nextID
	f.nextID++
	stored := *exam
	stored.ID = id
	f.exams[id] = stored
	return id, nil
}

func (f *fakeExamStore) GetByID(_ context.Context, id int64) (*models.Exam, error) {
	exam, ok := f.exams[id]
	if !ok {
		return nil, apperrors.ErrExamNotFound
	}
	copied := exam
	return &copied, nil
}

func (f *fakeExamStore) GetAll(_ context.Context) ([]models.Exam, error) {
	exams := make([]models.Exam, 0, len(f.exams))
	for id := int64(1); id < f.nextID; id++ {
		if exam, ok := f.exams[id]; ok {
			exams = append(exams, exam)
		}
	}
	return exams, nil
}

func (f *fakeExamStore) Update(_ context.Context, exam *models.Exam) error {
	f.updateCalls++
	if _, ok := f.exams[exam.ID]; !ok {
		return apperrors.ErrExamNotFound
	}
	f.exams[exam.ID] = *exam
	return nil
}

func (f *fakeExamStore) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.exams[id]
	return ok, nil
}

// fakeStudentStore is an in-memory StudentStore
type fakeStudentStore struct {
	students    map[int64]models.Student
	nextID      int64
	createCalls int
	failCreate  error
	failUpdate  error
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[int64]models.Student), nextID: 1}
}

func (f *fakeStudentStore) Create(_ context.Context, student *models.Student) (int64, error) {
	f.createCalls++
	if f.failCreate != nil {
		return 0, f.failCreate
	}
	id := f.nextID
	f.nextID++
	stored := *student
	stored.ID = id
	f.students[id] = stored
	return id, nil
}

func (f *fakeStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	copied := student
	return &copied, nil
}

func (f *fakeStudentStore) GetAllByExam(_ context.Context, examID int64) ([]models.Student, error) {
	var students []models.Student
	for id := int64(1); id < f.nextID; id++ {
		if student, ok := f.students[id]; ok && student.ExamID == examID {
			students = append(students, student)
		}
	}
	return students, nil
}

func (f *fakeStudentStore) Update(_ context.Context, student *models.Student) error {
	if f.failUpdate != nil {
		return f.failUpdate
	}
	if _, ok := f.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	f.students[student.ID] = *student
	return nil
}

func (f *fakeStudentStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.students, id)
	return nil
}

var errStoreDown = errors.New("store down")

// makeFileHeader builds a real multipart.FileHeader by writing and
// re-parsing a multipart body.
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("photo", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	reader := multipart.NewReader(&buf, w.Boundary())
	form, err := reader.ReadForm(int64(len(content)) + 4096)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["photo"]
	require.Len(t, files, 1)
	return files[0]
}
