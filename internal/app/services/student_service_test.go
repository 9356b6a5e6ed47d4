package services

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tolga/examreg/internal/app/models/dto"
	"github.com/tolga/examreg/internal/pkg/apperrors"
	"github.com/tolga/examreg/internal/pkg/filestorage"
)

type studentFixture struct {
	svc          StudentService
	examStore    *fakeExamStore
	studentStore *fakeStudentStore
	photos       *filestorage.LocalStorage
	photoDir     string
	examID       int64
}

func newStudentFixture(t *testing.T) *studentFixture {
	t.Helper()
	dir := t.TempDir()
	photos, err := filestorage.NewLocalStorage(dir)
	require.NoError(t, err)

	examStore := newFakeExamStore()
	studentStore := newFakeStudentStore()
	return &studentFixture{
		svc:          NewStudentService(studentStore, examStore, photos),
		examStore:    examStore,
		studentStore: studentStore,
		photos:       photos,
		photoDir:     dir,
		examID:       examStore.addExam("Placement"),
	}
}

func (f *studentFixture) storedPhotoCount(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir(f.photoDir)
	require.NoError(t, err)
	return len(entries)
}

func validStudentForm() *dto.StudentForm {
	return &dto.StudentForm{
		Name:     "Ayse",
		Surname:  "Yilmaz",
		Phone:    "5551234567",
		School:   "Ataturk Middle School",
		Grade:    "7",
		Address:  "12 Cedar Street",
		Birthday: "2012-9-5",
		Language: "English",
	}
}

func TestRegisterStudent(t *testing.T) {
	f := newStudentFixture(t)

	student, err := f.svc.RegisterStudent(context.Background(), f.examID, validStudentForm(), makeFileHeader(t, "photo.jpg", []byte("jpg-data")))
	require.NoError(t, err)

	assert.NotZero(t, student.ID)
	assert.Equal(t, "Ayse", student.Name)
	assert.Equal(t, "2012-09-05", student.Birthday)
	assert.Equal(t, f.examID, student.ExamID)
	assert.True(t, strings.HasSuffix(student.Photo, ".jpg"))

	// Photo round-trips byte-for-byte under the stored name
	r, err := f.photos.Open(student.Photo)
	require.NoError(t, err)
	defer r.Close()
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpg-data"), got)
}

func TestRegisterStudentUnknownExam(t *testing.T) {
	f := newStudentFixture(t)

	_, err := f.svc.RegisterStudent(context.Background(), f.examID+99, validStudentForm(), makeFileHeader(t, "photo.jpg", []byte("x")))
	assert.ErrorIs(t, err, apperrors.ErrExamNotFound)
	assert.Zero(t, f.storedPhotoCount(t))
}

func TestRegisterStudentMissingFieldLeavesNoOrphan(t *testing.T) {
	f := newStudentFixture(t)

	form := validStudentForm()
	form.Surname = ""

	_, err := f.svc.RegisterStudent(context.Background(), f.examID, form, makeFileHeader(t, "photo.jpg", []byte("x")))
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "surname", apperrors.FieldOf(err))

	assert.Zero(t, f.studentStore.createCalls)
	// Field validation runs before the photo is stored
	assert.Zero(t, f.storedPhotoCount(t))
}

func TestRegisterStudentNamesFirstMissingField(t *testing.T) {
	f := newStudentFixture(t)

	form := validStudentForm()
	form.Grade = ""
	form.Address = ""

	_, err := f.svc.RegisterStudent(context.Background(), f.examID, form, makeFileHeader(t, "photo.jpg", []byte("x")))
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "grade", apperrors.FieldOf(err))
}

func TestRegisterStudentRequiresPhoneAndLanguage(t *testing.T) {
	f := newStudentFixture(t)

	form := validStudentForm()
	form.Phone = ""
	_, err := f.svc.RegisterStudent(context.Background(), f.examID, form, makeFileHeader(t, "photo.jpg", []byte("x")))
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "phone", apperrors.FieldOf(err))

	form = validStudentForm()
	form.Language = ""
	_, err = f.svc.RegisterStudent(context.Background(), f.examID, form, makeFileHeader(t, "photo.jpg", []byte("x")))
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "language", apperrors.FieldOf(err))
}

func TestRegisterStudentBirthdayParsing(t *testing.T) {
	f := newStudentFixture(t)

	bad := []string{"2012-9", "2012/9/5", "2012-9-5-1", "abcd-9-5", "2012-x-5", "2012-2-30", "2012-13-1", ""}
	for _, birthday := range bad {
		form := validStudentForm()
		form.Birthday = birthday
		_, err := f.svc.RegisterStudent(context.Background(), f.examID, form, makeFileHeader(t, "photo.jpg", []byte("x")))
		require.ErrorIs(t, err, apperrors.ErrValidationFailed, "birthday %q should be rejected", birthday)
		assert.Equal(t, "birthday", apperrors.FieldOf(err))
	}

	// Single-digit month and day are fine, as is the padded form
	for _, birthday := range []string{"2012-9-5", "2012-09-05"} {
		form := validStudentForm()
		form.Birthday = birthday
		student, err := f.svc.RegisterStudent(context.Background(), f.examID, form, makeFileHeader(t, "photo.jpg", []byte("x")))
		require.NoError(t, err, "birthday %q should be accepted", birthday)
		assert.Equal(t, "2012-09-05", student.Birthday)
	}
}

func TestRegisterStudentRequiresPhoto(t *testing.T) {
	f := newStudentFixture(t)

	_, err := f.svc.RegisterStudent(context.Background(), f.examID, validStudentForm(), nil)
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "photo", apperrors.FieldOf(err))
	assert.Zero(t, f.studentStore.createCalls)
}

func TestRegisterStudentRejectsBadPhotoType(t *testing.T) {
	f := newStudentFixture(t)

	_, err := f.svc.RegisterStudent(context.Background(), f.examID, validStudentForm(), makeFileHeader(t, "x.gif", []byte("gif")))
	assert.ErrorIs(t, err, apperrors.ErrInvalidPhotoType)
	assert.Zero(t, f.studentStore.createCalls)
	assert.Zero(t, f.storedPhotoCount(t))
}

func TestRegisterStudentUppercaseExtensionStoredLowercase(t *testing.T) {
	f := newStudentFixture(t)

	student, err := f.svc.RegisterStudent(context.Background(), f.examID, validStudentForm(), makeFileHeader(t, "x.JPG", []byte("jpg")))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(student.Photo, ".jpg"), "stored photo %q should have lowercase extension", student.Photo)
}

func TestRegisterStudentCleansUpPhotoWhenInsertFails(t *testing.T) {
	f := newStudentFixture(t)
	f.studentStore.failCreate = errStoreDown

	_, err := f.svc.RegisterStudent(context.Background(), f.examID, validStudentForm(), makeFileHeader(t, "photo.jpg", []byte("x")))
	require.Error(t, err)
	assert.Zero(t, f.storedPhotoCount(t))
}

func TestUpdateStudentWithoutPhotoKeepsOldAsset(t *testing.T) {
	f := newStudentFixture(t)

	created, err := f.svc.RegisterStudent(context.Background(), f.examID, validStudentForm(), makeFileHeader(t, "photo.jpg", []byte("original")))
	require.NoError(t, err)

	form := validStudentForm()
	form.Name = "Fatma"
	updated, err := f.svc.UpdateStudent(context.Background(), created.ID, form, nil)
	require.NoError(t, err)

	assert.Equal(t, "Fatma", updated.Name)
	assert.Equal(t, created.Photo, updated.Photo)

	r, err := f.photos.Open(created.Photo)
	require.NoError(t, err)
	defer r.Close()
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)
}

func TestUpdateStudentReplacesPhoto(t *testing.T) {
	f := newStudentFixture(t)

	created, err := f.svc.RegisterStudent(context.Background(), f.examID, validStudentForm(), makeFileHeader(t, "old.jpg", []byte("old")))
	require.NoError(t, err)

	updated, err := f.svc.UpdateStudent(context.Background(), created.ID, validStudentForm(), makeFileHeader(t, "new.png", []byte("new")))
	require.NoError(t, err)

	assert.NotEqual(t, created.Photo, updated.Photo)
	assert.True(t, strings.HasSuffix(updated.Photo, ".png"))

	// The new asset is retrievable, the superseded one is gone
	r, err := f.photos.Open(updated.Photo)
	require.NoError(t, err)
	defer r.Close()
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)

	_, err = f.photos.Open(created.Photo)
	assert.ErrorIs(t, err, apperrors.ErrPhotoNotFound)
}

func TestUpdateStudentInvalidPhotoLeavesEverythingUntouched(t *testing.T) {
	f := newStudentFixture(t)

	created, err := f.svc.RegisterStudent(context.Background(), f.examID, validStudentForm(), makeFileHeader(t, "photo.jpg", []byte("original")))
	require.NoError(t, err)

	form := validStudentForm()
	form.Name = "Changed"
	_, err = f.svc.UpdateStudent(context.Background(), created.ID, form, makeFileHeader(t, "bad.gif", []byte("gif")))
	require.ErrorIs(t, err, apperrors.ErrInvalidPhotoType)

	// Record is unchanged and the old photo still round-trips
	current := f.studentStore.students[created.ID]
	assert.Equal(t, "Ayse", current.Name)
	assert.Equal(t, created.Photo, current.Photo)

	r, err := f.photos.Open(created.Photo)
	require.NoError(t, err)
	defer r.Close()
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)
}

func TestUpdateStudentMissingFieldMutatesNothing(t *testing.T) {
	f := newStudentFixture(t)

	created, err := f.svc.RegisterStudent(context.Background(), f.examID, validStudentForm(), makeFileHeader(t, "photo.jpg", []byte("x")))
	require.NoError(t, err)

	form := validStudentForm()
	form.School = ""
	_, err = f.svc.UpdateStudent(context.Background(), created.ID, form, nil)
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "school", apperrors.FieldOf(err))

	current := f.studentStore.students[created.ID]
	assert.Equal(t, "Ataturk Middle School", current.School)
}

func TestUpdateStudentUnknownID(t *testing.T) {
	f := newStudentFixture(t)

	_, err := f.svc.UpdateStudent(context.Background(), 42, validStudentForm(), nil)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestUpdateStudentOverwritesOptionalFields(t *testing.T) {
	f := newStudentFixture(t)

	form := validStudentForm()
	form.FatherName = "Mehmet"
	created, err := f.svc.RegisterStudent(context.Background(), f.examID, form, makeFileHeader(t, "photo.jpg", []byte("x")))
	require.NoError(t, err)
	assert.Equal(t, "Mehmet", created.FatherName)

	// Optional fields are overwritten even when submitted empty
	updated, err := f.svc.UpdateStudent(context.Background(), created.ID, validStudentForm(), nil)
	require.NoError(t, err)
	assert.Empty(t, updated.FatherName)
	assert.Empty(t, f.studentStore.students[created.ID].FatherName)
}

func TestDeleteStudent(t *testing.T) {
	f := newStudentFixture(t)

	created, err := f.svc.RegisterStudent(context.Background(), f.examID, validStudentForm(), makeFileHeader(t, "photo.jpg", []byte("x")))
	require.NoError(t, err)

	deleted, err := f.svc.DeleteStudent(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Equal(t, "Ayse", deleted.Name)
	assert.Equal(t, "Yilmaz", deleted.Surname)

	_, err = f.svc.GetStudentByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	_, err = f.photos.Open(created.Photo)
	assert.ErrorIs(t, err, apperrors.ErrPhotoNotFound)
}

func TestDeleteStudentUnknownID(t *testing.T) {
	f := newStudentFixture(t)

	_, err := f.svc.DeleteStudent(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestDeleteStudentSurvivesMissingPhoto(t *testing.T) {
	f := newStudentFixture(t)

	created, err := f.svc.RegisterStudent(context.Background(), f.examID, validStudentForm(), makeFileHeader(t, "photo.jpg", []byte("x")))
	require.NoError(t, err)

	// Simulate an already-missing asset; deletion must still succeed
	require.NoError(t, f.photos.DeleteFile(created.Photo))

	_, err = f.svc.DeleteStudent(context.Background(), created.ID)
	require.NoError(t, err)
}

func TestGetStudentsByExam(t *testing.T) {
	f := newStudentFixture(t)
	otherExam := f.examStore.addExam("Other")

	first, err := f.svc.RegisterStudent(context.Background(), f.examID, validStudentForm(), makeFileHeader(t, "a.jpg", []byte("a")))
	require.NoError(t, err)

	form := validStudentForm()
	form.Name = "Kemal"
	_, err = f.svc.RegisterStudent(context.Background(), otherExam, form, makeFileHeader(t, "b.jpg", []byte("b")))
	require.NoError(t, err)

	students, err := f.svc.GetStudentsByExam(context.Background(), f.examID)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, first.ID, students[0].ID)

	_, err = f.svc.GetStudentsByExam(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrExamNotFound)
}

func TestGetBadge(t *testing.T) {
	f := newStudentFixture(t)

	created, err := f.svc.RegisterStudent(context.Background(), f.examID, validStudentForm(), makeFileHeader(t, "photo.jpg", []byte("x")))
	require.NoError(t, err)

	badge, err := f.svc.GetBadge(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, badge.Student.ID)
	assert.Equal(t, "Placement", badge.Exam.Name)
	assert.Equal(t, "/api/v1/photos/"+created.Photo, badge.Student.PhotoURL)

	_, err = f.svc.GetBadge(context.Background(), created.ID+100)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}
