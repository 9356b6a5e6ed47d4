package controllers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tolga/examreg/internal/app/models/dto"
	"github.com/tolga/examreg/internal/app/services"
	"github.com/tolga/examreg/internal/middleware"
)

// StudentController handles student related operations
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// formPhoto extracts the optional photo part from a multipart form.
// A missing part yields nil; an empty filename counts as no selection.
func formPhoto(ctx *gin.Context) *multipart.FileHeader {
	file, err := ctx.FormFile("photo")
	if err != nil || file == nil || file.Filename == "" {
		return nil
	}
	return file
}

// RegisterStudent handles student registration against one exam
// @Summary Register a student for an exam
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Exam ID"
// @Param name formData string true "Name"
// @Param surname formData string true "Surname"
// @Param father_name formData string false "Father name"
// @Param father_surname formData string false "Father surname"
// @Param mother_name formData string false "Mother name"
// @Param mother_surname formData string false "Mother surname"
// @Param phone formData string true "Phone"
// @Param school formData string true "School"
// @Param grade formData string true "Grade"
// @Param address formData string true "Address"
// @Param birthday formData string true "Birthday (YYYY-M-D)"
// @Param language formData string true "Language"
// @Param photo formData file true "Identification photo (png, jpg, jpeg)"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /exams/{id}/students [post]
func (c *StudentController) RegisterStudent(ctx *gin.Context) {
	examID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var form dto.StudentForm
	if err := ctx.ShouldBind(&form); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid form data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.RegisterStudent(ctx, examID, &form, formPhoto(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewMessageResponse("Added student successfully", student))
}

// GetStudentsByExam handles listing the students of one exam
// @Summary List students registered for an exam
// @Produce json
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentResponse}
// @Failure 404 {object} dto.APIResponse
// @Router /exams/{id}/students [get]
func (c *StudentController) GetStudentsByExam(ctx *gin.Context) {
	examID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	students, err := c.studentService.GetStudentsByExam(ctx, examID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students))
}

// GetStudentByID handles retrieving a single student
// @Summary Get student by ID
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 404 {object} dto.APIResponse
// @Router /students/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student))
}

// UpdateStudent handles student editing with optional photo replacement
// @Summary Update a student
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Student ID"
// @Param photo formData file false "Replacement photo (png, jpg, jpeg)"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var form dto.StudentForm
	if err := ctx.ShouldBind(&form); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid form data").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.UpdateStudent(ctx, id, &form, formPhoto(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Student edited successfully", student))
}

// DeleteStudent handles student deletion
// @Summary Delete a student
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.DeletedStudentResponse}
// @Failure 404 {object} dto.APIResponse
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	deleted, err := c.studentService.DeleteStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Student deleted successfully", deleted))
}

// GetBadge handles the single-student badge view
// @Summary Get the badge view for a student
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.BadgeResponse}
// @Failure 404 {object} dto.APIResponse
// @Router /students/{id}/badge [get]
func (c *StudentController) GetBadge(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	badge, err := c.studentService.GetBadge(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(badge))
}
