package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tolga/examreg/internal/app/controllers"
	"github.com/tolga/examreg/internal/app/models/dto"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	examController *controllers.ExamController,
	studentController *controllers.StudentController,
	rosterController *controllers.RosterController,
	photoController *controllers.PhotoController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// Exam routes. There is deliberately no DELETE: exam removal and its
	// cascade over registered students is unsupported.
	exams := v1.Group("/exams")
	{
		exams.GET("", examController.GetAllExams)
		exams.POST("", examController.CreateExam)
		exams.GET("/:id", examController.GetExamByID)
		exams.PUT("/:id", examController.UpdateExam)

		// Exam-scoped student routes
		exams.POST("/:id/students", studentController.RegisterStudent)
		exams.GET("/:id/students", studentController.GetStudentsByExam)

		// Roster export
		exams.GET("/:id/roster", rosterController.ExportRoster)
	}

	// Student routes
	students := v1.Group("/students")
	{
		students.GET("/:id", studentController.GetStudentByID)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)
		students.GET("/:id/badge", studentController.GetBadge)
	}

	// Photo asset retrieval
	v1.GET("/photos/:filename", photoController.GetPhoto)

	// Health check endpoint
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	})
}
