package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tolga/examreg/internal/app/services"
	"github.com/tolga/examreg/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RosterController handles roster export operations
type RosterController struct {
	rosterService services.RosterService
}

// NewRosterController creates a new RosterController
func NewRosterController(rosterService services.RosterService) *RosterController {
	return &RosterController{rosterService: rosterService}
}

// ExportRoster streams the student roster of one exam as an xlsx download
// @Summary Export the student roster of an exam as xlsx
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path int true "Exam ID"
// @Success 200 {file} binary
// @Failure 404 {object} dto.APIResponse
// @Router /exams/{id}/roster [get]
func (c *RosterController) ExportRoster(ctx *gin.Context) {
	examID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	document, filename, err := c.rosterService.ExportRoster(ctx, examID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	ctx.Data(http.StatusOK, xlsxContentType, document)
}
