package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tolga/examreg/internal/app/models/dto"
	"github.com/tolga/examreg/internal/middleware"
	"github.com/tolga/examreg/internal/pkg/filestorage"
)

// PhotoController serves stored photo assets back to callers
type PhotoController struct {
	photos filestorage.PhotoStorage
}

// NewPhotoController creates a new PhotoController
func NewPhotoController(photos filestorage.PhotoStorage) *PhotoController {
	return &PhotoController{photos: photos}
}

// GetPhoto streams a stored photo by its stored filename
// @Summary Retrieve a stored photo
// @Produce image/jpeg
// @Param filename path string true "Stored photo filename"
// @Success 200 {file} binary
// @Failure 404 {object} dto.APIResponse
// @Router /photos/{filename} [get]
func (c *PhotoController) GetPhoto(ctx *gin.Context) {
	filename := ctx.Param("filename")
	if filename == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Missing photo filename")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	path, err := c.photos.Path(filename)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.File(path)
}
