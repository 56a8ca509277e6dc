package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"gemora/internal/domain/service"
	apperrors "gemora/pkg/errors"
	"gemora/pkg/logger"
	"gemora/pkg/response"
)

type FileHandler struct {
	fileService service.FileUploadService
	maxFileSize int64
}

func NewFileHandler(fileService service.FileUploadService) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		maxFileSize: 10 * 1024 * 1024,
	}
}

var allowedUploadTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

var allowedUploadFolders = map[string]bool{
	"listings":  true,
	"slips":     true,
	"documents": true,
	"uploads":   true,
}

func sanitizeFolderName(folder string) string {
	folder = strings.ToLower(strings.TrimSpace(folder))
	folder = strings.ReplaceAll(folder, "..", "")
	folder = strings.Trim(folder, "/")
	if !allowedUploadFolders[folder] {
		return "uploads"
	}
	return folder
}

// UploadFile stores a multipart file and returns its URL. The caller then
// references the URL when creating listings, deposits, or document
// submissions.
func (h *FileHandler) UploadFile(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, apperrors.BadRequest("Missing or invalid file", err))
	}

	if file.Size > h.maxFileSize {
		return response.Error(c, apperrors.BadRequest(fmt.Sprintf("File size exceeds maximum allowed (%dMB)", h.maxFileSize/(1024*1024)), nil))
	}

	fileType := file.Header.Get("Content-Type")
	if !allowedUploadTypes[fileType] {
		return response.Error(c, apperrors.BadRequest("File type not supported", nil))
	}

	folder := sanitizeFolderName(c.FormValue("folder"))

	isPublic := true
	if v := c.FormValue("public"); v != "" {
		isPublic, _ = strconv.ParseBool(v)
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, apperrors.Internal("Unable to read file", err))
	}
	defer src.Close()

	url, err := h.fileService.UploadFile(c.Request().Context(), src, fileType, folder, isPublic)
	if err != nil {
		logger.Error("Upload failed for %s: %v", file.Filename, err)
		return response.Error(c, apperrors.Internal("Failed to upload file", err))
	}

	return response.Created(c, map[string]interface{}{
		"url":          url,
		"content_type": fileType,
		"size_bytes":   file.Size,
	})
}

func (h *FileHandler) DeleteFile(c echo.Context) error {
	var req struct {
		URL string `json:"url" validate:"required,url"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.fileService.DeleteFile(c.Request().Context(), req.URL); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "File deleted"})
}
