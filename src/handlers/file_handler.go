package handlers

import (
	"encoding/base64"
	"net/http"

	"taskman-app/src/domain"
	"taskman-app/src/repository"
	"taskman-app/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// 添付ファイルの上限サイズ（10MB）
const maxAttachmentSize = 10 << 20

// FileHandler handles HTTP requests for file attachments
type FileHandler struct {
	repo      *repository.FileRepository
	validator *validator.CustomValidator
	logger    *logrus.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(repo *repository.FileRepository, cv *validator.CustomValidator, logger *logrus.Logger) *FileHandler {
	return &FileHandler{
		repo:      repo,
		validator: cv,
		logger:    logger,
	}
}

// ListFiles lists all file attachments
func (h *FileHandler) ListFiles(c *gin.Context) {
	files, err := h.repo.LoadAll(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("ファイル一覧の取得に失敗")
		respondStoreError(c, err, "Failed to list files")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"files": files,
		"total": len(files),
	})
}

// UploadFile uploads a file attachment
func (h *FileHandler) UploadFile(c *gin.Context) {
	var req UploadFileRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid request format", Message: err.Error()})
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Validation failed", Message: err.Error()})
		return
	}

	content, err := base64.StdEncoding.DecodeString(req.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid file content", Message: "content must be base64-encoded"})
		return
	}
	if len(content) > maxAttachmentSize {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponseDTO{Error: "File too large"})
		return
	}

	file, err := h.repo.Upload(c.Request.Context(), domain.UploadFileRequest{
		Name:      req.Name,
		MimeType:  req.MimeType,
		Content:   content,
		TaskID:    req.TaskID,
		ProjectID: req.ProjectID,
	})
	if err != nil {
		h.logger.WithError(err).Error("ファイルのアップロードに失敗")
		respondStoreError(c, err, "Failed to upload file")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"file_id": file.ID,
		"name":    file.Name,
		"size":    file.Size,
	}).Info("ファイルをアップロードしました")
	c.JSON(http.StatusCreated, file)
}

// DeleteFile deletes a file attachment
func (h *FileHandler) DeleteFile(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid file ID", Message: err.Error()})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "Failed to delete file")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted"})
}
