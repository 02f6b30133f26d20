package handlers

import (
	"net/http"
	"strconv"

	"taskman-app/src/domain"
	"taskman-app/src/repository"
	"taskman-app/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NoteHandler handles HTTP requests for note operations
type NoteHandler struct {
	repo      *repository.NoteRepository
	validator *validator.CustomValidator
	logger    *logrus.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(repo *repository.NoteRepository, cv *validator.CustomValidator, logger *logrus.Logger) *NoteHandler {
	return &NoteHandler{
		repo:      repo,
		validator: cv,
		logger:    logger,
	}
}

// ListNotes lists notes. ?include_archived=true でアーカイブ済みも含める
func (h *NoteHandler) ListNotes(c *gin.Context) {
	if _, err := h.repo.LoadAll(c.Request.Context()); err != nil {
		h.logger.WithError(err).Error("ノート一覧の取得に失敗")
		respondStoreError(c, err, "Failed to list notes")
		return
	}

	includeArchived, _ := strconv.ParseBool(c.DefaultQuery("include_archived", "false"))
	notes := h.repo.Active()
	if includeArchived {
		notes = h.repo.Notes()
	}

	c.JSON(http.StatusOK, gin.H{
		"notes": notes,
		"total": len(notes),
	})
}

// GetNote retrieves a note by ID
func (h *NoteHandler) GetNote(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid note ID", Message: err.Error()})
		return
	}

	notes, err := h.repo.LoadAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "Failed to get note")
		return
	}

	for i := range notes {
		if notes[i].ID == id {
			c.JSON(http.StatusOK, notes[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, ErrorResponseDTO{Error: "Note not found"})
}

// CreateNote creates a new note
func (h *NoteHandler) CreateNote(c *gin.Context) {
	var req CreateNoteRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid request format", Message: err.Error()})
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Validation failed", Message: err.Error()})
		return
	}

	note, err := h.repo.Create(c.Request.Context(), domain.CreateNoteRequest{
		Title:     req.Title,
		Content:   req.Content,
		Type:      domain.NoteType(req.Type),
		Tags:      h.validator.SanitizeTags(req.Tags),
		Color:     req.Color,
		ProjectID: req.ProjectID,
		TaskID:    req.TaskID,
		ClientID:  req.ClientID,
	})
	if err != nil {
		h.logger.WithError(err).Error("ノートの作成に失敗")
		respondStoreError(c, err, "Failed to create note")
		return
	}

	h.logger.WithField("note_id", note.ID).Info("ノートを作成しました")
	c.JSON(http.StatusCreated, note)
}

// UpdateNote updates an existing note
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid note ID", Message: err.Error()})
		return
	}

	var req UpdateNoteRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid request format", Message: err.Error()})
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Validation failed", Message: err.Error()})
		return
	}

	update := domain.UpdateNoteRequest{
		Title:     req.Title,
		Content:   req.Content,
		Tags:      req.Tags,
		Color:     req.Color,
		ProjectID: req.ProjectID,
		TaskID:    req.TaskID,
		ClientID:  req.ClientID,
	}
	if req.Type != nil {
		noteType := domain.NoteType(*req.Type)
		update.Type = &noteType
	}

	if err := h.repo.Update(c.Request.Context(), id, update); err != nil {
		h.logger.WithError(err).WithField("note_id", id).Error("ノートの更新に失敗")
		respondStoreError(c, err, "Failed to update note")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note updated"})
}

// ArchiveNote archives a note
func (h *NoteHandler) ArchiveNote(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid note ID", Message: err.Error()})
		return
	}

	if err := h.repo.Archive(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "Failed to archive note")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note archived"})
}

// RestoreNote restores an archived note
func (h *NoteHandler) RestoreNote(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid note ID", Message: err.Error()})
		return
	}

	if err := h.repo.Restore(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "Failed to restore note")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note restored"})
}

// DeleteNote deletes a note
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid note ID", Message: err.Error()})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "Failed to delete note")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note deleted"})
}
