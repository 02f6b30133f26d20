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

// ClientHandler handles HTTP requests for client operations
type ClientHandler struct {
	repo      *repository.ClientRepository
	validator *validator.CustomValidator
	logger    *logrus.Logger
}

// NewClientHandler creates a new client handler
func NewClientHandler(repo *repository.ClientRepository, cv *validator.CustomValidator, logger *logrus.Logger) *ClientHandler {
	return &ClientHandler{
		repo:      repo,
		validator: cv,
		logger:    logger,
	}
}

// ListClients lists clients. ?include_archived=true でアーカイブ済みも含める
func (h *ClientHandler) ListClients(c *gin.Context) {
	if _, err := h.repo.LoadAll(c.Request.Context()); err != nil {
		h.logger.WithError(err).Error("クライアント一覧の取得に失敗")
		respondStoreError(c, err, "Failed to list clients")
		return
	}

	includeArchived, _ := strconv.ParseBool(c.DefaultQuery("include_archived", "false"))
	clients := h.repo.Active()
	if includeArchived {
		clients = h.repo.Clients()
	}

	c.JSON(http.StatusOK, gin.H{
		"clients": clients,
		"total":   len(clients),
	})
}

// GetClient retrieves a client by ID
func (h *ClientHandler) GetClient(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid client ID", Message: err.Error()})
		return
	}

	clients, err := h.repo.LoadAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "Failed to get client")
		return
	}

	for i := range clients {
		if clients[i].ID == id {
			c.JSON(http.StatusOK, clients[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, ErrorResponseDTO{Error: "Client not found"})
}

// CreateClient creates a new client
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req CreateClientRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid request format", Message: err.Error()})
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Validation failed", Message: err.Error()})
		return
	}

	client, err := h.repo.Create(c.Request.Context(), domain.CreateClientRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Notes:   req.Notes,
		Tags:    h.validator.SanitizeTags(req.Tags),
	})
	if err != nil {
		h.logger.WithError(err).Error("クライアントの作成に失敗")
		respondStoreError(c, err, "Failed to create client")
		return
	}

	h.logger.WithField("client_id", client.ID).Info("クライアントを作成しました")
	c.JSON(http.StatusCreated, client)
}

// UpdateClient updates an existing client
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid client ID", Message: err.Error()})
		return
	}

	var req UpdateClientRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid request format", Message: err.Error()})
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Validation failed", Message: err.Error()})
		return
	}

	update := domain.UpdateClientRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Notes:   req.Notes,
		Tags:    req.Tags,
	}

	if err := h.repo.Update(c.Request.Context(), id, update); err != nil {
		h.logger.WithError(err).WithField("client_id", id).Error("クライアントの更新に失敗")
		respondStoreError(c, err, "Failed to update client")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client updated"})
}

// ArchiveClient archives a client
func (h *ClientHandler) ArchiveClient(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid client ID", Message: err.Error()})
		return
	}

	if err := h.repo.Archive(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "Failed to archive client")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client archived"})
}

// RestoreClient restores an archived client
func (h *ClientHandler) RestoreClient(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid client ID", Message: err.Error()})
		return
	}

	if err := h.repo.Restore(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "Failed to restore client")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client restored"})
}

// DeleteClient deletes a client, its projects and their tasks
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid client ID", Message: err.Error()})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "Failed to delete client")
		return
	}

	h.logger.WithField("client_id", id).Info("クライアントと関連データを削除しました")
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted"})
}
