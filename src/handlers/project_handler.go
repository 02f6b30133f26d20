package handlers

import (
	"net/http"

	"taskman-app/src/domain"
	"taskman-app/src/repository"
	"taskman-app/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ProjectHandler handles HTTP requests for project operations
type ProjectHandler struct {
	repo      *repository.ProjectRepository
	clients   *repository.ClientRepository
	validator *validator.CustomValidator
	logger    *logrus.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(repo *repository.ProjectRepository, clients *repository.ClientRepository, cv *validator.CustomValidator, logger *logrus.Logger) *ProjectHandler {
	return &ProjectHandler{
		repo:      repo,
		clients:   clients,
		validator: cv,
		logger:    logger,
	}
}

// ListProjects lists all projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.repo.LoadAll(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("プロジェクト一覧の取得に失敗")
		respondStoreError(c, err, "Failed to list projects")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"total":    len(projects),
	})
}

// GetProject retrieves a project by ID
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid project ID", Message: err.Error()})
		return
	}

	projects, err := h.repo.LoadAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "Failed to get project")
		return
	}

	for i := range projects {
		if projects[i].ID == id {
			c.JSON(http.StatusOK, projects[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, ErrorResponseDTO{Error: "Project not found"})
}

// CreateProject creates a new project
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req CreateProjectRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid request format", Message: err.Error()})
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Validation failed", Message: err.Error()})
		return
	}

	project, err := h.repo.Create(c.Request.Context(), domain.CreateProjectRequest{
		Name:        req.Name,
		Description: req.Description,
		ClientID:    req.ClientID,
		Status:      domain.ProjectStatus(req.Status),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
		Color:       req.Color,
		Tags:        h.validator.SanitizeTags(req.Tags),
	})
	if err != nil {
		h.logger.WithError(err).Error("プロジェクトの作成に失敗")
		respondStoreError(c, err, "Failed to create project")
		return
	}

	// クライアント側のプロジェクト一覧にも紐付ける
	if project.ClientID != "" {
		if err := h.clients.AddProject(c.Request.Context(), project.ClientID, project.ID); err != nil {
			h.logger.WithError(err).WithField("client_id", project.ClientID).Warn("クライアントへのプロジェクト紐付けに失敗")
		}
	}

	h.logger.WithField("project_id", project.ID).Info("プロジェクトを作成しました")
	c.JSON(http.StatusCreated, project)
}

// UpdateProject updates an existing project
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid project ID", Message: err.Error()})
		return
	}

	var req UpdateProjectRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid request format", Message: err.Error()})
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Validation failed", Message: err.Error()})
		return
	}

	update := domain.UpdateProjectRequest{
		Name:        req.Name,
		Description: req.Description,
		ClientID:    req.ClientID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
		Color:       req.Color,
		Tags:        req.Tags,
	}
	if req.Status != nil {
		status := domain.ProjectStatus(*req.Status)
		update.Status = &status
	}

	if err := h.repo.Update(c.Request.Context(), id, update); err != nil {
		h.logger.WithError(err).WithField("project_id", id).Error("プロジェクトの更新に失敗")
		respondStoreError(c, err, "Failed to update project")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project updated"})
}

// UpdateProjectStatus transitions a project to a new status
func (h *ProjectHandler) UpdateProjectStatus(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid project ID", Message: err.Error()})
		return
	}

	var req UpdateStatusRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid request format", Message: err.Error()})
		return
	}

	status := domain.ProjectStatus(req.Status)
	if !status.IsValid() {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid project status"})
		return
	}

	if err := h.repo.UpdateStatus(c.Request.Context(), id, status); err != nil {
		respondStoreError(c, err, "Failed to update project status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project status updated"})
}

// DeleteProject deletes a project and its tasks
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid project ID", Message: err.Error()})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "Failed to delete project")
		return
	}

	h.logger.WithField("project_id", id).Info("プロジェクトと配下のタスクを削除しました")
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}
