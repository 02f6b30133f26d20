package handlers

import (
	"net/http"
	"sort"
	"strings"

	"taskman-app/src/domain"
	"taskman-app/src/repository"
	"taskman-app/src/security"
	"taskman-app/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// TaskHandler handles HTTP requests for task operations
type TaskHandler struct {
	repo      *repository.TaskRepository
	projects  *repository.ProjectRepository
	validator *validator.CustomValidator
	sanitizer *security.SQLSanitizer
	logger    *logrus.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(repo *repository.TaskRepository, projects *repository.ProjectRepository, cv *validator.CustomValidator, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{
		repo:      repo,
		projects:  projects,
		validator: cv,
		sanitizer: security.NewSQLSanitizer(),
		logger:    logger,
	}
}

// ListTasks lists tasks with optional filtering
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var q TaskFilterDTO
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid query parameters", Message: err.Error()})
		return
	}

	// 検索クエリの安全性チェック
	if err := h.sanitizer.ValidateSearchQuery(q.Search); err != nil {
		h.logger.WithError(err).Warn("不正な検索クエリを拒否")
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid search query"})
		return
	}
	if err := h.sanitizer.ValidateOrderBy(q.Sort); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid sort parameter", Message: err.Error()})
		return
	}
	if q.Limit == 0 {
		q.Limit = defaultListLimit
	}
	if err := h.sanitizer.ValidateLimitOffset(q.Limit, q.Offset); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid pagination parameters", Message: err.Error()})
		return
	}

	tasks, err := h.repo.LoadAll(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("タスク一覧の取得に失敗")
		respondStoreError(c, err, "Failed to list tasks")
		return
	}

	filtered := repository.FilterTasks(tasks, h.toFilter(&q))
	sortTasks(filtered, q.Sort)
	total := len(filtered)
	filtered = pageTasks(filtered, q.Limit, q.Offset)
	c.JSON(http.StatusOK, gin.H{
		"tasks": filtered,
		"total": total,
	})
}

const defaultListLimit = 100

// sortTasks orders tasks by a whitelisted column, e.g. "due_date desc".
// An empty spec keeps the store order (created_at ascending).
func sortTasks(tasks []domain.Task, spec string) {
	if spec == "" {
		return
	}
	parts := strings.Fields(strings.ToLower(spec))
	column := parts[0]
	desc := len(parts) == 2 && parts[1] == "desc"

	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := &tasks[i], &tasks[j]
		if desc {
			a, b = b, a
		}
		switch column {
		case "id":
			return a.ID < b.ID
		case "title":
			return a.Title < b.Title
		case "status":
			return a.Status < b.Status
		case "priority":
			return a.Priority < b.Priority
		case "due_date":
			// 期限なしは末尾に寄せる
			if a.DueDate == nil {
				return false
			}
			if b.DueDate == nil {
				return true
			}
			return a.DueDate.Before(*b.DueDate)
		case "updated_at":
			return a.UpdatedAt.Before(b.UpdatedAt)
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})
}

func pageTasks(tasks []domain.Task, limit, offset int) []domain.Task {
	if offset >= len(tasks) {
		return []domain.Task{}
	}
	end := offset + limit
	if end > len(tasks) {
		end = len(tasks)
	}
	return tasks[offset:end]
}

// GetTask retrieves a task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid task ID", Message: err.Error()})
		return
	}

	tasks, err := h.repo.LoadAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "Failed to get task")
		return
	}

	for i := range tasks {
		if tasks[i].ID == id {
			c.JSON(http.StatusOK, tasks[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, ErrorResponseDTO{Error: "Task not found"})
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req CreateTaskRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid request format", Message: err.Error()})
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Validation failed", Message: err.Error()})
		return
	}

	task, err := h.repo.Create(c.Request.Context(), domain.CreateTaskRequest{
		Title:          req.Title,
		Description:    req.Description,
		Status:         domain.TaskStatus(req.Status),
		Priority:       domain.Priority(req.Priority),
		ProjectID:      req.ProjectID,
		ClientID:       req.ClientID,
		DueDate:        req.DueDate,
		Tags:           h.validator.SanitizeTags(req.Tags),
		Color:          req.Color,
		EstimatedHours: req.EstimatedHours,
	})
	if err != nil {
		h.logger.WithError(err).Error("タスクの作成に失敗")
		respondStoreError(c, err, "Failed to create task")
		return
	}

	// プロジェクト側のタスク一覧にも紐付ける
	if task.ProjectID != "" {
		if err := h.projects.AddTask(c.Request.Context(), task.ProjectID, task.ID); err != nil {
			h.logger.WithError(err).WithField("project_id", task.ProjectID).Warn("プロジェクトへのタスク紐付けに失敗")
		}
	}

	h.logger.WithField("task_id", task.ID).Info("タスクを作成しました")
	c.JSON(http.StatusCreated, task)
}

// UpdateTask updates an existing task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid task ID", Message: err.Error()})
		return
	}

	var req UpdateTaskRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid request format", Message: err.Error()})
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Validation failed", Message: err.Error()})
		return
	}

	update := domain.UpdateTaskRequest{
		Title:          req.Title,
		Description:    req.Description,
		ProjectID:      req.ProjectID,
		ClientID:       req.ClientID,
		DueDate:        req.DueDate,
		Tags:           req.Tags,
		Color:          req.Color,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		update.Status = &status
	}
	if req.Priority != nil {
		priority := domain.Priority(*req.Priority)
		update.Priority = &priority
	}

	if err := h.repo.Update(c.Request.Context(), id, update); err != nil {
		h.logger.WithError(err).WithField("task_id", id).Error("タスクの更新に失敗")
		respondStoreError(c, err, "Failed to update task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task updated"})
}

// UpdateTaskStatus transitions a task to a new status
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid task ID", Message: err.Error()})
		return
	}

	var req UpdateStatusRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid request format", Message: err.Error()})
		return
	}

	status := domain.TaskStatus(req.Status)
	if !status.IsValid() {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid task status"})
		return
	}

	if err := h.repo.UpdateStatus(c.Request.Context(), id, status); err != nil {
		respondStoreError(c, err, "Failed to update task status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task status updated"})
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid task ID", Message: err.Error()})
		return
	}

	var projectID string
	for _, task := range h.repo.Tasks() {
		if task.ID == id {
			projectID = task.ProjectID
			break
		}
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "Failed to delete task")
		return
	}

	// プロジェクト側の参照も外す
	if projectID != "" {
		if err := h.projects.RemoveTask(c.Request.Context(), projectID, id); err != nil {
			h.logger.WithError(err).WithField("project_id", projectID).Warn("プロジェクトからのタスク参照解除に失敗")
		}
	}

	h.logger.WithField("task_id", id).Info("タスクを削除しました")
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// AddComment adds a comment to a task
func (h *TaskHandler) AddComment(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid task ID", Message: err.Error()})
		return
	}

	var req AddCommentRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid request format", Message: err.Error()})
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Validation failed", Message: err.Error()})
		return
	}

	kind := domain.CommentKind(req.Kind)
	if req.Kind == "" {
		kind = domain.CommentKindComment
	}

	comment, err := h.repo.AddComment(c.Request.Context(), id, req.Text, req.Author, kind)
	if err != nil {
		respondStoreError(c, err, "Failed to add comment")
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// AddChecklistItem adds a checklist item to a task
func (h *TaskHandler) AddChecklistItem(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid task ID", Message: err.Error()})
		return
	}

	var req AddChecklistItemRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid request format", Message: err.Error()})
		return
	}

	item, err := h.repo.AddChecklistItem(c.Request.Context(), id, req.Text)
	if err != nil {
		respondStoreError(c, err, "Failed to add checklist item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// ToggleChecklistItem toggles the completed flag of a checklist item
func (h *TaskHandler) ToggleChecklistItem(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid task ID", Message: err.Error()})
		return
	}

	itemID, err := h.validator.ValidateID(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid checklist item ID", Message: err.Error()})
		return
	}

	if err := h.repo.ToggleChecklistItem(c.Request.Context(), id, itemID); err != nil {
		respondStoreError(c, err, "Failed to toggle checklist item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Checklist item toggled"})
}

// toFilter converts query parameters to a task filter
func (h *TaskHandler) toFilter(q *TaskFilterDTO) domain.TaskFilter {
	f := domain.TaskFilter{
		ProjectID: q.ProjectID,
		ClientID:  q.ClientID,
		Search:    h.sanitizer.SanitizeSearchQuery(q.Search),
	}
	for _, s := range splitCSV(q.Status) {
		status := domain.TaskStatus(s)
		if status.IsValid() {
			f.Status = append(f.Status, status)
		}
	}
	for _, p := range splitCSV(q.Priority) {
		priority := domain.Priority(p)
		if priority.IsValid() {
			f.Priority = append(f.Priority, priority)
		}
	}
	f.Tags = splitCSV(q.Tags)
	return f
}

// splitCSV カンマ区切りのクエリ値を分割
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
