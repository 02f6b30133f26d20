package handlers

import (
	"net/http"
	"time"

	"taskman-app/src/repository"
	"taskman-app/src/stats"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StatsHandler handles HTTP requests for derived statistics
type StatsHandler struct {
	tasks    *repository.TaskRepository
	projects *repository.ProjectRepository
	payments *repository.PaymentRepository
	logger   *logrus.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(tasks *repository.TaskRepository, projects *repository.ProjectRepository, payments *repository.PaymentRepository, logger *logrus.Logger) *StatsHandler {
	return &StatsHandler{
		tasks:    tasks,
		projects: projects,
		payments: payments,
		logger:   logger,
	}
}

// GetDashboard returns the dashboard summary
func (h *StatsHandler) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	taskList, err := h.tasks.LoadAll(ctx)
	if err != nil {
		h.logger.WithError(err).Error("ダッシュボード集計用のタスク取得に失敗")
		respondStoreError(c, err, "Failed to compute dashboard")
		return
	}
	projectList, err := h.projects.LoadAll(ctx)
	if err != nil {
		respondStoreError(c, err, "Failed to compute dashboard")
		return
	}
	paymentList, err := h.payments.LoadAll(ctx)
	if err != nil {
		respondStoreError(c, err, "Failed to compute dashboard")
		return
	}

	c.JSON(http.StatusOK, stats.ComputeDashboard(taskList, projectList, paymentList, time.Now()))
}

// GetAnalytics returns the financial analytics view
func (h *StatsHandler) GetAnalytics(c *gin.Context) {
	ctx := c.Request.Context()

	paymentList, err := h.payments.LoadAll(ctx)
	if err != nil {
		h.logger.WithError(err).Error("財務分析用の入出金取得に失敗")
		respondStoreError(c, err, "Failed to compute analytics")
		return
	}
	taskList, err := h.tasks.LoadAll(ctx)
	if err != nil {
		respondStoreError(c, err, "Failed to compute analytics")
		return
	}
	projectList, err := h.projects.LoadAll(ctx)
	if err != nil {
		respondStoreError(c, err, "Failed to compute analytics")
		return
	}

	c.JSON(http.StatusOK, stats.ComputeFinancialAnalytics(paymentList, taskList, projectList, time.Now()))
}
