package handlers

import (
	"net/http"
	"strconv"
	"time"

	"taskman-app/src/domain"
	"taskman-app/src/repository"
	"taskman-app/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PaymentHandler handles HTTP requests for payment operations
type PaymentHandler struct {
	repo      *repository.PaymentRepository
	validator *validator.CustomValidator
	logger    *logrus.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(repo *repository.PaymentRepository, cv *validator.CustomValidator, logger *logrus.Logger) *PaymentHandler {
	return &PaymentHandler{
		repo:      repo,
		validator: cv,
		logger:    logger,
	}
}

// ListPayments lists payments. ?include_archived=true でアーカイブ済みも含める
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	if _, err := h.repo.LoadAll(c.Request.Context()); err != nil {
		h.logger.WithError(err).Error("入出金一覧の取得に失敗")
		respondStoreError(c, err, "Failed to list payments")
		return
	}

	includeArchived, _ := strconv.ParseBool(c.DefaultQuery("include_archived", "false"))
	payments := h.repo.Active()
	if includeArchived {
		payments = h.repo.Payments()
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": payments,
		"total":    len(payments),
	})
}

// CreatePayment creates a new payment
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid request format", Message: err.Error()})
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Validation failed", Message: err.Error()})
		return
	}

	payment, err := h.repo.Create(c.Request.Context(), domain.CreatePaymentRequest{
		Amount:      req.Amount,
		Description: req.Description,
		Type:        domain.PaymentType(req.Type),
		ProjectID:   req.ProjectID,
		ClientID:    req.ClientID,
		DueDate:     req.DueDate,
		PaidDate:    req.PaidDate,
		Status:      domain.PaymentStatus(req.Status),
		Category:    req.Category,
		Tags:        h.validator.SanitizeTags(req.Tags),
	})
	if err != nil {
		h.logger.WithError(err).Error("入出金の作成に失敗")
		respondStoreError(c, err, "Failed to create payment")
		return
	}

	h.logger.WithField("payment_id", payment.ID).Info("入出金を作成しました")
	c.JSON(http.StatusCreated, payment)
}

// UpdatePayment updates an existing payment
func (h *PaymentHandler) UpdatePayment(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid payment ID", Message: err.Error()})
		return
	}

	var req UpdatePaymentRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid request format", Message: err.Error()})
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Validation failed", Message: err.Error()})
		return
	}

	update := domain.UpdatePaymentRequest{
		Amount:      req.Amount,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		ClientID:    req.ClientID,
		DueDate:     req.DueDate,
		PaidDate:    req.PaidDate,
		Category:    req.Category,
		Tags:        req.Tags,
	}
	if req.Type != nil {
		paymentType := domain.PaymentType(*req.Type)
		update.Type = &paymentType
	}
	if req.Status != nil {
		status := domain.PaymentStatus(*req.Status)
		update.Status = &status
	}

	if err := h.repo.Update(c.Request.Context(), id, update); err != nil {
		h.logger.WithError(err).WithField("payment_id", id).Error("入出金の更新に失敗")
		respondStoreError(c, err, "Failed to update payment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment updated"})
}

// MarkAsPaid marks a payment as paid
func (h *PaymentHandler) MarkAsPaid(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid payment ID", Message: err.Error()})
		return
	}

	// ボディは省略可能
	var req MarkPaidRequestDTO
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid request format", Message: err.Error()})
			return
		}
	}

	paidDate := time.Now()
	if req.PaidDate != nil {
		paidDate = *req.PaidDate
	}

	if err := h.repo.MarkAsPaid(c.Request.Context(), id, paidDate); err != nil {
		respondStoreError(c, err, "Failed to mark payment as paid")
		return
	}

	h.logger.WithField("payment_id", id).Info("入出金を支払済みにしました")
	c.JSON(http.StatusOK, gin.H{"message": "Payment marked as paid"})
}

// ArchivePayment archives a payment
func (h *PaymentHandler) ArchivePayment(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid payment ID", Message: err.Error()})
		return
	}

	if err := h.repo.Archive(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "Failed to archive payment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment archived"})
}

// RestorePayment restores an archived payment
func (h *PaymentHandler) RestorePayment(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid payment ID", Message: err.Error()})
		return
	}

	if err := h.repo.Restore(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "Failed to restore payment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment restored"})
}

// DeletePayment deletes a payment
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	id, err := h.validator.ValidateID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponseDTO{Error: "Invalid payment ID", Message: err.Error()})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "Failed to delete payment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted"})
}
