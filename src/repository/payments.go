package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"taskman-app/src/datamode"
	"taskman-app/src/domain"
)

// PaymentRepository is the sole authorized mutator of the payment collection
type PaymentRepository struct {
	modes  *datamode.Selector
	logger *logrus.Logger

	mu       sync.RWMutex
	payments []domain.Payment
	lastErr  string
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(modes *datamode.Selector, logger *logrus.Logger) *PaymentRepository {
	return &PaymentRepository{modes: modes, logger: logger}
}

// LoadAll reloads the full collection from the active backend
func (r *PaymentRepository) LoadAll(ctx context.Context) ([]domain.Payment, error) {
	payments, err := r.modes.Backend().ListPayments(ctx)
	if err != nil {
		r.fail("failed to load payments", err)
		return nil, err
	}

	r.mu.Lock()
	r.payments = payments
	r.lastErr = ""
	r.mu.Unlock()
	return payments, nil
}

// Payments returns the last successfully loaded collection
func (r *PaymentRepository) Payments() []domain.Payment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Payment, len(r.payments))
	copy(out, r.payments)
	return out
}

// Active returns non-archived payments from the loaded collection
func (r *PaymentRepository) Active() []domain.Payment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		if !p.Archived {
			out = append(out, p)
		}
	}
	return out
}

// LastError returns the recorded error message, empty when healthy
func (r *PaymentRepository) LastError() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastErr
}

// Create persists a new payment and reloads the collection
func (r *PaymentRepository) Create(ctx context.Context, req domain.CreatePaymentRequest) (*domain.Payment, error) {
	now := time.Now()

	status := req.Status
	if status == "" {
		status = domain.PaymentStatusPending
	}

	payment := &domain.Payment{
		ID:          uuid.New().String(),
		Amount:      req.Amount,
		Description: req.Description,
		Type:        req.Type,
		ProjectID:   req.ProjectID,
		ClientID:    req.ClientID,
		DueDate:     req.DueDate,
		PaidDate:    req.PaidDate,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
		Category:    req.Category,
		Tags:        req.Tags,
	}
	if payment.Tags == nil {
		payment.Tags = []string{}
	}

	if err := r.modes.Backend().PutPayment(ctx, payment); err != nil {
		r.fail("failed to create payment", err)
		return nil, err
	}
	if _, err := r.LoadAll(ctx); err != nil {
		return nil, err
	}

	r.logger.WithField("payment_id", payment.ID).Info("支払いを作成しました")
	return payment, nil
}

// Update merges a partial update into the stored payment and reloads
func (r *PaymentRepository) Update(ctx context.Context, id string, req domain.UpdatePaymentRequest) error {
	backend := r.modes.Backend()

	existing, err := r.find(ctx, backend, id)
	if err != nil {
		return err
	}

	updated := *existing
	if req.Amount != nil {
		updated.Amount = *req.Amount
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Type != nil {
		updated.Type = *req.Type
	}
	if req.ProjectID != nil {
		updated.ProjectID = *req.ProjectID
	}
	if req.ClientID != nil {
		updated.ClientID = *req.ClientID
	}
	if req.DueDate != nil {
		updated.DueDate = req.DueDate
	}
	if req.PaidDate != nil {
		updated.PaidDate = req.PaidDate
	}
	if req.Status != nil {
		updated.Status = *req.Status
	}
	if req.Category != nil {
		updated.Category = *req.Category
	}
	if req.Tags != nil {
		updated.Tags = req.Tags
	}
	updated.UpdatedAt = time.Now()

	if err := backend.PutPayment(ctx, &updated); err != nil {
		r.fail("failed to update payment", err)
		return err
	}
	if _, err := r.LoadAll(ctx); err != nil {
		return err
	}

	r.logger.WithField("payment_id", id).Info("支払いを更新しました")
	return nil
}

// MarkAsPaid transitions a payment to paid.
// paidDateがゼロ値の場合は現在時刻を使う
func (r *PaymentRepository) MarkAsPaid(ctx context.Context, id string, paidDate time.Time) error {
	if paidDate.IsZero() {
		paidDate = time.Now()
	}
	status := domain.PaymentStatusPaid
	return r.Update(ctx, id, domain.UpdatePaymentRequest{
		Status:   &status,
		PaidDate: &paidDate,
	})
}

// Archive hides a payment from default views without deleting it
func (r *PaymentRepository) Archive(ctx context.Context, id string) error {
	return r.setArchived(ctx, id, true)
}

// Restore returns an archived payment to default views
func (r *PaymentRepository) Restore(ctx context.Context, id string) error {
	return r.setArchived(ctx, id, false)
}

func (r *PaymentRepository) setArchived(ctx context.Context, id string, archived bool) error {
	backend := r.modes.Backend()

	existing, err := r.find(ctx, backend, id)
	if err != nil {
		return err
	}

	updated := *existing
	updated.Archived = archived
	if archived {
		now := time.Now()
		updated.ArchivedAt = &now
	} else {
		updated.ArchivedAt = nil
	}
	updated.UpdatedAt = time.Now()

	if err := backend.PutPayment(ctx, &updated); err != nil {
		r.fail("failed to archive payment", err)
		return err
	}
	_, err = r.LoadAll(ctx)
	return err
}

// Delete permanently removes a payment and reloads the collection
func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	if err := r.modes.Backend().DeletePayment(ctx, id); err != nil {
		r.fail("failed to delete payment", err)
		return err
	}
	if _, err := r.LoadAll(ctx); err != nil {
		return err
	}

	r.logger.WithField("payment_id", id).Info("支払いを削除しました")
	return nil
}

func (r *PaymentRepository) find(ctx context.Context, backend domain.Backend, id string) (*domain.Payment, error) {
	payments, err := backend.ListPayments(ctx)
	if err != nil {
		r.fail("failed to load payments", err)
		return nil, err
	}
	for i := range payments {
		if payments[i].ID == id {
			return &payments[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *PaymentRepository) fail(msg string, err error) {
	r.mu.Lock()
	r.lastErr = msg + ": " + err.Error()
	r.mu.Unlock()
	r.logger.WithError(err).Error("支払いリポジトリの操作に失敗")
}
