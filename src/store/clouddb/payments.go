package clouddb

import (
	"context"
	"encoding/json"
	"fmt"

	"taskman-app/src/domain"
)

// ListPayments returns all payments in the user's namespace ascending by creation time
func (s *Scope) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	docs, err := s.listDocs(ctx, colPayments)
	if err != nil {
		return nil, err
	}

	payments := make([]domain.Payment, 0, len(docs))
	for _, doc := range docs {
		var p domain.Payment
		if err := json.Unmarshal(doc, &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, nil
}

// PutPayment writes a payment document
func (s *Scope) PutPayment(ctx context.Context, payment *domain.Payment) error {
	doc, err := json.Marshal(payment)
	if err != nil {
		return fmt.Errorf("failed to marshal payment: %w", err)
	}
	return s.putDoc(ctx, colPayments, payment.ID, doc, payment.CreatedAt, payment.UpdatedAt)
}

// DeletePayment removes a payment document
func (s *Scope) DeletePayment(ctx context.Context, id string) error {
	return s.deleteDoc(ctx, colPayments, id)
}
