package localdb

import (
	"context"
	"encoding/json"
	"fmt"

	"taskman-app/src/domain"
)

// ListPayments returns all payments ascending by creation time
func (db *DB) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	rows, err := db.QueryContext(ctx, `SELECT doc FROM payments ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		var p domain.Payment
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return payments, nil
}

// PutPayment inserts or replaces a payment
func (db *DB) PutPayment(ctx context.Context, payment *domain.Payment) error {
	doc, err := json.Marshal(payment)
	if err != nil {
		return fmt.Errorf("failed to marshal payment: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO payments (id, type, status, project_id, client_id, due_date, paid_date, category, archived, created_at, updated_at, doc)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			status = excluded.status,
			project_id = excluded.project_id,
			client_id = excluded.client_id,
			due_date = excluded.due_date,
			paid_date = excluded.paid_date,
			category = excluded.category,
			archived = excluded.archived,
			updated_at = excluded.updated_at,
			doc = excluded.doc
	`, payment.ID, payment.Type.String(), payment.Status.String(),
		nullString(payment.ProjectID), nullString(payment.ClientID),
		payment.DueDate, payment.PaidDate, payment.Category, payment.Archived,
		payment.CreatedAt, payment.UpdatedAt, string(doc))
	if err != nil {
		return fmt.Errorf("failed to put payment: %w", err)
	}
	return nil
}

// DeletePayment removes a payment by ID
func (db *DB) DeletePayment(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM payments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
