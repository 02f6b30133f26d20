package domain

import (
	"time"
)

// Payment represents a payment domain entity
type Payment struct {
	ID          string        `json:"id"`
	Amount      float64       `json:"amount"`
	Description string        `json:"description"`
	Type        PaymentType   `json:"type"`
	ProjectID   string        `json:"project_id,omitempty"`
	ClientID    string        `json:"client_id,omitempty"`
	DueDate     *time.Time    `json:"due_date,omitempty"`
	PaidDate    *time.Time    `json:"paid_date,omitempty"`
	Status      PaymentStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Category    string        `json:"category"`
	Tags        []string      `json:"tags"`
	Archived    bool          `json:"archived,omitempty"`
	ArchivedAt  *time.Time    `json:"archived_at,omitempty"`
}

// PaymentType represents the direction of a payment
type PaymentType string

const (
	PaymentTypeIncome  PaymentType = "income"
	PaymentTypeExpense PaymentType = "expense"
)

// PaymentStatus represents payment lifecycle states
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusOverdue   PaymentStatus = "overdue"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// IsValid validates if the payment type is valid
func (t PaymentType) IsValid() bool {
	switch t {
	case PaymentTypeIncome, PaymentTypeExpense:
		return true
	default:
		return false
	}
}

// IsValid validates if the payment status is valid
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusOverdue, PaymentStatusCancelled:
		return true
	default:
		return false
	}
}

// String returns string representation of PaymentType
func (t PaymentType) String() string {
	return string(t)
}

// String returns string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// CreatePaymentRequest represents input for creating a payment
type CreatePaymentRequest struct {
	Amount      float64
	Description string
	Type        PaymentType
	ProjectID   string
	ClientID    string
	DueDate     *time.Time
	PaidDate    *time.Time
	Status      PaymentStatus
	Category    string
	Tags        []string
}

// UpdatePaymentRequest represents a partial update for a payment
type UpdatePaymentRequest struct {
	Amount      *float64
	Description *string
	Type        *PaymentType
	ProjectID   *string
	ClientID    *string
	DueDate     *time.Time
	PaidDate    *time.Time
	Status      *PaymentStatus
	Category    *string
	Tags        []string
}
