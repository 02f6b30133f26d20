package clouddb

import (
	"database/sql/driver"
	"encoding/json"
	"testing"
	"time"

	"taskman-app/src/domain"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskDocRoundTrip(t *testing.T) {
	due := time.Date(2025, 7, 31, 18, 0, 0, 0, time.UTC)
	completed := time.Date(2025, 7, 30, 9, 30, 0, 0, time.UTC)
	original := domain.Task{
		ID:          "55c9f5f2-3a65-4f0a-9c68-1f0d2f9e0a11",
		Title:       "納品物の最終確認",
		Description: "チェックリストを全て消化する",
		Status:      domain.TaskStatusCompleted,
		Priority:    domain.PriorityHigh,
		ProjectID:   "p-1",
		DueDate:     &due,
		CompletedAt: &completed,
		CreatedAt:   time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2025, 7, 30, 9, 30, 0, 0, time.UTC),
		Tags:        []string{"納品", "レビュー"},
		Comments: []domain.Comment{
			{ID: "c1", Text: "確認済み", Author: "me", Kind: domain.CommentKindComment, CreatedAt: due},
		},
		Checklist: []domain.ChecklistItem{
			{ID: "i1", Text: "動作確認", Completed: true},
		},
	}

	doc, err := json.Marshal(&original)
	require.NoError(t, err)

	var decoded domain.Task
	require.NoError(t, json.Unmarshal(doc, &decoded))

	assert.Equal(t, original.ID, decoded.ID)
	assert.Equal(t, original.Title, decoded.Title)
	assert.Equal(t, original.Status, decoded.Status)
	assert.Equal(t, original.Tags, decoded.Tags)
	assert.Equal(t, original.Comments, decoded.Comments)
	assert.Equal(t, original.Checklist, decoded.Checklist)

	// 日付は往復後も同一時刻を指す
	require.NotNil(t, decoded.DueDate)
	assert.True(t, due.Equal(*decoded.DueDate))
	require.NotNil(t, decoded.CompletedAt)
	assert.True(t, completed.Equal(*decoded.CompletedAt))
}

func TestPaymentDocRoundTrip(t *testing.T) {
	due := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)
	paid := time.Date(2025, 8, 5, 12, 0, 0, 0, time.UTC)
	original := domain.Payment{
		ID:          "7f3c1b8e-2d4a-4e6f-8a90-0b1c2d3e4f55",
		Amount:      120000,
		Description: "7月分の請求",
		Type:        domain.PaymentTypeIncome,
		Status:      domain.PaymentStatusPaid,
		DueDate:     &due,
		PaidDate:    &paid,
		CreatedAt:   time.Date(2025, 7, 25, 8, 0, 0, 0, time.UTC),
		UpdatedAt:   paid,
		Tags:        []string{},
	}

	doc, err := json.Marshal(&original)
	require.NoError(t, err)

	var decoded domain.Payment
	require.NoError(t, json.Unmarshal(doc, &decoded))

	assert.Equal(t, original.Amount, decoded.Amount)
	assert.Equal(t, original.Type, decoded.Type)
	assert.Equal(t, original.Status, decoded.Status)
	require.NotNil(t, decoded.DueDate)
	assert.True(t, due.Equal(*decoded.DueDate))
	require.NotNil(t, decoded.PaidDate)
	assert.True(t, paid.Equal(*decoded.PaidDate))
}

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError(nil))

	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name:     "権限エラーはErrPermissionDenied",
			input:    &pq.Error{Code: "42501"},
			expected: domain.ErrPermissionDenied,
		},
		{
			name:     "接続断はErrStoreUnavailable",
			input:    driver.ErrBadConn,
			expected: domain.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapError(tt.input), tt.expected)
		})
	}
}
