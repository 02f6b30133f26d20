package repository_test

import (
	"context"
	"testing"
	"time"

	"taskman-app/src/domain"
	"taskman-app/src/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentRepository_CreateDefaults(t *testing.T) {
	repo := repository.NewPaymentRepository(newTestSelector(t), testLogger())
	ctx := context.Background()

	payment, err := repo.Create(ctx, domain.CreatePaymentRequest{
		Amount:      50000,
		Description: "ウェブサイト制作費",
		Type:        domain.PaymentTypeIncome,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, payment.ID)
	assert.Equal(t, domain.PaymentStatusPending, payment.Status)
	assert.Nil(t, payment.PaidDate)
	assert.True(t, payment.CreatedAt.Equal(payment.UpdatedAt))
}

func TestPaymentRepository_MarkAsPaid(t *testing.T) {
	repo := repository.NewPaymentRepository(newTestSelector(t), testLogger())
	ctx := context.Background()

	payment, err := repo.Create(ctx, domain.CreatePaymentRequest{
		Amount: 30000,
		Type:   domain.PaymentTypeIncome,
	})
	require.NoError(t, err)

	paidDate := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.MarkAsPaid(ctx, payment.ID, paidDate))

	got := repo.Payments()
	require.Len(t, got, 1)
	assert.Equal(t, domain.PaymentStatusPaid, got[0].Status)
	require.NotNil(t, got[0].PaidDate)
	assert.True(t, paidDate.Equal(*got[0].PaidDate))
}

func TestPaymentRepository_MarkAsPaidDefaultsToNow(t *testing.T) {
	repo := repository.NewPaymentRepository(newTestSelector(t), testLogger())
	ctx := context.Background()

	payment, err := repo.Create(ctx, domain.CreatePaymentRequest{
		Amount: 1200,
		Type:   domain.PaymentTypeExpense,
	})
	require.NoError(t, err)

	before := time.Now().Add(-time.Second)
	// ゼロ値を渡すと現在時刻が入る
	require.NoError(t, repo.MarkAsPaid(ctx, payment.ID, time.Time{}))

	got := repo.Payments()
	require.Len(t, got, 1)
	require.NotNil(t, got[0].PaidDate)
	assert.True(t, got[0].PaidDate.After(before))
}

func TestPaymentRepository_ArchiveExcludedFromActive(t *testing.T) {
	repo := repository.NewPaymentRepository(newTestSelector(t), testLogger())
	ctx := context.Background()

	payment, err := repo.Create(ctx, domain.CreatePaymentRequest{
		Amount: 8000,
		Type:   domain.PaymentTypeExpense,
	})
	require.NoError(t, err)

	require.NoError(t, repo.Archive(ctx, payment.ID))
	assert.Empty(t, repo.Active())
	assert.Len(t, repo.Payments(), 1)

	require.NoError(t, repo.Restore(ctx, payment.ID))
	assert.Len(t, repo.Active(), 1)
}
