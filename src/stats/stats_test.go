package stats_test

import (
	"testing"
	"time"

	"taskman-app/src/domain"
	"taskman-app/src/stats"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func datePtr(t time.Time) *time.Time {
	return &t
}

func TestComputeDashboard_OverdueTasks(t *testing.T) {
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	tasks := []domain.Task{
		{ID: "a", Status: domain.TaskStatusInProgress, DueDate: datePtr(yesterday)},
		{ID: "b", Status: domain.TaskStatusCompleted, DueDate: datePtr(yesterday)},
		{ID: "c", Status: domain.TaskStatusNew, DueDate: datePtr(tomorrow)},
		{ID: "d", Status: domain.TaskStatusNew},
	}

	s := stats.ComputeDashboard(tasks, nil, nil, now)

	// 期限切れは「期限超過かつ未完了」のみ
	assert.Equal(t, 1, s.OverdueTasks)
	assert.Equal(t, 4, s.TotalTasks)
	assert.Equal(t, 1, s.CompletedTasks)
	assert.Equal(t, 2, s.TasksByStatus[domain.TaskStatusNew])
}

func TestComputeDashboard_MonthlySumsCountOnlyPaid(t *testing.T) {
	payments := []domain.Payment{
		{ID: "p1", Type: domain.PaymentTypeIncome, Amount: 1000, Status: domain.PaymentStatusPaid, CreatedAt: now},
		{ID: "p2", Type: domain.PaymentTypeExpense, Amount: 400, Status: domain.PaymentStatusPending, CreatedAt: now},
		{ID: "p3", Type: domain.PaymentTypeIncome, Amount: 500, Status: domain.PaymentStatusPaid, CreatedAt: now.AddDate(0, -1, 0)},
	}

	s := stats.ComputeDashboard(nil, nil, payments, now)

	// 支払済みのみ、当月のみ
	assert.Equal(t, 1000.0, s.MonthlyIncome)
	assert.Equal(t, 0.0, s.MonthlyExpenses)
}

func TestComputeDashboard_UpcomingDeadlines(t *testing.T) {
	tasks := []domain.Task{
		{ID: "overdue", Status: domain.TaskStatusNew, DueDate: datePtr(now.AddDate(0, 0, -1))},
		{ID: "soon", Status: domain.TaskStatusNew, DueDate: datePtr(now.AddDate(0, 0, 2))},
		{ID: "later", Status: domain.TaskStatusNew, DueDate: datePtr(now.AddDate(0, 0, 10))},
		{ID: "done", Status: domain.TaskStatusCompleted, DueDate: datePtr(now.AddDate(0, 0, 1))},
	}

	s := stats.ComputeDashboard(tasks, nil, nil, now)

	// 3日以内（期限切れ含む）の未完了タスクのみ、期限昇順
	assert.Len(t, s.UpcomingDeadlines, 2)
	assert.Equal(t, "overdue", s.UpcomingDeadlines[0].ID)
	assert.Equal(t, "soon", s.UpcomingDeadlines[1].ID)
}

func TestComputeDashboard_UpcomingDeadlinesCapsAtFive(t *testing.T) {
	var tasks []domain.Task
	for i := 0; i < 8; i++ {
		tasks = append(tasks, domain.Task{
			ID:      string(rune('a' + i)),
			Status:  domain.TaskStatusNew,
			DueDate: datePtr(now.Add(time.Duration(i) * time.Hour)),
		})
	}

	s := stats.ComputeDashboard(tasks, nil, nil, now)
	assert.Len(t, s.UpcomingDeadlines, 5)
	assert.Equal(t, "a", s.UpcomingDeadlines[0].ID)
}

func TestComputeFinancialAnalytics_IgnoresPaymentStatus(t *testing.T) {
	payments := []domain.Payment{
		{ID: "p1", Type: domain.PaymentTypeIncome, Amount: 1000, Status: domain.PaymentStatusPaid, CreatedAt: now},
		{ID: "p2", Type: domain.PaymentTypeExpense, Amount: 400, Status: domain.PaymentStatusPending, CreatedAt: now},
		{ID: "p3", Type: domain.PaymentTypeIncome, Amount: 999, Status: domain.PaymentStatusPaid, CreatedAt: now.AddDate(0, -2, 0)},
	}

	a := stats.ComputeFinancialAnalytics(payments, nil, nil, now)

	// ステータスを問わず当月全件を合算する
	assert.Equal(t, 1000.0, a.Income)
	assert.Equal(t, 400.0, a.Expenses)
	assert.Equal(t, 600.0, a.NetIncome)
	assert.Len(t, a.CurrentMonthPayments, 2)
}

func TestComputeFinancialAnalytics_DiffersFromDashboard(t *testing.T) {
	payments := []domain.Payment{
		{ID: "p1", Type: domain.PaymentTypeIncome, Amount: 1000, Status: domain.PaymentStatusPaid, CreatedAt: now},
		{ID: "p2", Type: domain.PaymentTypeExpense, Amount: 400, Status: domain.PaymentStatusPending, CreatedAt: now},
	}

	dashboard := stats.ComputeDashboard(nil, nil, payments, now)
	analytics := stats.ComputeFinancialAnalytics(payments, nil, nil, now)

	// ダッシュボードは支払済みのみ、分析ビューは全件
	assert.Equal(t, 0.0, dashboard.MonthlyExpenses)
	assert.Equal(t, 400.0, analytics.Expenses)
}

func TestComputeFinancialAnalytics_CompletionRate(t *testing.T) {
	tests := []struct {
		name     string
		tasks    []domain.Task
		expected float64
	}{
		{
			name:     "タスクなしは0%",
			tasks:    nil,
			expected: 0,
		},
		{
			name: "4件中1件完了は25%",
			tasks: []domain.Task{
				{Status: domain.TaskStatusCompleted},
				{Status: domain.TaskStatusNew},
				{Status: domain.TaskStatusInProgress},
				{Status: domain.TaskStatusOnHold},
			},
			expected: 25,
		},
		{
			name: "全件完了は100%",
			tasks: []domain.Task{
				{Status: domain.TaskStatusCompleted},
				{Status: domain.TaskStatusCompleted},
			},
			expected: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := stats.ComputeFinancialAnalytics(nil, tt.tasks, nil, now)
			assert.Equal(t, tt.expected, a.CompletionRate)
		})
	}
}

func TestComputeFinancialAnalytics_PendingAndOverduePayments(t *testing.T) {
	payments := []domain.Payment{
		{ID: "p1", Type: domain.PaymentTypeIncome, Amount: 300, Status: domain.PaymentStatusPending, CreatedAt: now.AddDate(0, -3, 0)},
		{ID: "p2", Type: domain.PaymentTypeIncome, Amount: 200, Status: domain.PaymentStatusPending, CreatedAt: now, DueDate: datePtr(now.AddDate(0, 0, -2))},
		{ID: "p3", Type: domain.PaymentTypeExpense, Amount: 100, Status: domain.PaymentStatusPending, CreatedAt: now, DueDate: datePtr(now.AddDate(0, 0, 5))},
	}

	a := stats.ComputeFinancialAnalytics(payments, nil, nil, now)

	// 未回収は当月以外も含む収入のみ
	assert.Equal(t, 500.0, a.PendingIncome)
	// 期限超過は未払いかつ期限が過去のもの
	assert.Equal(t, 1, a.OverduePayments)
}

func TestComputeFinancialAnalytics_ProjectBreakdown(t *testing.T) {
	projects := []domain.Project{
		{Status: domain.ProjectStatusActive},
		{Status: domain.ProjectStatusActive},
		{Status: domain.ProjectStatusCompleted},
		{Status: domain.ProjectStatusPlanning},
	}

	a := stats.ComputeFinancialAnalytics(nil, nil, projects, now)
	assert.Equal(t, 2, a.ActiveProjects)
	assert.Equal(t, 1, a.CompletedProjects)
}
