package stats

import (
	"time"

	"taskman-app/src/domain"
)

// FinancialAnalytics is the detailed money-and-progress view.
// 今月の収支はステータスを問わず全件を合算する。ダッシュボードとは集計条件が異なる
type FinancialAnalytics struct {
	Income               float64                   `json:"income"`
	Expenses             float64                   `json:"expenses"`
	NetIncome            float64                   `json:"net_income"`
	PendingIncome        float64                   `json:"pending_income"`
	OverduePayments      int                       `json:"overdue_payments"`
	TotalTasks           int                       `json:"total_tasks"`
	CompletedTasks       int                       `json:"completed_tasks"`
	CompletionRate       float64                   `json:"completion_rate"`
	TasksByStatus        map[domain.TaskStatus]int `json:"tasks_by_status"`
	ActiveProjects       int                       `json:"active_projects"`
	CompletedProjects    int                       `json:"completed_projects"`
	CurrentMonthPayments []domain.Payment          `json:"current_month_payments"`
}

// ComputeFinancialAnalytics computes the analytics view from the loaded
// collections. Monthly sums include every payment created this month
// regardless of status.
func ComputeFinancialAnalytics(payments []domain.Payment, tasks []domain.Task, projects []domain.Project, now time.Time) FinancialAnalytics {
	a := FinancialAnalytics{
		TotalTasks: len(tasks),
		TasksByStatus: map[domain.TaskStatus]int{
			domain.TaskStatusNew:        0,
			domain.TaskStatusInProgress: 0,
			domain.TaskStatusReview:     0,
			domain.TaskStatusCompleted:  0,
			domain.TaskStatusCancelled:  0,
			domain.TaskStatusOnHold:     0,
		},
		CurrentMonthPayments: []domain.Payment{},
	}

	for _, p := range payments {
		if inMonth(p.CreatedAt, now) {
			a.CurrentMonthPayments = append(a.CurrentMonthPayments, p)
			switch p.Type {
			case domain.PaymentTypeIncome:
				a.Income += p.Amount
			case domain.PaymentTypeExpense:
				a.Expenses += p.Amount
			}
		}
		if p.Type == domain.PaymentTypeIncome && p.Status == domain.PaymentStatusPending {
			a.PendingIncome += p.Amount
		}
		if p.Status == domain.PaymentStatusPending && p.DueDate != nil && p.DueDate.Before(now) {
			a.OverduePayments++
		}
	}
	a.NetIncome = a.Income - a.Expenses

	for _, t := range tasks {
		a.TasksByStatus[t.Status]++
		if t.Status == domain.TaskStatusCompleted {
			a.CompletedTasks++
		}
	}
	if a.TotalTasks > 0 {
		a.CompletionRate = float64(a.CompletedTasks) / float64(a.TotalTasks) * 100
	}

	for _, p := range projects {
		switch p.Status {
		case domain.ProjectStatusActive:
			a.ActiveProjects++
		case domain.ProjectStatusCompleted:
			a.CompletedProjects++
		}
	}

	return a
}
