package stats

import (
	"sort"
	"time"

	"taskman-app/src/domain"
)

// DashboardStats is the read-only summary shown on the dashboard.
// コレクションが変わるたびに毎回ゼロから再計算する。キャッシュしない
type DashboardStats struct {
	TotalTasks        int                       `json:"total_tasks"`
	CompletedTasks    int                       `json:"completed_tasks"`
	OverdueTasks      int                       `json:"overdue_tasks"`
	TotalProjects     int                       `json:"total_projects"`
	ActiveProjects    int                       `json:"active_projects"`
	MonthlyIncome     float64                   `json:"monthly_income"`
	MonthlyExpenses   float64                   `json:"monthly_expenses"`
	TasksByStatus     map[domain.TaskStatus]int `json:"tasks_by_status"`
	UpcomingDeadlines []domain.Task             `json:"upcoming_deadlines"`
}

// ComputeDashboard computes dashboard statistics from the loaded collections.
// Monthly sums here count only payments with status paid, unlike the
// financial analytics view.
func ComputeDashboard(tasks []domain.Task, projects []domain.Project, payments []domain.Payment, now time.Time) DashboardStats {
	stats := DashboardStats{
		TotalTasks:    len(tasks),
		TotalProjects: len(projects),
		TasksByStatus: map[domain.TaskStatus]int{
			domain.TaskStatusNew:        0,
			domain.TaskStatusInProgress: 0,
			domain.TaskStatusReview:     0,
			domain.TaskStatusCompleted:  0,
			domain.TaskStatusCancelled:  0,
			domain.TaskStatusOnHold:     0,
		},
		UpcomingDeadlines: []domain.Task{},
	}

	for _, t := range tasks {
		stats.TasksByStatus[t.Status]++
		if t.Status == domain.TaskStatusCompleted {
			stats.CompletedTasks++
		}
		if t.IsOverdue(now) {
			stats.OverdueTasks++
		}
	}

	for _, p := range projects {
		if p.Status == domain.ProjectStatusActive {
			stats.ActiveProjects++
		}
	}

	for _, p := range payments {
		if !inMonth(p.CreatedAt, now) || p.Status != domain.PaymentStatusPaid {
			continue
		}
		switch p.Type {
		case domain.PaymentTypeIncome:
			stats.MonthlyIncome += p.Amount
		case domain.PaymentTypeExpense:
			stats.MonthlyExpenses += p.Amount
		}
	}

	stats.UpcomingDeadlines = upcomingDeadlines(tasks, now)
	return stats
}

// upcomingDeadlines returns the five soonest-due non-completed tasks that
// are due within three days or already overdue
func upcomingDeadlines(tasks []domain.Task, now time.Time) []domain.Task {
	horizon := now.AddDate(0, 0, 3)

	upcoming := make([]domain.Task, 0)
	for _, t := range tasks {
		if t.DueDate == nil || t.Status == domain.TaskStatusCompleted {
			continue
		}
		if !t.DueDate.After(horizon) {
			upcoming = append(upcoming, t)
		}
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].DueDate.Before(*upcoming[j].DueDate)
	})

	if len(upcoming) > 5 {
		upcoming = upcoming[:5]
	}
	return upcoming
}

// inMonth reports whether t falls in the same calendar month as now
func inMonth(t, now time.Time) bool {
	return t.Year() == now.Year() && t.Month() == now.Month()
}
