package report

import (
	"context"
	"time"
)

type StatusCount struct {
	EmployeeID uint   `json:"employee_id"`
	Status     string `json:"status"`
	Total      int64  `json:"total"`
}

type Repository interface {
	// StatusCounts aggregates appointments per employee and status for [start, end).
	StatusCounts(ctx context.Context, businessID uint, start, end time.Time) ([]StatusCount, error)
}

// EmployeeStats is one employee's row of a period report.
type EmployeeStats struct {
	EmployeeID uint             `json:"employee_id"`
	ByStatus   map[string]int64 `json:"by_status"`
	Total      int64            `json:"total"`
}

// Summarize folds flat counts into per-employee rows, keeping the input order,
// and the business-wide totals per status.
func Summarize(counts []StatusCount) ([]EmployeeStats, map[string]int64) {
	rows := []EmployeeStats{}
	index := map[uint]int{}
	totals := map[string]int64{}

	for _, c := range counts {
		i, ok := index[c.EmployeeID]
		if !ok {
			i = len(rows)
			index[c.EmployeeID] = i
			rows = append(rows, EmployeeStats{EmployeeID: c.EmployeeID, ByStatus: map[string]int64{}})
		}
		rows[i].ByStatus[c.Status] += c.Total
		rows[i].Total += c.Total
		totals[c.Status] += c.Total
	}

	return rows, totals
}
