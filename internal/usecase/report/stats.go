package report

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/report"
)

type Stats struct {
	Month      string                 `json:"month"`
	From       time.Time              `json:"from"`
	To         time.Time              `json:"to"`
	Totals     map[string]int64       `json:"totals"`
	ByEmployee []domain.EmployeeStats `json:"by_employee"`
}

type GetStats struct {
	businesses BusinessSource
	repo       domain.Repository
	now        func() time.Time
}

func NewGetStats(businesses BusinessSource, repo domain.Repository) *GetStats {
	return &GetStats{businesses: businesses, repo: repo, now: time.Now}
}

func (uc *GetStats) Execute(ctx context.Context, businessID uint, month string) (*Stats, error) {
	biz, err := uc.businesses.GetBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	start, end, err := monthRange(biz.Timezone, month, uc.now())
	if err != nil {
		return nil, err
	}

	counts, err := uc.repo.StatusCounts(ctx, businessID, start, end)
	if err != nil {
		return nil, err
	}

	rows, totals := domain.Summarize(counts)
	return &Stats{
		Month:      start.Format("2006-01"),
		From:       start,
		To:         end,
		Totals:     totals,
		ByEmployee: rows,
	}, nil
}
