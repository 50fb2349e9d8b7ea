package schedule

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/schedule"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
	"github.com/BruksfildServices01/agenda-marketplace/internal/timezone"
)

// PublicStatus is the open badge of a public business page.
type PublicStatus struct {
	Business    *models.Business  `json:"business"`
	Status      domain.OpenStatus `json:"status"`
	NextOpening *time.Time        `json:"next_opening,omitempty"`
}

type GetPublicStatus struct {
	repo  domain.Repository
	cache domain.Cache
	now   func() time.Time
}

func NewGetPublicStatus(repo domain.Repository, cache domain.Cache) *GetPublicStatus {
	return &GetPublicStatus{repo: repo, cache: cache, now: time.Now}
}

// Execute evaluates the business schedule at the current instant in the
// business timezone. The schedule is served from the cache when possible.
func (uc *GetPublicStatus) Execute(ctx context.Context, slug string) (*PublicStatus, error) {
	biz, err := uc.repo.GetBusinessBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	sched, err := uc.businessSchedule(ctx, biz.ID)
	if err != nil {
		return nil, err
	}

	now := uc.now().In(timezone.Location(biz.Timezone))
	out := &PublicStatus{
		Business: biz,
		Status:   domain.Status(sched, now),
	}
	if !out.Status.Open {
		if next, ok := domain.NextOpening(sched, now); ok {
			out.NextOpening = &next
		}
	}
	return out, nil
}

func (uc *GetPublicStatus) businessSchedule(ctx context.Context, businessID uint) (domain.WeeklySchedule, error) {
	if uc.cache != nil {
		if s, ok := uc.cache.Get(ctx, businessID); ok {
			return s, nil
		}
	}

	days, err := uc.repo.GetSchedule(ctx, businessID, nil)
	if err != nil {
		return nil, err
	}
	s := domain.FromDays(days)

	if uc.cache != nil {
		uc.cache.Set(ctx, businessID, s)
	}
	return s, nil
}
