package business

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/agenda-marketplace/internal/audit"
	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/business"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

// ScheduleInvalidator drops cached schedules whose evaluation depends on the
// business timezone.
type ScheduleInvalidator interface {
	Invalidate(ctx context.Context, businessID uint)
}

type UpdateProfileInput struct {
	BusinessID uint
	UserID     *uint

	Name              *string
	Category          *string
	Phone             *string
	Email             *string
	Address           *string
	Timezone          *string
	MinAdvanceMinutes *int
	SlotStepMinutes   *int
}

type GetProfile struct {
	repo domain.Repository
}

func NewGetProfile(repo domain.Repository) *GetProfile {
	return &GetProfile{repo: repo}
}

func (uc *GetProfile) Execute(ctx context.Context, businessID uint) (*models.Business, error) {
	return uc.repo.GetBusinessByID(ctx, businessID)
}

type UpdateProfile struct {
	repo  domain.Repository
	cache ScheduleInvalidator
	audit *audit.Dispatcher
}

func NewUpdateProfile(
	repo domain.Repository,
	cache ScheduleInvalidator,
	audit *audit.Dispatcher,
) *UpdateProfile {
	return &UpdateProfile{repo: repo, cache: cache, audit: audit}
}

func (uc *UpdateProfile) Execute(ctx context.Context, in UpdateProfileInput) (*models.Business, error) {
	b, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	changed := []string{}
	setString := func(field string, dst *string, src *string) {
		if src != nil && strings.TrimSpace(*src) != *dst {
			*dst = strings.TrimSpace(*src)
			changed = append(changed, field)
		}
	}
	setInt := func(field string, dst *int, src *int) {
		if src != nil && *src != *dst {
			*dst = *src
			changed = append(changed, field)
		}
	}

	setString("name", &b.Name, in.Name)
	setString("category", &b.Category, in.Category)
	setString("phone", &b.Phone, in.Phone)
	setString("email", &b.Email, in.Email)
	setString("address", &b.Address, in.Address)
	setString("timezone", &b.Timezone, in.Timezone)
	setInt("min_advance_minutes", &b.MinAdvanceMinutes, in.MinAdvanceMinutes)
	setInt("slot_step_minutes", &b.SlotStepMinutes, in.SlotStepMinutes)

	if len(changed) == 0 {
		return b, nil
	}

	if err := domain.ValidateSettings(b); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateBusiness(ctx, b); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, b.ID)
	}
	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			BusinessID: b.ID,
			UserID:     in.UserID,
			Action:     "business.updated",
			Entity:     "business",
			EntityID:   &b.ID,
			Metadata:   map[string]any{"fields": changed},
		})
	}

	return b, nil
}
