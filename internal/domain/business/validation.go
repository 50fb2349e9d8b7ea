package business

import (
	"strings"

	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
	"github.com/BruksfildServices01/agenda-marketplace/internal/timezone"
)

const (
	MinSlotStep = 5
	MaxSlotStep = 240
)

// ===============================
// Business settings
// ===============================

func ValidateSettings(b *models.Business) error {
	if strings.TrimSpace(b.Name) == "" {
		return httperr.ErrBusiness("business_name_required")
	}
	if b.Timezone != "" && !timezone.IsValid(b.Timezone) {
		return httperr.ErrBusinessDetail("invalid_timezone", b.Timezone)
	}
	if b.MinAdvanceMinutes < 0 {
		return httperr.ErrBusiness("invalid_min_advance")
	}
	if b.SlotStepMinutes < MinSlotStep || b.SlotStepMinutes > MaxSlotStep {
		return httperr.ErrBusiness("invalid_slot_step")
	}
	return nil
}

// ===============================
// Catalog entries
// ===============================

func ValidateService(s *models.Service) error {
	if strings.TrimSpace(s.Name) == "" {
		return httperr.ErrBusiness("service_name_required")
	}
	if s.DurationMin <= 0 || s.DurationMin > 24*60 {
		return httperr.ErrBusiness("invalid_duration")
	}
	if s.Price < 0 {
		return httperr.ErrBusiness("invalid_price")
	}
	return nil
}

func ValidateEmployee(e *models.Employee) error {
	if strings.TrimSpace(e.Name) == "" {
		return httperr.ErrBusiness("employee_name_required")
	}
	return nil
}

// NormalizeCategory keeps category filters case-insensitive.
func NormalizeCategory(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}
