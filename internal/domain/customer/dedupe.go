package customer

import (
	"strings"

	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

// NormalizePhone trims surrounding whitespace only; matching stays exact.
func NormalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindDuplicate returns the first existing customer with the same phone or
// the same email. Empty values never match.
func FindDuplicate(existing []models.Customer, phone, email string) *models.Customer {
	phone = NormalizePhone(phone)
	email = NormalizeEmail(email)

	for i := range existing {
		c := &existing[i]
		if phone != "" && NormalizePhone(c.Phone) == phone {
			return c
		}
		if email != "" && NormalizeEmail(c.Email) == email {
			return c
		}
	}
	return nil
}
