package customer

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/agenda-marketplace/internal/audit"
	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/customer"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateCustomerInput struct {
	BusinessID uint
	UserID     *uint

	Name  string
	Phone string
	Email string
	Notes string
}

type EmailChecker interface {
	Valid(ctx context.Context, email string) bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateCustomer struct {
	repo   domain.Repository
	emails EmailChecker
	audit  *audit.Dispatcher
}

// NewCreateCustomer skips the email domain check when emails is nil.
func NewCreateCustomer(
	repo domain.Repository,
	emails EmailChecker,
	audit *audit.Dispatcher,
) *CreateCustomer {
	return &CreateCustomer{
		repo:   repo,
		emails: emails,
		audit:  audit,
	}
}

// Execute returns the existing customer with the same phone or email instead
// of creating a duplicate. created reports whether a new row was written.
func (uc *CreateCustomer) Execute(
	ctx context.Context,
	in CreateCustomerInput,
) (c *models.Customer, created bool, err error) {

	name := strings.TrimSpace(in.Name)
	phone := domain.NormalizePhone(in.Phone)
	email := domain.NormalizeEmail(in.Email)

	if name == "" {
		return nil, false, httperr.ErrBusiness("customer_name_required")
	}
	if phone == "" && email == "" {
		return nil, false, httperr.ErrBusiness("customer_contact_required")
	}
	if email != "" && uc.emails != nil && !uc.emails.Valid(ctx, email) {
		return nil, false, httperr.ErrBusiness("invalid_email_domain")
	}

	// --------------------------------------------------
	// Dedupe
	// --------------------------------------------------
	if existing, err := uc.findDuplicate(ctx, in.BusinessID, phone, email); err != nil || existing != nil {
		return existing, false, err
	}

	c = &models.Customer{
		BusinessID: in.BusinessID,
		Name:       name,
		Phone:      phone,
		Email:      email,
		Notes:      strings.TrimSpace(in.Notes),
	}

	if err := uc.repo.Create(ctx, c); err != nil {
		// A concurrent insert won the unique (business_id, phone) index.
		if httperr.IsUniqueViolation(err) {
			existing, findErr := uc.findDuplicate(ctx, in.BusinessID, phone, email)
			if findErr == nil && existing != nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			BusinessID: in.BusinessID,
			UserID:     in.UserID,
			Action:     "customer_created",
			Entity:     "customer",
			EntityID:   &c.ID,
		})
	}

	return c, true, nil
}

func (uc *CreateCustomer) findDuplicate(
	ctx context.Context,
	businessID uint,
	phone string,
	email string,
) (*models.Customer, error) {

	candidates, err := uc.repo.FindByContact(ctx, businessID, phone, email)
	if err != nil {
		return nil, err
	}
	return domain.FindDuplicate(candidates, phone, email), nil
}
