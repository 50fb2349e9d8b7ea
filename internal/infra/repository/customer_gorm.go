package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/customer"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

type CustomerGormRepository struct {
	db *gorm.DB
}

func NewCustomerGormRepository(db *gorm.DB) *CustomerGormRepository {
	return &CustomerGormRepository{db: db}
}

func (r *CustomerGormRepository) FindByContact(
	ctx context.Context,
	businessID uint,
	phone string,
	email string,
) ([]models.Customer, error) {

	phone = domain.NormalizePhone(phone)
	email = domain.NormalizeEmail(email)
	if phone == "" && email == "" {
		return nil, nil
	}

	q := r.db.WithContext(ctx).Where("business_id = ?", businessID)
	switch {
	case phone != "" && email != "":
		q = q.Where("phone = ? OR LOWER(email) = ?", phone, email)
	case phone != "":
		q = q.Where("phone = ?", phone)
	default:
		q = q.Where("LOWER(email) = ?", email)
	}

	var out []models.Customer
	if err := q.Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CustomerGormRepository) Create(ctx context.Context, c *models.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CustomerGormRepository) Get(
	ctx context.Context,
	businessID uint,
	customerID uint,
) (*models.Customer, error) {

	var c models.Customer
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", customerID, businessID).
		First(&c).Error; err != nil {
		return nil, notFound(err, "customer_not_found")
	}
	return &c, nil
}

func (r *CustomerGormRepository) Search(
	ctx context.Context,
	businessID uint,
	query string,
) ([]models.Customer, error) {

	q := r.db.WithContext(ctx).Where("business_id = ?", businessID)

	query = strings.ToLower(strings.TrimSpace(query))
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var out []models.Customer
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

var _ domain.Repository = (*CustomerGormRepository)(nil)
