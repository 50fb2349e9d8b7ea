package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/business"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

type BusinessGormRepository struct {
	db *gorm.DB
}

func NewBusinessGormRepository(db *gorm.DB) *BusinessGormRepository {
	return &BusinessGormRepository{db: db}
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *BusinessGormRepository) GetBusinessByID(ctx context.Context, id uint) (*models.Business, error) {
	var b models.Business
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFound(err, "business_not_found")
	}
	return &b, nil
}

func (r *BusinessGormRepository) GetBusinessBySlug(ctx context.Context, slug string) (*models.Business, error) {
	var b models.Business
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&b).Error; err != nil {
		return nil, notFound(err, "business_not_found")
	}
	return &b, nil
}

func (r *BusinessGormRepository) UpdateBusiness(ctx context.Context, b *models.Business) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// --------------------------------------------------
// Employees
// --------------------------------------------------

func (r *BusinessGormRepository) ListEmployees(
	ctx context.Context,
	businessID uint,
	activeOnly bool,
) ([]models.Employee, error) {

	q := r.db.WithContext(ctx).Where("business_id = ?", businessID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var out []models.Employee
	if err := q.Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BusinessGormRepository) GetEmployee(
	ctx context.Context,
	businessID uint,
	employeeID uint,
) (*models.Employee, error) {

	var e models.Employee
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", employeeID, businessID).
		First(&e).Error; err != nil {
		return nil, notFound(err, "employee_not_found")
	}
	return &e, nil
}

func (r *BusinessGormRepository) CountActiveEmployees(ctx context.Context, businessID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("business_id = ? AND active = ?", businessID, true).
		Count(&count).Error
	return count, err
}

func (r *BusinessGormRepository) SaveEmployee(ctx context.Context, e *models.Employee) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(e).Error
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *BusinessGormRepository) ListServices(
	ctx context.Context,
	businessID uint,
	f domain.ServiceFilter,
) ([]models.Service, error) {

	q := r.db.WithContext(ctx).Where("business_id = ?", businessID)

	if f.Category != "" {
		q = q.Where("LOWER(category) = ?", f.Category)
	}
	if f.Active != nil {
		q = q.Where("active = ?", *f.Active)
	}
	if query := strings.ToLower(strings.TrimSpace(f.Query)); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var out []models.Service
	if err := q.Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BusinessGormRepository) GetService(
	ctx context.Context,
	businessID uint,
	serviceID uint,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", serviceID, businessID).
		First(&s).Error; err != nil {
		return nil, notFound(err, "service_not_found")
	}
	return &s, nil
}

func (r *BusinessGormRepository) SaveService(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Save(s).Error
}

var _ domain.Repository = (*BusinessGormRepository)(nil)
