package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/report"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func statusCountsQuery(businessID uint, start, end time.Time) sq.SelectBuilder {
	return sq.Select("employee_id", "status", "COUNT(*) AS total").
		From("appointments").
		Where(sq.Eq{"business_id": businessID}).
		Where(sq.GtOrEq{"date": start}).
		Where(sq.Lt{"date": end}).
		GroupBy("employee_id", "status").
		OrderBy("employee_id", "status")
}

func (r *ReportRepository) StatusCounts(
	ctx context.Context,
	businessID uint,
	start time.Time,
	end time.Time,
) ([]domain.StatusCount, error) {

	query, args, err := statusCountsQuery(businessID, start, end).ToSql()
	if err != nil {
		return nil, err
	}

	var rows []domain.StatusCount
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

var _ domain.Repository = (*ReportRepository)(nil)
