package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"trendradar/internal/model"
	"trendradar/internal/query"
)

// TrendRepository defines trend persistence operations. Listing is always
// filtered through the composed predicate set from the query package.
type TrendRepository interface {
	// List returns one page of matching trends plus the total count of the
	// full filtered set, computed by an independent query over the same
	// predicates.
	List(ctx context.Context, filter query.TrendFilter, confirmedOnly bool) ([]model.Trend, int64, error)
	// ListAll returns the whole filtered set without a page window.
	ListAll(ctx context.Context, filter query.TrendFilter, confirmedOnly bool) ([]model.Trend, error)
	FindByID(ctx context.Context, id uint) (*model.Trend, error)
	// SetConfirmed marks a trend confirmed recording reviewer and timestamp,
	// returning the number of rows touched.
	SetConfirmed(ctx context.Context, id uint, reviewerID uint) (int64, error)
	// Delete removes a trend permanently, returning the rows touched.
	Delete(ctx context.Context, id uint) (int64, error)
}

type trendRepository struct {
	db *gorm.DB
}

// NewTrendRepository builds a GORM-backed repository.
func NewTrendRepository(db *gorm.DB) TrendRepository {
	return &trendRepository{db: db}
}

func (r *trendRepository) filtered(ctx context.Context, filter query.TrendFilter, confirmedOnly bool) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&model.Trend{})
	for _, cond := range filter.Conditions(confirmedOnly) {
		tx = tx.Where(cond.Expr, cond.Args...)
	}
	return tx
}

func (r *trendRepository) List(ctx context.Context, filter query.TrendFilter, confirmedOnly bool) ([]model.Trend, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter, confirmedOnly).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var trends []model.Trend
	err := r.filtered(ctx, filter, confirmedOnly).
		Order("created_at DESC, id DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&trends).Error
	if err != nil {
		return nil, 0, err
	}
	return trends, total, nil
}

func (r *trendRepository) ListAll(ctx context.Context, filter query.TrendFilter, confirmedOnly bool) ([]model.Trend, error) {
	var trends []model.Trend
	err := r.filtered(ctx, filter, confirmedOnly).
		Order("created_at DESC, id DESC").
		Find(&trends).Error
	if err != nil {
		return nil, err
	}
	return trends, nil
}

func (r *trendRepository) FindByID(ctx context.Context, id uint) (*model.Trend, error) {
	var trend model.Trend
	if err := r.db.WithContext(ctx).First(&trend, id).Error; err != nil {
		return nil, err
	}
	return &trend, nil
}

func (r *trendRepository) SetConfirmed(ctx context.Context, id uint, reviewerID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Trend{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":      model.StatusConfirmed,
		"reviewed_by": reviewerID,
		"reviewed_at": time.Now(),
	})
	return res.RowsAffected, res.Error
}

func (r *trendRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Trend{}, id)
	return res.RowsAffected, res.Error
}
