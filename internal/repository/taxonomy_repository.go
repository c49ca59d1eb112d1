package repository

import (
	"context"

	"gorm.io/gorm"

	"trendradar/internal/model"
)

// TaxonomyRepository serves the flat reference lookups: departments,
// categories and subcategories. Read-only; no mutations are exposed.
type TaxonomyRepository interface {
	ListDepartments(ctx context.Context, activeOnly bool) ([]model.Department, error)
	FindDepartment(ctx context.Context, id uint) (*model.Department, error)
	ListCategories(ctx context.Context, department string) ([]model.Category, error)
	FindCategory(ctx context.Context, id uint) (*model.Category, error)
	ListSubCategories(ctx context.Context, categoryName string) ([]model.SubCategory, error)
	FindSubCategory(ctx context.Context, id uint) (*model.SubCategory, error)
}

type taxonomyRepository struct {
	db *gorm.DB
}

// NewTaxonomyRepository builds a GORM-backed repository.
func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

func (r *taxonomyRepository) ListDepartments(ctx context.Context, activeOnly bool) ([]model.Department, error) {
	tx := r.db.WithContext(ctx).Order("id")
	if activeOnly {
		tx = tx.Where("is_active = ?", true)
	}
	var departments []model.Department
	if err := tx.Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *taxonomyRepository) FindDepartment(ctx context.Context, id uint) (*model.Department, error) {
	var department model.Department
	if err := r.db.WithContext(ctx).First(&department, id).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *taxonomyRepository) ListCategories(ctx context.Context, department string) ([]model.Category, error) {
	tx := r.db.WithContext(ctx).Order("id")
	if department != "" {
		tx = tx.Where("department = ?", department)
	}
	var categories []model.Category
	if err := tx.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *taxonomyRepository) FindCategory(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *taxonomyRepository) ListSubCategories(ctx context.Context, categoryName string) ([]model.SubCategory, error) {
	tx := r.db.WithContext(ctx).Order("id")
	if categoryName != "" {
		tx = tx.Where("category_name = ?", categoryName)
	}
	var subcategories []model.SubCategory
	if err := tx.Find(&subcategories).Error; err != nil {
		return nil, err
	}
	return subcategories, nil
}

func (r *taxonomyRepository) FindSubCategory(ctx context.Context, id uint) (*model.SubCategory, error) {
	var subcategory model.SubCategory
	if err := r.db.WithContext(ctx).First(&subcategory, id).Error; err != nil {
		return nil, err
	}
	return &subcategory, nil
}
