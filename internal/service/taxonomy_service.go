package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"trendradar/internal/cache"
	apperrors "trendradar/internal/errors"
	"trendradar/internal/model"
	"trendradar/internal/repository"
)

// Reference data changes rarely; list responses are cached briefly.
const taxonomyCacheTTL = 5 * time.Minute

// TaxonomyService serves the department/category/subcategory lookups.
type TaxonomyService interface {
	ListDepartments(ctx context.Context, activeOnly bool) ([]model.Department, error)
	GetDepartment(ctx context.Context, id uint) (*model.Department, error)
	ListCategories(ctx context.Context, department string) ([]model.Category, error)
	GetCategory(ctx context.Context, id uint) (*model.Category, error)
	ListSubCategories(ctx context.Context, categoryName string) ([]model.SubCategory, error)
	GetSubCategory(ctx context.Context, id uint) (*model.SubCategory, error)
}

type taxonomyService struct {
	repo  repository.TaxonomyRepository
	cache *cache.Client
}

// NewTaxonomyService creates a new taxonomy service.
func NewTaxonomyService(repo repository.TaxonomyRepository, cache *cache.Client) TaxonomyService {
	return &taxonomyService{repo: repo, cache: cache}
}

func (s *taxonomyService) ListDepartments(ctx context.Context, activeOnly bool) ([]model.Department, error) {
	key := fmt.Sprintf("departments:active=%t", activeOnly)
	var cached []model.Department
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	departments, err := s.repo.ListDepartments(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	s.cache.SetJSON(ctx, key, departments, taxonomyCacheTTL)
	return departments, nil
}

func (s *taxonomyService) GetDepartment(ctx context.Context, id uint) (*model.Department, error) {
	department, err := s.repo.FindDepartment(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("find department: %w", err)
	}
	return department, nil
}

func (s *taxonomyService) ListCategories(ctx context.Context, department string) ([]model.Category, error) {
	key := fmt.Sprintf("categories:department=%s", department)
	var cached []model.Category
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	categories, err := s.repo.ListCategories(ctx, department)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	s.cache.SetJSON(ctx, key, categories, taxonomyCacheTTL)
	return categories, nil
}

func (s *taxonomyService) GetCategory(ctx context.Context, id uint) (*model.Category, error) {
	category, err := s.repo.FindCategory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return category, nil
}

func (s *taxonomyService) ListSubCategories(ctx context.Context, categoryName string) ([]model.SubCategory, error) {
	key := fmt.Sprintf("subcategories:category=%s", categoryName)
	var cached []model.SubCategory
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	subcategories, err := s.repo.ListSubCategories(ctx, categoryName)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	s.cache.SetJSON(ctx, key, subcategories, taxonomyCacheTTL)
	return subcategories, nil
}

func (s *taxonomyService) GetSubCategory(ctx context.Context, id uint) (*model.SubCategory, error) {
	subcategory, err := s.repo.FindSubCategory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSubCategoryNotFound
		}
		return nil, fmt.Errorf("find subcategory: %w", err)
	}
	return subcategory, nil
}
