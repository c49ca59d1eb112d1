package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	apperrors "trendradar/internal/errors"
	"trendradar/internal/model"
	"trendradar/internal/policy"
	"trendradar/internal/query"
	"trendradar/internal/repository"
)

// Impact score bucket thresholds.
const (
	impactHighThreshold   = 7
	impactMediumThreshold = 4
)

// TrendPage is one page of role-projected trends with pagination metadata.
type TrendPage struct {
	Trends     []policy.TrendView `json:"trends"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

// ImpactBuckets partitions a trend set by impact score.
type ImpactBuckets struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// TrendHighlight is a reduced trend used in the stats top list.
type TrendHighlight struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	ImpactScore float64 `json:"impact_score"`
	Category    string  `json:"category"`
}

// TrendStats aggregates the filtered, role-gated trend set.
type TrendStats struct {
	TotalTrends   int              `json:"total_trends"`
	ByCategory    map[string]int   `json:"by_category"`
	ByDepartment  map[string]int   `json:"by_department"`
	ByImpact      ImpactBuckets    `json:"by_impact"`
	HighestImpact []TrendHighlight `json:"highest_impact"`
}

// TrendService exposes the trend read and review operations.
type TrendService interface {
	List(ctx context.Context, caller *model.User, filter query.TrendFilter) (*TrendPage, error)
	Get(ctx context.Context, caller *model.User, id uint) (*policy.TrendView, error)
	Stats(ctx context.Context, caller *model.User, filter query.TrendFilter) (*TrendStats, error)
	Approve(ctx context.Context, reviewer *model.User, id uint) (*policy.TrendView, error)
	Disapprove(ctx context.Context, id uint) error
	BulkApprove(ctx context.Context, reviewer *model.User, ids []uint) int
	BulkDisapprove(ctx context.Context, ids []uint) int
}

type trendService struct {
	trends repository.TrendRepository
}

// NewTrendService creates a new trend service.
func NewTrendService(trends repository.TrendRepository) TrendService {
	return &trendService{trends: trends}
}

// confirmedOnly is the list-level gate: non-admin queries get the
// status=confirmed predicate injected silently.
func confirmedOnly(caller *model.User) bool {
	return caller.Role != model.RoleAdmin
}

func (s *trendService) List(ctx context.Context, caller *model.User, filter query.TrendFilter) (*TrendPage, error) {
	trends, total, err := s.trends.List(ctx, filter, confirmedOnly(caller))
	if err != nil {
		return nil, fmt.Errorf("list trends: %w", err)
	}
	return &TrendPage{
		Trends:     policy.ProjectAll(trends, caller.Role),
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: filter.TotalPages(total),
	}, nil
}

// Get applies the row-level gate: a pending trend is reported as not found
// to non-admin callers, never as forbidden.
func (s *trendService) Get(ctx context.Context, caller *model.User, id uint) (*policy.TrendView, error) {
	trend, err := s.trends.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTrendNotFound
		}
		return nil, fmt.Errorf("find trend: %w", err)
	}

	if !policy.CanSee(trend, caller.Role) {
		return nil, apperrors.ErrTrendNotFound
	}

	view := policy.Project(trend, caller.Role)
	return &view, nil
}

func (s *trendService) Stats(ctx context.Context, caller *model.User, filter query.TrendFilter) (*TrendStats, error) {
	trends, err := s.trends.ListAll(ctx, filter, confirmedOnly(caller))
	if err != nil {
		return nil, fmt.Errorf("list trends: %w", err)
	}

	stats := &TrendStats{
		TotalTrends:   len(trends),
		ByCategory:    make(map[string]int),
		ByDepartment:  make(map[string]int),
		HighestImpact: []TrendHighlight{},
	}

	for _, t := range trends {
		category := t.Category
		if category == "" {
			category = "Unknown"
		}
		stats.ByCategory[category]++

		department := t.DepartmentName
		if department == "" {
			department = "Unknown"
		}
		stats.ByDepartment[department]++

		switch {
		case t.ImpactScore >= impactHighThreshold:
			stats.ByImpact.High++
		case t.ImpactScore >= impactMediumThreshold:
			stats.ByImpact.Medium++
		default:
			stats.ByImpact.Low++
		}
	}

	// stable sort keeps retrieval order for equal scores
	ranked := make([]model.Trend, len(trends))
	copy(ranked, trends)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ImpactScore > ranked[j].ImpactScore
	})
	for i := 0; i < len(ranked) && i < 5; i++ {
		stats.HighestImpact = append(stats.HighestImpact, TrendHighlight{
			ID:          ranked[i].ID,
			Title:       ranked[i].Title,
			ImpactScore: ranked[i].ImpactScore,
			Category:    ranked[i].Category,
		})
	}

	return stats, nil
}

// Approve confirms a trend recording reviewer and timestamp. Idempotent:
// re-approving overwrites the review metadata.
func (s *trendService) Approve(ctx context.Context, reviewer *model.User, id uint) (*policy.TrendView, error) {
	rows, err := s.trends.SetConfirmed(ctx, id, reviewer.ID)
	if err != nil {
		return nil, fmt.Errorf("approve trend: %w", err)
	}
	if rows == 0 {
		return nil, apperrors.ErrTrendNotFound
	}

	trend, err := s.trends.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload trend: %w", err)
	}
	view := policy.Project(trend, reviewer.Role)
	return &view, nil
}

// Disapprove permanently deletes a trend. No soft-delete.
func (s *trendService) Disapprove(ctx context.Context, id uint) error {
	rows, err := s.trends.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete trend: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrTrendNotFound
	}
	return nil
}

// BulkApprove processes ids sequentially and independently, continuing past
// individual failures. Only rows actually updated count as successes; no
// per-id error detail surfaces.
func (s *trendService) BulkApprove(ctx context.Context, reviewer *model.User, ids []uint) int {
	approved := 0
	for _, id := range ids {
		rows, err := s.trends.SetConfirmed(ctx, id, reviewer.ID)
		if err != nil || rows == 0 {
			continue
		}
		approved++
	}
	return approved
}

// BulkDisapprove deletes each id sequentially with no existence check and
// reports the requested count regardless of how many rows matched.
func (s *trendService) BulkDisapprove(ctx context.Context, ids []uint) int {
	for _, id := range ids {
		_, _ = s.trends.Delete(ctx, id)
	}
	return len(ids)
}
