package service

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "trendradar/internal/errors"
	"trendradar/internal/model"
	"trendradar/internal/query"
)

// MockTrendRepository is a mock implementation of TrendRepository.
type MockTrendRepository struct {
	mock.Mock
}

func (m *MockTrendRepository) List(ctx context.Context, filter query.TrendFilter, confirmedOnly bool) ([]model.Trend, int64, error) {
	args := m.Called(ctx, filter, confirmedOnly)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Trend), args.Get(1).(int64), args.Error(2)
}

func (m *MockTrendRepository) ListAll(ctx context.Context, filter query.TrendFilter, confirmedOnly bool) ([]model.Trend, error) {
	args := m.Called(ctx, filter, confirmedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Trend), args.Error(1)
}

func (m *MockTrendRepository) FindByID(ctx context.Context, id uint) (*model.Trend, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Trend), args.Error(1)
}

func (m *MockTrendRepository) SetConfirmed(ctx context.Context, id uint, reviewerID uint) (int64, error) {
	args := m.Called(ctx, id, reviewerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTrendRepository) Delete(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func adminUser() *model.User {
	return &model.User{ID: 1, Role: model.RoleAdmin}
}

func externalUser() *model.User {
	return &model.User{ID: 2, Role: model.RoleExternal}
}

func TestTrendService_List(t *testing.T) {
	filter := query.ParseTrendFilter(url.Values{"page": {"2"}, "limit": {"2"}})

	mockRepo := new(MockTrendRepository)
	mockRepo.On("List", mock.Anything, filter, true).Return([]model.Trend{
		{ID: 3, Title: "third", ExternalUserDescription: "c"},
		{ID: 4, Title: "fourth", ExternalUserDescription: "d"},
	}, int64(5), nil)

	service := NewTrendService(mockRepo)
	page, err := service.List(context.Background(), externalUser(), filter)

	require.NoError(t, err)
	assert.Len(t, page.Trends, 2)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.Limit)
	assert.Equal(t, 3, page.TotalPages)
	mockRepo.AssertExpectations(t)
}

func TestTrendService_List_AdminSeesUnconfirmed(t *testing.T) {
	filter := query.ParseTrendFilter(url.Values{})

	mockRepo := new(MockTrendRepository)
	// the confirmed-only flag must be off for admins
	mockRepo.On("List", mock.Anything, filter, false).Return([]model.Trend{}, int64(0), nil)

	service := NewTrendService(mockRepo)
	_, err := service.List(context.Background(), adminUser(), filter)

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestTrendService_Get(t *testing.T) {
	pending := &model.Trend{ID: 5, Title: "hidden", Status: model.StatusPending, ExternalUserDescription: "x"}
	confirmed := &model.Trend{ID: 6, Title: "visible", Status: model.StatusConfirmed, ExternalUserDescription: "y"}

	tests := []struct {
		name          string
		caller        *model.User
		id            uint
		setupMock     func(*MockTrendRepository)
		expectedError error
	}{
		{
			name:   "confirmed trend visible to anyone",
			caller: externalUser(),
			id:     6,
			setupMock: func(m *MockTrendRepository) {
				m.On("FindByID", mock.Anything, uint(6)).Return(confirmed, nil)
			},
		},
		{
			// pending rows are reported as missing, not forbidden
			name:   "pending trend hidden from non-admin",
			caller: externalUser(),
			id:     5,
			setupMock: func(m *MockTrendRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(pending, nil)
			},
			expectedError: apperrors.ErrTrendNotFound,
		},
		{
			name:   "pending trend visible to admin",
			caller: adminUser(),
			id:     5,
			setupMock: func(m *MockTrendRepository) {
				m.On("FindByID", mock.Anything, uint(5)).Return(pending, nil)
			},
		},
		{
			name:   "missing trend",
			caller: adminUser(),
			id:     999,
			setupMock: func(m *MockTrendRepository) {
				m.On("FindByID", mock.Anything, uint(999)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrTrendNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTrendRepository)
			tt.setupMock(mockRepo)

			service := NewTrendService(mockRepo)
			view, err := service.Get(context.Background(), tt.caller, tt.id)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, view)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, view)
				assert.Equal(t, tt.id, view.ID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTrendService_Stats(t *testing.T) {
	filter := query.ParseTrendFilter(url.Values{})
	trends := []model.Trend{
		{ID: 1, Title: "a", Category: "AI", DepartmentName: "Engineering", ImpactScore: 9.1},
		{ID: 2, Title: "b", Category: "AI", DepartmentName: "Engineering", ImpactScore: 7.0},
		{ID: 3, Title: "c", Category: "Cloud", DepartmentName: "Engineering", ImpactScore: 5.5},
		{ID: 4, Title: "d", Category: "", DepartmentName: "", ImpactScore: 4.0},
		{ID: 5, Title: "e", Category: "UX", DepartmentName: "Design", ImpactScore: 2.0},
		{ID: 6, Title: "f", Category: "UX", DepartmentName: "Design", ImpactScore: 3.9},
	}

	mockRepo := new(MockTrendRepository)
	mockRepo.On("ListAll", mock.Anything, filter, true).Return(trends, nil)

	service := NewTrendService(mockRepo)
	stats, err := service.Stats(context.Background(), externalUser(), filter)

	require.NoError(t, err)
	assert.Equal(t, 6, stats.TotalTrends)
	assert.Equal(t, map[string]int{"AI": 2, "Cloud": 1, "UX": 2, "Unknown": 1}, stats.ByCategory)
	assert.Equal(t, map[string]int{"Engineering": 3, "Design": 2, "Unknown": 1}, stats.ByDepartment)
	// boundary scores: 7.0 counts high, 4.0 counts medium, 3.9 counts low
	assert.Equal(t, 2, stats.ByImpact.High)
	assert.Equal(t, 2, stats.ByImpact.Medium)
	assert.Equal(t, 2, stats.ByImpact.Low)

	require.Len(t, stats.HighestImpact, 5)
	assert.Equal(t, uint(1), stats.HighestImpact[0].ID)
	assert.Equal(t, uint(2), stats.HighestImpact[1].ID)
	assert.Equal(t, uint(3), stats.HighestImpact[2].ID)
	assert.Equal(t, 9.1, stats.HighestImpact[0].ImpactScore)
	mockRepo.AssertExpectations(t)
}

func TestTrendService_Stats_Empty(t *testing.T) {
	filter := query.ParseTrendFilter(url.Values{})

	mockRepo := new(MockTrendRepository)
	mockRepo.On("ListAll", mock.Anything, filter, false).Return([]model.Trend{}, nil)

	service := NewTrendService(mockRepo)
	stats, err := service.Stats(context.Background(), adminUser(), filter)

	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalTrends)
	assert.NotNil(t, stats.HighestImpact)
	assert.Empty(t, stats.HighestImpact)
}

func TestTrendService_Approve(t *testing.T) {
	mockRepo := new(MockTrendRepository)
	mockRepo.On("SetConfirmed", mock.Anything, uint(5), uint(1)).Return(int64(1), nil)
	mockRepo.On("FindByID", mock.Anything, uint(5)).Return(&model.Trend{
		ID:     5,
		Status: model.StatusConfirmed,
	}, nil)

	service := NewTrendService(mockRepo)
	view, err := service.Approve(context.Background(), adminUser(), 5)

	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, view.Status)
	mockRepo.AssertExpectations(t)
}

func TestTrendService_Approve_NotFound(t *testing.T) {
	mockRepo := new(MockTrendRepository)
	mockRepo.On("SetConfirmed", mock.Anything, uint(404), uint(1)).Return(int64(0), nil)

	service := NewTrendService(mockRepo)
	_, err := service.Approve(context.Background(), adminUser(), 404)

	assert.ErrorIs(t, err, apperrors.ErrTrendNotFound)
	mockRepo.AssertExpectations(t)
}

func TestTrendService_Disapprove(t *testing.T) {
	mockRepo := new(MockTrendRepository)
	mockRepo.On("Delete", mock.Anything, uint(5)).Return(int64(1), nil)
	mockRepo.On("Delete", mock.Anything, uint(404)).Return(int64(0), nil)

	service := NewTrendService(mockRepo)

	assert.NoError(t, service.Disapprove(context.Background(), 5))
	assert.ErrorIs(t, service.Disapprove(context.Background(), 404), apperrors.ErrTrendNotFound)
	mockRepo.AssertExpectations(t)
}

// Bulk approval counts only rows actually updated and keeps going past
// failures, so a batch mixing live and missing ids reports the live ones.
func TestTrendService_BulkApprove(t *testing.T) {
	mockRepo := new(MockTrendRepository)
	mockRepo.On("SetConfirmed", mock.Anything, uint(1), uint(1)).Return(int64(1), nil)
	mockRepo.On("SetConfirmed", mock.Anything, uint(2), uint(1)).Return(int64(1), nil)
	mockRepo.On("SetConfirmed", mock.Anything, uint(999), uint(1)).Return(int64(0), nil)

	service := NewTrendService(mockRepo)
	approved := service.BulkApprove(context.Background(), adminUser(), []uint{1, 2, 999})

	assert.Equal(t, 2, approved)
	mockRepo.AssertExpectations(t)
}

// Bulk disapproval reports the requested count whether or not rows matched.
func TestTrendService_BulkDisapprove(t *testing.T) {
	mockRepo := new(MockTrendRepository)
	mockRepo.On("Delete", mock.Anything, uint(1)).Return(int64(1), nil)
	mockRepo.On("Delete", mock.Anything, uint(999)).Return(int64(0), nil)

	service := NewTrendService(mockRepo)
	deleted := service.BulkDisapprove(context.Background(), []uint{1, 999})

	assert.Equal(t, 2, deleted)
	mockRepo.AssertExpectations(t)
}
