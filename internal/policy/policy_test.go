package policy

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendradar/internal/model"
)

func sampleTrend() *model.Trend {
	reviewer := uint(7)
	reviewedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &model.Trend{
		ID:                          42,
		Title:                       "Edge inference everywhere",
		Category:                    "Artificial Intelligence",
		DepartmentName:              "Engineering",
		SubCategory:                 model.StringList{"LLMs"},
		TimeHorizon:                 "short",
		Scope:                       "global",
		Status:                      model.StatusConfirmed,
		ImpactScore:                 8.2,
		ImpactLabel:                 "high",
		ReviewedBy:                  &reviewer,
		ReviewedAt:                  &reviewedAt,
		InternalTeacherDescription:  "teacher text",
		InternalBusinessDescription: "business text",
		ExternalUserDescription:     "external text",
	}
}

func TestProject_PerRoleDescription(t *testing.T) {
	tests := []struct {
		name     string
		role     model.Role
		expected string
	}{
		{name: "internal teacher", role: model.RoleInternalTeacher, expected: "teacher text"},
		{name: "internal business", role: model.RoleInternalBusiness, expected: "business text"},
		{name: "external", role: model.RoleExternal, expected: "external text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Project(sampleTrend(), tt.role)

			require.NotNil(t, v.Description)
			assert.Equal(t, tt.expected, *v.Description)
			assert.Nil(t, v.Descriptions)
			assert.Nil(t, v.InternalTeacherDescription)
			assert.Nil(t, v.InternalBusinessDescription)
			assert.Nil(t, v.ExternalUserDescription)
		})
	}
}

func TestProject_Admin(t *testing.T) {
	v := Project(sampleTrend(), model.RoleAdmin)

	assert.Nil(t, v.Description)
	require.NotNil(t, v.Descriptions)
	assert.Equal(t, "teacher text", v.Descriptions.InternalTeacher)
	assert.Equal(t, "business text", v.Descriptions.InternalBusiness)
	assert.Equal(t, "external text", v.Descriptions.External)
	require.NotNil(t, v.InternalTeacherDescription)
	assert.Equal(t, "teacher text", *v.InternalTeacherDescription)
}

func TestProject_UnknownRoleGetsBaseFieldsOnly(t *testing.T) {
	v := Project(sampleTrend(), model.Role("mystery"))

	assert.Equal(t, "Edge inference everywhere", v.Title)
	assert.Nil(t, v.Description)
	assert.Nil(t, v.Descriptions)
	assert.Nil(t, v.InternalTeacherDescription)
}

// The JSON key set is the contract; a non-admin payload must not carry any
// raw description key, and an admin payload must not carry the synthetic one.
func TestProject_JSONKeys(t *testing.T) {
	asKeys := func(v TrendView) map[string]interface{} {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &m))
		return m
	}

	external := asKeys(Project(sampleTrend(), model.RoleExternal))
	assert.Contains(t, external, "description")
	assert.NotContains(t, external, "descriptions")
	assert.NotContains(t, external, "internal_teacher_description")
	assert.NotContains(t, external, "internal_business_description")
	assert.NotContains(t, external, "external_user_description")

	admin := asKeys(Project(sampleTrend(), model.RoleAdmin))
	assert.NotContains(t, admin, "description")
	assert.Contains(t, admin, "descriptions")
	assert.Contains(t, admin, "internal_teacher_description")
}

func TestProjectAll(t *testing.T) {
	trends := []model.Trend{*sampleTrend(), *sampleTrend()}

	views := ProjectAll(trends, model.RoleExternal)

	require.Len(t, views, 2)
	for _, v := range views {
		require.NotNil(t, v.Description)
		assert.Equal(t, "external text", *v.Description)
	}

	assert.Empty(t, ProjectAll(nil, model.RoleExternal))
}

func TestCanSee(t *testing.T) {
	pending := sampleTrend()
	pending.Status = model.StatusPending
	confirmed := sampleTrend()

	assert.True(t, CanSee(confirmed, model.RoleExternal))
	assert.True(t, CanSee(pending, model.RoleAdmin))
	assert.False(t, CanSee(pending, model.RoleExternal))
	assert.False(t, CanSee(pending, model.RoleInternalTeacher))
	assert.False(t, CanSee(pending, model.RoleInternalBusiness))
}
