// Package policy decides which trend fields a caller may observe. The
// visibility rule is a lookup table keyed by role mapping to a projection
// function, so it can be tested in isolation from HTTP handling.
package policy

import (
	"time"

	"trendradar/internal/model"
)

// Descriptions bundles all three audience descriptions for admin callers.
type Descriptions struct {
	InternalTeacher  string `json:"internal_teacher"`
	InternalBusiness string `json:"internal_business"`
	External         string `json:"external"`
}

// TrendView is the role-shaped representation of a trend. Non-admin callers
// get exactly one synthetic description field; admins keep the raw fields
// plus the bundled descriptions object.
type TrendView struct {
	ID             uint             `json:"id"`
	Title          string           `json:"title"`
	Category       string           `json:"category"`
	DepartmentName string           `json:"department_name"`
	SubCategory    model.StringList `json:"sub_category"`
	TimeHorizon    string           `json:"time_horizon"`
	Scope          string           `json:"scope"`
	Status         string           `json:"status"`
	ImpactScore    float64          `json:"impact_score"`
	ImpactLabel    string           `json:"impact_label"`
	ReviewedBy     *uint            `json:"reviewed_by"`
	ReviewedAt     *time.Time       `json:"reviewed_at"`
	CreatedAt      time.Time        `json:"created_at"`

	Description  *string       `json:"description,omitempty"`
	Descriptions *Descriptions `json:"descriptions,omitempty"`

	InternalTeacherDescription  *string `json:"internal_teacher_description,omitempty"`
	InternalBusinessDescription *string `json:"internal_business_description,omitempty"`
	ExternalUserDescription     *string `json:"external_user_description,omitempty"`
}

// projections maps each role to its description projection. A role missing
// from the table gets the base fields and no description key at all.
var projections = map[model.Role]func(*model.Trend, *TrendView){
	model.RoleAdmin: func(t *model.Trend, v *TrendView) {
		v.InternalTeacherDescription = &t.InternalTeacherDescription
		v.InternalBusinessDescription = &t.InternalBusinessDescription
		v.ExternalUserDescription = &t.ExternalUserDescription
		v.Descriptions = &Descriptions{
			InternalTeacher:  t.InternalTeacherDescription,
			InternalBusiness: t.InternalBusinessDescription,
			External:         t.ExternalUserDescription,
		}
	},
	model.RoleInternalTeacher: func(t *model.Trend, v *TrendView) {
		v.Description = &t.InternalTeacherDescription
	},
	model.RoleInternalBusiness: func(t *model.Trend, v *TrendView) {
		v.Description = &t.InternalBusinessDescription
	},
	model.RoleExternal: func(t *model.Trend, v *TrendView) {
		v.Description = &t.ExternalUserDescription
	},
}

// Project reshapes a trend for the caller's role.
func Project(t *model.Trend, role model.Role) TrendView {
	v := TrendView{
		ID:             t.ID,
		Title:          t.Title,
		Category:       t.Category,
		DepartmentName: t.DepartmentName,
		SubCategory:    t.SubCategory,
		TimeHorizon:    t.TimeHorizon,
		Scope:          t.Scope,
		Status:         t.Status,
		ImpactScore:    t.ImpactScore,
		ImpactLabel:    t.ImpactLabel,
		ReviewedBy:     t.ReviewedBy,
		ReviewedAt:     t.ReviewedAt,
		CreatedAt:      t.CreatedAt,
	}
	if project, ok := projections[role]; ok {
		project(t, &v)
	}
	return v
}

// ProjectAll reshapes a result set for the caller's role.
func ProjectAll(trends []model.Trend, role model.Role) []TrendView {
	views := make([]TrendView, 0, len(trends))
	for i := range trends {
		views = append(views, Project(&trends[i], role))
	}
	return views
}

// CanSee reports whether the caller may observe the trend at all. Pending
// trends are indistinguishable from non-existent ones for non-admin callers.
func CanSee(t *model.Trend, role model.Role) bool {
	return role == model.RoleAdmin || t.Status == model.StatusConfirmed
}
