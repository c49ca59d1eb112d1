package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Trend statuses. Trends are created externally as pending and either get
// confirmed through review or deleted.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
)

// StringList stores a set of string tags as a JSON column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported sub_category column type %T", value)
	}
}

// Contains reports whether tag is a member of the list.
func (l StringList) Contains(tag string) bool {
	for _, t := range l {
		if t == tag {
			return true
		}
	}
	return false
}

// Trend represents a reviewed market/technology trend record. The three
// description columns target different audiences; the policy layer decides
// which of them a caller gets to see.
type Trend struct {
	ID                          uint       `json:"id" gorm:"primaryKey"`
	Title                       string     `json:"title" gorm:"size:255;not null"`
	Category                    string     `json:"category" gorm:"size:255;index"`
	DepartmentName              string     `json:"department_name" gorm:"size:255;index"`
	SubCategory                 StringList `json:"sub_category" gorm:"type:json"`
	TimeHorizon                 string     `json:"time_horizon" gorm:"size:100"`
	Scope                       string     `json:"scope" gorm:"size:100"`
	Status                      string     `json:"status" gorm:"size:50;default:'pending';index"`
	ImpactScore                 float64    `json:"impact_score"`
	ImpactLabel                 string     `json:"impact_label" gorm:"size:50"`
	InternalTeacherDescription  string     `json:"internal_teacher_description" gorm:"type:text"`
	InternalBusinessDescription string     `json:"internal_business_description" gorm:"type:text"`
	ExternalUserDescription     string     `json:"external_user_description" gorm:"type:text"`
	ReviewedBy                  *uint      `json:"reviewed_by"`
	ReviewedAt                  *time.Time `json:"reviewed_at"`
	CreatedAt                   time.Time  `json:"created_at"`
}

// Complete reports whether at least one audience description is populated.
// Incomplete trends are never surfaced through listing or stats.
func (t *Trend) Complete() bool {
	return t.InternalTeacherDescription != "" ||
		t.InternalBusinessDescription != "" ||
		t.ExternalUserDescription != ""
}
