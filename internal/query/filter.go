// Package query translates request-supplied filter parameters into SQL
// predicates and a page window. Every filter is modeled uniformly as "value
// is a member of set S"; a single query parameter is just the cardinality-1
// case. Filters AND together; unrecognized keys are ignored.
package query

import (
	"encoding/json"
	"net/url"
	"strconv"

	"trendradar/internal/model"
)

const (
	// DefaultPage is used when no page parameter is supplied.
	DefaultPage = 1
	// DefaultLimit is used when no limit parameter is supplied.
	DefaultLimit = 10
)

// Equality filter keys, each matching a scalar trend column.
var scalarKeys = []string{
	"department_name",
	"category",
	"time_horizon",
	"scope",
	"status",
	"impact_label",
}

// subCategoryKey filters against the JSON tag-set column: a trend matches
// when its tag set overlaps the supplied value set.
const subCategoryKey = "sub_category"

// Condition is one SQL predicate fragment with its arguments, ready to be
// handed to gorm's Where.
type Condition struct {
	Expr string
	Args []interface{}
}

// completenessCondition excludes trends with no populated description. It is
// applied regardless of caller-supplied filters, for every role.
var completenessCondition = Condition{
	Expr: "(COALESCE(internal_teacher_description, '') <> '' OR " +
		"COALESCE(internal_business_description, '') <> '' OR " +
		"COALESCE(external_user_description, '') <> '')",
}

// TrendFilter holds the recognized multi-value filters and the page window
// parsed from a request.
type TrendFilter struct {
	values map[string][]string
	Page   int
	Limit  int
}

// ParseTrendFilter extracts recognized filter keys and pagination from query
// parameters. Repeated parameters become value sets; empty values and
// unrecognized keys are dropped.
func ParseTrendFilter(params url.Values) TrendFilter {
	f := TrendFilter{
		values: make(map[string][]string),
		Page:   DefaultPage,
		Limit:  DefaultLimit,
	}

	for _, key := range append(append([]string{}, scalarKeys...), subCategoryKey) {
		var vals []string
		for _, v := range params[key] {
			if v != "" {
				vals = append(vals, v)
			}
		}
		if len(vals) > 0 {
			f.values[key] = vals
		}
	}

	if page, err := strconv.Atoi(params.Get("page")); err == nil && page >= 1 {
		f.Page = page
	}
	if limit, err := strconv.Atoi(params.Get("limit")); err == nil && limit > 0 {
		f.Limit = limit
	}

	return f
}

// Values returns the value set for a recognized filter key.
func (f TrendFilter) Values(key string) []string {
	return f.values[key]
}

// Conditions composes the filter predicates. With confirmedOnly, a
// status=confirmed predicate is injected in addition to whatever the caller
// asked for; pending trends must never reach non-admin callers. The
// completeness predicate is always appended.
func (f TrendFilter) Conditions(confirmedOnly bool) []Condition {
	var conds []Condition

	for _, key := range scalarKeys {
		if vals := f.values[key]; len(vals) > 0 {
			conds = append(conds, Condition{Expr: key + " IN ?", Args: []interface{}{vals}})
		}
	}

	if tags := f.values[subCategoryKey]; len(tags) > 0 {
		payload, _ := json.Marshal(tags)
		conds = append(conds, Condition{
			Expr: "JSON_OVERLAPS(sub_category, CAST(? AS JSON))",
			Args: []interface{}{string(payload)},
		})
	}

	if confirmedOnly {
		conds = append(conds, Condition{Expr: "status = ?", Args: []interface{}{model.StatusConfirmed}})
	}

	return append(conds, completenessCondition)
}

// Offset returns the first row index of the page window.
func (f TrendFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// TotalPages returns ceil(total/limit) for the independent count query.
func (f TrendFilter) TotalPages(total int64) int {
	if f.Limit <= 0 {
		return 0
	}
	return int((total + int64(f.Limit) - 1) / int64(f.Limit))
}
