package model

import (
	"net/url"
	"sort"
	"strconv"
)

// JobFilters is the list query: pagination, sort and an open set of
// backend filter keys (status, min_score, budget_type, category, search, ...).
type JobFilters struct {
	Page      int
	Limit     int
	SortBy    SortKey
	SortOrder SortDirection
	Fields    map[string]string
}

func DefaultJobFilters(limit int) JobFilters {
	return JobFilters{
		Page:      1,
		Limit:     limit,
		SortBy:    SortByMatchScore,
		SortOrder: SortDesc,
		Fields:    map[string]string{},
	}
}

// FilterUpdate changes some filters. An empty value in Set removes the key.
type FilterUpdate struct {
	Page      *int
	Limit     *int
	SortBy    *SortKey
	SortOrder *SortDirection
	Set       map[string]string
}

// Apply returns f with u merged in. Page resets to 1 unless u.Page is set.
func (f JobFilters) Apply(u FilterUpdate) JobFilters {
	next := f.clone()
	if u.Limit != nil {
		next.Limit = *u.Limit
	}
	if u.SortBy != nil {
		next.SortBy = *u.SortBy
	}
	if u.SortOrder != nil {
		next.SortOrder = *u.SortOrder
	}
	for k, v := range u.Set {
		if v == "" {
			delete(next.Fields, k)
			continue
		}
		next.Fields[k] = v
	}

	if u.Page != nil {
		next.Page = *u.Page
	} else {
		next.Page = 1
	}
	return next
}

// WithPage returns a copy of f on the given page.
func (f JobFilters) WithPage(page int) JobFilters {
	next := f.clone()
	next.Page = page
	return next
}

func (f JobFilters) clone() JobFilters {
	next := f
	next.Fields = make(map[string]string, len(f.Fields))
	for k, v := range f.Fields {
		next.Fields[k] = v
	}
	return next
}

// Values encodes f as query parameters.
func (f JobFilters) Values() url.Values {
	v := url.Values{}
	keys := make([]string, 0, len(f.Fields))
	for k := range f.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v.Set(k, f.Fields[k])
	}
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.SortBy != "" {
		v.Set("sort_by", string(f.SortBy))
	}
	if f.SortOrder != "" {
		v.Set("sort_order", string(f.SortOrder))
	}
	return v
}
