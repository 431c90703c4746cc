package model

import "encoding/json"

// Envelope is the backend's wrapper around every response payload.
type Envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data,omitempty"`
	Message   string          `json:"message,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
	Meta      *Meta           `json:"meta,omitempty"`
}

type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// Meta accepts pagination both flat and under a "pagination" key.
type Meta struct {
	Pagination
	Nested *Pagination `json:"pagination,omitempty"`
}

func (m *Meta) Page() Pagination {
	if m == nil {
		return Pagination{}
	}
	if m.Nested != nil {
		return *m.Nested
	}
	return m.Pagination
}

// JobList is one page of jobs with its pagination metadata.
type JobList struct {
	Jobs       []Job
	Pagination Pagination
	Message    string
}
