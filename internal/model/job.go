package model

import "time"

type ClientInfo struct {
	Location        string  `json:"location,omitempty"`
	HireRate        *int    `json:"hire_rate,omitempty"`
	TotalSpent      *int64  `json:"total_spent,omitempty"`
	PaymentVerified bool    `json:"payment_verified,omitempty"`
	Rating          float64 `json:"rating,omitempty"`
	ReviewsCount    int     `json:"reviews_count,omitempty"`
}

// Job is passed through from the backend; the match score is opaque.
type Job struct {
	ID             string      `json:"_id"`
	Title          string      `json:"title"`
	Description    string      `json:"description,omitempty"`
	URL            string      `json:"url,omitempty"`
	Status         JobStatus   `json:"status"`
	MatchScore     *float64    `json:"match_score,omitempty"`
	BudgetType     BudgetType  `json:"budget_type,omitempty"`
	BudgetMin      float64     `json:"budget_min,omitempty"`
	BudgetMax      float64     `json:"budget_max,omitempty"`
	Category       string      `json:"category,omitempty"`
	SkillsRequired []string    `json:"skills_required,omitempty"`
	ProposalCount  int         `json:"proposal_count,omitempty"`
	Notes          string      `json:"notes,omitempty"`
	Tags           []string    `json:"tags,omitempty"`
	ClientInfo     *ClientInfo `json:"client_info,omitempty"`
	PostedAt       *time.Time  `json:"posted_at,omitempty"`
	CreatedAt      *time.Time  `json:"created_at,omitempty"`
	UpdatedAt      *time.Time  `json:"updated_at,omitempty"`
}

// JobUpdate carries the editable fields; nil fields are not sent.
type JobUpdate struct {
	Notes *string   `json:"notes,omitempty"`
	Tags  *[]string `json:"tags,omitempty"`
}

type JobStats struct {
	StatusCounts map[JobStatus]int `json:"statusCounts"`
}

func (s JobStats) Total() int {
	total := 0
	for _, n := range s.StatusCounts {
		total += n
	}
	return total
}

func (s JobStats) Count(status JobStatus) int {
	return s.StatusCounts[status]
}
