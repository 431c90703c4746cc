package model

type JobStatus string

const (
	JobStatusNew          JobStatus = "new"
	JobStatusInterested   JobStatus = "interested"
	JobStatusApplied      JobStatus = "applied"
	JobStatusInterviewing JobStatus = "interviewing"
	JobStatusHired        JobStatus = "hired"
	JobStatusDeclined     JobStatus = "declined"
	JobStatusArchived     JobStatus = "archived"
)

var JobStatuses = []JobStatus{
	JobStatusNew,
	JobStatusInterested,
	JobStatusApplied,
	JobStatusInterviewing,
	JobStatusHired,
	JobStatusDeclined,
	JobStatusArchived,
}

var jobStatusLabels = map[JobStatus]string{
	JobStatusNew:          "New",
	JobStatusInterested:   "Interested",
	JobStatusApplied:      "Applied",
	JobStatusInterviewing: "Interviewing",
	JobStatusHired:        "Hired",
	JobStatusDeclined:     "Declined",
	JobStatusArchived:     "Archived",
}

func (s JobStatus) IsValid() bool {
	_, ok := jobStatusLabels[s]
	return ok
}

// Label returns the display label, or the raw value for unknown statuses.
func (s JobStatus) Label() string {
	if label, ok := jobStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

type BudgetType string

const (
	BudgetTypeFixed  BudgetType = "fixed"
	BudgetTypeHourly BudgetType = "hourly"
)

func (b BudgetType) Label() string {
	if b == BudgetTypeHourly {
		return "Hourly"
	}
	return "Fixed Price"
}

func (b BudgetType) IsValid() bool {
	return b == BudgetTypeFixed || b == BudgetTypeHourly
}

type SortKey string

const (
	SortByMatchScore SortKey = "match_score"
	SortByPostedAt   SortKey = "posted_at"
	SortByCreatedAt  SortKey = "created_at"
)

var SortKeys = []SortKey{SortByMatchScore, SortByPostedAt, SortByCreatedAt}

func (k SortKey) IsValid() bool {
	for _, v := range SortKeys {
		if k == v {
			return true
		}
	}
	return false
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func (d SortDirection) IsValid() bool {
	return d == SortAsc || d == SortDesc
}
