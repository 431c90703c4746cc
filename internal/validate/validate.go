// Package validate checks form input before it is sent to the API.
// Every validator returns field name to message; an empty map means valid.
package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jobfinder/dashboard-go/internal/config"
	"github.com/jobfinder/dashboard-go/internal/model"
)

type Errors map[string]string

func (e Errors) Valid() bool {
	return len(e) == 0
}

// First returns the message for the first failing field in sorted order.
func (e Errors) First() string {
	if len(e) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return e[keys[0]]
}

func (e Errors) Error() string {
	return e.First()
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidURL accepts absolute URLs only.
func IsValidURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && (u.Host != "" || u.Opaque != "")
}

func IsValidEnum(value string, validValues []string) bool {
	if value == "" {
		return true
	}
	return slices.Contains(validValues, value)
}

func email(errs Errors, value string) {
	switch {
	case value == "":
		errs["email"] = "Email is required"
	case !IsValidEmail(value):
		errs["email"] = "Please enter a valid email address"
	}
}

// Password returns the first unmet password rule, or "".
func Password(password string) string {
	if utf8.RuneCountInString(password) < config.PasswordMinLength {
		return fmt.Sprintf("Password must be at least %d characters", config.PasswordMinLength)
	}
	if !strings.ContainsFunc(password, unicode.IsUpper) {
		return "Password must contain at least one uppercase letter"
	}
	if !strings.ContainsFunc(password, unicode.IsLower) {
		return "Password must contain at least one lowercase letter"
	}
	if !strings.ContainsFunc(password, unicode.IsDigit) {
		return "Password must contain at least one number"
	}
	return ""
}

func Login(req model.LoginRequest) Errors {
	errs := Errors{}
	email(errs, req.Email)
	if req.Password == "" {
		errs["password"] = "Password is required"
	}
	return errs
}

func Register(req model.RegisterRequest) Errors {
	errs := Errors{}
	email(errs, req.Email)
	if msg := Password(req.Password); msg != "" {
		errs["password"] = msg
	}
	switch {
	case req.ConfirmPassword == "":
		errs["confirmPassword"] = "Please confirm your password"
	case req.Password != req.ConfirmPassword:
		errs["confirmPassword"] = "Passwords do not match"
	}
	return errs
}

// Profile validates a profile edit. Skills are always required.
func Profile(p model.UserPatch) Errors {
	errs := Errors{}
	if p.Bio != nil && utf8.RuneCountInString(*p.Bio) > config.BioMaxLength {
		errs["bio"] = fmt.Sprintf("Bio must be less than %d characters", config.BioMaxLength)
	}
	if p.HourlyRate != nil && *p.HourlyRate < 0 {
		errs["hourly_rate"] = "Hourly rate must be positive"
	}
	if p.Skills == nil || len(*p.Skills) < config.SkillsMinCount {
		errs["skills"] = "At least one skill is required"
	}
	return errs
}

var scoreFields = []string{"min_score", "max_score"}
var budgetFields = []string{"min_budget", "max_budget"}

func JobFilters(f model.JobFilters) Errors {
	errs := Errors{}

	if f.Page < 1 {
		errs["page"] = "Page must be at least 1"
	}
	if f.Limit < 1 || f.Limit > config.FilterMaxLimit {
		errs["limit"] = fmt.Sprintf("Limit must be between 1 and %d", config.FilterMaxLimit)
	}
	if !f.SortBy.IsValid() {
		errs["sort_by"] = "Invalid sort field"
	}
	if !f.SortOrder.IsValid() {
		errs["sort_order"] = "Invalid sort order"
	}

	if status := f.Fields["status"]; status != "" && !model.JobStatus(status).IsValid() {
		errs["status"] = "Invalid job status"
	}
	if bt := f.Fields["budget_type"]; bt != "" && !model.BudgetType(bt).IsValid() {
		errs["budget_type"] = "Invalid budget type"
	}
	for _, key := range scoreFields {
		if v, ok := f.Fields[key]; ok && !inRange(v, 0, config.MatchScoreMaxValue) {
			errs[key] = fmt.Sprintf("Score must be between 0 and %d", config.MatchScoreMaxValue)
		}
	}
	for _, key := range budgetFields {
		if v, ok := f.Fields[key]; ok && !inRange(v, 0, -1) {
			errs[key] = "Budget must be positive"
		}
	}
	return errs
}

// inRange parses v and checks lo <= v and, when hi >= 0, v <= hi.
func inRange(v string, lo, hi float64) bool {
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return false
	}
	return n >= lo && (hi < 0 || n <= hi)
}

func Proposal(content string) Errors {
	errs := Errors{}
	n := utf8.RuneCountInString(content)
	switch {
	case n < config.ProposalMinLength:
		errs["content"] = fmt.Sprintf("Proposal must be at least %d characters", config.ProposalMinLength)
	case n > config.ProposalMaxLength:
		errs["content"] = fmt.Sprintf("Proposal must be less than %d characters", config.ProposalMaxLength)
	}
	return errs
}

var (
	scriptTag  = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	iframeTag  = regexp.MustCompile(`(?is)<iframe[^>]*>.*?</iframe>`)
	jsScheme   = regexp.MustCompile(`(?i)javascript:`)
	eventAttrs = regexp.MustCompile(`(?i)on\w+=`)
)

// SanitizeInput strips script and iframe blocks, javascript: URLs and
// inline event handlers.
func SanitizeInput(input string) string {
	s := strings.TrimSpace(input)
	s = scriptTag.ReplaceAllString(s, "")
	s = iframeTag.ReplaceAllString(s, "")
	s = jsScheme.ReplaceAllString(s, "")
	s = eventAttrs.ReplaceAllString(s, "")
	return s
}

var AllowedFileTypes = []string{"image/jpeg", "image/png", "image/webp", "application/pdf"}

type File struct {
	Name        string
	Size        int64
	ContentType string
}

// ValidateFile returns every problem with f, not just the first.
func ValidateFile(f *File, maxSize int64, allowedTypes []string) []string {
	if f == nil {
		return []string{"No file provided"}
	}
	if maxSize <= 0 {
		maxSize = config.FileMaxSize
	}
	if len(allowedTypes) == 0 {
		allowedTypes = AllowedFileTypes
	}

	var problems []string
	if f.Size > maxSize {
		problems = append(problems, fmt.Sprintf("File size must be less than %sMB", strconv.FormatFloat(float64(maxSize)/1024/1024, 'f', -1, 64)))
	}
	if !slices.Contains(allowedTypes, f.ContentType) {
		problems = append(problems, "File type must be one of: "+strings.Join(allowedTypes, ", "))
	}
	return problems
}
