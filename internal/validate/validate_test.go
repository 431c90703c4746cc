package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jobfinder/dashboard-go/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("dev@example.com"))
	assert.False(t, IsValidEmail("dev@example"))
	assert.False(t, IsValidEmail("dev example@x.com"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidURL(t *testing.T) {
	assert.True(t, IsValidURL("https://www.upwork.com/jobs/~01"))
	assert.True(t, IsValidURL("mailto:dev@example.com"))
	assert.False(t, IsValidURL("/relative/path"))
	assert.False(t, IsValidURL("http://"))
	assert.False(t, IsValidURL(""))
}

func TestIsValidEnum(t *testing.T) {
	assert.True(t, IsValidEnum("", []string{"a"}))
	assert.True(t, IsValidEnum("a", []string{"a", "b"}))
	assert.False(t, IsValidEnum("c", []string{"a", "b"}))
}

func TestPassword(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Short1", "Password must be at least 8 characters"},
		{"alllower1", "Password must contain at least one uppercase letter"},
		{"ALLUPPER1", "Password must contain at least one lowercase letter"},
		{"NoDigitsHere", "Password must contain at least one number"},
		{"Secret123", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Password(tt.in), tt.in)
	}
}

func TestLogin(t *testing.T) {
	errs := Login(model.LoginRequest{})
	assert.Equal(t, Errors{"email": "Email is required", "password": "Password is required"}, errs)

	errs = Login(model.LoginRequest{Email: "nope", Password: "x"})
	assert.Equal(t, "Please enter a valid email address", errs["email"])
	assert.NotContains(t, errs, "password")

	assert.True(t, Login(model.LoginRequest{Email: "dev@example.com", Password: "x"}).Valid())
}

func TestRegister(t *testing.T) {
	t.Run("mismatched confirmation", func(t *testing.T) {
		errs := Register(model.RegisterRequest{Email: "dev@example.com", Password: "Secret123", ConfirmPassword: "Secret124"})
		assert.Equal(t, Errors{"confirmPassword": "Passwords do not match"}, errs)
	})

	t.Run("missing confirmation", func(t *testing.T) {
		errs := Register(model.RegisterRequest{Email: "dev@example.com", Password: "Secret123"})
		assert.Equal(t, "Please confirm your password", errs["confirmPassword"])
	})

	t.Run("weak password", func(t *testing.T) {
		errs := Register(model.RegisterRequest{Email: "dev@example.com", Password: "weak", ConfirmPassword: "weak"})
		assert.Equal(t, "Password must be at least 8 characters", errs["password"])
	})

	t.Run("valid", func(t *testing.T) {
		assert.True(t, Register(model.RegisterRequest{Email: "dev@example.com", Password: "Secret123", ConfirmPassword: "Secret123"}).Valid())
	})
}

func TestProfile(t *testing.T) {
	errs := Profile(model.UserPatch{
		Bio:        ptr(strings.Repeat("x", 501)),
		HourlyRate: ptr(-1.0),
	})
	assert.Len(t, errs, 3)
	assert.Contains(t, errs["bio"], "500")
	assert.Equal(t, "Hourly rate must be positive", errs["hourly_rate"])
	assert.Equal(t, "At least one skill is required", errs["skills"])

	assert.True(t, Profile(model.UserPatch{
		Bio:        ptr(strings.Repeat("x", 500)),
		HourlyRate: ptr(0.0),
		Skills:     ptr([]string{"go"}),
	}).Valid())
}

func TestJobFilters(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		assert.True(t, JobFilters(model.DefaultJobFilters(20)).Valid())
	})

	t.Run("rejects out of range values", func(t *testing.T) {
		f := model.JobFilters{
			Page:      0,
			Limit:     101,
			SortBy:    "budget",
			SortOrder: "up",
			Fields: map[string]string{
				"status":      "ghosted",
				"budget_type": "weekly",
				"min_score":   "101",
				"max_score":   "abc",
				"min_budget":  "-5",
			},
		}

		errs := JobFilters(f)

		for _, key := range []string{"page", "limit", "sort_by", "sort_order", "status", "budget_type", "min_score", "max_score", "min_budget"} {
			assert.Contains(t, errs, key)
		}
	})

	t.Run("accepts known filter values", func(t *testing.T) {
		f := model.DefaultJobFilters(50)
		f.Fields = map[string]string{"status": "applied", "budget_type": "hourly", "min_score": "70", "max_budget": "1000", "category": "Web"}
		assert.True(t, JobFilters(f).Valid())
	})
}

func TestProposal(t *testing.T) {
	assert.Contains(t, Proposal(strings.Repeat("a", 49)), "content")
	assert.True(t, Proposal(strings.Repeat("a", 50)).Valid())
	assert.True(t, Proposal(strings.Repeat("a", 5000)).Valid())
	assert.Equal(t, "Proposal must be less than 5000 characters", Proposal(strings.Repeat("a", 5001))["content"])
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  hello  ", "hello"},
		{`hi<script src="x">alert(1)</script>there`, "hithere"},
		{`<iframe src="evil"></iframe>ok`, "ok"},
		{`<a href="javascript:alert(1)">x</a>`, `<a href="alert(1)">x</a>`},
		{`<img onerror=alert(1)>`, `<img alert(1)>`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeInput(tt.in))
	}
}

func TestValidateFile(t *testing.T) {
	assert.Equal(t, []string{"No file provided"}, ValidateFile(nil, 0, nil))

	assert.Empty(t, ValidateFile(&File{Name: "a.png", Size: 1024, ContentType: "image/png"}, 0, nil))

	problems := ValidateFile(&File{Name: "a.gif", Size: 6 * 1024 * 1024, ContentType: "image/gif"}, 0, nil)
	assert.Equal(t, []string{
		"File size must be less than 5MB",
		"File type must be one of: image/jpeg, image/png, image/webp, application/pdf",
	}, problems)
}

func TestErrorsFirst(t *testing.T) {
	errs := Errors{"password": "b", "email": "a"}
	assert.Equal(t, "a", errs.First())
	assert.Equal(t, "a", errs.Error())
	assert.Equal(t, "", Errors{}.First())
}
