package config

import "time"

// HTTP server timeouts
const (
	ServerRequestTimeout  = 60 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Dashboard routes
const (
	RouteHome          = "/"
	RouteLogin         = "/login"
	RouteRegister      = "/register"
	RouteDashboard     = "/dashboard"
	RouteJobs          = "/dashboard/jobs"
	RouteAnalytics     = "/dashboard/analytics"
	RouteProposals     = "/dashboard/proposals"
	RouteSettings      = "/dashboard/settings"
	RouteNotifications = "/dashboard/notifications"
)

func RouteJobDetail(id string) string {
	return RouteJobs + "/" + id
}

// ProtectedRoutes require a session marker at the edge.
var ProtectedRoutes = []string{RouteDashboard}

// AuthRoutes redirect away when a session marker is present.
var AuthRoutes = []string{RouteLogin, RouteRegister}

// Edge server request limits.
const (
	DefaultRateLimitPerMin = 300
	MaxRequestBodySize     = 1 << 20
)

// Pagination
const DefaultPageSize = 20

var PageSizeOptions = []int{10, 20, 50, 100}

const DefaultTokenExpiryDays = 7

// Notifications
const DefaultToastDuration = 5 * time.Second

// Validation limits
const (
	BioMaxLength       = 500
	ProposalMinLength  = 50
	ProposalMaxLength  = 5000
	SkillsMinCount     = 1
	SkillsMaxCount     = 50
	FileMaxSize        = 5 * 1024 * 1024
	PasswordMinLength  = 8
	MatchScoreMaxValue = 100
	FilterMaxLimit     = 100
)

// User-facing error messages
const (
	MsgNetworkError    = "Network error. Please check your connection and try again."
	MsgUnauthorized    = "You must be logged in to access this resource."
	MsgForbidden       = "You do not have permission to access this resource."
	MsgNotFound        = "The requested resource was not found."
	MsgServerError     = "An unexpected error occurred. Please try again later."
	MsgValidationError = "Please check your input and try again."
)

// User-facing success messages
const (
	MsgLoginSuccess     = "Successfully logged in!"
	MsgRegisterSuccess  = "Account created successfully!"
	MsgLogoutSuccess    = "Successfully logged out!"
	MsgProfileUpdated   = "Profile updated successfully!"
	MsgJobUpdated       = "Job status updated successfully!"
	MsgProposalSent     = "Proposal submitted successfully!"
	MsgSettingsSaved    = "Settings saved successfully!"
	MsgLoginFailed      = "Login failed. Please try again."
	MsgRegisterFailed   = "Registration failed. Please try again."
	MsgUpworkStatusFail = "Failed to load Upwork status"
)
