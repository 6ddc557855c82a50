package apipaths

import "strconv"

// API surface paths shared by the router and its tests.

const (
	AuthPrefix   = "/api/auth/"
	AuthRegister = "/api/auth/register"
	AuthLogin    = "/api/auth/login"
	AuthUser     = "/api/auth/user"
	AuthLogout   = "/api/auth/logout"
	AuthGitHub   = "/api/auth/oauth2/github"
	Memos        = "/api/memos"
	Health       = "/api/health"
	Metrics      = "/metrics"
)

func MemoByID(memoID int64) string { return Memos + "/" + strconv.FormatInt(memoID, 10) }
