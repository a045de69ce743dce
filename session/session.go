// Package session owns the dashboard's single authenticated session: token
// acquisition, persistence, silent restoration and logout.
package session

import "github.com/jrsteele09/callwa-dashboard/api"

// State is the lifecycle state of the session.
type State string

const (
	// StateUnauthenticated has no token and no user.
	StateUnauthenticated State = "unauthenticated"
	// StateRestoring has a persisted token whose identity is not yet confirmed.
	StateRestoring State = "restoring"
	// StateAuthenticated has a token and the identity it resolves to.
	StateAuthenticated State = "authenticated"
	// StateAuthError follows a failed login; token and user are cleared.
	StateAuthError State = "auth_error"
)

// InvalidCredentialsMessage is the only login failure text shown to users.
const InvalidCredentialsMessage = "Invalid email or password. Please try again."

// Session is a point-in-time copy of the store's state.
type Session struct {
	Token     string
	User      *api.Identity
	IsLoading bool
	Error     string
	State     State
}

// Authenticated is the single guard condition: both a token and the user it
// belongs to are present.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}
