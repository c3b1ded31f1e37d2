package session

import "acaciacamp/internal/models"

// Decision is the outcome of a route-guard check.
type Decision int

const (
	// Deny means the caller must redirect to the login entry point.
	Deny Decision = iota
	// Allow means the protected view may render.
	Allow
	// Wait means the session is still resolving; the caller shows a
	// neutral waiting state and re-evaluates once loading completes.
	Wait
)

// Decide checks a session against a set of allowed roles. An empty role
// set only requires the session to be authenticated.
func Decide(sess Session, roles ...models.Role) Decision {
	if sess.Loading() {
		return Wait
	}
	if !sess.Authenticated() || sess.User() == nil {
		return Deny
	}
	if len(roles) == 0 {
		return Allow
	}
	for _, role := range roles {
		if sess.User().Role == role {
			return Allow
		}
	}
	return Deny
}

// CanAccess reports whether the protected view may render right now. A
// still-loading session is not access.
func CanAccess(sess Session, roles ...models.Role) bool {
	return Decide(sess, roles...) == Allow
}
