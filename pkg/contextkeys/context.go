package contextkeys

// Custom type to avoid collisions with other context users.
type contextKey string

// SessionIDKey holds the opaque session id of the current request.
const SessionIDKey = contextKey("session_id")

// IdentityKey holds the *session.Data snapshot of the authenticated user.
const IdentityKey = contextKey("identity")
