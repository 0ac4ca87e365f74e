package models

// User is the identity handed to us by the OAuth provider. The cores only ever
// use it as a storage-location selector and document key.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

// Session is the explicit per-operation context every core call receives:
// who is signed in (if anyone) and which device the request comes from.
type Session struct {
	UserID   string
	DeviceID string
}

// SignedIn reports whether the session carries an authenticated user. It is
// evaluated at the moment of each operation, never cached.
func (s Session) SignedIn() bool {
	return s.UserID != ""
}
