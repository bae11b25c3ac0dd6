package domain

// AuthContext is the identity derived from a single request. The zero value
// is the anonymous caller.
type AuthContext struct {
	UserID        int64
	Authenticated bool
}

// Anonymous returns the context of a caller without a valid token.
func Anonymous() AuthContext {
	return AuthContext{}
}

// Authenticated returns the context of a verified caller.
func Authenticated(userID int64) AuthContext {
	return AuthContext{UserID: userID, Authenticated: true}
}

// IsOwner reports whether the caller is authenticated as ownerID.
func (a AuthContext) IsOwner(ownerID int64) bool {
	return a.Authenticated && a.UserID != 0 && a.UserID == ownerID
}

// AuthPayload is returned by signup and login.
type AuthPayload struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
