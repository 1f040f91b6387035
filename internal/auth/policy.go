package auth

// Policy decides whether a resolved identity may enter the admin section.
// It is injected at startup so the allow-list lives in configuration, not
// in code.
type Policy interface {
	Authorized(uid string) bool
}

// AllowList is a single-tenant allow-list of size one: the identity's
// opaque id must string-equal the configured admin UID exactly.
type AllowList struct {
	uid string
}

// NewAllowList builds the policy for one admin UID.
func NewAllowList(uid string) *AllowList {
	return &AllowList{uid: uid}
}

// Authorized reports whether uid is the allow-listed identity. An empty
// allow-list authorizes nobody.
func (a *AllowList) Authorized(uid string) bool {
	return a.uid != "" && uid == a.uid
}
