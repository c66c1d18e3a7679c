package domain

import "time"

// Principal is the verified identity carried by a credential. It is trusted
// as-is once the token signature checks out; no store lookup backs it.
type Principal struct {
	Subject   string
	Role      Role
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time // zero when the token never expires
}

// Expires reports whether the credential carries an expiry claim.
func (p Principal) Expires() bool {
	return !p.ExpiresAt.IsZero()
}
