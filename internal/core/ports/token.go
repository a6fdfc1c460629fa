package ports

import "time"

// Token is a signed bearer credential together with its expiry, so the
// transport can align cookie lifetime with the claim.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Issue(userID uint, email string) (Token, error)
}

// TokenVerifier checks a token and returns the subject user ID.
type TokenVerifier interface {
	Verify(token string) (uint, error)
}
