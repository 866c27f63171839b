package ports

// TokenIssuer mints signed bearer tokens for an authenticated subject.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// TokenVerifier checks a bearer token's signature and expiry and returns
// the subject claim. Any failure yields domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (string, error)
}
