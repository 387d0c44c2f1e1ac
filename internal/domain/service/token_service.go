package service

// TokenClaims are the claims the storefront reads from an access token.
type TokenClaims struct {
	Subject string
	Email   string
	Role    string
}

// TokenDecoder reads claims from an access token. The token signature is
// checked by the marketplace services, not here.
type TokenDecoder interface {
	Decode(token string) (*TokenClaims, error)
}
