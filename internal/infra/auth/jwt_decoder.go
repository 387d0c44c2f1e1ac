// Package auth reads the marketplace access token.
package auth

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
)

// jwtDecoder reads claims without verifying the signature. The storefront
// never holds the signing key; the marketplace services reject forged tokens.
type jwtDecoder struct {
	parser *jwt.Parser
}

// NewJWTDecoder is the constructor for jwtDecoder.
func NewJWTDecoder() service.TokenDecoder {
	return &jwtDecoder{parser: jwt.NewParser()}
}

// Decode extracts subject, email and role. The role comes from the "role"
// claim or, failing that, the first entry of "roles".
func (d *jwtDecoder) Decode(token string) (*service.TokenClaims, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return nil, domainerrors.ErrInvalidToken.WithDetails("empty token")
	}

	claims := jwt.MapClaims{}
	if _, _, err := d.parser.ParseUnverified(token, claims); err != nil {
		return nil, domainerrors.ErrInvalidToken.WithDetails(err.Error())
	}

	return &service.TokenClaims{
		Subject: claimString(claims["sub"]),
		Email:   claimString(claims["email"]),
		Role:    roleFromClaims(claims),
	}, nil
}

func roleFromClaims(claims jwt.MapClaims) string {
	if role := claimString(claims["role"]); role != "" {
		return role
	}

	if roles, ok := claims["roles"].([]any); ok && len(roles) > 0 {
		return claimString(roles[0])
	}

	return ""
}

// claimString renders string and numeric claims; JSON numbers arrive as float64.
func claimString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return fmt.Sprintf("%.0f", value)
	default:
		return ""
	}
}
