package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "storefront/internal/domain/errors"
)

func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some-other-service-secret"))
	require.NoError(t, err)

	return token
}

func TestJWTDecoder_Decode(t *testing.T) {
	decoder := NewJWTDecoder()

	tests := []struct {
		name        string
		claims      jwt.MapClaims
		wantSubject string
		wantRole    string
	}{
		{
			name:        "role claim",
			claims:      jwt.MapClaims{"sub": "17", "email": "ama@example.com", "role": "SELLER", "roles": []string{"BUYER"}},
			wantSubject: "17",
			wantRole:    "SELLER",
		},
		{
			name:        "roles claim fallback",
			claims:      jwt.MapClaims{"sub": "17", "roles": []string{"BUYER", "ADMIN"}},
			wantSubject: "17",
			wantRole:    "BUYER",
		},
		{
			name:        "numeric subject",
			claims:      jwt.MapClaims{"sub": 42},
			wantSubject: "42",
		},
		{
			name:        "expired token is still readable",
			claims:      jwt.MapClaims{"sub": "9", "exp": time.Now().Add(-time.Hour).Unix()},
			wantSubject: "9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := decoder.Decode(signTestToken(t, tt.claims))
			require.NoError(t, err)
			assert.Equal(t, tt.wantSubject, claims.Subject)
			assert.Equal(t, tt.wantRole, claims.Role)
		})
	}
}

func TestJWTDecoder_BearerPrefix(t *testing.T) {
	claims, err := NewJWTDecoder().Decode("Bearer " + signTestToken(t, jwt.MapClaims{"sub": "1", "email": "a@b.c"}))
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", claims.Email)
}

func TestJWTDecoder_InvalidToken(t *testing.T) {
	decoder := NewJWTDecoder()

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := decoder.Decode(token)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidToken, token)
	}
}
