package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "trendradar/internal/errors"
	"trendradar/internal/model"
)

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", "HS256", 1)

	token, err := svc.Issue(42, model.RoleInternalTeacher)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, model.RoleInternalTeacher, claims.Role)
	assert.NotEmpty(t, claims.ID, "jti should be set")
	assert.NotNil(t, claims.ExpiresAt)
}

func TestJWTService_Verify_Expired(t *testing.T) {
	// negative ttl issues a token that is already past its expiry
	svc := NewJWTService("test-secret", "HS256", -1)

	token, err := svc.Issue(42, model.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestJWTService_Verify_Malformed(t *testing.T) {
	svc := NewJWTService("test-secret", "HS256", 1)

	_, err := svc.Verify("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenMalformed)
}

func TestJWTService_Verify_WrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-one", "HS256", 1)
	verifier := NewJWTService("secret-two", "HS256", 1)

	token, err := issuer.Issue(42, model.RoleExternal)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestNewJWTService_UnknownAlgorithmFallsBack(t *testing.T) {
	// an unrecognized or non-HMAC algorithm name must still yield a working
	// HMAC signer rather than a nil method
	svc := NewJWTService("test-secret", "RS256", 1)

	token, err := svc.Issue(1, model.RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
}
