package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnthonysMotion/mappr/backend/internal/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenService_RoundTrip(t *testing.T) {
	svc, err := auth.NewTokenService(testSecret)
	require.NoError(t, err)

	userID := uuid.New()
	token, err := svc.Generate(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestNewTokenService_ShortSecret(t *testing.T) {
	_, err := auth.NewTokenService("too-short")

	assert.Error(t, err)
}

func TestTokenService_Validate_WrongSecret(t *testing.T) {
	issuing, err := auth.NewTokenService(testSecret)
	require.NoError(t, err)
	verifying, err := auth.NewTokenService("ffffffffffffffffffffffffffffffff")
	require.NoError(t, err)

	token, err := issuing.Generate(uuid.New())
	require.NoError(t, err)

	_, err = verifying.Validate(token)
	assert.Error(t, err)
}

func TestTokenService_Validate_Garbage(t *testing.T) {
	svc, err := auth.NewTokenService(testSecret)
	require.NoError(t, err)

	_, err = svc.Validate("not.a.token")
	assert.Error(t, err)
}

func TestTokenService_Validate_RejectsUnsignedToken(t *testing.T) {
	svc, err := auth.NewTokenService(testSecret)
	require.NoError(t, err)

	// alg=none with a valid-looking claim set must never verify.
	claims := jwt.RegisteredClaims{
		Subject:   uuid.New().String(),
		Issuer:    "mappr-api",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Validate(unsigned)
	assert.Error(t, err)
}

func TestTokenService_Validate_Expired(t *testing.T) {
	svc, err := auth.NewTokenService(testSecret)
	require.NoError(t, err)

	claims := jwt.RegisteredClaims{
		Subject:   uuid.New().String(),
		Issuer:    "mappr-api",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Validate(expired)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestTokenService_Validate_WrongIssuer(t *testing.T) {
	svc, err := auth.NewTokenService(testSecret)
	require.NoError(t, err)

	claims := jwt.RegisteredClaims{
		Subject:   uuid.New().String(),
		Issuer:    "some-other-app",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Validate(foreign)
	assert.Error(t, err, "same secret, different app: still rejected")
}
