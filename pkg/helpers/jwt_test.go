package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_IssueVerifyRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, exp, err := m.Issue("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	uid, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", uid)
}

func TestJWTManager_Expired(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewJWTManager("secret", time.Hour).WithClock(func() time.Time { return issuedAt })

	token, exp, err := m.Issue("user-1")
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(time.Hour), exp)

	later := m.WithClock(func() time.Time { return issuedAt.Add(time.Hour + time.Minute) })
	_, err = later.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)

	// still valid just before expiry
	earlier := m.WithClock(func() time.Time { return issuedAt.Add(59 * time.Minute) })
	uid, err := earlier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", uid)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	token, _, err := NewJWTManager("secret", time.Hour).Issue("user-1")
	require.NoError(t, err)

	_, err = NewJWTManager("other", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTManager_Malformed(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := m.Verify(tok)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", tok)
	}
}

func TestJWTManager_MissingIdentity(t *testing.T) {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWTManager("secret", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestJWTManager_MissingExpiry(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: "user-1"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWTManager("secret", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestJWTManager_RejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{UserID: "user-1", RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTManager("secret", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
