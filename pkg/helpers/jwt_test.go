package helpers

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestJWT_GenerateAndParse(t *testing.T) {
	m := NewJWTManager(testSecret)
	before := time.Now()

	tok, exp, err := m.GenerateAccessToken("a@x.com", "665f1c2b9d1e8a0012345678", "client")
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	assert.WithinDuration(t, before.Add(4*time.Hour), exp, 2*time.Second)

	claims, err := m.ParseAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "665f1c2b9d1e8a0012345678", claims.UserID)
	assert.Equal(t, "client", claims.Role)
}

func TestJWT_TTLMatchesSigninMirror(t *testing.T) {
	m := NewJWTManager(testSecret)
	assert.Equal(t, int64(14400000), m.TTL().Milliseconds())
}

func TestJWT_Expired(t *testing.T) {
	m := NewJWTManager(testSecret)
	m.now = func() time.Time { return time.Now().Add(-5 * time.Hour) }
	tok, _, err := m.GenerateAccessToken("a@x.com", "1", "client")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseAccessToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWT_WrongSecret(t *testing.T) {
	tok, _, err := NewJWTManager(testSecret).GenerateAccessToken("a@x.com", "1", "client")
	require.NoError(t, err)

	_, err = NewJWTManager("another-secret").ParseAccessToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWT_Tampered(t *testing.T) {
	m := NewJWTManager(testSecret)
	tok, _, err := m.GenerateAccessToken("a@x.com", "1", "client")
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	forged, _, err := NewJWTManager("attacker").GenerateAccessToken("a@x.com", "1", "employee")
	require.NoError(t, err)
	parts[1] = strings.Split(forged, ".")[1]

	_, err = m.ParseAccessToken(strings.Join(parts, "."))
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWT_Malformed(t *testing.T) {
	m := NewJWTManager(testSecret)
	for _, tok := range []string{"", "token.invalido.aqui", "abc"} {
		_, err := m.ParseAccessToken(tok)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", tok)
	}
}

func TestJWT_RejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{
		Email: "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewJWTManager(testSecret).ParseAccessToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWT_RequiresExpiry(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Email: "a@x.com"}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewJWTManager(testSecret).ParseAccessToken(tok)
	assert.Error(t, err)
}
