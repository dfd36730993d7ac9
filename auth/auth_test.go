package auth

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvn-digital/initiative-catalog/errs"
)

const secret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims() Claims {
	return Claims{
		Email: "owner@pvn.vn",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Audience:  jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestVerify(t *testing.T) {
	v := NewVerifier(secret, WithAudience("authenticated"))

	user, err := v.Verify(sign(t, jwt.SigningMethodHS256, []byte(secret), validClaims()))
	require.NoError(t, err)
	assert.Equal(t, User{ID: "user-1", Email: "owner@pvn.vn"}, user)
}

func TestVerifyRejects(t *testing.T) {
	v := NewVerifier(secret, WithAudience("authenticated"), WithLeeway(0))

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	noEmail := validClaims()
	noEmail.Email = ""

	noExpiry := validClaims()
	noExpiry.ExpiresAt = nil

	wrongAudience := validClaims()
	wrongAudience.Audience = jwt.ClaimStrings{"anon"}

	_, err := v.Verify("")
	assert.True(t, errs.IsMissingTokenError(err))

	_, err = v.Verify(sign(t, jwt.SigningMethodHS256, []byte(secret), expired))
	assert.True(t, errs.IsExpiredTokenError(err))

	for name, token := range map[string]string{
		"wrong secret":   sign(t, jwt.SigningMethodHS256, []byte("other"), validClaims()),
		"wrong method":   sign(t, jwt.SigningMethodHS512, []byte(secret), validClaims()),
		"no email":       sign(t, jwt.SigningMethodHS256, []byte(secret), noEmail),
		"no expiry":      sign(t, jwt.SigningMethodHS256, []byte(secret), noExpiry),
		"wrong audience": sign(t, jwt.SigningMethodHS256, []byte(secret), wrongAudience),
		"garbage":        "not.a.token",
	} {
		_, err := v.Verify(token)
		assert.True(t, errs.IsInvalidTokenError(err), name)
		assert.True(t, errs.IsUnauthorized(err), name)
	}
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer  abc "))
	assert.Equal(t, "", BearerToken("Basic abc"))
	assert.Equal(t, "", BearerToken(""))
}

func TestLoginURL(t *testing.T) {
	l := NewLogin("https://auth.example.test/auth/v1/", "client", "https://app.example.test/", "")

	raw, verifier := l.URL("state-1")
	require.NotEmpty(t, verifier)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/auth/v1/authorize", u.Path)

	q := u.Query()
	assert.Equal(t, "azure", q.Get("provider"))
	assert.Equal(t, "https://app.example.test/", q.Get("redirect_to"))
	assert.Equal(t, "state-1", q.Get("state"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
	assert.NotEmpty(t, q.Get("code_challenge"))
	assert.NotEqual(t, verifier, q.Get("code_challenge"))
}

func TestDiagnose(t *testing.T) {
	_, ok := Diagnose(url.Values{}, "")
	assert.False(t, ok)

	d, ok := Diagnose(url.Values{"error_description": {"AADSTS9002325: Proof Key required"}}, "")
	require.True(t, ok)
	assert.Equal(t, KindAppTypeMismatch, d.Kind)

	d, ok = Diagnose(url.Values{}, "#error=server_error&error_description=Error+getting+user+email+from+external+provider")
	require.True(t, ok)
	assert.Equal(t, KindMissingPermission, d.Kind)
	assert.True(t, strings.HasPrefix(d.Message, "Lỗi cấp quyền API."))

	d, ok = Diagnose(url.Values{}, "error_description=Access%2Bdenied")
	require.True(t, ok)
	assert.Equal(t, KindGeneric, d.Kind)
	assert.Equal(t, "Access denied", d.Description)
	assert.Equal(t, "Lỗi đăng nhập: Access denied.", d.Message)
}
