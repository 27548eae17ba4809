package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("walleye42")
	require.NoError(t, err)
	assert.NotEqual(t, "walleye42", hash)

	assert.NoError(t, CheckPassword(hash, "walleye42"))
	assert.ErrorIs(t, CheckPassword(hash, "walleye43"), domain.ErrInvalidCredentials)
	assert.ErrorIs(t, CheckPassword("", "walleye42"), domain.ErrInvalidCredentials)
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("p", MaxPasswordBytes))
	require.NoError(t, err)

	// 37 runes, 74 bytes.
	_, err = HashPassword(strings.Repeat("é", 37))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = HashPassword(strings.Repeat("p", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTokens_IssueVerify(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	tokens := NewTokens("s3cret", 24*time.Hour, clock)

	want := domain.Principal{AnglerID: 7, Username: "pike_hunter", Admin: true}
	tok, exp, err := tokens.Issue(want)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC), exp)

	got, err := tokens.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTokens_Expired(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	tokens := NewTokens("s3cret", time.Hour, clock)

	tok, _, err := tokens.Issue(domain.Principal{AnglerID: 1, Username: "a"})
	require.NoError(t, err)

	clock.Advance(time.Hour + time.Second)
	_, err = tokens.Verify(tok)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Contains(t, err.Error(), "expired")
}

func TestTokens_WrongSecret(t *testing.T) {
	tok, _, err := NewTokens("one", time.Hour, nil).Issue(domain.Principal{AnglerID: 1})
	require.NoError(t, err)

	_, err = NewTokens("two", time.Hour, nil).Verify(tok)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestTokens_RejectsOtherAlgorithms(t *testing.T) {
	c := claims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, c).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokens("s3cret", time.Hour, nil).Verify(tok)
	assert.True(t, errors.Is(err, domain.ErrUnauthenticated))
}

func TestTokens_Garbage(t *testing.T) {
	_, err := NewTokens("s3cret", time.Hour, nil).Verify("not.a.token")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
