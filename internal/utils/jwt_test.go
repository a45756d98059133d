package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	manager := JWTManager{Secret: []byte("secret"), Issuer: "trackjob", AccessTokenTTL: time.Hour}

	token, ttl, err := manager.IssueAccessToken("user-1", "session-1")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, ttl)

	claims, err := manager.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "session-1", claims.SessionID)
	assert.Equal(t, "trackjob", claims.Issuer)
}

func TestJWTManager_DefaultsToSevenDays(t *testing.T) {
	manager := JWTManager{Secret: []byte("secret")}
	_, ttl, err := manager.IssueAccessToken("user-1", "session-1")
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, ttl)
}

func TestJWTManager_RejectsForeignAndExpiredTokens(t *testing.T) {
	manager := JWTManager{Secret: []byte("secret"), AccessTokenTTL: time.Hour}
	other := JWTManager{Secret: []byte("other"), AccessTokenTTL: time.Hour}

	token, _, err := other.IssueAccessToken("user-1", "session-1")
	require.NoError(t, err)
	_, err = manager.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := JWTManager{Secret: []byte("secret"), AccessTokenTTL: -time.Minute}
	token, _, err = expired.IssueAccessToken("user-1", "session-1")
	require.NoError(t, err)
	_, err = manager.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = manager.ParseAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_RejectsWrongIssuerAndAlgorithm(t *testing.T) {
	manager := JWTManager{Secret: []byte("secret"), Issuer: "trackjob", AccessTokenTTL: time.Hour}

	foreign := JWTManager{Secret: []byte("secret"), Issuer: "someone-else", AccessTokenTTL: time.Hour}
	token, _, err := foreign.IssueAccessToken("user-1", "session-1")
	require.NoError(t, err)
	_, err = manager.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims := AccessClaims{
		SessionID: "session-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "trackjob",
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = manager.ParseAccessToken(hs512)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims.SessionID = ""
	noSession, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = manager.ParseAccessToken(noSession)
	assert.ErrorIs(t, err, ErrInvalidToken, "a token must name its session")

	_, _, err = manager.IssueAccessToken("user-1", "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
