package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dwellcheck/dwellcheck-backend/internal/utils"
)

func testKeyPair(t *testing.T) (*rsa.PrivateKey, *rsa.PublicKey) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return priv, &priv.PublicKey
}

func signedToken(t *testing.T, priv *rsa.PrivateKey, sub, iss string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub": sub,
		"iss": iss,
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString(priv)
	require.NoError(t, err)
	return s
}

func echoUserIDHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := r.Context().Value(ContextKeyUserID).(string)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(userID))
	})
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	priv, pub := testKeyPair(t)
	userID := uuid.New().String()
	token := signedToken(t, priv, userID, TokenIssuer, time.Now().Add(time.Hour))

	handler := AuthMiddleware(pub)(echoUserIDHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, userID, rec.Body.String())
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	_, pub := testKeyPair(t)
	handler := AuthMiddleware(pub)(echoUserIDHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, utils.ErrCodeNotAuthenticated, body.Code)
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	priv, pub := testKeyPair(t)
	token := signedToken(t, priv, uuid.New().String(), TokenIssuer, time.Now().Add(-time.Minute))

	handler := AuthMiddleware(pub)(echoUserIDHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, utils.ErrCodeTokenExpired, body.Code)
}

func TestAuthMiddlewareRejectsWrongIssuer(t *testing.T) {
	priv, pub := testKeyPair(t)
	token := signedToken(t, priv, uuid.New().String(), "SomeoneElse", time.Now().Add(time.Hour))

	handler := AuthMiddleware(pub)(echoUserIDHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsForeignKey(t *testing.T) {
	priv, _ := testKeyPair(t)
	_, otherPub := testKeyPair(t)
	token := signedToken(t, priv, uuid.New().String(), TokenIssuer, time.Now().Add(time.Hour))

	handler := AuthMiddleware(otherPub)(echoUserIDHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuthAllowsAnonymous(t *testing.T) {
	_, pub := testKeyPair(t)
	handler := OptionalAuthMiddleware(pub)(echoUserIDHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Body.String())
}

func TestOptionalAuthStillRejectsBadTokens(t *testing.T) {
	priv, pub := testKeyPair(t)
	token := signedToken(t, priv, uuid.New().String(), TokenIssuer, time.Now().Add(-time.Minute))

	handler := OptionalAuthMiddleware(pub)(echoUserIDHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuthForwardsIdentityWhenPresent(t *testing.T) {
	priv, pub := testKeyPair(t)
	userID := uuid.New().String()
	token := signedToken(t, priv, userID, TokenIssuer, time.Now().Add(time.Hour))

	handler := OptionalAuthMiddleware(pub)(echoUserIDHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, userID, rec.Body.String())
}
