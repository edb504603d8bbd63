package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelist/internal/auth"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	j := auth.NewJWT("test-secret")

	token, err := j.Sign("7e0ec3cd-1c54-4cf0-aef5-a747958e1b9e")
	require.NoError(t, err)

	uid, err := j.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "7e0ec3cd-1c54-4cf0-aef5-a747958e1b9e", uid)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := auth.NewJWT("secret-a").Sign("user-1")
	require.NoError(t, err)

	_, err = auth.NewJWT("secret-b").Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := auth.NewJWT("secret").Verify("not.a.token")
	require.Error(t, err)
}

func TestRequireAuthMiddleware(t *testing.T) {
	j := auth.NewJWT("secret")
	token, err := j.Sign("owner-1")
	require.NoError(t, err)

	var gotOwner string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOwner, _ = auth.OwnerIDFromContext(r.Context())
	})
	h := auth.RequireAuth(j)(next)

	// missing header
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// bad token
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// valid token
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "owner-1", gotOwner)
}
