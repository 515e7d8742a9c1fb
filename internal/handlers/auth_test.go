package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-manager/internal/ratelimit"
)

func TestLoginRejectsWrongPassword(t *testing.T) {
	r, _ := newTestRouter(t)

	res := doJSON(r, http.MethodPost, "/api/login", map[string]string{"password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	for _, cookie := range res.Result().Cookies() {
		assert.NotEqual(t, "admin_session", cookie.Name, "failed login must not set a session cookie")
	}
}

func TestLoginMeLogoutFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	// Without a session.
	res := doJSON(r, http.MethodGet, "/api/me", nil, nil)
	require.Equal(t, http.StatusOK, res.Code)

	var me struct {
		IsLoggedIn bool `json:"isLoggedIn"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &me))
	assert.False(t, me.IsLoggedIn)

	// With a session.
	cookie := loginCookie(t, r)
	res = doJSON(r, http.MethodGet, "/api/me", nil, cookie)
	require.Equal(t, http.StatusOK, res.Code)
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &me))
	assert.True(t, me.IsLoggedIn)

	// Logout invalidates the token server-side, so the old cookie is dead.
	res = doJSON(r, http.MethodPost, "/api/logout", nil, cookie)
	require.Equal(t, http.StatusOK, res.Code)

	res = doJSON(r, http.MethodGet, "/api/me", nil, cookie)
	require.Equal(t, http.StatusOK, res.Code)
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &me))
	assert.False(t, me.IsLoggedIn)
}

func TestMutationsRequireSession(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodPost, "/api/properties", map[string]string{"title": "A"}},
		{http.MethodPatch, "/api/properties/some-id", map[string]string{"status": "SOLD"}},
		{http.MethodDelete, "/api/properties/some-id", nil},
		{http.MethodPost, "/api/upload", nil},
		{http.MethodGet, "/api/admin/delete-logs", nil},
	}

	for _, tt := range tests {
		res := doJSON(r, tt.method, tt.path, tt.body, nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code, "%s %s without session", tt.method, tt.path)
	}

	// A made-up cookie value is rejected the same way.
	forged := &http.Cookie{Name: "admin_session", Value: "not-a-real-token"}
	res := doJSON(r, http.MethodDelete, "/api/properties/some-id", nil, forged)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestThrottleLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/login", ThrottleLogin(ratelimit.NewLimiter(2, 0)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	body := map[string]string{"password": "wrong"}
	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodPost, "/api/login", body, nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodPost, "/api/login", body, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, doJSON(r, http.MethodPost, "/api/login", body, nil).Code)
}

func TestPublicReadsNeedNoSession(t *testing.T) {
	r, _ := newTestRouter(t)

	res := doJSON(r, http.MethodGet, "/api/properties", nil, nil)
	assert.Equal(t, http.StatusOK, res.Code)

	res = doJSON(r, http.MethodGet, "/api/dashboard/summary", nil, nil)
	assert.Equal(t, http.StatusOK, res.Code)
}
