package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"construtora/internal/authz"
	"construtora/internal/utils"
)

func newRouter(tokens *utils.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	whoami := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetInt64(CtxUserID), "role": c.GetString(CtxRole)})
	}
	r.GET("/open", OptionalAuth(tokens), whoami)
	auth := r.Group("", RequireAuth(tokens))
	auth.GET("/me", whoami)
	auth.GET("/admin", RequireRoles(authz.RoleAdmin), whoami)
	return r
}

func call(r *gin.Engine, path, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := utils.NewTokenManager("secret", time.Hour)
	r := newRouter(tokens)

	userTok, _, err := tokens.Issue(5, authz.RoleUser)
	require.NoError(t, err)
	adminTok, _, err := tokens.Issue(1, authz.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, call(r, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, "/me", "Token "+userTok).Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, "/me", "Bearer garbage").Code)

	w := call(r, "/me", "bearer "+userTok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":5,"role":"USER"}`, w.Body.String())

	assert.Equal(t, http.StatusForbidden, call(r, "/admin", "Bearer "+userTok).Code)
	assert.Equal(t, http.StatusOK, call(r, "/admin", "Bearer "+adminTok).Code)

	w = call(r, "/open", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":0,"role":""}`, w.Body.String())
	w = call(r, "/open", "Bearer garbage")
	require.Equal(t, http.StatusOK, w.Code)
	w = call(r, "/open", "Bearer "+adminTok)
	assert.JSONEq(t, `{"user":1,"role":"ADMIN"}`, w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
