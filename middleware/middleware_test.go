package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"asdcare/models"
	"asdcare/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type revokedSet struct {
	ids map[string]bool
	err error
}

func (r revokedSet) IsRevoked(_ context.Context, id string) (bool, error) {
	return r.ids[id], r.err
}

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("middleware-test-secret")
}

func whoami(c *gin.Context) {
	s, _ := ScopeOf(c)
	c.JSON(http.StatusOK, gin.H{"user": UserID(c), "role": RoleOf(c), "field": s.Field, "value": s.Value, "anon": s.Anonymized})
}

func do(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func token(t *testing.T, sub string, role models.Role) string {
	t.Helper()
	tok, err := utils.GenerateToken(sub, sub+"@example.com", string(role), time.Hour)
	require.NoError(t, err)
	return tok
}

func TestJWTAuthMiddleware(t *testing.T) {
	parentTok := token(t, "par-1", models.RoleParent)
	claims, err := utils.ExtractClaims(parentTok)
	require.NoError(t, err)

	revoked := revokedSet{ids: map[string]bool{}}
	r := gin.New()
	r.GET("/me", JWTAuthMiddleware(revoked), whoami)

	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", "garbage").Code)

	w := do(r, "/me", parentTok)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user":"par-1"`)
	assert.Contains(t, w.Body.String(), `"role":"parent"`)

	revoked.ids[claims.TokenID] = true
	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", parentTok).Code)

	// A Redis outage does not lock callers out.
	r = gin.New()
	r.GET("/me", JWTAuthMiddleware(revokedSet{err: errors.New("down")}), whoami)
	assert.Equal(t, http.StatusOK, do(r, "/me", parentTok).Code)
}

func TestRequireRole(t *testing.T) {
	r := gin.New()
	r.GET("/t", JWTAuthMiddleware(nil), RequireRole(models.RoleTherapist, models.RoleAdmin), whoami)

	assert.Equal(t, http.StatusOK, do(r, "/t", token(t, "thr-1", models.RoleTherapist)).Code)
	assert.Equal(t, http.StatusOK, do(r, "/t", token(t, "adm-1", models.RoleAdmin)).Code)

	w := do(r, "/t", token(t, "par-1", models.RoleParent))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"roles":["therapist","admin"]`)
}

func TestScopeFor(t *testing.T) {
	tests := []struct {
		name     string
		resource Resource
		role     models.Role
		want     Scope
		ok       bool
	}{
		{"parent appointments", ResourceAppointments, models.RoleParent, Scope{Field: "parentId", Value: "u1"}, true},
		{"therapist appointments", ResourceAppointments, models.RoleTherapist, Scope{Field: "therapistId", Value: "u1"}, true},
		{"admin appointments", ResourceAppointments, models.RoleAdmin, Scope{}, true},
		{"researcher children", ResourceChildren, models.RoleResearcher, Scope{Anonymized: true}, true},
		{"teacher children", ResourceChildren, models.RoleTeacher, Scope{Denied: true}, true},
		{"therapist analytics", ResourceAnalytics, models.RoleTherapist, Scope{Field: "therapistId", Value: "u1", Anonymized: true}, true},
		{"parent analytics", ResourceAnalytics, models.RoleParent, Scope{Denied: true}, true},
		{"unknown role analytics", ResourceAnalytics, models.Role("guest"), Scope{Denied: true}, true},
		{"unknown role appointments", ResourceAppointments, models.Role("guest"), Scope{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ScopeFor(tt.resource, tt.role, "u1")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Nil(t, Scope{}.Filter())
	assert.Equal(t, map[string]string{"parentId": "u1"}, Scope{Field: "parentId", Value: "u1"}.Filter())
}

func TestResourceScopeMiddleware(t *testing.T) {
	r := gin.New()
	auth := JWTAuthMiddleware(nil)
	r.GET("/appointments", auth, ResourceScope(ResourceAppointments), whoami)
	r.GET("/analytics", auth, ResourceScope(ResourceAnalytics), whoami)

	w := do(r, "/appointments", token(t, "thr-1", models.RoleTherapist))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"therapistId"`)
	assert.Contains(t, w.Body.String(), `"value":"thr-1"`)

	assert.Equal(t, http.StatusForbidden, do(r, "/analytics", token(t, "par-1", models.RoleParent)).Code)

	w = do(r, "/analytics", token(t, "res-1", models.RoleResearcher))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"anon":true`)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimitMiddleware(2), func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}
	assert.Equal(t, http.StatusOK, send("1.1.1.1"))
	assert.Equal(t, http.StatusOK, send("1.1.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("1.1.1.1"))
	assert.Equal(t, http.StatusOK, send("2.2.2.2"))
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.2:4000", "203.0.113.7"},
		{"junk forwarded entry skipped", map[string]string{"X-Forwarded-For": "unknown, 198.51.100.4"}, "10.0.0.2:4000", "198.51.100.4"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.9"}, "10.0.0.2:4000", "198.51.100.9"},
		{"remote addr", nil, "192.0.2.10:5555", "192.0.2.10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(c))
		})
	}
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	store := newRateLimiterStore(1)
	start := time.Now()

	assert.True(t, store.allow("1.1.1.1", start))
	assert.False(t, store.allow("1.1.1.1", start))

	later := start.Add(2 * limiterIdleTTL)
	assert.True(t, store.allow("2.2.2.2", later))
	assert.Len(t, store.clients, 1, "idle client swept")
}
