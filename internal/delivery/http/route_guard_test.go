package http_test

import (
	"net/http"
	"testing"

	delivery "shacademy-backend/internal/delivery/http"
	"shacademy-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRoute(t *testing.T) {
	tests := []struct {
		path          string
		role          domain.Role
		authenticated bool
		wantRedirect  string
	}{
		{"/login", "", false, ""},
		{"/register", "", false, ""},
		{"/login", domain.RoleStudent, true, "/"},
		{"/register", domain.RoleAdmin, true, "/"},
		{"/admin/dashboard", "", false, "/login"},
		{"/student/enrolled_course", "", false, "/login"},
		{"/admin/manage_course", domain.RoleAdmin, true, ""},
		{"/admin/dashboard", domain.RoleStudent, true, "/"},
		{"/student/dashboard", domain.RoleStudent, true, ""},
		{"/student", domain.RoleStudent, true, ""},
		{"/student/dashboard", domain.RoleAdmin, true, "/"},
		{"/", "", false, ""},
		{"/courses/3", "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path+"/"+string(tt.role), func(t *testing.T) {
			decision := delivery.ResolveRoute(tt.path, tt.role, tt.authenticated)
			assert.Equal(t, tt.wantRedirect, decision.Redirect)
			assert.Equal(t, tt.wantRedirect == "", decision.Allowed)
		})
	}
}

func TestGuarded(t *testing.T) {
	assert.True(t, delivery.Guarded("/login"))
	assert.True(t, delivery.Guarded("/admin/dashboard"))
	assert.True(t, delivery.Guarded("/student"))
	assert.False(t, delivery.Guarded("/"))
	assert.False(t, delivery.Guarded("/administrator"))
}

func TestWebGuardRedirects(t *testing.T) {
	s := newTestServer(false)

	w := s.serve(newRequest(http.MethodGet, "/admin/dashboard", ""))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	req := newRequest(http.MethodGet, "/admin/dashboard", "")
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: accessToken(t, 7, domain.RoleStudent)})
	w = s.serve(req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	req = newRequest(http.MethodGet, "/login", "")
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: accessToken(t, 7, domain.RoleStudent)})
	w = s.serve(req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = s.serve(newRequest(http.MethodGet, "/register", ""))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebGuardServesPageShell(t *testing.T) {
	s := newTestServer(false)

	req := newRequest(http.MethodGet, "/admin/manage_course", "")
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: accessToken(t, 1, domain.RoleAdmin)})
	w := s.serve(req)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "admin/manage_course", data["page"])
	assert.Equal(t, "/admin/dashboard", data["dashboard"])
	assert.NotEmpty(t, data["navigation"])
}

func TestGetGuard(t *testing.T) {
	s := newTestServer(false)

	w := s.serve(withBearer(newRequest(http.MethodGet, "/api/v1/guard?path=/student/dashboard", ""), accessToken(t, 7, domain.RoleStudent)))
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, true, data["allowed"])

	w = s.serve(newRequest(http.MethodGet, "/api/v1/guard?path=/student/dashboard", ""))
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, false, data["allowed"])
	assert.Equal(t, "/login", data["redirect"])

	w = s.serve(newRequest(http.MethodGet, "/api/v1/guard", ""))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
