package http

import (
	"net/http"
	"strings"

	"shacademy-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type WebHandler struct {
	secret string
}

func NewWebHandler(secret string) *WebHandler {
	return &WebHandler{secret: secret}
}

// OptionalPageAuth attaches the cookie session to public pages without
// redirecting anyone.
func OptionalPageAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		pageCaller(c, secret)
		c.Next()
	}
}

type pageShell struct {
	Page       string           `json:"page"`
	Dashboard  string           `json:"dashboard,omitempty"`
	Navigation []domain.NavItem `json:"navigation"`
}

func shellFor(c *gin.Context, page string) pageShell {
	shell := pageShell{Page: page, Navigation: []domain.NavItem{}}
	if viewer, ok := getViewer(c); ok {
		shell.Dashboard = domain.DashboardPath(viewer.Role)
		if items := domain.NavigationFor(viewer.Role); items != nil {
			shell.Navigation = items
		}
	}
	return shell
}

func (h *WebHandler) Home(c *gin.Context) {
	respond(c, http.StatusOK, "Home", shellFor(c, "home"))
}

func (h *WebHandler) AuthPage(c *gin.Context) {
	page := strings.TrimPrefix(c.Request.URL.Path, "/")
	respond(c, http.StatusOK, page, shellFor(c, page))
}

// DashboardPage serves /admin/* and /student/*; page is the path without its
// leading slash, e.g. "admin/manage_course".
func (h *WebHandler) DashboardPage(c *gin.Context) {
	page := strings.Trim(c.Request.URL.Path, "/")
	respond(c, http.StatusOK, page, shellFor(c, page))
}
