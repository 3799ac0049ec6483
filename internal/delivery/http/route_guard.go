package http

import (
	"net/http"
	"strings"

	"shacademy-backend/internal/domain"
	"shacademy-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// GuardDecision is the outcome of checking a page path against the caller.
// Redirect is empty when the request may pass.
type GuardDecision struct {
	Path     string `json:"path"`
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
}

var authRoutes = map[string]bool{
	"/login":    true,
	"/register": true,
}

var rolePrefixes = map[domain.Role]string{
	domain.RoleAdmin:   "/admin",
	domain.RoleStudent: "/student",
}

// Guarded reports whether the page path is subject to the route guard.
func Guarded(path string) bool {
	if authRoutes[path] {
		return true
	}
	for _, prefix := range rolePrefixes {
		if hasSegmentPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func hasSegmentPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// ResolveRoute decides where a page request goes. role is ignored when
// authenticated is false.
func ResolveRoute(path string, role domain.Role, authenticated bool) GuardDecision {
	pass := GuardDecision{Path: path, Allowed: true}
	redirect := func(to string) GuardDecision {
		return GuardDecision{Path: path, Redirect: to}
	}

	if authRoutes[path] {
		if authenticated {
			return redirect("/")
		}
		return pass
	}
	if !Guarded(path) {
		return pass
	}
	if !authenticated {
		return redirect("/login")
	}
	if prefix, ok := rolePrefixes[role]; ok && hasSegmentPrefix(path, prefix) {
		return pass
	}
	return redirect("/")
}

// pageCaller reads the accessToken cookie the way a browser page load sends it.
func pageCaller(c *gin.Context, secret string) (domain.Role, bool) {
	token, err := c.Cookie(accessCookie)
	if err != nil || token == "" {
		return "", false
	}
	claims, err := utils.ValidateJWT(secret, token, utils.TokenTypeAccess)
	if err != nil {
		return "", false
	}
	setClaims(c, claims)
	return domain.Role(claims.Role), true
}

// WebGuardMiddleware redirects page loads the guard rejects.
func WebGuardMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, authenticated := pageCaller(c, secret)
		decision := ResolveRoute(c.Request.URL.Path, role, authenticated)
		if !decision.Allowed {
			c.Redirect(http.StatusFound, decision.Redirect)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetGuard answers GET /guard?path= with the decision for the caller's cookie
// or bearer token.
func (h *Handler) GetGuard(c *gin.Context) {
	path := c.Query("path")
	if path == "" || !strings.HasPrefix(path, "/") {
		respondFail(c, http.StatusBadRequest, "path must start with /")
		return
	}

	role, authenticated := domain.Role(""), false
	if token := tokenFromRequest(c); token != "" {
		if claims, err := utils.ValidateJWT(h.Config.JWTSecret, token, utils.TokenTypeAccess); err == nil {
			role, authenticated = domain.Role(claims.Role), true
		}
	}

	respond(c, http.StatusOK, "Route resolved", ResolveRoute(path, role, authenticated))
}
