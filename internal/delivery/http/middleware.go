package http

import (
	"net/http"

	"shacademy-backend/internal/domain"
	"shacademy-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// tokenFromRequest reads the Authorization header (raw or Bearer) and falls
// back to the accessToken cookie.
func tokenFromRequest(c *gin.Context) string {
	if token := utils.BearerToken(c.GetHeader("Authorization")); token != "" {
		return token
	}
	token, _ := c.Cookie(accessCookie)
	return token
}

// AuthMiddleware untuk API: token dari header Authorization atau cookie accessToken.
// With roles given, only those roles pass.
func AuthMiddleware(secret string, roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			respondFail(c, http.StatusUnauthorized, "Authorization token required")
			return
		}

		claims, err := utils.ValidateJWT(secret, tokenString, utils.TokenTypeAccess)
		if err != nil {
			respondFail(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		userRole := domain.Role(claims.Role)

		// Role Validation
		if len(roles) > 0 {
			roleAllowed := false
			for _, r := range roles {
				if r == userRole {
					roleAllowed = true
					break
				}
			}
			if !roleAllowed {
				respondFail(c, http.StatusForbidden, "Forbidden access")
				return
			}
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth sets the caller when a valid token is present and otherwise
// lets the request through anonymously.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := tokenFromRequest(c); tokenString != "" {
			if claims, err := utils.ValidateJWT(secret, tokenString, utils.TokenTypeAccess); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// Simpan user_id dan role ke context
func setClaims(c *gin.Context, claims *utils.Claims) {
	c.Set("user_id", claims.UserID)
	c.Set("role", claims.Role)
	c.Set("name", claims.Name)
}
