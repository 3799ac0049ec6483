package http

import "github.com/gin-gonic/gin"

// InitWebRouter mounts the page shells the front end loads. Each answers
// with the page name and the caller's navigation once the guard lets it in.
func InitWebRouter(router *gin.Engine, webHandler *WebHandler) {
	router.GET("/", OptionalPageAuth(webHandler.secret), webHandler.Home)

	web := router.Group("/")
	web.Use(WebGuardMiddleware(webHandler.secret))
	{
		web.GET("/login", webHandler.AuthPage)
		web.GET("/register", webHandler.AuthPage)
		web.GET("/admin/*page", webHandler.DashboardPage)
		web.GET("/student/*page", webHandler.DashboardPage)
	}
}
