package http

import (
	"net/http"

	"shacademy-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func InitRouter(handler *Handler) *gin.Engine {
	setupValidator()

	r := gin.Default()
	r.Use(MetricsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// GridFS uploads, stored on records as /files/<id>
	r.GET("/files/:id", handler.StreamFile)

	secret := handler.Config.JWTSecret
	authenticated := AuthMiddleware(secret)
	adminOnly := AuthMiddleware(secret, domain.RoleAdmin)

	api := r.Group("/api/v1")
	api.GET("/files/:id", handler.StreamFile)
	api.GET("/guard", handler.GetGuard)
	api.GET("/navigation", authenticated, handler.GetNavigation)

	// Public Routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", OptionalAuth(secret), handler.Register)
		auth.POST("/login", handler.Login)
		auth.POST("/refresh-token", handler.RefreshToken)
		auth.POST("/logout", handler.Logout)
	}

	course := api.Group("/course")
	{
		course.GET("", handler.ListCourses)
		course.GET("/:id", handler.GetCourse)
		course.POST("/create", adminOnly, handler.CreateCourse)
		course.PUT("/update/:id", adminOnly, handler.UpdateCourse)
		course.DELETE("/delete/:id", adminOnly, handler.DeleteCourse)
	}

	enrollment := api.Group("/enrollment")
	enrollment.Use(authenticated)
	{
		enrollment.POST("/enroll", handler.Enroll)
		enrollment.GET("/all", adminOnly, handler.ListEnrollments)
		enrollment.GET("/student/:studentId", handler.ListStudentEnrollments)
		enrollment.GET("/course/:courseId", adminOnly, handler.ListCourseEnrollments)
		enrollment.POST("/complete/:enrollId", handler.CompleteLesson)
	}

	assignment := api.Group("/assignment")
	assignment.Use(authenticated)
	{
		assignment.POST("/create", adminOnly, handler.CreateAssignment)
		assignment.GET("/create", handler.GetLessonAssignment)
		assignment.GET("", handler.GetLessonAssignment)
		assignment.GET("/all", adminOnly, handler.ListAssignments)
		assignment.POST("/submit/:assignmentId", handler.SubmitAssignment)
		assignment.POST("/grade/:assignmentId", adminOnly, handler.GradeAssignment)
	}

	quiz := api.Group("/quiz")
	quiz.Use(authenticated)
	{
		quiz.POST("/create", adminOnly, handler.CreateQuiz)
		quiz.GET("/all", adminOnly, handler.ListQuizzes)
		quiz.GET("", handler.GetQuiz)
		quiz.POST("/submit/:quizId", handler.SubmitQuiz)
	}

	user := api.Group("/user")
	user.Use(authenticated)
	{
		user.GET("", adminOnly, handler.ListUsers)
		user.GET("/get-single", handler.GetSingleUser)
		user.PUT("/update", handler.UpdateUser)
		user.POST("/block/userId/:userId", adminOnly, handler.BlockUser)
		user.POST("/un-block/userId/:userId", adminOnly, handler.UnblockUser)
	}

	// Admin Only
	admin := api.Group("/admin")
	admin.Use(adminOnly)
	{
		admin.GET("/state", handler.GetAdminStats)
		admin.GET("/enroll", handler.GetEnrollmentTrends)
		admin.GET("/user", handler.GetUserGrowth)
	}

	return r
}
