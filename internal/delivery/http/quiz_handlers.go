package http

import (
	"net/http"

	"shacademy-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// ========== QUIZ HANDLERS ==========

func (h *Handler) CreateQuiz(c *gin.Context) {
	var req struct {
		Course      domain.FlexID     `json:"course" binding:"required"`
		LessonIndex *int              `json:"lessonIndex" binding:"required,min=0"`
		Questions   []domain.Question `json:"questions" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	quiz := domain.Quiz{
		CourseID:    uint(req.Course),
		LessonIndex: *req.LessonIndex,
		Questions:   req.Questions,
	}
	if err := h.QuizUsecase.CreateQuiz(c.Request.Context(), &quiz); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Quiz created successfully", quiz)
}

func (h *Handler) ListQuizzes(c *gin.Context) {
	var page domain.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondValidation(c, err)
		return
	}

	result, err := h.QuizUsecase.ListAll(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Quizzes retrieved successfully", result)
}

func (h *Handler) GetQuiz(c *gin.Context) {
	viewer, ok := mustViewer(c)
	if !ok {
		return
	}

	var q lessonQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondValidation(c, err)
		return
	}

	quiz, err := h.QuizUsecase.GetForViewer(c.Request.Context(), viewer, q.CourseID, q.LessonIndex)
	if err != nil {
		respondError(c, err)
		return
	}
	if quiz == nil {
		respond(c, http.StatusOK, "No quiz found", nil)
		return
	}
	respond(c, http.StatusOK, "Quiz retrieved successfully", quiz)
}

func (h *Handler) SubmitQuiz(c *gin.Context) {
	viewer, ok := mustViewer(c)
	if !ok {
		return
	}

	var req struct {
		Answers []int `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	result, err := h.QuizUsecase.Submit(c.Request.Context(), viewer.ID, c.Param("quizId"), req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Quiz submitted successfully", result)
}

// ========== ADMIN STATISTICS ==========

func (h *Handler) GetAdminStats(c *gin.Context) {
	stats, err := h.DashboardUsecase.GetAdminStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Admin stats retrieved successfully", stats)
}

func (h *Handler) GetEnrollmentTrends(c *gin.Context) {
	series, err := h.DashboardUsecase.GetEnrollmentTrends(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Enrollment trends retrieved successfully", series)
}

func (h *Handler) GetUserGrowth(c *gin.Context) {
	series, err := h.DashboardUsecase.GetUserGrowth(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "User growth retrieved successfully", series)
}
