package http

import (
	"net/http"

	"shacademy-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// ========== ENROLLMENT HANDLERS ==========

func (h *Handler) Enroll(c *gin.Context) {
	viewer, ok := mustViewer(c)
	if !ok {
		return
	}

	var req struct {
		Student   domain.FlexID `json:"student"`
		Course    domain.FlexID `json:"course" binding:"required"`
		BatchName string        `json:"batchName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	enrollment, err := h.EnrollmentUsecase.Enroll(c.Request.Context(), viewer, uint(req.Student), uint(req.Course), req.BatchName)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Enrolled successfully", enrollment)
}

func (h *Handler) ListEnrollments(c *gin.Context) {
	var page domain.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondValidation(c, err)
		return
	}

	result, err := h.EnrollmentUsecase.ListAll(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Enrollments retrieved successfully", result)
}

func (h *Handler) ListStudentEnrollments(c *gin.Context) {
	viewer, ok := mustViewer(c)
	if !ok {
		return
	}
	studentID, ok := paramID(c, "studentId")
	if !ok {
		return
	}

	enrollments, err := h.EnrollmentUsecase.ListByStudent(c.Request.Context(), viewer, studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Enrollments retrieved successfully", enrollments)
}

func (h *Handler) ListCourseEnrollments(c *gin.Context) {
	courseID, ok := paramID(c, "courseId")
	if !ok {
		return
	}

	enrollments, err := h.EnrollmentUsecase.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Enrollments retrieved successfully", enrollments)
}

func (h *Handler) CompleteLesson(c *gin.Context) {
	viewer, ok := mustViewer(c)
	if !ok {
		return
	}
	enrollmentID, ok := paramID(c, "enrollId")
	if !ok {
		return
	}

	var req struct {
		LessonIndex *int `json:"lessonIndex" binding:"required,min=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	enrollment, err := h.EnrollmentUsecase.CompleteLesson(c.Request.Context(), viewer, enrollmentID, *req.LessonIndex)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Lesson marked as complete", enrollment)
}
