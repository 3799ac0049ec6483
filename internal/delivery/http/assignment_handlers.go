package http

import (
	"net/http"
	"time"

	"shacademy-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// ========== ASSIGNMENT HANDLERS ==========

type lessonQuery struct {
	CourseID    *uint `form:"courseId"`
	LessonIndex *int  `form:"lessonIndex" binding:"omitempty,min=0"`
}

func (h *Handler) CreateAssignment(c *gin.Context) {
	var req struct {
		Course       domain.FlexID `json:"course" binding:"required"`
		LessonIndex  *int          `json:"lessonIndex" binding:"required,min=0"`
		Title        string        `json:"title" binding:"required"`
		Instructions string        `json:"instructions"`
		DeadLine     time.Time     `json:"deadLine"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	assignment := domain.Assignment{
		CourseID:     uint(req.Course),
		LessonIndex:  *req.LessonIndex,
		Title:        req.Title,
		Instructions: req.Instructions,
		DeadLine:     req.DeadLine,
	}
	if err := h.AssignmentUsecase.CreateAssignment(c.Request.Context(), &assignment); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Assignment created successfully", assignment)
}

// GetLessonAssignment answers with data null when the lesson has no assignment.
func (h *Handler) GetLessonAssignment(c *gin.Context) {
	viewer, ok := mustViewer(c)
	if !ok {
		return
	}

	var q lessonQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondValidation(c, err)
		return
	}
	if q.CourseID == nil || q.LessonIndex == nil {
		respondFail(c, http.StatusBadRequest, "courseId and lessonIndex are required")
		return
	}

	assignment, err := h.AssignmentUsecase.GetForLesson(c.Request.Context(), viewer, *q.CourseID, *q.LessonIndex)
	if err != nil {
		respondError(c, err)
		return
	}
	if assignment == nil {
		respond(c, http.StatusOK, "No assignment for this lesson", nil)
		return
	}
	respond(c, http.StatusOK, "Assignment retrieved successfully", assignment)
}

func (h *Handler) ListAssignments(c *gin.Context) {
	var page domain.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondValidation(c, err)
		return
	}

	result, err := h.AssignmentUsecase.ListAll(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Assignments retrieved successfully", result)
}

func (h *Handler) SubmitAssignment(c *gin.Context) {
	viewer, ok := mustViewer(c)
	if !ok {
		return
	}
	assignmentID, ok := paramID(c, "assignmentId")
	if !ok {
		return
	}

	var input domain.SubmissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidation(c, err)
		return
	}

	submission, err := h.AssignmentUsecase.Submit(c.Request.Context(), viewer.ID, assignmentID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Assignment submitted successfully", submission)
}

func (h *Handler) GradeAssignment(c *gin.Context) {
	assignmentID, ok := paramID(c, "assignmentId")
	if !ok {
		return
	}

	var req struct {
		Student domain.FlexID `json:"student" binding:"required"`
		Score   *float64      `json:"score" binding:"required,min=0,max=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	submission, err := h.AssignmentUsecase.Grade(c.Request.Context(), assignmentID, uint(req.Student), *req.Score)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Submission graded successfully", submission)
}
