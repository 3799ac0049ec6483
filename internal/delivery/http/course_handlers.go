package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"shacademy-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// ========== COURSE HANDLERS ==========

type courseRequest struct {
	Title       string           `json:"title" binding:"required"`
	Description string           `json:"description"`
	Price       domain.FlexFloat `json:"price" binding:"min=0"`
	Category    string           `json:"category"`
	Tags        []string         `json:"tags"`
	Syllabus    []string         `json:"syllabus"`
	Lessons     []domain.Lesson  `json:"lessons"`
	Batches     []domain.Batch   `json:"batches"`
	Instructor  domain.FlexID    `json:"instructor"`
}

// bindCourseForm reads a multipart course form. Array fields arrive as JSON
// encoded strings.
func bindCourseForm(c *gin.Context) (*courseRequest, error) {
	req := &courseRequest{
		Title:       strings.TrimSpace(c.PostForm("title")),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
	}
	if req.Title == "" {
		return nil, domain.ErrCourseTitleRequired
	}
	if raw := c.PostForm("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("price must be a number: %w", domain.ErrInvalidInput)
		}
		req.Price = domain.FlexFloat(price)
	}
	if raw := c.PostForm("instructor"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("instructor must be a user id: %w", domain.ErrInvalidInput)
		}
		req.Instructor = domain.FlexID(id)
	}

	fields := map[string]interface{}{
		"tags":     &req.Tags,
		"syllabus": &req.Syllabus,
		"lessons":  &req.Lessons,
		"batches":  &req.Batches,
	}
	for name, dest := range fields {
		raw := strings.TrimSpace(c.PostForm(name))
		if raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(raw), dest); err != nil {
			return nil, fmt.Errorf("%s must be a JSON array: %w", name, domain.ErrInvalidInput)
		}
	}
	return req, nil
}

func (h *Handler) ListCourses(c *gin.Context) {
	var filter domain.CourseFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondValidation(c, err)
		return
	}

	page, err := h.CourseUsecase.ListCourses(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Courses retrieved successfully", page)
}

func (h *Handler) GetCourse(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	course, err := h.CourseUsecase.GetCourse(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Course retrieved successfully", course)
}

func (h *Handler) CreateCourse(c *gin.Context) {
	viewer, ok := mustViewer(c)
	if !ok {
		return
	}

	var req *courseRequest
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		var err error
		if req, err = bindCourseForm(c); err != nil {
			respondError(c, err)
			return
		}
	} else {
		req = &courseRequest{}
		if err := c.ShouldBindJSON(req); err != nil {
			respondValidation(c, err)
			return
		}
	}

	thumbnail, err := h.uploadImage(c, "file", viewer.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	instructorID := uint(req.Instructor)
	if instructorID == 0 {
		instructorID = viewer.ID
	}
	course := domain.Course{
		Title:        req.Title,
		Description:  req.Description,
		Price:        float64(req.Price),
		Category:     req.Category,
		Tags:         req.Tags,
		Syllabus:     req.Syllabus,
		Lessons:      req.Lessons,
		Batches:      req.Batches,
		Thumbnail:    thumbnail,
		InstructorID: instructorID,
	}
	if err := h.CourseUsecase.CreateCourse(c.Request.Context(), &course); err != nil {
		h.discardUpload(c.Request.Context(), thumbnail)
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Course created successfully", course)
}

func (h *Handler) UpdateCourse(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var update domain.CourseUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondValidation(c, err)
		return
	}

	course, err := h.CourseUsecase.UpdateCourse(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Course updated successfully", course)
}

func (h *Handler) DeleteCourse(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.CourseUsecase.DeleteCourse(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Course deleted successfully", nil)
}
