package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shacademy-backend/internal/domain"
	"shacademy-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	accessCookie  = "accessToken"
	refreshCookie = "refreshToken"
	filesPrefix   = "/files/"
)

type HandlerConfig struct {
	JWTSecret        string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration
	AllowAdminSignup bool
}

type Handler struct {
	AuthUsecase       domain.AuthUsecase
	UserUsecase       domain.UserUsecase
	CourseUsecase     domain.CourseUsecase
	EnrollmentUsecase domain.EnrollmentUsecase
	AssignmentUsecase domain.AssignmentUsecase
	QuizUsecase       domain.QuizUsecase
	DashboardUsecase  domain.DashboardUsecase
	Files             domain.FileRepository
	Config            HandlerConfig
}

func NewHandler(
	au domain.AuthUsecase,
	uu domain.UserUsecase,
	cu domain.CourseUsecase,
	eu domain.EnrollmentUsecase,
	asu domain.AssignmentUsecase,
	qu domain.QuizUsecase,
	du domain.DashboardUsecase,
	files domain.FileRepository,
	cfg HandlerConfig,
) *Handler {
	return &Handler{
		AuthUsecase:       au,
		UserUsecase:       uu,
		CourseUsecase:     cu,
		EnrollmentUsecase: eu,
		AssignmentUsecase: asu,
		QuizUsecase:       qu,
		DashboardUsecase:  du,
		Files:             files,
		Config:            cfg,
	}
}

// ========== UTILITY FUNCTIONS ==========

func getUserID(c *gin.Context) (uint, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0, errors.New("user ID not found in token")
	}
	return userID.(uint), nil
}

func getUserRole(c *gin.Context) (domain.Role, error) {
	role, exists := c.Get("role")
	if !exists {
		return "", errors.New("role not found in token")
	}
	return domain.Role(role.(string)), nil
}

// getViewer returns the authenticated caller; ok is false for anonymous requests.
func getViewer(c *gin.Context) (domain.Viewer, bool) {
	id, err := getUserID(c)
	if err != nil {
		return domain.Viewer{}, false
	}
	role, _ := getUserRole(c)
	return domain.Viewer{ID: id, Role: role}, true
}

func mustViewer(c *gin.Context) (domain.Viewer, bool) {
	viewer, ok := getViewer(c)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
	}
	return viewer, ok
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondFail(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// uploadImage stores the multipart file under field, returning its public
// path or "" when the request carries no file.
func (h *Handler) uploadImage(c *gin.Context, field string, uploadedBy uint) (string, error) {
	file, header, err := utils.FormFile(c, field)
	if err != nil {
		return "", err
	}
	if file == nil {
		return "", nil
	}
	defer file.Close()

	info, err := h.Files.Upload(c.Request.Context(), file, header.Filename, header.Header.Get("Content-Type"), header.Size, uploadedBy)
	if err != nil {
		return "", err
	}
	return filesPrefix + info.ID, nil
}

// discardUpload removes a stored upload once the write it belonged to failed.
func (h *Handler) discardUpload(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := h.Files.Delete(ctx, strings.TrimPrefix(path, filesPrefix)); err != nil {
		log.Printf("Warning: failed to remove upload %s: %v", path, err)
	}
}

func (h *Handler) setAuthCookies(c *gin.Context, access, refresh string) {
	if access != "" {
		c.SetCookie(accessCookie, access, int(h.Config.AccessTTL.Seconds()), "/", "", false, false)
	}
	if refresh != "" {
		c.SetCookie(refreshCookie, refresh, int(h.Config.RefreshTTL.Seconds()), "/", "", false, true)
	}
}

// ========== AUTH HANDLERS ==========

type registerRequest struct {
	Name     string      `json:"name" form:"name" binding:"required,min=2"`
	Email    string      `json:"email" form:"email" binding:"required,email"`
	Password string      `json:"password" form:"password" binding:"required,min=4"`
	Role     domain.Role `json:"role" form:"role" binding:"omitempty,oneof=student admin"`
}

// bindRegister accepts JSON, plain form fields, or a multipart form whose
// "data" field holds the JSON payload next to the avatar file.
func bindRegister(c *gin.Context, req *registerRequest) error {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if raw := c.PostForm("data"); raw != "" {
			if err := json.Unmarshal([]byte(raw), req); err != nil {
				return err
			}
			return binding.Validator.ValidateStruct(req)
		}
	}
	return c.ShouldBind(req)
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := bindRegister(c, &req); err != nil {
		respondValidation(c, err)
		return
	}

	if req.Role == domain.RoleAdmin && !h.Config.AllowAdminSignup {
		if viewer, ok := getViewer(c); !ok || !viewer.IsAdmin() {
			respondError(c, domain.ErrAdminRequired)
			return
		}
	}

	avatar, err := h.uploadImage(c, "file", 0)
	if err != nil {
		respondError(c, err)
		return
	}

	user := domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Avatar:   avatar,
	}
	if err := h.AuthUsecase.Register(c.Request.Context(), &user); err != nil {
		h.discardUpload(c.Request.Context(), avatar)
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "User registered successfully", user)
}

func (h *Handler) Login(c *gin.Context) {
	var creds struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&creds); err != nil {
		respondValidation(c, err)
		return
	}

	pair, err := h.AuthUsecase.Login(c.Request.Context(), creds.Email, creds.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setAuthCookies(c, pair.AccessToken, pair.RefreshToken)
	respond(c, http.StatusOK, "User logged in successfully", pair)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// refreshTokenFrom reads the token from the JSON body, falling back to the cookie.
func refreshTokenFrom(c *gin.Context) string {
	var req refreshRequest
	_ = c.ShouldBindJSON(&req)
	if req.RefreshToken != "" {
		return req.RefreshToken
	}
	token, _ := c.Cookie(refreshCookie)
	return token
}

func (h *Handler) RefreshToken(c *gin.Context) {
	token := refreshTokenFrom(c)
	if token == "" {
		respondFail(c, http.StatusUnauthorized, "Refresh token required")
		return
	}

	access, err := h.AuthUsecase.Refresh(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setAuthCookies(c, access, "")
	respond(c, http.StatusOK, "Access token refreshed", gin.H{"accessToken": access})
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.AuthUsecase.Logout(c.Request.Context(), refreshTokenFrom(c)); err != nil {
		respondError(c, err)
		return
	}
	c.SetCookie(accessCookie, "", -1, "/", "", false, false)
	c.SetCookie(refreshCookie, "", -1, "/", "", false, true)
	respond(c, http.StatusOK, "Logged out", nil)
}

// ========== USER HANDLERS ==========

func (h *Handler) ListUsers(c *gin.Context) {
	var filter domain.UserFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondValidation(c, err)
		return
	}

	page, err := h.UserUsecase.ListUsers(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Users retrieved successfully", page)
}

func (h *Handler) GetSingleUser(c *gin.Context) {
	viewer, ok := mustViewer(c)
	if !ok {
		return
	}

	user, err := h.UserUsecase.GetProfile(c.Request.Context(), viewer.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "User retrieved successfully", user)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	viewer, ok := mustViewer(c)
	if !ok {
		return
	}

	var req struct {
		Name  string `json:"name" binding:"required,min=2"`
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	user, err := h.UserUsecase.UpdateProfile(c.Request.Context(), viewer.ID, req.Name, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "User updated successfully", user)
}

func (h *Handler) BlockUser(c *gin.Context) {
	h.setBlocked(c, true)
}

func (h *Handler) UnblockUser(c *gin.Context) {
	h.setBlocked(c, false)
}

func (h *Handler) setBlocked(c *gin.Context, blocked bool) {
	viewer, ok := mustViewer(c)
	if !ok {
		return
	}
	targetID, ok := paramID(c, "userId")
	if !ok {
		return
	}

	user, err := h.UserUsecase.SetBlocked(c.Request.Context(), viewer.ID, targetID, blocked)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "User unblocked successfully"
	if blocked {
		message = "User blocked successfully"
	}
	respond(c, http.StatusOK, message, user)
}

// ========== NAVIGATION ==========

func (h *Handler) GetNavigation(c *gin.Context) {
	viewer, ok := mustViewer(c)
	if !ok {
		return
	}
	items := domain.NavigationFor(viewer.Role)
	if items == nil {
		items = []domain.NavItem{}
	}
	respond(c, http.StatusOK, "Navigation retrieved successfully", items)
}
