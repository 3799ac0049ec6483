package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	delivery "shacademy-backend/internal/delivery/http"
	"shacademy-backend/internal/domain"
	"shacademy-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type testServer struct {
	router      *gin.Engine
	auth        *MockAuthUsecase
	users       *MockUserUsecase
	courses     *MockCourseUsecase
	enrollments *MockEnrollmentUsecase
	assignments *MockAssignmentUsecase
	quizzes     *MockQuizUsecase
	dashboard   *MockDashboardUsecase
	files       *MockFileRepo
}

func newTestServer(allowAdminSignup bool) *testServer {
	gin.SetMode(gin.TestMode)

	s := &testServer{
		auth:        new(MockAuthUsecase),
		users:       new(MockUserUsecase),
		courses:     new(MockCourseUsecase),
		enrollments: new(MockEnrollmentUsecase),
		assignments: new(MockAssignmentUsecase),
		quizzes:     new(MockQuizUsecase),
		dashboard:   new(MockDashboardUsecase),
		files:       new(MockFileRepo),
	}
	handler := delivery.NewHandler(s.auth, s.users, s.courses, s.enrollments, s.assignments, s.quizzes, s.dashboard, s.files,
		delivery.HandlerConfig{
			JWTSecret:        testSecret,
			AccessTTL:        time.Hour,
			RefreshTTL:       24 * time.Hour,
			AllowAdminSignup: allowAdminSignup,
		})
	s.router = delivery.InitRouter(handler)
	delivery.InitWebRouter(s.router, delivery.NewWebHandler(testSecret))
	return s
}

func accessToken(t *testing.T, id uint, role domain.Role) string {
	t.Helper()
	token, err := utils.GenerateAccessToken(testSecret, time.Hour, id, "Test User", "test@shacademy.io", string(role))
	require.NoError(t, err)
	return token
}

func newRequest(method, path, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func withBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func (s *testServer) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
