package http_test

import (
	"context"
	"io"

	"shacademy-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) Register(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockAuthUsecase) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenPair), args.Error(1)
}

func (m *MockAuthUsecase) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

type MockUserUsecase struct {
	mock.Mock
}

func (m *MockUserUsecase) GetProfile(ctx context.Context, id uint) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUsecase) UpdateProfile(ctx context.Context, id uint, name, email string) (*domain.User, error) {
	args := m.Called(ctx, id, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUsecase) ListUsers(ctx context.Context, filter domain.UserFilter) (*domain.Page[domain.User], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.User]), args.Error(1)
}

func (m *MockUserUsecase) SetBlocked(ctx context.Context, actorID, targetID uint, blocked bool) (*domain.User, error) {
	args := m.Called(ctx, actorID, targetID, blocked)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockCourseUsecase struct {
	mock.Mock
}

func (m *MockCourseUsecase) CreateCourse(ctx context.Context, course *domain.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseUsecase) UpdateCourse(ctx context.Context, id uint, update domain.CourseUpdate) (*domain.Course, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockCourseUsecase) DeleteCourse(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCourseUsecase) GetCourse(ctx context.Context, id uint) (*domain.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockCourseUsecase) ListCourses(ctx context.Context, filter domain.CourseFilter) (*domain.Page[domain.Course], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.Course]), args.Error(1)
}

type MockEnrollmentUsecase struct {
	mock.Mock
}

func (m *MockEnrollmentUsecase) Enroll(ctx context.Context, viewer domain.Viewer, studentID, courseID uint, batchName string) (*domain.Enrollment, error) {
	args := m.Called(ctx, viewer, studentID, courseID, batchName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enrollment), args.Error(1)
}

func (m *MockEnrollmentUsecase) ListAll(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.Enrollment], error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.Enrollment]), args.Error(1)
}

func (m *MockEnrollmentUsecase) ListByStudent(ctx context.Context, viewer domain.Viewer, studentID uint) ([]domain.Enrollment, error) {
	args := m.Called(ctx, viewer, studentID)
	return args.Get(0).([]domain.Enrollment), args.Error(1)
}

func (m *MockEnrollmentUsecase) ListByCourse(ctx context.Context, courseID uint) ([]domain.Enrollment, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).([]domain.Enrollment), args.Error(1)
}

func (m *MockEnrollmentUsecase) CompleteLesson(ctx context.Context, viewer domain.Viewer, enrollmentID uint, lessonIndex int) (*domain.Enrollment, error) {
	args := m.Called(ctx, viewer, enrollmentID, lessonIndex)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enrollment), args.Error(1)
}

type MockAssignmentUsecase struct {
	mock.Mock
}

func (m *MockAssignmentUsecase) CreateAssignment(ctx context.Context, assignment *domain.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentUsecase) GetForLesson(ctx context.Context, viewer domain.Viewer, courseID uint, lessonIndex int) (*domain.Assignment, error) {
	args := m.Called(ctx, viewer, courseID, lessonIndex)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}

func (m *MockAssignmentUsecase) ListAll(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.Assignment], error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.Assignment]), args.Error(1)
}

func (m *MockAssignmentUsecase) Submit(ctx context.Context, studentID, assignmentID uint, input domain.SubmissionInput) (*domain.Submission, error) {
	args := m.Called(ctx, studentID, assignmentID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Submission), args.Error(1)
}

func (m *MockAssignmentUsecase) Grade(ctx context.Context, assignmentID, studentID uint, score float64) (*domain.Submission, error) {
	args := m.Called(ctx, assignmentID, studentID, score)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Submission), args.Error(1)
}

type MockQuizUsecase struct {
	mock.Mock
}

func (m *MockQuizUsecase) CreateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizUsecase) ListAll(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.Quiz], error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.Quiz]), args.Error(1)
}

func (m *MockQuizUsecase) GetForViewer(ctx context.Context, viewer domain.Viewer, courseID *uint, lessonIndex *int) (*domain.Quiz, error) {
	args := m.Called(ctx, viewer, courseID, lessonIndex)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

func (m *MockQuizUsecase) Submit(ctx context.Context, studentID uint, quizID string, answers []int) (*domain.QuizResult, error) {
	args := m.Called(ctx, studentID, quizID, answers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizResult), args.Error(1)
}

type MockDashboardUsecase struct {
	mock.Mock
}

func (m *MockDashboardUsecase) GetAdminStats(ctx context.Context) (*domain.AdminStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminStats), args.Error(1)
}

func (m *MockDashboardUsecase) GetEnrollmentTrends(ctx context.Context) ([]domain.TrendPoint, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.TrendPoint), args.Error(1)
}

func (m *MockDashboardUsecase) GetUserGrowth(ctx context.Context) ([]domain.TrendPoint, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.TrendPoint), args.Error(1)
}

type MockFileRepo struct {
	mock.Mock
}

func (m *MockFileRepo) Upload(ctx context.Context, r io.Reader, filename, contentType string, size int64, uploadedBy uint) (*domain.FileInfo, error) {
	args := m.Called(ctx, r, filename, contentType, size, uploadedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FileInfo), args.Error(1)
}

func (m *MockFileRepo) Download(ctx context.Context, id string) (io.ReadCloser, *domain.FileInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(*domain.FileInfo), args.Error(2)
}

func (m *MockFileRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
