package usecase

import (
	"context"
	"io"
	"time"

	"shacademy-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// ========== USER REPOSITORY ==========

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockUserRepo) GetByIDs(ctx context.Context, ids []uint) ([]domain.User, error) {
	args := m.Called(ctx, ids)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, int64, error) {
	args := m.Called(ctx, filter)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepo) SetBlocked(ctx context.Context, id uint, blocked bool) error {
	args := m.Called(ctx, id, blocked)
	return args.Error(0)
}

func (m *MockUserRepo) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepo) CountBlocked(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepo) MonthlySignups(ctx context.Context, since time.Time) ([]domain.MonthlyCount, error) {
	args := m.Called(ctx, since)
	counts, _ := args.Get(0).([]domain.MonthlyCount)
	return counts, args.Error(1)
}

// ========== COURSE REPOSITORY ==========

type MockCourseRepo struct {
	mock.Mock
}

func (m *MockCourseRepo) Create(ctx context.Context, course *domain.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepo) Update(ctx context.Context, course *domain.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCourseRepo) GetByID(ctx context.Context, id uint) (*domain.Course, error) {
	args := m.Called(ctx, id)
	course, _ := args.Get(0).(*domain.Course)
	return course, args.Error(1)
}

func (m *MockCourseRepo) GetByIDs(ctx context.Context, ids []uint) ([]domain.Course, error) {
	args := m.Called(ctx, ids)
	courses, _ := args.Get(0).([]domain.Course)
	return courses, args.Error(1)
}

func (m *MockCourseRepo) List(ctx context.Context, filter domain.CourseFilter) ([]domain.Course, int64, error) {
	args := m.Called(ctx, filter)
	courses, _ := args.Get(0).([]domain.Course)
	return courses, args.Get(1).(int64), args.Error(2)
}

func (m *MockCourseRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCourseRepo) CountInstructors(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCourseRepo) CategoryDistribution(ctx context.Context) ([]domain.CategoryCount, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]domain.CategoryCount)
	return rows, args.Error(1)
}

// ========== ENROLLMENT REPOSITORY ==========

type MockEnrollmentRepo struct {
	mock.Mock
}

func (m *MockEnrollmentRepo) Create(ctx context.Context, enrollment *domain.Enrollment) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

func (m *MockEnrollmentRepo) GetByID(ctx context.Context, id uint) (*domain.Enrollment, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*domain.Enrollment)
	return e, args.Error(1)
}

func (m *MockEnrollmentRepo) GetByStudentAndCourse(ctx context.Context, studentID, courseID uint) (*domain.Enrollment, error) {
	args := m.Called(ctx, studentID, courseID)
	e, _ := args.Get(0).(*domain.Enrollment)
	return e, args.Error(1)
}

func (m *MockEnrollmentRepo) GetByStudentID(ctx context.Context, studentID uint) ([]domain.Enrollment, error) {
	args := m.Called(ctx, studentID)
	list, _ := args.Get(0).([]domain.Enrollment)
	return list, args.Error(1)
}

func (m *MockEnrollmentRepo) GetByCourseID(ctx context.Context, courseID uint) ([]domain.Enrollment, error) {
	args := m.Called(ctx, courseID)
	list, _ := args.Get(0).([]domain.Enrollment)
	return list, args.Error(1)
}

func (m *MockEnrollmentRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.Enrollment, int64, error) {
	args := m.Called(ctx, page)
	list, _ := args.Get(0).([]domain.Enrollment)
	return list, args.Get(1).(int64), args.Error(2)
}

// UpdateLocked applies mutate to the enrollment registered under id, the way
// the real repository does inside its transaction.
func (m *MockEnrollmentRepo) UpdateLocked(ctx context.Context, id uint, mutate func(e *domain.Enrollment) error) (*domain.Enrollment, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*domain.Enrollment)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	if err := mutate(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (m *MockEnrollmentRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEnrollmentRepo) CountByCourseID(ctx context.Context, courseID uint) (int64, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEnrollmentRepo) MonthlyCounts(ctx context.Context, since time.Time) ([]domain.MonthlyCount, error) {
	args := m.Called(ctx, since)
	counts, _ := args.Get(0).([]domain.MonthlyCount)
	return counts, args.Error(1)
}

func (m *MockEnrollmentRepo) TopCourses(ctx context.Context, limit int) ([]domain.TopCourse, error) {
	args := m.Called(ctx, limit)
	rows, _ := args.Get(0).([]domain.TopCourse)
	return rows, args.Error(1)
}

func (m *MockEnrollmentRepo) Recent(ctx context.Context, limit int) ([]domain.Enrollment, error) {
	args := m.Called(ctx, limit)
	list, _ := args.Get(0).([]domain.Enrollment)
	return list, args.Error(1)
}

// ========== ASSIGNMENT REPOSITORY ==========

type MockAssignmentRepo struct {
	mock.Mock
}

func (m *MockAssignmentRepo) Create(ctx context.Context, assignment *domain.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepo) GetByID(ctx context.Context, id uint) (*domain.Assignment, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*domain.Assignment)
	return a, args.Error(1)
}

func (m *MockAssignmentRepo) GetByCourseAndLesson(ctx context.Context, courseID uint, lessonIndex int) (*domain.Assignment, error) {
	args := m.Called(ctx, courseID, lessonIndex)
	a, _ := args.Get(0).(*domain.Assignment)
	return a, args.Error(1)
}

func (m *MockAssignmentRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.Assignment, int64, error) {
	args := m.Called(ctx, page)
	list, _ := args.Get(0).([]domain.Assignment)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *MockAssignmentRepo) DeleteByCourseID(ctx context.Context, courseID uint) error {
	args := m.Called(ctx, courseID)
	return args.Error(0)
}

func (m *MockAssignmentRepo) GetSubmission(ctx context.Context, assignmentID, studentID uint) (*domain.Submission, error) {
	args := m.Called(ctx, assignmentID, studentID)
	s, _ := args.Get(0).(*domain.Submission)
	return s, args.Error(1)
}

func (m *MockAssignmentRepo) SaveSubmission(ctx context.Context, submission *domain.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockAssignmentRepo) UpdateSubmission(ctx context.Context, submission *domain.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

// ========== QUIZ REPOSITORY ==========

type MockQuizRepo struct {
	mock.Mock
}

func (m *MockQuizRepo) Create(ctx context.Context, quiz *domain.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepo) GetByID(ctx context.Context, id string) (*domain.Quiz, error) {
	args := m.Called(ctx, id)
	q, _ := args.Get(0).(*domain.Quiz)
	return q, args.Error(1)
}

func (m *MockQuizRepo) GetByCourseAndLesson(ctx context.Context, courseID uint, lessonIndex int) (*domain.Quiz, error) {
	args := m.Called(ctx, courseID, lessonIndex)
	q, _ := args.Get(0).(*domain.Quiz)
	return q, args.Error(1)
}

func (m *MockQuizRepo) GetLatestForCourses(ctx context.Context, courseIDs []uint) (*domain.Quiz, error) {
	args := m.Called(ctx, courseIDs)
	q, _ := args.Get(0).(*domain.Quiz)
	return q, args.Error(1)
}

func (m *MockQuizRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.Quiz, int64, error) {
	args := m.Called(ctx, page)
	list, _ := args.Get(0).([]domain.Quiz)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *MockQuizRepo) SaveResult(ctx context.Context, quizID string, result domain.QuizResult) error {
	args := m.Called(ctx, quizID, result)
	return args.Error(0)
}

func (m *MockQuizRepo) DeleteByCourseID(ctx context.Context, courseID uint) error {
	args := m.Called(ctx, courseID)
	return args.Error(0)
}

// ========== FILES, TOKENS, CACHE ==========

type MockFileRepo struct {
	mock.Mock
}

func (m *MockFileRepo) Upload(ctx context.Context, r io.Reader, filename, contentType string, size int64, uploadedBy uint) (*domain.FileInfo, error) {
	args := m.Called(ctx, r, filename, contentType, size, uploadedBy)
	info, _ := args.Get(0).(*domain.FileInfo)
	return info, args.Error(1)
}

func (m *MockFileRepo) Download(ctx context.Context, fileID string) (io.ReadCloser, *domain.FileInfo, error) {
	args := m.Called(ctx, fileID)
	rc, _ := args.Get(0).(io.ReadCloser)
	info, _ := args.Get(1).(*domain.FileInfo)
	return rc, info, args.Error(2)
}

func (m *MockFileRepo) Delete(ctx context.Context, fileID string) error {
	args := m.Called(ctx, fileID)
	return args.Error(0)
}

type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Save(ctx context.Context, jti string, userID uint, ttl time.Duration) error {
	args := m.Called(ctx, jti, userID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) Exists(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

func (m *MockTokenStore) Revoke(ctx context.Context, jti string) error {
	args := m.Called(ctx, jti)
	return args.Error(0)
}

// nopCache never hits and accepts every write.
type nopCache struct{}

func (nopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (nopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (nopCache) Delete(context.Context, ...string) error { return nil }
