package domain

import (
	"context"
	"io"
	"time"
)

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByIDs(ctx context.Context, ids []uint) ([]User, error)
	Update(ctx context.Context, user *User) error
	List(ctx context.Context, filter UserFilter) ([]User, int64, error)
	SetBlocked(ctx context.Context, id uint, blocked bool) error
	CountByRole(ctx context.Context, role Role) (int64, error)
	CountBlocked(ctx context.Context) (int64, error)
	MonthlySignups(ctx context.Context, since time.Time) ([]MonthlyCount, error)
}

type CourseRepository interface {
	Create(ctx context.Context, course *Course) error
	Update(ctx context.Context, course *Course) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Course, error)
	GetByIDs(ctx context.Context, ids []uint) ([]Course, error)
	List(ctx context.Context, filter CourseFilter) ([]Course, int64, error)
	Count(ctx context.Context) (int64, error)
	CountInstructors(ctx context.Context) (int64, error)
	CategoryDistribution(ctx context.Context) ([]CategoryCount, error)
}

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *Enrollment) error
	GetByID(ctx context.Context, id uint) (*Enrollment, error)
	GetByStudentAndCourse(ctx context.Context, studentID, courseID uint) (*Enrollment, error)
	GetByStudentID(ctx context.Context, studentID uint) ([]Enrollment, error)
	GetByCourseID(ctx context.Context, courseID uint) ([]Enrollment, error)
	List(ctx context.Context, page PageRequest) ([]Enrollment, int64, error)
	// UpdateLocked loads the enrollment (course preloaded) under a row lock,
	// applies mutate and saves the result in one transaction.
	UpdateLocked(ctx context.Context, id uint, mutate func(e *Enrollment) error) (*Enrollment, error)
	Count(ctx context.Context) (int64, error)
	CountByCourseID(ctx context.Context, courseID uint) (int64, error)
	MonthlyCounts(ctx context.Context, since time.Time) ([]MonthlyCount, error)
	TopCourses(ctx context.Context, limit int) ([]TopCourse, error)
	Recent(ctx context.Context, limit int) ([]Enrollment, error)
}

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *Assignment) error
	GetByID(ctx context.Context, id uint) (*Assignment, error)
	GetByCourseAndLesson(ctx context.Context, courseID uint, lessonIndex int) (*Assignment, error)
	List(ctx context.Context, page PageRequest) ([]Assignment, int64, error)
	DeleteByCourseID(ctx context.Context, courseID uint) error
	GetSubmission(ctx context.Context, assignmentID, studentID uint) (*Submission, error)
	// SaveSubmission inserts or replaces the student's submission.
	SaveSubmission(ctx context.Context, submission *Submission) error
	UpdateSubmission(ctx context.Context, submission *Submission) error
}

type QuizRepository interface { // MongoDB
	Create(ctx context.Context, quiz *Quiz) error
	GetByID(ctx context.Context, id string) (*Quiz, error)
	GetByCourseAndLesson(ctx context.Context, courseID uint, lessonIndex int) (*Quiz, error)
	GetLatestForCourses(ctx context.Context, courseIDs []uint) (*Quiz, error)
	List(ctx context.Context, page PageRequest) ([]Quiz, int64, error)
	// SaveResult replaces any earlier result of the same student.
	SaveResult(ctx context.Context, quizID string, result QuizResult) error
	DeleteByCourseID(ctx context.Context, courseID uint) error
}

type FileRepository interface { // GridFS
	Upload(ctx context.Context, r io.Reader, filename, contentType string, size int64, uploadedBy uint) (*FileInfo, error)
	Download(ctx context.Context, fileID string) (io.ReadCloser, *FileInfo, error)
	Delete(ctx context.Context, fileID string) error
}

type TokenStore interface { // Redis
	Save(ctx context.Context, jti string, userID uint, ttl time.Duration) error
	Exists(ctx context.Context, jti string) (bool, error)
	Revoke(ctx context.Context, jti string) error
}

type StatsCache interface { // Redis
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type AuthUsecase interface {
	Register(ctx context.Context, user *User) error
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
}

type UserUsecase interface {
	GetProfile(ctx context.Context, id uint) (*User, error)
	UpdateProfile(ctx context.Context, id uint, name, email string) (*User, error)
	ListUsers(ctx context.Context, filter UserFilter) (*Page[User], error)
	SetBlocked(ctx context.Context, actorID, targetID uint, blocked bool) (*User, error)
}

type CourseUpdate struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Price       *FlexFloat `json:"price" binding:"omitempty,min=0"`
	Category    *string    `json:"category"`
	Tags        *[]string  `json:"tags"`
	Syllabus    *[]string  `json:"syllabus"`
	Lessons     *[]Lesson  `json:"lessons"`
	Batches     *[]Batch   `json:"batches"`
}

type CourseUsecase interface {
	CreateCourse(ctx context.Context, course *Course) error
	UpdateCourse(ctx context.Context, id uint, update CourseUpdate) (*Course, error)
	DeleteCourse(ctx context.Context, id uint) error
	GetCourse(ctx context.Context, id uint) (*Course, error)
	ListCourses(ctx context.Context, filter CourseFilter) (*Page[Course], error)
}

type EnrollmentUsecase interface {
	Enroll(ctx context.Context, viewer Viewer, studentID, courseID uint, batchName string) (*Enrollment, error)
	ListAll(ctx context.Context, page PageRequest) (*Page[Enrollment], error)
	ListByStudent(ctx context.Context, viewer Viewer, studentID uint) ([]Enrollment, error)
	ListByCourse(ctx context.Context, courseID uint) ([]Enrollment, error)
	CompleteLesson(ctx context.Context, viewer Viewer, enrollmentID uint, lessonIndex int) (*Enrollment, error)
}

type SubmissionInput struct {
	AnswerText string `json:"answerText"`
	AnswerLink string `json:"answerLink" binding:"omitempty,url"`
}

type AssignmentUsecase interface {
	CreateAssignment(ctx context.Context, assignment *Assignment) error
	GetForLesson(ctx context.Context, viewer Viewer, courseID uint, lessonIndex int) (*Assignment, error)
	ListAll(ctx context.Context, page PageRequest) (*Page[Assignment], error)
	Submit(ctx context.Context, studentID, assignmentID uint, input SubmissionInput) (*Submission, error)
	Grade(ctx context.Context, assignmentID, studentID uint, score float64) (*Submission, error)
}

type QuizUsecase interface {
	CreateQuiz(ctx context.Context, quiz *Quiz) error
	ListAll(ctx context.Context, page PageRequest) (*Page[Quiz], error)
	GetForViewer(ctx context.Context, viewer Viewer, courseID *uint, lessonIndex *int) (*Quiz, error)
	Submit(ctx context.Context, studentID uint, quizID string, answers []int) (*QuizResult, error)
}

type DashboardUsecase interface {
	GetAdminStats(ctx context.Context) (*AdminStats, error)
	GetEnrollmentTrends(ctx context.Context) ([]TrendPoint, error)
	GetUserGrowth(ctx context.Context) ([]TrendPoint, error)
}
