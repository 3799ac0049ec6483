package domain

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/lib/pq"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/datatypes"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

type User struct {
	ID        uint      `json:"_id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      Role      `json:"role" gorm:"type:varchar(20);default:'student';index"`
	Avatar    string    `json:"avatar,omitempty"`
	IsBlocked bool      `json:"isBlocked" gorm:"default:false;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// Lesson is one entry of a course's ordered lesson list. Its position in
// that list is the lesson index used by enrollments, assignments and quizzes.
type Lesson struct {
	Title    string `json:"title"`
	VideoURL string `json:"videoUrl"`
}

type Batch struct {
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
}

type Course struct {
	ID           uint                        `json:"_id" gorm:"primaryKey"`
	Title        string                      `json:"title" gorm:"not null"`
	Description  string                      `json:"description" gorm:"type:text"`
	Price        float64                     `json:"price" gorm:"default:0"`
	Category     string                      `json:"category" gorm:"index"`
	Tags         pq.StringArray              `json:"tags" gorm:"type:text[]"`
	Syllabus     pq.StringArray              `json:"syllabus" gorm:"type:text[]"`
	Lessons      datatypes.JSONSlice[Lesson] `json:"lessons" gorm:"type:jsonb"`
	Batches      datatypes.JSONSlice[Batch]  `json:"batches" gorm:"type:jsonb"`
	Thumbnail    string                      `json:"thumbnail"`
	InstructorID uint                        `json:"instructorId" gorm:"not null;index"`
	CreatedAt    time.Time                   `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time                   `json:"updatedAt" gorm:"autoUpdateTime"`

	// Relations
	Instructor User `json:"instructor,omitempty" gorm:"foreignKey:InstructorID"`
}

// HasLesson reports whether index addresses one of the course's lessons.
func (c *Course) HasLesson(index int) bool {
	return index >= 0 && index < len(c.Lessons)
}

// Validate checks the nested lesson and batch lists.
func (c *Course) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return ErrCourseTitleRequired
	}
	if c.Price < 0 {
		return ErrNegativePrice
	}
	for _, l := range c.Lessons {
		if strings.TrimSpace(l.Title) == "" || strings.TrimSpace(l.VideoURL) == "" {
			return ErrInvalidLesson
		}
	}
	for _, b := range c.Batches {
		if strings.TrimSpace(b.Name) == "" {
			return ErrInvalidBatch
		}
	}
	return nil
}

// ResolveBatch returns the batch a new enrollment lands in. An empty name
// picks the first batch; a course without batches accepts any name.
func (c *Course) ResolveBatch(name string) (string, error) {
	if len(c.Batches) == 0 {
		return name, nil
	}
	if name == "" {
		return c.Batches[0].Name, nil
	}
	for _, b := range c.Batches {
		if b.Name == name {
			return name, nil
		}
	}
	return "", ErrInvalidBatch
}

type Enrollment struct {
	ID               uint          `json:"_id" gorm:"primaryKey"`
	StudentID        uint          `json:"studentId" gorm:"not null;uniqueIndex:idx_student_course"`
	CourseID         uint          `json:"courseId" gorm:"not null;uniqueIndex:idx_student_course;index"`
	BatchName        string        `json:"batchName"`
	CompletedLessons pq.Int64Array `json:"completedLessons" gorm:"type:bigint[]"`
	ProgressPercent  int           `json:"progressPercent" gorm:"default:0"`
	CreatedAt        time.Time     `json:"createdAt" gorm:"autoCreateTime;index"`
	UpdatedAt        time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`

	// Relations
	Student User   `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Course  Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

// MarkLessonComplete adds lessonIndex to the completed set and recomputes
// the progress percent against totalLessons.
func (e *Enrollment) MarkLessonComplete(lessonIndex, totalLessons int) error {
	if lessonIndex < 0 || lessonIndex >= totalLessons {
		return ErrLessonOutOfRange
	}
	found := false
	for _, idx := range e.CompletedLessons {
		if idx == int64(lessonIndex) {
			found = true
			break
		}
	}
	if !found {
		e.CompletedLessons = append(e.CompletedLessons, int64(lessonIndex))
		sort.Slice(e.CompletedLessons, func(i, j int) bool {
			return e.CompletedLessons[i] < e.CompletedLessons[j]
		})
	}
	e.RecalculateProgress(totalLessons)
	return nil
}

// RecalculateProgress ignores indices that no longer address a lesson, which
// happens when lessons are removed from a course after enrollment.
func (e *Enrollment) RecalculateProgress(totalLessons int) {
	completed := 0
	for _, idx := range e.CompletedLessons {
		if idx >= 0 && idx < int64(totalLessons) {
			completed++
		}
	}
	e.ProgressPercent = ProgressPercent(completed, totalLessons)
}

func ProgressPercent(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	p := int(math.Round(float64(completed) * 100 / float64(total)))
	if p > 100 {
		return 100
	}
	return p
}

type Assignment struct {
	ID           uint      `json:"_id" gorm:"primaryKey"`
	CourseID     uint      `json:"courseId" gorm:"not null;index:idx_assignment_lesson"`
	LessonIndex  int       `json:"lessonIndex" gorm:"not null;index:idx_assignment_lesson"`
	Title        string    `json:"title" gorm:"not null"`
	Instructions string    `json:"instructions" gorm:"type:text"`
	DeadLine     time.Time `json:"deadLine"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	// Relations
	Course      Course       `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Submissions []Submission `json:"submissions" gorm:"foreignKey:AssignmentID;constraint:OnDelete:CASCADE"`
}

func (a *Assignment) AcceptsSubmissionAt(t time.Time) bool {
	return a.DeadLine.IsZero() || !t.After(a.DeadLine)
}

// Submission - one student's answer to an assignment
type Submission struct {
	ID           uint       `json:"_id" gorm:"primaryKey"`
	AssignmentID uint       `json:"assignmentId" gorm:"not null;uniqueIndex:idx_assignment_student"`
	StudentID    uint       `json:"studentId" gorm:"not null;uniqueIndex:idx_assignment_student"`
	AnswerText   string     `json:"answerText,omitempty" gorm:"type:text"`
	AnswerLink   string     `json:"answerLink,omitempty"`
	Score        *float64   `json:"score,omitempty"`
	SubmittedAt  time.Time  `json:"submittedAt"`
	GradedAt     *time.Time `json:"gradedAt,omitempty"`

	// Relations
	Student User `json:"student,omitempty" gorm:"foreignKey:StudentID"`
}

// ========== MONGODB MODELS ==========

type Question struct {
	Question     string   `json:"question" bson:"question" binding:"required"`
	Options      []string `json:"options" bson:"options" binding:"required,min=2,dive,required"`
	CorrectIndex *int     `json:"correctIndex,omitempty" bson:"correct_index" binding:"required,min=0"`
}

type QuizResult struct {
	StudentID   uint      `json:"studentId" bson:"student_id"`
	StudentName string    `json:"studentName" bson:"student_name"`
	Score       int       `json:"score" bson:"score"`
	Total       int       `json:"total" bson:"total"`
	SubmittedAt time.Time `json:"submittedAt" bson:"submitted_at"`
}

// CourseRef is the slice of a course embedded in quiz responses.
type CourseRef struct {
	ID    uint   `json:"_id"`
	Title string `json:"title"`
}

// Quiz - stored in MongoDB because questions and results are nested lists
type Quiz struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	CourseID    uint               `json:"courseId" bson:"course_id"`
	LessonIndex int                `json:"lessonIndex" bson:"lesson_index"`
	Questions   []Question         `json:"questions" bson:"questions"`
	Results     []QuizResult       `json:"results" bson:"results"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`

	Course *CourseRef `json:"course,omitempty" bson:"-"`
}

func (q *Quiz) Validate() error {
	if len(q.Questions) == 0 {
		return ErrInvalidQuestion
	}
	for _, question := range q.Questions {
		if strings.TrimSpace(question.Question) == "" || len(question.Options) < 2 || question.CorrectIndex == nil {
			return ErrInvalidQuestion
		}
		if *question.CorrectIndex < 0 || *question.CorrectIndex >= len(question.Options) {
			return ErrInvalidQuestion
		}
	}
	return nil
}

// Score counts the answers matching each question's correct option.
func (q *Quiz) Score(answers []int) (int, error) {
	if len(answers) != len(q.Questions) {
		return 0, ErrAnswerCount
	}
	score := 0
	for i, question := range q.Questions {
		if question.CorrectIndex != nil && answers[i] == *question.CorrectIndex {
			score++
		}
	}
	return score, nil
}

// ForStudent strips the answer key and every result but the student's own.
func (q *Quiz) ForStudent(studentID uint) *Quiz {
	out := *q
	out.Questions = make([]Question, len(q.Questions))
	for i, question := range q.Questions {
		question.CorrectIndex = nil
		out.Questions[i] = question
	}
	out.Results = []QuizResult{}
	for _, r := range q.Results {
		if r.StudentID == studentID {
			out.Results = append(out.Results, r)
		}
	}
	return &out
}

// ========== RESPONSE DTOs ==========

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Viewer is the authenticated caller of a usecase.
type Viewer struct {
	ID   uint
	Role Role
}

func (v Viewer) IsAdmin() bool {
	return v.Role == RoleAdmin
}

type TrendPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// MonthlyCount is one row of a per-month aggregate.
type MonthlyCount struct {
	Month time.Time
	Count int64
}

type TopCourse struct {
	CourseID        uint   `json:"courseId"`
	Title           string `json:"title"`
	EnrollmentCount int64  `json:"enrollmentCount"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type RecentEnrollment struct {
	ID          uint      `json:"_id"`
	StudentName string    `json:"studentName"`
	CourseName  string    `json:"courseName"`
	BatchName   string    `json:"batchName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AdminStats - payload of the admin dashboard
type AdminStats struct {
	TotalStudents        int64              `json:"totalStudents"`
	TotalCourses         int64              `json:"totalCourses"`
	TotalEnrollments     int64              `json:"totalEnrollments"`
	TotalInstructors     int64              `json:"totalInstructors"`
	BlockedUsers         int64              `json:"blockedUsers"`
	EnrollmentTrends     []TrendPoint       `json:"enrollmentTrends"`
	TopCourses           []TopCourse        `json:"topCourses"`
	CategoryDistribution []CategoryCount    `json:"categoryDistribution"`
	RecentEnrollments    []RecentEnrollment `json:"recentEnrollments"`
}

// FileInfo describes a stored upload.
type FileInfo struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	UploadDate  time.Time `json:"uploadDate"`
	UploadedBy  uint      `json:"uploadedBy"`
}
