package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"shacademy-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ========== USER REPOSITORY ==========

type userRepo struct {
	db *gorm.DB
}

// paginate applies offset and limit unless the request is unbounded.
func paginate(page domain.PageRequest) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !page.Bounded() {
			return db
		}
		return db.Offset(page.Offset()).Limit(page.Limit)
	}
}

func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepo{db}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByIDs(ctx context.Context, ids []uint) ([]domain.User, error) {
	var users []domain.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Save(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *userRepo) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, int64, error) {
	var users []domain.User
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.User{})
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Order("id ASC").
		Scopes(paginate(filter.PageRequest)).
		Find(&users).Error
	return users, total, err
}

func (r *userRepo) SetBlocked(ctx context.Context, id uint, blocked bool) error {
	res := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Update("is_blocked", blocked)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepo) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

func (r *userRepo) CountBlocked(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("is_blocked = ?", true).Count(&count).Error
	return count, err
}

func (r *userRepo) MonthlySignups(ctx context.Context, since time.Time) ([]domain.MonthlyCount, error) {
	return monthlyCounts(r.db.WithContext(ctx).Model(&domain.User{}), since)
}

// ========== COURSE REPOSITORY ==========

type courseRepo struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) domain.CourseRepository {
	return &courseRepo{db}
}

func (r *courseRepo) Create(ctx context.Context, course *domain.Course) error {
	return r.db.WithContext(ctx).Omit("Instructor").Create(course).Error
}

func (r *courseRepo) Update(ctx context.Context, course *domain.Course) error {
	return r.db.WithContext(ctx).Omit("Instructor").Save(course).Error
}

func (r *courseRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Course{}, id).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id uint) (*domain.Course, error) {
	var course domain.Course
	err := r.db.WithContext(ctx).Preload("Instructor").First(&course, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) GetByIDs(ctx context.Context, ids []uint) ([]domain.Course, error) {
	var courses []domain.Course
	if len(ids) == 0 {
		return courses, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&courses).Error
	return courses, err
}

func (r *courseRepo) List(ctx context.Context, filter domain.CourseFilter) ([]domain.Course, int64, error) {
	var courses []domain.Course
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Course{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		searchPattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("LOWER(category) = LOWER(?)", category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Sort {
	case domain.SortPriceAsc:
		query = query.Order("price ASC")
	case domain.SortPriceDesc:
		query = query.Order("price DESC")
	case domain.SortOldest:
		query = query.Order("created_at ASC")
	default:
		query = query.Order("created_at DESC")
	}

	err := query.Order("id ASC").
		Preload("Instructor").
		Scopes(paginate(filter.PageRequest)).
		Find(&courses).Error
	return courses, total, err
}

func (r *courseRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Course{}).Count(&count).Error
	return count, err
}

func (r *courseRepo) CountInstructors(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Course{}).Distinct("instructor_id").Count(&count).Error
	return count, err
}

func (r *courseRepo) CategoryDistribution(ctx context.Context) ([]domain.CategoryCount, error) {
	var rows []domain.CategoryCount
	err := r.db.WithContext(ctx).Model(&domain.Course{}).
		Select("COALESCE(NULLIF(category, ''), 'Uncategorized') AS category, COUNT(*) AS count").
		Group("1").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

// ========== ENROLLMENT REPOSITORY ==========

type enrollmentRepo struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) domain.EnrollmentRepository {
	return &enrollmentRepo{db}
}

func (r *enrollmentRepo) Create(ctx context.Context, enrollment *domain.Enrollment) error {
	err := r.db.WithContext(ctx).Omit("Student", "Course").Create(enrollment).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrAlreadyEnrolled
	}
	return err
}

func (r *enrollmentRepo) GetByID(ctx context.Context, id uint) (*domain.Enrollment, error) {
	var enrollment domain.Enrollment
	err := r.db.WithContext(ctx).Preload("Course").First(&enrollment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepo) GetByStudentAndCourse(ctx context.Context, studentID, courseID uint) (*domain.Enrollment, error) {
	var enrollment domain.Enrollment
	err := r.db.WithContext(ctx).Where("student_id = ? AND course_id = ?", studentID, courseID).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepo) GetByStudentID(ctx context.Context, studentID uint) ([]domain.Enrollment, error) {
	var enrollments []domain.Enrollment
	err := r.db.WithContext(ctx).Where("student_id = ?", studentID).
		Preload("Course").Preload("Course.Instructor").
		Order("created_at DESC").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *enrollmentRepo) GetByCourseID(ctx context.Context, courseID uint) ([]domain.Enrollment, error) {
	var enrollments []domain.Enrollment
	err := r.db.WithContext(ctx).Where("course_id = ?", courseID).
		Preload("Student").
		Order("created_at DESC").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *enrollmentRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.Enrollment, int64, error) {
	var enrollments []domain.Enrollment
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Enrollment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).
		Preload("Student").Preload("Course").
		Order("created_at DESC").Order("id ASC").
		Scopes(paginate(page)).
		Find(&enrollments).Error
	return enrollments, total, err
}

func (r *enrollmentRepo) UpdateLocked(ctx context.Context, id uint, mutate func(e *domain.Enrollment) error) (*domain.Enrollment, error) {
	var enrollment domain.Enrollment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&enrollment, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrEnrollmentNotFound
		}
		if err != nil {
			return err
		}
		if err := tx.First(&enrollment.Course, enrollment.CourseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrCourseNotFound
			}
			return err
		}
		if err := mutate(&enrollment); err != nil {
			return err
		}
		return tx.Model(&enrollment).Updates(map[string]interface{}{
			"completed_lessons": enrollment.CompletedLessons,
			"progress_percent":  enrollment.ProgressPercent,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Enrollment{}).Count(&count).Error
	return count, err
}

func (r *enrollmentRepo) CountByCourseID(ctx context.Context, courseID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Enrollment{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

func (r *enrollmentRepo) MonthlyCounts(ctx context.Context, since time.Time) ([]domain.MonthlyCount, error) {
	return monthlyCounts(r.db.WithContext(ctx).Model(&domain.Enrollment{}), since)
}

func (r *enrollmentRepo) TopCourses(ctx context.Context, limit int) ([]domain.TopCourse, error) {
	var rows []domain.TopCourse
	err := r.db.WithContext(ctx).
		Table("enrollments").
		Select("courses.id AS course_id, courses.title AS title, COUNT(enrollments.id) AS enrollment_count").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Group("courses.id, courses.title").
		Order("enrollment_count DESC").
		Order("courses.id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *enrollmentRepo) Recent(ctx context.Context, limit int) ([]domain.Enrollment, error) {
	var enrollments []domain.Enrollment
	err := r.db.WithContext(ctx).
		Preload("Student").Preload("Course").
		Order("created_at DESC").
		Limit(limit).
		Find(&enrollments).Error
	return enrollments, err
}

// ========== ASSIGNMENT REPOSITORY ==========

type assignmentRepo struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) domain.AssignmentRepository {
	return &assignmentRepo{db}
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *domain.Assignment) error {
	return r.db.WithContext(ctx).Omit("Course", "Submissions").Create(assignment).Error
}

func (r *assignmentRepo) GetByID(ctx context.Context, id uint) (*domain.Assignment, error) {
	var assignment domain.Assignment
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Submissions").Preload("Submissions.Student").
		First(&assignment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrAssignmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepo) GetByCourseAndLesson(ctx context.Context, courseID uint, lessonIndex int) (*domain.Assignment, error) {
	var assignment domain.Assignment
	err := r.db.WithContext(ctx).
		Where("course_id = ? AND lesson_index = ?", courseID, lessonIndex).
		Preload("Course").
		Preload("Submissions").Preload("Submissions.Student").
		Order("created_at DESC").
		First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.Assignment, int64, error) {
	var assignments []domain.Assignment
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Assignment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Submissions", func(db *gorm.DB) *gorm.DB {
			return db.Order("submitted_at DESC")
		}).
		Preload("Submissions.Student").
		Order("created_at DESC").Order("id ASC").
		Scopes(paginate(page)).
		Find(&assignments).Error
	return assignments, total, err
}

func (r *assignmentRepo) DeleteByCourseID(ctx context.Context, courseID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := tx.Model(&domain.Assignment{}).Select("id").Where("course_id = ?", courseID)
		if err := tx.Where("assignment_id IN (?)", sub).Delete(&domain.Submission{}).Error; err != nil {
			return err
		}
		return tx.Where("course_id = ?", courseID).Delete(&domain.Assignment{}).Error
	})
}

func (r *assignmentRepo) GetSubmission(ctx context.Context, assignmentID, studentID uint) (*domain.Submission, error) {
	var submission domain.Submission
	err := r.db.WithContext(ctx).
		Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		First(&submission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *assignmentRepo) SaveSubmission(ctx context.Context, submission *domain.Submission) error {
	return r.db.WithContext(ctx).Omit("Student").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "assignment_id"}, {Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"answer_text", "answer_link", "score", "submitted_at", "graded_at"}),
	}).Create(submission).Error
}

func (r *assignmentRepo) UpdateSubmission(ctx context.Context, submission *domain.Submission) error {
	return r.db.WithContext(ctx).Omit("Student").Save(submission).Error
}

// monthlyCounts groups the rows of query by calendar month of created_at.
func monthlyCounts(query *gorm.DB, since time.Time) ([]domain.MonthlyCount, error) {
	var rows []domain.MonthlyCount
	err := query.
		Select("date_trunc('month', created_at) AS month, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("1").
		Order("1").
		Scan(&rows).Error
	return rows, err
}
