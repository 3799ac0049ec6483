package usecase

import (
	"context"

	"shacademy-backend/internal/domain"
)

type enrollmentUsecase struct {
	enrollmentRepo domain.EnrollmentRepository
	courseRepo     domain.CourseRepository
	userRepo       domain.UserRepository
	cache          domain.StatsCache
}

func NewEnrollmentUsecase(er domain.EnrollmentRepository, cr domain.CourseRepository, ur domain.UserRepository, cache domain.StatsCache) domain.EnrollmentUsecase {
	return &enrollmentUsecase{enrollmentRepo: er, courseRepo: cr, userRepo: ur, cache: cache}
}

func (uc *enrollmentUsecase) Enroll(ctx context.Context, viewer domain.Viewer, studentID, courseID uint, batchName string) (*domain.Enrollment, error) {
	if studentID == 0 {
		studentID = viewer.ID
	}
	if !viewer.IsAdmin() && studentID != viewer.ID {
		return nil, domain.ErrNotOwner
	}

	student, err := uc.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.IsBlocked {
		return nil, domain.ErrUserBlocked
	}

	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	batch, err := course.ResolveBatch(batchName)
	if err != nil {
		return nil, err
	}

	// Check if already enrolled
	existing, err := uc.enrollmentRepo.GetByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyEnrolled
	}

	enrollment := &domain.Enrollment{
		StudentID:        studentID,
		CourseID:         courseID,
		BatchName:        batch,
		CompletedLessons: []int64{},
		ProgressPercent:  0,
	}
	if err := uc.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}
	enrollment.Course = *course
	invalidateStats(ctx, uc.cache)
	return enrollment, nil
}

func (uc *enrollmentUsecase) ListAll(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.Enrollment], error) {
	page = page.Normalize()
	enrollments, total, err := uc.enrollmentRepo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return domain.NewPage(enrollments, total, page), nil
}

func (uc *enrollmentUsecase) ListByStudent(ctx context.Context, viewer domain.Viewer, studentID uint) ([]domain.Enrollment, error) {
	if !viewer.IsAdmin() && viewer.ID != studentID {
		return nil, domain.ErrNotOwner
	}
	enrollments, err := uc.enrollmentRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	for i := range enrollments {
		enrollments[i].RecalculateProgress(len(enrollments[i].Course.Lessons))
	}
	return enrollments, nil
}

func (uc *enrollmentUsecase) ListByCourse(ctx context.Context, courseID uint) ([]domain.Enrollment, error) {
	if _, err := uc.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return uc.enrollmentRepo.GetByCourseID(ctx, courseID)
}

// CompleteLesson records a finished lesson. The read-modify-write runs under
// a row lock so concurrent completions of one enrollment are serialized.
func (uc *enrollmentUsecase) CompleteLesson(ctx context.Context, viewer domain.Viewer, enrollmentID uint, lessonIndex int) (*domain.Enrollment, error) {
	return uc.enrollmentRepo.UpdateLocked(ctx, enrollmentID, func(e *domain.Enrollment) error {
		if e.StudentID != viewer.ID {
			return domain.ErrNotOwner
		}
		return e.MarkLessonComplete(lessonIndex, len(e.Course.Lessons))
	})
}
