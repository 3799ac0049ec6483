package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"shacademy-backend/internal/domain"
)

// ThumbnailPrefix is the public path GridFS files are served under.
const ThumbnailPrefix = "/files/"

type courseUsecase struct {
	courseRepo     domain.CourseRepository
	enrollmentRepo domain.EnrollmentRepository
	assignmentRepo domain.AssignmentRepository
	quizRepo       domain.QuizRepository
	files          domain.FileRepository
	cache          domain.StatsCache
}

func NewCourseUsecase(
	cr domain.CourseRepository,
	er domain.EnrollmentRepository,
	ar domain.AssignmentRepository,
	qr domain.QuizRepository,
	files domain.FileRepository,
	cache domain.StatsCache,
) domain.CourseUsecase {
	return &courseUsecase{
		courseRepo:     cr,
		enrollmentRepo: er,
		assignmentRepo: ar,
		quizRepo:       qr,
		files:          files,
		cache:          cache,
	}
}

// ========== COURSE CRUD ==========

func (uc *courseUsecase) CreateCourse(ctx context.Context, course *domain.Course) error {
	course.Title = strings.TrimSpace(course.Title)
	if err := course.Validate(); err != nil {
		return err
	}
	if err := uc.courseRepo.Create(ctx, course); err != nil {
		return err
	}
	invalidateStats(ctx, uc.cache)
	return nil
}

func (uc *courseUsecase) UpdateCourse(ctx context.Context, id uint, update domain.CourseUpdate) (*domain.Course, error) {
	existing, err := uc.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update only provided fields
	if update.Title != nil {
		existing.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		existing.Description = *update.Description
	}
	if update.Price != nil {
		existing.Price = float64(*update.Price)
	}
	if update.Category != nil {
		existing.Category = strings.TrimSpace(*update.Category)
	}
	if update.Tags != nil {
		existing.Tags = *update.Tags
	}
	if update.Syllabus != nil {
		existing.Syllabus = *update.Syllabus
	}
	if update.Lessons != nil {
		existing.Lessons = *update.Lessons
	}
	if update.Batches != nil {
		existing.Batches = *update.Batches
	}

	if err := existing.Validate(); err != nil {
		return nil, err
	}
	if err := uc.courseRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	invalidateStats(ctx, uc.cache)
	return existing, nil
}

func (uc *courseUsecase) DeleteCourse(ctx context.Context, id uint) error {
	course, err := uc.courseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Check if course has enrollments
	count, err := uc.enrollmentRepo.CountByCourseID(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrCourseHasEnrollments
	}

	if err := uc.assignmentRepo.DeleteByCourseID(ctx, id); err != nil {
		return fmt.Errorf("delete assignments: %w", err)
	}
	if err := uc.quizRepo.DeleteByCourseID(ctx, id); err != nil {
		return fmt.Errorf("delete quizzes: %w", err)
	}
	if err := uc.courseRepo.Delete(ctx, id); err != nil {
		return err
	}

	if fileID, ok := strings.CutPrefix(course.Thumbnail, ThumbnailPrefix); ok && fileID != "" {
		if err := uc.files.Delete(ctx, fileID); err != nil {
			log.Printf("Warning: failed to delete thumbnail %s: %v", fileID, err)
		}
	}
	invalidateStats(ctx, uc.cache)
	return nil
}

func (uc *courseUsecase) GetCourse(ctx context.Context, id uint) (*domain.Course, error) {
	return uc.courseRepo.GetByID(ctx, id)
}

func (uc *courseUsecase) ListCourses(ctx context.Context, filter domain.CourseFilter) (*domain.Page[domain.Course], error) {
	filter = filter.Normalize()
	courses, total, err := uc.courseRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return domain.NewPage(courses, total, filter.PageRequest), nil
}
