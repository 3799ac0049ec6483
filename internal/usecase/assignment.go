package usecase

import (
	"context"
	"strings"
	"time"

	"shacademy-backend/internal/domain"
)

type assignmentUsecase struct {
	assignmentRepo domain.AssignmentRepository
	courseRepo     domain.CourseRepository
	enrollmentRepo domain.EnrollmentRepository
	now            func() time.Time
}

func NewAssignmentUsecase(ar domain.AssignmentRepository, cr domain.CourseRepository, er domain.EnrollmentRepository) domain.AssignmentUsecase {
	return &assignmentUsecase{
		assignmentRepo: ar,
		courseRepo:     cr,
		enrollmentRepo: er,
		now:            time.Now,
	}
}

func (uc *assignmentUsecase) CreateAssignment(ctx context.Context, assignment *domain.Assignment) error {
	assignment.Title = strings.TrimSpace(assignment.Title)
	if assignment.Title == "" {
		return domain.ErrInvalidInput
	}
	course, err := uc.courseRepo.GetByID(ctx, assignment.CourseID)
	if err != nil {
		return err
	}
	if !course.HasLesson(assignment.LessonIndex) {
		return domain.ErrLessonOutOfRange
	}
	if err := uc.assignmentRepo.Create(ctx, assignment); err != nil {
		return err
	}
	assignment.Course = *course
	assignment.Submissions = []domain.Submission{}
	return nil
}

// GetForLesson returns nil without error when the lesson has no assignment.
func (uc *assignmentUsecase) GetForLesson(ctx context.Context, viewer domain.Viewer, courseID uint, lessonIndex int) (*domain.Assignment, error) {
	if !viewer.IsAdmin() {
		if err := requireEnrollment(ctx, uc.enrollmentRepo, viewer.ID, courseID); err != nil {
			return nil, err
		}
	}

	assignment, err := uc.assignmentRepo.GetByCourseAndLesson(ctx, courseID, lessonIndex)
	if err != nil || assignment == nil {
		return nil, err
	}

	if !viewer.IsAdmin() {
		own := []domain.Submission{}
		for _, s := range assignment.Submissions {
			if s.StudentID == viewer.ID {
				own = append(own, s)
			}
		}
		assignment.Submissions = own
	}
	return assignment, nil
}

func (uc *assignmentUsecase) ListAll(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.Assignment], error) {
	page = page.Normalize()
	assignments, total, err := uc.assignmentRepo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return domain.NewPage(assignments, total, page), nil
}

func (uc *assignmentUsecase) Submit(ctx context.Context, studentID, assignmentID uint, input domain.SubmissionInput) (*domain.Submission, error) {
	input.AnswerText = strings.TrimSpace(input.AnswerText)
	input.AnswerLink = strings.TrimSpace(input.AnswerLink)
	if input.AnswerText == "" && input.AnswerLink == "" {
		return nil, domain.ErrEmptySubmission
	}

	assignment, err := uc.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if err := requireEnrollment(ctx, uc.enrollmentRepo, studentID, assignment.CourseID); err != nil {
		return nil, err
	}

	now := uc.now()
	if !assignment.AcceptsSubmissionAt(now) {
		return nil, domain.ErrDeadlinePassed
	}

	// Resubmission replaces the earlier answer and clears its grade.
	submission := &domain.Submission{
		AssignmentID: assignment.ID,
		StudentID:    studentID,
		AnswerText:   input.AnswerText,
		AnswerLink:   input.AnswerLink,
		SubmittedAt:  now,
	}
	if err := uc.assignmentRepo.SaveSubmission(ctx, submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (uc *assignmentUsecase) Grade(ctx context.Context, assignmentID, studentID uint, score float64) (*domain.Submission, error) {
	if score < 0 || score > 100 {
		return nil, domain.ErrInvalidScore
	}
	if _, err := uc.assignmentRepo.GetByID(ctx, assignmentID); err != nil {
		return nil, err
	}
	submission, err := uc.assignmentRepo.GetSubmission(ctx, assignmentID, studentID)
	if err != nil {
		return nil, err
	}

	gradedAt := uc.now()
	submission.Score = &score
	submission.GradedAt = &gradedAt
	if err := uc.assignmentRepo.UpdateSubmission(ctx, submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func requireEnrollment(ctx context.Context, er domain.EnrollmentRepository, studentID, courseID uint) error {
	enrollment, err := er.GetByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		return err
	}
	if enrollment == nil {
		return domain.ErrNotEnrolled
	}
	return nil
}
