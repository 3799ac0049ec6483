package usecase

import (
	"context"
	"time"

	"shacademy-backend/internal/domain"
)

type quizUsecase struct {
	quizRepo       domain.QuizRepository
	courseRepo     domain.CourseRepository
	enrollmentRepo domain.EnrollmentRepository
	userRepo       domain.UserRepository
	now            func() time.Time
}

func NewQuizUsecase(qr domain.QuizRepository, cr domain.CourseRepository, er domain.EnrollmentRepository, ur domain.UserRepository) domain.QuizUsecase {
	return &quizUsecase{
		quizRepo:       qr,
		courseRepo:     cr,
		enrollmentRepo: er,
		userRepo:       ur,
		now:            time.Now,
	}
}

func (uc *quizUsecase) CreateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if err := quiz.Validate(); err != nil {
		return err
	}
	course, err := uc.courseRepo.GetByID(ctx, quiz.CourseID)
	if err != nil {
		return err
	}
	if !course.HasLesson(quiz.LessonIndex) {
		return domain.ErrLessonOutOfRange
	}

	quiz.Results = []domain.QuizResult{}
	quiz.CreatedAt = uc.now()
	if err := uc.quizRepo.Create(ctx, quiz); err != nil {
		return err
	}
	quiz.Course = &domain.CourseRef{ID: course.ID, Title: course.Title}
	return nil
}

func (uc *quizUsecase) ListAll(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.Quiz], error) {
	page = page.Normalize()
	quizzes, total, err := uc.quizRepo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	if err := uc.attachCourses(ctx, quizzes); err != nil {
		return nil, err
	}
	return domain.NewPage(quizzes, total, page), nil
}

// GetForViewer looks up the quiz of one lesson when both filters are given.
// Without filters a student gets the newest quiz of any enrolled course and
// an admin the newest quiz overall. Nil means no quiz matched.
func (uc *quizUsecase) GetForViewer(ctx context.Context, viewer domain.Viewer, courseID *uint, lessonIndex *int) (*domain.Quiz, error) {
	var (
		quiz *domain.Quiz
		err  error
	)

	switch {
	case courseID != nil && lessonIndex != nil:
		if !viewer.IsAdmin() {
			if err := requireEnrollment(ctx, uc.enrollmentRepo, viewer.ID, *courseID); err != nil {
				return nil, err
			}
		}
		quiz, err = uc.quizRepo.GetByCourseAndLesson(ctx, *courseID, *lessonIndex)
	case courseID != nil || lessonIndex != nil:
		return nil, domain.ErrInvalidInput
	case viewer.IsAdmin():
		var latest []domain.Quiz
		latest, _, err = uc.quizRepo.List(ctx, domain.PageRequest{Page: 1, Limit: 1})
		if err == nil && len(latest) > 0 {
			quiz = &latest[0]
		}
	default:
		var enrollments []domain.Enrollment
		enrollments, err = uc.enrollmentRepo.GetByStudentID(ctx, viewer.ID)
		if err != nil {
			return nil, err
		}
		ids := make([]uint, 0, len(enrollments))
		for _, e := range enrollments {
			ids = append(ids, e.CourseID)
		}
		quiz, err = uc.quizRepo.GetLatestForCourses(ctx, ids)
	}
	if err != nil || quiz == nil {
		return nil, err
	}

	if !viewer.IsAdmin() {
		quiz = quiz.ForStudent(viewer.ID)
	}
	single := []domain.Quiz{*quiz}
	if err := uc.attachCourses(ctx, single); err != nil {
		return nil, err
	}
	return &single[0], nil
}

func (uc *quizUsecase) Submit(ctx context.Context, studentID uint, quizID string, answers []int) (*domain.QuizResult, error) {
	quiz, err := uc.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if err := requireEnrollment(ctx, uc.enrollmentRepo, studentID, quiz.CourseID); err != nil {
		return nil, err
	}

	score, err := quiz.Score(answers)
	if err != nil {
		return nil, err
	}
	student, err := uc.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	result := domain.QuizResult{
		StudentID:   studentID,
		StudentName: student.Name,
		Score:       score,
		Total:       len(quiz.Questions),
		SubmittedAt: uc.now(),
	}
	if err := uc.quizRepo.SaveResult(ctx, quizID, result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (uc *quizUsecase) attachCourses(ctx context.Context, quizzes []domain.Quiz) error {
	if len(quizzes) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(quizzes))
	seen := make(map[uint]bool)
	for _, q := range quizzes {
		if !seen[q.CourseID] {
			seen[q.CourseID] = true
			ids = append(ids, q.CourseID)
		}
	}
	courses, err := uc.courseRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	titles := make(map[uint]string, len(courses))
	for _, c := range courses {
		titles[c.ID] = c.Title
	}
	for i := range quizzes {
		quizzes[i].Course = &domain.CourseRef{ID: quizzes[i].CourseID, Title: titles[quizzes[i].CourseID]}
	}
	return nil
}
