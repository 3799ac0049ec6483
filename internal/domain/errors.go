package domain

import (
	"errors"
	"fmt"
)

// Error classes. Handlers map these to HTTP status codes with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)

var (
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrCourseNotFound     = fmt.Errorf("course %w", ErrNotFound)
	ErrEnrollmentNotFound = fmt.Errorf("enrollment %w", ErrNotFound)
	ErrAssignmentNotFound = fmt.Errorf("assignment %w", ErrNotFound)
	ErrSubmissionNotFound = fmt.Errorf("submission %w", ErrNotFound)
	ErrQuizNotFound       = fmt.Errorf("quiz %w", ErrNotFound)
	ErrFileNotFound       = fmt.Errorf("file %w", ErrNotFound)

	ErrEmailTaken           = fmt.Errorf("email already registered: %w", ErrConflict)
	ErrAlreadyEnrolled      = fmt.Errorf("already enrolled in this course: %w", ErrConflict)
	ErrCourseHasEnrollments = fmt.Errorf("cannot delete course with existing enrollments: %w", ErrConflict)

	ErrNotEnrolled     = fmt.Errorf("not enrolled in this course: %w", ErrForbidden)
	ErrNotOwner        = fmt.Errorf("resource belongs to another user: %w", ErrForbidden)
	ErrUserBlocked     = fmt.Errorf("user is blocked: %w", ErrForbidden)
	ErrAdminRequired   = fmt.Errorf("admin role required: %w", ErrForbidden)
	ErrCannotBlockSelf = fmt.Errorf("cannot block your own account: %w", ErrForbidden)

	ErrCourseTitleRequired = fmt.Errorf("title is required: %w", ErrInvalidInput)
	ErrNegativePrice       = fmt.Errorf("price must not be negative: %w", ErrInvalidInput)
	ErrInvalidLesson       = fmt.Errorf("every lesson needs a title and videoUrl: %w", ErrInvalidInput)
	ErrInvalidBatch        = fmt.Errorf("unknown or unnamed batch: %w", ErrInvalidInput)
	ErrLessonOutOfRange    = fmt.Errorf("lesson index out of range: %w", ErrInvalidInput)
	ErrDeadlinePassed      = fmt.Errorf("assignment deadline has passed: %w", ErrInvalidInput)
	ErrEmptySubmission     = fmt.Errorf("answerText or answerLink is required: %w", ErrInvalidInput)
	ErrInvalidQuestion     = fmt.Errorf("each question needs text, at least two options and a valid correctIndex: %w", ErrInvalidInput)
	ErrAnswerCount         = fmt.Errorf("answer count does not match question count: %w", ErrInvalidInput)
	ErrInvalidScore        = fmt.Errorf("score must be between 0 and 100: %w", ErrInvalidInput)
	ErrInvalidFileType     = fmt.Errorf("only jpeg, png, gif and webp images are allowed: %w", ErrInvalidInput)
	ErrFileTooLarge        = fmt.Errorf("file exceeds the upload size limit: %w", ErrInvalidInput)

	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("invalid token: %w", ErrUnauthorized)
)
