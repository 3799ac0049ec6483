package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestProgressPercent(t *testing.T) {
	cases := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{3, 0, 0},
		{0, 4, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
		{5, 3, 100},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ProgressPercent(tc.completed, tc.total), "%d/%d", tc.completed, tc.total)
	}
}

func TestMarkLessonComplete(t *testing.T) {
	e := &Enrollment{}

	require.NoError(t, e.MarkLessonComplete(2, 4))
	require.NoError(t, e.MarkLessonComplete(0, 4))
	assert.Equal(t, []int64{0, 2}, []int64(e.CompletedLessons))
	assert.Equal(t, 50, e.ProgressPercent)

	// idempotent
	require.NoError(t, e.MarkLessonComplete(2, 4))
	assert.Equal(t, []int64{0, 2}, []int64(e.CompletedLessons))
	assert.Equal(t, 50, e.ProgressPercent)

	err := e.MarkLessonComplete(4, 4)
	assert.True(t, errors.Is(err, ErrLessonOutOfRange))
	err = e.MarkLessonComplete(-1, 4)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestRecalculateProgressIgnoresRemovedLessons(t *testing.T) {
	e := &Enrollment{CompletedLessons: []int64{0, 1, 5}}
	e.RecalculateProgress(2)
	assert.Equal(t, 100, e.ProgressPercent)
}

func TestCourseValidate(t *testing.T) {
	c := &Course{Title: "Go", Lessons: []Lesson{{Title: "Intro", VideoURL: "https://youtu.be/x"}}}
	assert.NoError(t, c.Validate())

	c.Price = -1
	assert.ErrorIs(t, c.Validate(), ErrNegativePrice)

	c.Price = 0
	c.Lessons = append(c.Lessons, Lesson{Title: "No video"})
	assert.ErrorIs(t, c.Validate(), ErrInvalidLesson)

	c.Lessons = nil
	c.Batches = []Batch{{Name: ""}}
	assert.ErrorIs(t, c.Validate(), ErrInvalidBatch)

	assert.ErrorIs(t, (&Course{}).Validate(), ErrCourseTitleRequired)
}

func TestResolveBatch(t *testing.T) {
	c := &Course{}
	name, err := c.ResolveBatch("anything")
	require.NoError(t, err)
	assert.Equal(t, "anything", name)

	c.Batches = []Batch{{Name: "Batch-1"}, {Name: "Batch-2"}}
	name, err = c.ResolveBatch("")
	require.NoError(t, err)
	assert.Equal(t, "Batch-1", name)

	name, err = c.ResolveBatch("Batch-2")
	require.NoError(t, err)
	assert.Equal(t, "Batch-2", name)

	_, err = c.ResolveBatch("Batch-9")
	assert.ErrorIs(t, err, ErrInvalidBatch)
}

func TestHasLesson(t *testing.T) {
	c := &Course{Lessons: []Lesson{{}, {}}}
	assert.True(t, c.HasLesson(0))
	assert.True(t, c.HasLesson(1))
	assert.False(t, c.HasLesson(2))
	assert.False(t, c.HasLesson(-1))
}

func TestAssignmentDeadline(t *testing.T) {
	deadline := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := &Assignment{DeadLine: deadline}
	assert.True(t, a.AcceptsSubmissionAt(deadline.Add(-time.Hour)))
	assert.True(t, a.AcceptsSubmissionAt(deadline))
	assert.False(t, a.AcceptsSubmissionAt(deadline.Add(time.Second)))

	assert.True(t, (&Assignment{}).AcceptsSubmissionAt(time.Now()))
}

func TestQuizScoreAndValidate(t *testing.T) {
	q := &Quiz{Questions: []Question{
		{Question: "2+2", Options: []string{"3", "4"}, CorrectIndex: intPtr(1)},
		{Question: "Go?", Options: []string{"yes", "no", "maybe"}, CorrectIndex: intPtr(0)},
	}}
	require.NoError(t, q.Validate())

	score, err := q.Score([]int{1, 0})
	require.NoError(t, err)
	assert.Equal(t, 2, score)

	score, err = q.Score([]int{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, score)

	_, err = q.Score([]int{1})
	assert.ErrorIs(t, err, ErrAnswerCount)

	q.Questions[1].CorrectIndex = intPtr(3)
	assert.ErrorIs(t, q.Validate(), ErrInvalidQuestion)

	assert.ErrorIs(t, (&Quiz{}).Validate(), ErrInvalidQuestion)
}

func TestQuizForStudentHidesAnswers(t *testing.T) {
	q := &Quiz{
		Questions: []Question{{Question: "a", Options: []string{"x", "y"}, CorrectIndex: intPtr(1)}},
		Results:   []QuizResult{{StudentID: 1, Score: 1}, {StudentID: 2, Score: 0}},
	}
	view := q.ForStudent(2)

	assert.Nil(t, view.Questions[0].CorrectIndex)
	assert.Len(t, view.Results, 1)
	assert.Equal(t, uint(2), view.Results[0].StudentID)
	// original untouched
	require.NotNil(t, q.Questions[0].CorrectIndex)
	assert.Len(t, q.Results, 2)
}

func TestNewPage(t *testing.T) {
	p := NewPage[int](nil, 0, PageRequest{Page: 1, Limit: 10})
	assert.Equal(t, []int{}, p.Data)
	assert.Equal(t, 1, p.Meta.TotalPage)

	p = NewPage([]int{1, 2}, 21, PageRequest{Page: 3, Limit: 10})
	assert.Equal(t, 3, p.Meta.TotalPage)
	assert.Equal(t, int64(21), p.Meta.Total)

	p = NewPage([]int{1, 2, 3}, 3, PageRequest{})
	assert.Equal(t, PageMeta{Page: 1, Limit: 3, Total: 3, TotalPage: 1}, p.Meta)
}

func TestPageRequestUnbounded(t *testing.T) {
	all := PageRequest{}.Normalize()
	assert.Equal(t, PageRequest{Page: 1, All: true}, all)
	assert.False(t, all.Bounded())
	assert.Equal(t, 0, all.Offset())
	assert.Equal(t, all, all.Normalize())

	limited := PageRequest{Limit: 5}.Normalize()
	assert.Equal(t, PageRequest{Page: 1, Limit: 5}, limited)
	assert.True(t, limited.Bounded())

	paged := PageRequest{Page: 2}.Normalize()
	assert.Equal(t, DefaultPageLimit, paged.Limit)
	assert.Equal(t, DefaultPageLimit, paged.Offset())
}

func TestCourseFilterNormalize(t *testing.T) {
	f := CourseFilter{PageRequest: PageRequest{Page: -2, Limit: 500}, Sort: "bogus"}.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, MaxPageLimit, f.Limit)
	assert.Equal(t, SortNewest, f.Sort)
	assert.Equal(t, 0, f.Offset())

	f = CourseFilter{PageRequest: PageRequest{Page: 3}, Sort: SortPriceDesc}.Normalize()
	assert.Equal(t, DefaultPageLimit, f.Limit)
	assert.Equal(t, SortPriceDesc, f.Sort)
	assert.Equal(t, 20, f.Offset())
}

func TestNavigationFor(t *testing.T) {
	admin := NavigationFor(RoleAdmin)
	require.Len(t, admin, 2)
	assert.Equal(t, "/admin/dashboard", admin[0].URL)
	assert.Len(t, admin[0].Items, 3)

	student := NavigationFor(RoleStudent)
	require.Len(t, student, 2)
	assert.Equal(t, "/student/enrolled_course", student[0].Items[1].URL)

	assert.Nil(t, NavigationFor("guest"))
	assert.Equal(t, "/", DashboardPath("guest"))
}
