package usecase

import (
	"context"
	"log"
	"time"

	"shacademy-backend/internal/domain"
)

const (
	trendMonths       = 6
	topCourseLimit    = 5
	recentEnrollLimit = 5

	adminStatsKey = "admin:stats"
)

type dashboardUsecase struct {
	userRepo       domain.UserRepository
	courseRepo     domain.CourseRepository
	enrollmentRepo domain.EnrollmentRepository
	cache          domain.StatsCache
	cacheTTL       time.Duration
	now            func() time.Time
}

func NewDashboardUsecase(
	ur domain.UserRepository,
	cr domain.CourseRepository,
	er domain.EnrollmentRepository,
	cache domain.StatsCache,
	cacheTTL time.Duration,
) domain.DashboardUsecase {
	return &dashboardUsecase{
		userRepo:       ur,
		courseRepo:     cr,
		enrollmentRepo: er,
		cache:          cache,
		cacheTTL:       cacheTTL,
		now:            time.Now,
	}
}

func (uc *dashboardUsecase) GetAdminStats(ctx context.Context) (*domain.AdminStats, error) {
	var cached domain.AdminStats
	if hit, err := uc.cache.Get(ctx, adminStatsKey, &cached); err != nil {
		log.Printf("Warning: stats cache read failed: %v", err)
	} else if hit {
		return &cached, nil
	}

	stats := &domain.AdminStats{}
	var err error

	if stats.TotalStudents, err = uc.userRepo.CountByRole(ctx, domain.RoleStudent); err != nil {
		return nil, err
	}
	if stats.BlockedUsers, err = uc.userRepo.CountBlocked(ctx); err != nil {
		return nil, err
	}
	if stats.TotalCourses, err = uc.courseRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalInstructors, err = uc.courseRepo.CountInstructors(ctx); err != nil {
		return nil, err
	}
	if stats.TotalEnrollments, err = uc.enrollmentRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.EnrollmentTrends, err = uc.GetEnrollmentTrends(ctx); err != nil {
		return nil, err
	}

	top, err := uc.enrollmentRepo.TopCourses(ctx, topCourseLimit)
	if err != nil {
		return nil, err
	}
	stats.TopCourses = nonNil(top)

	categories, err := uc.courseRepo.CategoryDistribution(ctx)
	if err != nil {
		return nil, err
	}
	stats.CategoryDistribution = nonNil(categories)

	recent, err := uc.enrollmentRepo.Recent(ctx, recentEnrollLimit)
	if err != nil {
		return nil, err
	}
	stats.RecentEnrollments = make([]domain.RecentEnrollment, 0, len(recent))
	for _, e := range recent {
		stats.RecentEnrollments = append(stats.RecentEnrollments, domain.RecentEnrollment{
			ID:          e.ID,
			StudentName: e.Student.Name,
			CourseName:  e.Course.Title,
			BatchName:   e.BatchName,
			CreatedAt:   e.CreatedAt,
		})
	}

	if err := uc.cache.Set(ctx, adminStatsKey, stats, uc.cacheTTL); err != nil {
		log.Printf("Warning: stats cache write failed: %v", err)
	}
	return stats, nil
}

func (uc *dashboardUsecase) GetEnrollmentTrends(ctx context.Context) ([]domain.TrendPoint, error) {
	now := uc.now()
	counts, err := uc.enrollmentRepo.MonthlyCounts(ctx, seriesStart(now, trendMonths))
	if err != nil {
		return nil, err
	}
	return buildMonthlySeries(now, counts, trendMonths), nil
}

func (uc *dashboardUsecase) GetUserGrowth(ctx context.Context) ([]domain.TrendPoint, error) {
	now := uc.now()
	counts, err := uc.userRepo.MonthlySignups(ctx, seriesStart(now, trendMonths))
	if err != nil {
		return nil, err
	}
	return buildMonthlySeries(now, counts, trendMonths), nil
}

// seriesStart is midnight UTC on the first day of the oldest month shown.
func seriesStart(now time.Time, months int) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month()-time.Month(months-1), 1, 0, 0, 0, 0, time.UTC)
}

// buildMonthlySeries returns one point per calendar month ending with the
// month of now, oldest first. Months without rows count zero.
func buildMonthlySeries(now time.Time, counts []domain.MonthlyCount, months int) []domain.TrendPoint {
	byMonth := make(map[string]int64, len(counts))
	for _, c := range counts {
		byMonth[c.Month.UTC().Format("2006-01")] += c.Count
	}

	start := seriesStart(now, months)
	series := make([]domain.TrendPoint, 0, months)
	for i := 0; i < months; i++ {
		month := start.AddDate(0, i, 0)
		series = append(series, domain.TrendPoint{
			Date:  month.Format("Jan"),
			Count: byMonth[month.Format("2006-01")],
		})
	}
	return series
}

// invalidateStats drops the cached admin payload after a write that changes it.
func invalidateStats(ctx context.Context, cache domain.StatsCache) {
	if cache == nil {
		return
	}
	if err := cache.Delete(ctx, adminStatsKey); err != nil {
		log.Printf("Warning: stats cache invalidation failed: %v", err)
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
