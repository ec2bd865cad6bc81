package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/eduportal/course-portal-api/internal/dto"
	"github.com/eduportal/course-portal-api/internal/models"
	appErrors "github.com/eduportal/course-portal-api/pkg/errors"
)

// AdminStatsCacheKey is the cache slot for the fleet-wide dashboard
// aggregate.
const AdminStatsCacheKey = "dashboard:admin:stats"

type reportStudentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	Count(ctx context.Context) (int64, error)
	TrendingCourse(ctx context.Context) (string, bool, error)
}

type reportCourseRepository interface {
	List(ctx context.Context, includeContent bool) ([]models.Course, error)
	Count(ctx context.Context) (int64, error)
}

type reportCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// ReportService computes the administrative aggregate views. Every figure
// is derived on read from the live documents; the optional cache only
// shortens the window between recomputations.
type ReportService struct {
	students reportStudentRepository
	courses  reportCourseRepository
	cache    reportCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewReportService constructs a ReportService. cache may be nil to disable
// caching entirely.
func NewReportService(students reportStudentRepository, courses reportCourseRepository, cache reportCache, cacheTTL time.Duration, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &ReportService{students: students, courses: courses, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// AdminDashboard returns the fleet-wide aggregate, served from cache when a
// fresh enough copy exists. A cache failure degrades to recomputation, never
// to an error.
func (s *ReportService) AdminDashboard(ctx context.Context) (*dto.AdminDashboardStats, error) {
	if s.cache != nil {
		var cached dto.AdminDashboardStats
		if err := s.cache.Get(ctx, AdminStatsCacheKey, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
	}

	stats, err := s.computeAdminStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, AdminStatsCacheKey, stats, s.cacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return stats, nil
}

func (s *ReportService) computeAdminStats(ctx context.Context) (*dto.AdminDashboardStats, error) {
	totalStudents, err := s.students.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count students")
	}
	totalCourses, err := s.courses.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count courses")
	}

	trending, ok, err := s.students.TrendingCourse(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute trending course")
	}
	if !ok {
		trending = "N/A"
	}

	students, err := s.students.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	courses, err := s.courses.List(ctx, true)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	byID := coursesByID(courses)

	completedStudents := 0
	for i := range students {
		if completedCourseCount(&students[i], byID) > 0 {
			completedStudents++
		}
	}

	return &dto.AdminDashboardStats{
		TotalStudents:     totalStudents,
		CompletedStudents: completedStudents,
		TotalCourses:      totalCourses,
		TrendingCourse:    trending,
	}, nil
}

// Roster annotates every student with enrollment aggregates. Dangling
// enrollment references contribute to the raw count but produce no title.
func (s *ReportService) Roster(ctx context.Context) ([]dto.StudentRosterEntry, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	courses, err := s.courses.List(ctx, true)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	byID := coursesByID(courses)

	roster := make([]dto.StudentRosterEntry, 0, len(students))
	for i := range students {
		student := &students[i]
		titles := make([]string, 0, len(student.EnrolledCourses))
		for _, id := range student.EnrolledCourses {
			if course, ok := byID[id]; ok {
				titles = append(titles, course.Title)
			}
		}
		roster = append(roster, dto.StudentRosterEntry{
			ID:                    student.ID.Hex(),
			FullName:              student.FullName,
			Email:                 student.Email,
			Gender:                student.Gender,
			DateOfBirth:           student.DateOfBirth,
			Status:                student.Status,
			CertificateAllowed:    student.CertificateAllowed,
			EnrolledCourseTitles:  titles,
			TotalEnrolledCount:    len(student.EnrolledCourses),
			CompletedCoursesCount: completedCourseCount(student, byID),
		})
	}
	return roster, nil
}

func coursesByID(courses []models.Course) map[primitive.ObjectID]*models.Course {
	byID := make(map[primitive.ObjectID]*models.Course, len(courses))
	for i := range courses {
		byID[courses[i].ID] = &courses[i]
	}
	return byID
}

func completedCourseCount(student *models.Student, byID map[primitive.ObjectID]*models.Course) int {
	completed := 0
	for _, id := range student.EnrolledCourses {
		course, ok := byID[id]
		if !ok {
			continue
		}
		if IsCourseCompleted(course, student.CompletedContent(id.Hex())) {
			completed++
		}
	}
	return completed
}
