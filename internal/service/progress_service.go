package service

import (
	"context"
	"math"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/eduportal/course-portal-api/internal/dto"
	"github.com/eduportal/course-portal-api/internal/models"
	appErrors "github.com/eduportal/course-portal-api/pkg/errors"
)

type progressStudentRepository interface {
	AddCompletedContent(ctx context.Context, studentID primitive.ObjectID, courseID, contentID string) error
}

type progressCourseRepository interface {
	ListByIDs(ctx context.Context, ids []primitive.ObjectID, includeContent bool) ([]models.Course, error)
	Count(ctx context.Context) (int64, error)
}

// ProgressService tracks per-course completion and derives percentages.
// Percentages are never stored: they are recomputed against the current
// content list on every read, so they self-correct when content is later
// appended.
type ProgressService struct {
	students progressStudentRepository
	courses  progressCourseRepository
	logger   *zap.Logger
}

// NewProgressService constructs a ProgressService.
func NewProgressService(students progressStudentRepository, courses progressCourseRepository, logger *zap.Logger) *ProgressService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressService{students: students, courses: courses, logger: logger}
}

// MarkComplete records a completed content id via an atomic add-to-set on
// the student document. Re-marking a completed id is a no-op success.
// The content id is deliberately not validated against the course: an id
// that matches no content item is stored and never counted toward the
// percentage.
func (s *ProgressService) MarkComplete(ctx context.Context, student *models.Student, courseIDHex, contentID string) error {
	if contentID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "content_id is required")
	}
	if err := s.students.AddCompletedContent(ctx, student.ID, courseIDHex, contentID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update progress")
	}
	return nil
}

// Overview returns percentage rows for every enrolled course.
func (s *ProgressService) Overview(ctx context.Context, student *models.Student) ([]dto.CourseProgress, error) {
	courses, err := s.courses.ListByIDs(ctx, student.EnrolledCourses, true)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses")
	}

	overview := make([]dto.CourseProgress, 0, len(courses))
	for i := range courses {
		course := &courses[i]
		overview = append(overview, dto.CourseProgress{
			CourseID:    course.ID.Hex(),
			CourseTitle: course.Title,
			Percentage:  ProgressPercentage(course, student.CompletedContent(course.ID.Hex())),
		})
	}
	return overview, nil
}

// DashboardStats summarises the student's standing across the catalog.
func (s *ProgressService) DashboardStats(ctx context.Context, student *models.Student) (*dto.StudentDashboardStats, error) {
	total, err := s.courses.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count courses")
	}

	courses, err := s.courses.ListByIDs(ctx, student.EnrolledCourses, true)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrolled courses")
	}

	completed := 0
	for i := range courses {
		course := &courses[i]
		if IsCourseCompleted(course, student.CompletedContent(course.ID.Hex())) {
			completed++
		}
	}

	return &dto.StudentDashboardStats{
		TotalCoursesAvailable: total,
		EnrolledCoursesCount:  len(student.EnrolledCourses),
		CompletedCoursesCount: completed,
	}, nil
}

// CompletedCount counts completed ids that still reference a current
// content item. Orphaned ids (content ids never in the course, or keys of
// a since-shrunk course) do not count.
func CompletedCount(course *models.Course, completed []string) int {
	if len(completed) == 0 || len(course.CourseContent) == 0 {
		return 0
	}
	current := make(map[string]struct{}, len(course.CourseContent))
	for _, item := range course.CourseContent {
		current[item.ContentID] = struct{}{}
	}
	count := 0
	for _, id := range completed {
		if _, ok := current[id]; ok {
			count++
		}
	}
	return count
}

// ProgressPercentage derives the completion percentage, 0 for a course with
// no content (never a division by zero).
func ProgressPercentage(course *models.Course, completed []string) int {
	total := len(course.CourseContent)
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(CompletedCount(course, completed)) / float64(total)))
}

// IsCourseCompleted reports full completion. A course with zero content is
// never completed even though its percentage is defined as 0; the asymmetry
// is intentional and relied upon by the dashboard aggregates.
func IsCourseCompleted(course *models.Course, completed []string) bool {
	total := len(course.CourseContent)
	return total > 0 && CompletedCount(course, completed) == total
}
