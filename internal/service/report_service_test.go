package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/eduportal/course-portal-api/internal/dto"
	"github.com/eduportal/course-portal-api/internal/models"
	appErrors "github.com/eduportal/course-portal-api/pkg/errors"
)

type mockReportStudents struct {
	students []models.Student
	trending string
}

func (m *mockReportStudents) List(ctx context.Context) ([]models.Student, error) {
	return m.students, nil
}

func (m *mockReportStudents) Count(ctx context.Context) (int64, error) {
	return int64(len(m.students)), nil
}

func (m *mockReportStudents) TrendingCourse(ctx context.Context) (string, bool, error) {
	return m.trending, m.trending != "", nil
}

type mockReportCourses struct {
	courses []models.Course
}

func (m *mockReportCourses) List(ctx context.Context, includeContent bool) ([]models.Course, error) {
	return m.courses, nil
}

func (m *mockReportCourses) Count(ctx context.Context) (int64, error) {
	return int64(len(m.courses)), nil
}

type memoryCache struct {
	stats *dto.AdminDashboardStats
	sets  int
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.stats == nil {
		return appErrors.ErrCacheMiss
	}
	*dest.(*dto.AdminDashboardStats) = *c.stats
	return nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	stats := value.(*dto.AdminDashboardStats)
	c.stats = stats
	c.sets++
	return nil
}

func TestAdminDashboardStats(t *testing.T) {
	courseID := primitive.NewObjectID()
	course := fourItemCourse(courseID)

	students := &mockReportStudents{
		trending: "Algorithms",
		students: []models.Student{
			{
				ID:              primitive.NewObjectID(),
				EnrolledCourses: []primitive.ObjectID{courseID},
				Progress:        map[string][]string{courseID.Hex(): {"c1", "c2", "c3", "c4"}},
			},
			{
				ID:              primitive.NewObjectID(),
				EnrolledCourses: []primitive.ObjectID{courseID},
				Progress:        map[string][]string{courseID.Hex(): {"c1"}},
			},
			{ID: primitive.NewObjectID()},
		},
	}
	courses := &mockReportCourses{courses: []models.Course{course}}
	svc := NewReportService(students, courses, nil, time.Minute, zap.NewNop())

	stats, err := svc.AdminDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalStudents)
	assert.Equal(t, 1, stats.CompletedStudents)
	assert.Equal(t, int64(1), stats.TotalCourses)
	assert.Equal(t, "Algorithms", stats.TrendingCourse)
}

func TestAdminDashboardTrendingFallback(t *testing.T) {
	svc := NewReportService(&mockReportStudents{}, &mockReportCourses{}, nil, time.Minute, zap.NewNop())

	stats, err := svc.AdminDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "N/A", stats.TrendingCourse)
}

func TestAdminDashboardUsesCache(t *testing.T) {
	cache := &memoryCache{}
	students := &mockReportStudents{trending: "Algorithms"}
	svc := NewReportService(students, &mockReportCourses{}, cache, time.Minute, zap.NewNop())

	_, err := svc.AdminDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	// Second read is served from cache; mutate the store to prove it.
	students.trending = "Something Else"
	stats, err := svc.AdminDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Algorithms", stats.TrendingCourse)
	assert.Equal(t, 1, cache.sets)
}

func TestRosterAnnotations(t *testing.T) {
	courseID := primitive.NewObjectID()
	ghostID := primitive.NewObjectID()
	course := fourItemCourse(courseID)

	students := &mockReportStudents{students: []models.Student{
		{
			ID:              primitive.NewObjectID(),
			FullName:        "Ada Lovelace",
			EnrolledCourses: []primitive.ObjectID{courseID, ghostID},
			Progress:        map[string][]string{courseID.Hex(): {"c1", "c2", "c3", "c4"}},
		},
	}}
	courses := &mockReportCourses{courses: []models.Course{course}}
	svc := NewReportService(students, courses, nil, time.Minute, zap.NewNop())

	roster, err := svc.Roster(context.Background())
	require.NoError(t, err)
	require.Len(t, roster, 1)

	entry := roster[0]
	assert.Equal(t, "Ada Lovelace", entry.FullName)
	// The dangling reference counts toward the total but yields no title.
	assert.Equal(t, 2, entry.TotalEnrolledCount)
	assert.Equal(t, []string{"Algorithms"}, entry.EnrolledCourseTitles)
	assert.Equal(t, 1, entry.CompletedCoursesCount)
}
