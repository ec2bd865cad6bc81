package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/eduportal/course-portal-api/internal/models"
	appErrors "github.com/eduportal/course-portal-api/pkg/errors"
)

type mockProgressStudents struct {
	progress map[string][]string
}

func (m *mockProgressStudents) AddCompletedContent(ctx context.Context, studentID primitive.ObjectID, courseID, contentID string) error {
	if m.progress == nil {
		m.progress = make(map[string][]string)
	}
	for _, id := range m.progress[courseID] {
		if id == contentID {
			return nil
		}
	}
	m.progress[courseID] = append(m.progress[courseID], contentID)
	return nil
}

type mockProgressCourses struct {
	courses []models.Course
}

func (m *mockProgressCourses) ListByIDs(ctx context.Context, ids []primitive.ObjectID, includeContent bool) ([]models.Course, error) {
	var out []models.Course
	for _, course := range m.courses {
		for _, id := range ids {
			if course.ID == id {
				out = append(out, course)
			}
		}
	}
	return out, nil
}

func (m *mockProgressCourses) Count(ctx context.Context) (int64, error) {
	return int64(len(m.courses)), nil
}

func fourItemCourse(id primitive.ObjectID) models.Course {
	now := time.Now()
	return models.Course{
		ID:    id,
		Title: "Algorithms",
		CourseContent: []models.ContentItem{
			models.NewFileItem("c1", "intro.pdf", "f1.pdf", now),
			models.NewFileItem("c2", "part2.pdf", "f2.pdf", now),
			models.NewYouTubeItem("c3", "dQw4w9WgXcQ", now),
			models.NewFileItem("c4", "final.pdf", "f4.pdf", now),
		},
	}
}

func TestProgressPercentageZeroContent(t *testing.T) {
	course := models.Course{ID: primitive.NewObjectID(), Title: "Empty"}
	assert.Equal(t, 0, ProgressPercentage(&course, []string{"anything"}))
	assert.False(t, IsCourseCompleted(&course, []string{"anything"}))
}

func TestProgressPercentagePartialAndFull(t *testing.T) {
	course := fourItemCourse(primitive.NewObjectID())

	assert.Equal(t, 0, ProgressPercentage(&course, nil))
	assert.Equal(t, 25, ProgressPercentage(&course, []string{"c1"}))
	assert.Equal(t, 50, ProgressPercentage(&course, []string{"c1", "c3"}))
	assert.Equal(t, 100, ProgressPercentage(&course, []string{"c1", "c2", "c3", "c4"}))
	assert.True(t, IsCourseCompleted(&course, []string{"c1", "c2", "c3", "c4"}))
	assert.False(t, IsCourseCompleted(&course, []string{"c1", "c2", "c3"}))
}

func TestProgressPercentageIgnoresOrphanIDs(t *testing.T) {
	course := fourItemCourse(primitive.NewObjectID())

	// Orphaned ids (mistyped or from removed content) never count.
	assert.Equal(t, 25, ProgressPercentage(&course, []string{"c1", "ghost", "other"}))
	assert.False(t, IsCourseCompleted(&course, []string{"c1", "ghost", "other", "more"}))
}

func TestMarkCompleteIdempotent(t *testing.T) {
	students := &mockProgressStudents{}
	courseID := primitive.NewObjectID()
	student := &models.Student{ID: primitive.NewObjectID()}
	svc := NewProgressService(students, &mockProgressCourses{}, zap.NewNop())

	require.NoError(t, svc.MarkComplete(context.Background(), student, courseID.Hex(), "c1"))
	require.NoError(t, svc.MarkComplete(context.Background(), student, courseID.Hex(), "c1"))
	assert.Equal(t, []string{"c1"}, students.progress[courseID.Hex()])
}

func TestMarkCompleteRequiresContentID(t *testing.T) {
	svc := NewProgressService(&mockProgressStudents{}, &mockProgressCourses{}, zap.NewNop())
	err := svc.MarkComplete(context.Background(), &models.Student{}, primitive.NewObjectID().Hex(), "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestMarkCompleteAcceptsUnknownContentID(t *testing.T) {
	students := &mockProgressStudents{}
	courseID := primitive.NewObjectID()
	svc := NewProgressService(students, &mockProgressCourses{}, zap.NewNop())

	// The id is stored as-is; it simply never counts toward the percentage.
	require.NoError(t, svc.MarkComplete(context.Background(), &models.Student{}, courseID.Hex(), "not-in-course"))
	assert.Equal(t, []string{"not-in-course"}, students.progress[courseID.Hex()])
}

func TestProgressOverview(t *testing.T) {
	courseID := primitive.NewObjectID()
	courses := &mockProgressCourses{courses: []models.Course{fourItemCourse(courseID)}}
	student := &models.Student{
		ID:              primitive.NewObjectID(),
		EnrolledCourses: []primitive.ObjectID{courseID},
		Progress:        map[string][]string{courseID.Hex(): {"c1", "c2"}},
	}
	svc := NewProgressService(&mockProgressStudents{}, courses, zap.NewNop())

	overview, err := svc.Overview(context.Background(), student)
	require.NoError(t, err)
	require.Len(t, overview, 1)
	assert.Equal(t, courseID.Hex(), overview[0].CourseID)
	assert.Equal(t, "Algorithms", overview[0].CourseTitle)
	assert.Equal(t, 50, overview[0].Percentage)
}

func TestProgressOverviewToleratesDanglingEnrollment(t *testing.T) {
	courseID := primitive.NewObjectID()
	courses := &mockProgressCourses{courses: []models.Course{fourItemCourse(courseID)}}
	student := &models.Student{
		ID:              primitive.NewObjectID(),
		EnrolledCourses: []primitive.ObjectID{courseID, primitive.NewObjectID()},
	}
	svc := NewProgressService(&mockProgressStudents{}, courses, zap.NewNop())

	overview, err := svc.Overview(context.Background(), student)
	require.NoError(t, err)
	assert.Len(t, overview, 1)
}

func TestStudentDashboardStats(t *testing.T) {
	completedID := primitive.NewObjectID()
	partialID := primitive.NewObjectID()
	completed := fourItemCourse(completedID)
	partial := fourItemCourse(partialID)
	courses := &mockProgressCourses{courses: []models.Course{completed, partial}}

	student := &models.Student{
		ID:              primitive.NewObjectID(),
		EnrolledCourses: []primitive.ObjectID{completedID, partialID},
		Progress: map[string][]string{
			completedID.Hex(): {"c1", "c2", "c3", "c4"},
			partialID.Hex():   {"c1"},
		},
	}
	svc := NewProgressService(&mockProgressStudents{}, courses, zap.NewNop())

	stats, err := svc.DashboardStats(context.Background(), student)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalCoursesAvailable)
	assert.Equal(t, 2, stats.EnrolledCoursesCount)
	assert.Equal(t, 1, stats.CompletedCoursesCount)
}
