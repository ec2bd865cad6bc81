package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/eduportal/course-portal-api/internal/middleware"
	"github.com/eduportal/course-portal-api/internal/models"
	"github.com/eduportal/course-portal-api/internal/service"
	"github.com/eduportal/course-portal-api/pkg/storage"
)

type fakeCourseRepo struct {
	courses map[primitive.ObjectID]models.Course
}

func (f *fakeCourseRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	if course, ok := f.courses[id]; ok {
		return &course, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeCourseRepo) List(ctx context.Context, includeContent bool) ([]models.Course, error) {
	var out []models.Course
	for _, course := range f.courses {
		out = append(out, course)
	}
	return out, nil
}

func (f *fakeCourseRepo) ListByIDs(ctx context.Context, ids []primitive.ObjectID, includeContent bool) ([]models.Course, error) {
	var out []models.Course
	for _, id := range ids {
		if course, ok := f.courses[id]; ok {
			out = append(out, course)
		}
	}
	return out, nil
}

func (f *fakeCourseRepo) Insert(ctx context.Context, course *models.Course) error {
	course.ID = primitive.NewObjectID()
	f.courses[course.ID] = *course
	return nil
}

func (f *fakeCourseRepo) PushContent(ctx context.Context, courseID primitive.ObjectID, item models.ContentItem) error {
	course := f.courses[courseID]
	course.CourseContent = append(course.CourseContent, item)
	f.courses[courseID] = course
	return nil
}

func (f *fakeCourseRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.courses, id)
	return nil
}

func (f *fakeCourseRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.courses)), nil
}

type fakeProgressRepo struct {
	marks []string
}

func (f *fakeProgressRepo) AddCompletedContent(ctx context.Context, studentID primitive.ObjectID, courseID, contentID string) error {
	f.marks = append(f.marks, contentID)
	return nil
}

type courseHandlerFixture struct {
	handler  *CourseHandler
	courseID primitive.ObjectID
	student  *models.Student
	progress *fakeProgressRepo
}

func newCourseHandlerFixture(t *testing.T) *courseHandlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	courseID := primitive.NewObjectID()
	repo := &fakeCourseRepo{courses: map[primitive.ObjectID]models.Course{
		courseID: {ID: courseID, Title: "Go", CourseContent: []models.ContentItem{
			models.NewYouTubeItem("c1", "dQw4w9WgXcQ", time.Now()),
		}},
	}}
	progress := &fakeProgressRepo{}
	store, err := storage.NewUploadStore(t.TempDir())
	require.NoError(t, err)

	courseSvc := service.NewCourseService(repo, store, "/api/v1", nil, zap.NewNop())
	progressSvc := service.NewProgressService(progress, repo, zap.NewNop())
	deliverySvc := service.NewDeliveryService(repo, store, zap.NewNop())

	return &courseHandlerFixture{
		handler:  NewCourseHandler(courseSvc, progressSvc, deliverySvc, nil),
		courseID: courseID,
		student:  &models.Student{ID: primitive.NewObjectID(), EnrolledCourses: []primitive.ObjectID{courseID}},
		progress: progress,
	}
}

func TestGetCourseNotEnrolled(t *testing.T) {
	fx := newCourseHandlerFixture(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/student/course/"+fx.courseID.Hex(), nil)
	c.Params = gin.Params{{Key: "courseID", Value: fx.courseID.Hex()}}
	c.Set(middleware.ContextStudentKey, &models.Student{ID: primitive.NewObjectID()})

	fx.handler.GetCourse(c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetCourseNormalized(t *testing.T) {
	fx := newCourseHandlerFixture(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/student/course/"+fx.courseID.Hex(), nil)
	c.Params = gin.Params{{Key: "courseID", Value: fx.courseID.Hex()}}
	c.Set(middleware.ContextStudentKey, fx.student)

	fx.handler.GetCourse(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data struct {
			CourseContent []struct {
				URL string `json:"url"`
			} `json:"course_content"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.CourseContent, 1)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", envelope.Data.CourseContent[0].URL)
}

func TestMarkCompleteBindingError(t *testing.T) {
	fx := newCourseHandlerFixture(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/student/course/x/mark-complete", strings.NewReader("{"))
	c.Params = gin.Params{{Key: "courseID", Value: fx.courseID.Hex()}}
	c.Set(middleware.ContextStudentKey, fx.student)

	fx.handler.MarkComplete(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, fx.progress.marks)
}

func TestMarkCompleteRecords(t *testing.T) {
	fx := newCourseHandlerFixture(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	body := strings.NewReader(`{"content_id":"c1"}`)
	c.Request = httptest.NewRequest(http.MethodPost, "/student/course/x/mark-complete", body)
	c.Params = gin.Params{{Key: "courseID", Value: fx.courseID.Hex()}}
	c.Set(middleware.ContextStudentKey, fx.student)

	fx.handler.MarkComplete(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"c1"}, fx.progress.marks)
}

func TestDownloadUnknownContent(t *testing.T) {
	fx := newCourseHandlerFixture(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/student/course/x/download/ghost", nil)
	c.Params = gin.Params{
		{Key: "courseID", Value: fx.courseID.Hex()},
		{Key: "contentID", Value: "ghost"},
	}
	c.Set(middleware.ContextStudentKey, fx.student)

	fx.handler.Download(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
