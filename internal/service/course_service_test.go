package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/eduportal/course-portal-api/internal/models"
	appErrors "github.com/eduportal/course-portal-api/pkg/errors"
	"github.com/eduportal/course-portal-api/pkg/storage"
)

type mockCourseRepo struct {
	courses map[primitive.ObjectID]models.Course
	pushed  []models.ContentItem
	deleted []primitive.ObjectID
}

func (m *mockCourseRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	if course, ok := m.courses[id]; ok {
		return &course, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockCourseRepo) List(ctx context.Context, includeContent bool) ([]models.Course, error) {
	var out []models.Course
	for _, course := range m.courses {
		if !includeContent {
			course.CourseContent = nil
		}
		out = append(out, course)
	}
	return out, nil
}

func (m *mockCourseRepo) Insert(ctx context.Context, course *models.Course) error {
	if m.courses == nil {
		m.courses = make(map[primitive.ObjectID]models.Course)
	}
	course.ID = primitive.NewObjectID()
	m.courses[course.ID] = *course
	return nil
}

func (m *mockCourseRepo) PushContent(ctx context.Context, courseID primitive.ObjectID, item models.ContentItem) error {
	m.pushed = append(m.pushed, item)
	course := m.courses[courseID]
	course.CourseContent = append(course.CourseContent, item)
	m.courses[courseID] = course
	return nil
}

func (m *mockCourseRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(m.courses, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func newCourseService(t *testing.T, repo *mockCourseRepo) *CourseService {
	t.Helper()
	store, err := storage.NewUploadStore(t.TempDir())
	require.NoError(t, err)
	return NewCourseService(repo, store, "/api/v1", validator.New(), zap.NewNop())
}

func TestNormalizeYouTubeURL(t *testing.T) {
	// A bare 11-char video id becomes a watch URL.
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", NormalizeYouTubeURL("dQw4w9WgXcQ"))

	// Full URLs and anything that is not exactly an id pass through.
	full := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	assert.Equal(t, full, NormalizeYouTubeURL(full))
	assert.Equal(t, "short", NormalizeYouTubeURL("short"))
	assert.Equal(t, "has spaces!!", NormalizeYouTubeURL("has spaces!!"))
	assert.Equal(t, "twelve-chars", NormalizeYouTubeURL("twelve-chars"))
}

func TestGetForStudentRequiresEnrollment(t *testing.T) {
	courseID := primitive.NewObjectID()
	repo := &mockCourseRepo{courses: map[primitive.ObjectID]models.Course{courseID: {ID: courseID}}}
	svc := newCourseService(t, repo)

	_, err := svc.GetForStudent(context.Background(), &models.Student{}, courseID.Hex())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotEnrolled.Code, appErrors.FromError(err).Code)
}

func TestGetForStudentNormalizesContent(t *testing.T) {
	courseID := primitive.NewObjectID()
	now := time.Now()
	repo := &mockCourseRepo{courses: map[primitive.ObjectID]models.Course{courseID: {
		ID:    courseID,
		Title: "Go",
		CourseContent: []models.ContentItem{
			models.NewFileItem("c1", "intro.pdf", "stored/intro.pdf", now),
			models.NewYouTubeItem("c2", "dQw4w9WgXcQ", now),
		},
	}}}
	svc := newCourseService(t, repo)

	student := &models.Student{EnrolledCourses: []primitive.ObjectID{courseID}}
	course, err := svc.GetForStudent(context.Background(), student, courseID.Hex())
	require.NoError(t, err)
	require.Len(t, course.CourseContent, 2)

	file := course.CourseContent[0]
	assert.Equal(t, "/api/v1/student/course/"+courseID.Hex()+"/download/c1", file.DownloadURL)
	assert.Equal(t, "/api/v1/student/course/"+courseID.Hex()+"/view/c1", file.ViewURL)
	assert.Equal(t, "intro.pdf", file.Name)

	video := course.CourseContent[1]
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", video.URL)
	assert.Empty(t, video.DownloadURL)
}

func TestUploadContentRequiresFileOrLink(t *testing.T) {
	svc := newCourseService(t, &mockCourseRepo{})

	err := svc.UploadContent(context.Background(), UploadContentRequest{CourseID: primitive.NewObjectID().Hex()})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUploadContentStoresFile(t *testing.T) {
	courseID := primitive.NewObjectID()
	repo := &mockCourseRepo{courses: map[primitive.ObjectID]models.Course{courseID: {ID: courseID}}}
	svc := newCourseService(t, repo)

	err := svc.UploadContent(context.Background(), UploadContentRequest{
		CourseID: courseID.Hex(),
		FileName: "week 1/notes?.pdf",
		File:     strings.NewReader("%PDF-1.4"),
	})
	require.NoError(t, err)
	require.Len(t, repo.pushed, 1)

	item := repo.pushed[0]
	assert.True(t, item.IsFile())
	assert.NotEmpty(t, item.ContentID)
	assert.Equal(t, "week 1notes.pdf", item.File.Name)
	assert.Contains(t, item.File.Path, courseID.Hex()+"_")
}

func TestUploadContentYouTubeLink(t *testing.T) {
	courseID := primitive.NewObjectID()
	repo := &mockCourseRepo{courses: map[primitive.ObjectID]models.Course{courseID: {ID: courseID}}}
	svc := newCourseService(t, repo)

	err := svc.UploadContent(context.Background(), UploadContentRequest{
		CourseID:    courseID.Hex(),
		YouTubeLink: "dQw4w9WgXcQ",
	})
	require.NoError(t, err)
	require.Len(t, repo.pushed, 1)
	assert.Equal(t, models.ContentKindYouTube, repo.pushed[0].Kind)
	assert.Equal(t, "dQw4w9WgXcQ", repo.pushed[0].YouTube.URL)
}

func TestUploadContentUnknownCourse(t *testing.T) {
	svc := newCourseService(t, &mockCourseRepo{})

	err := svc.UploadContent(context.Background(), UploadContentRequest{
		CourseID:    primitive.NewObjectID().Hex(),
		YouTubeLink: "dQw4w9WgXcQ",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrCourseNotFound.Code, appErrors.FromError(err).Code)
}

func TestCreateCourseValidation(t *testing.T) {
	svc := newCourseService(t, &mockCourseRepo{})

	_, err := svc.Create(context.Background(), CreateCourseRequest{Title: "no description"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	id, err := svc.Create(context.Background(), CreateCourseRequest{Title: "Go", Description: "intro"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestSanitizeFilename(t *testing.T) {
	// Dots survive but separators never do.
	assert.Equal(t, "....notes.pdf", sanitizeFilename("../../notes.pdf"))
	assert.Equal(t, "my file_v2-final.docx", sanitizeFilename("my file_v2-final.docx"))
	assert.Equal(t, "evilsh", sanitizeFilename("evil;$(sh)"))
}
