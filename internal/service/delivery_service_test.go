package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/eduportal/course-portal-api/internal/models"
	appErrors "github.com/eduportal/course-portal-api/pkg/errors"
	"github.com/eduportal/course-portal-api/pkg/storage"
)

type deliveryFixture struct {
	svc      *DeliveryService
	courseID primitive.ObjectID
	student  *models.Student
	repo     *mockCourseRepo
	baseDir  string
}

func newDeliveryFixture(t *testing.T, items ...models.ContentItem) *deliveryFixture {
	t.Helper()
	baseDir := t.TempDir()
	store, err := storage.NewUploadStore(baseDir)
	require.NoError(t, err)

	courseID := primitive.NewObjectID()
	repo := &mockCourseRepo{courses: map[primitive.ObjectID]models.Course{
		courseID: {ID: courseID, Title: "Go", CourseContent: items},
	}}
	student := &models.Student{
		ID:              primitive.NewObjectID(),
		EnrolledCourses: []primitive.ObjectID{courseID},
	}
	return &deliveryFixture{
		svc:      NewDeliveryService(repo, store, zap.NewNop()),
		courseID: courseID,
		student:  student,
		repo:     repo,
		baseDir:  baseDir,
	}
}

func writeUpload(t *testing.T, baseDir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(baseDir, name), []byte("content"), 0o644))
}

func TestResolveRequiresEnrollment(t *testing.T) {
	fx := newDeliveryFixture(t, models.NewFileItem("c1", "intro.pdf", "intro.pdf", time.Now()))

	stranger := &models.Student{ID: primitive.NewObjectID()}
	_, err := fx.svc.Resolve(context.Background(), stranger, fx.courseID.Hex(), "c1", ModeDownload)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotEnrolled.Code, appErrors.FromError(err).Code)
}

func TestResolveUnknownContent(t *testing.T) {
	fx := newDeliveryFixture(t, models.NewFileItem("c1", "intro.pdf", "intro.pdf", time.Now()))

	_, err := fx.svc.Resolve(context.Background(), fx.student, fx.courseID.Hex(), "ghost", ModeDownload)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrContentNotFound.Code, appErrors.FromError(err).Code)
}

func TestResolveYouTubeItemIsNotDeliverable(t *testing.T) {
	fx := newDeliveryFixture(t, models.NewYouTubeItem("c1", "dQw4w9WgXcQ", time.Now()))

	_, err := fx.svc.Resolve(context.Background(), fx.student, fx.courseID.Hex(), "c1", ModeDownload)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrContentNotFound.Code, appErrors.FromError(err).Code)
}

func TestResolveRejectsTraversalPath(t *testing.T) {
	fx := newDeliveryFixture(t, models.NewFileItem("c1", "secrets.txt", "../outside/secrets.txt", time.Now()))

	_, err := fx.svc.Resolve(context.Background(), fx.student, fx.courseID.Hex(), "c1", ModeDownload)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestResolveFileMissingOnDisk(t *testing.T) {
	fx := newDeliveryFixture(t, models.NewFileItem("c1", "gone.pdf", "gone.pdf", time.Now()))

	_, err := fx.svc.Resolve(context.Background(), fx.student, fx.courseID.Hex(), "c1", ModeDownload)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrFileMissing.Code, appErrors.FromError(err).Code)
}

func TestResolveDownloadAlwaysAttachment(t *testing.T) {
	fx := newDeliveryFixture(t, models.NewFileItem("c1", "intro.pdf", "intro.pdf", time.Now()))
	writeUpload(t, fx.baseDir, "intro.pdf")

	delivery, err := fx.svc.Resolve(context.Background(), fx.student, fx.courseID.Hex(), "c1", ModeDownload)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", delivery.ContentType)
	assert.Equal(t, `attachment; filename="intro.pdf"`, delivery.Disposition)
}

func TestResolveViewInlineForPDF(t *testing.T) {
	fx := newDeliveryFixture(t, models.NewFileItem("c1", "intro.pdf", "intro.pdf", time.Now()))
	writeUpload(t, fx.baseDir, "intro.pdf")

	delivery, err := fx.svc.Resolve(context.Background(), fx.student, fx.courseID.Hex(), "c1", ModeView)
	require.NoError(t, err)
	assert.Equal(t, `inline; filename="intro.pdf"`, delivery.Disposition)
}

func TestResolveViewForcesAttachmentForWordDocs(t *testing.T) {
	fx := newDeliveryFixture(t, models.NewFileItem("c1", "notes.docx", "notes.docx", time.Now()))
	writeUpload(t, fx.baseDir, "notes.docx")

	delivery, err := fx.svc.Resolve(context.Background(), fx.student, fx.courseID.Hex(), "c1", ModeView)
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", delivery.ContentType)
	assert.Equal(t, `attachment; filename="notes.docx"`, delivery.Disposition)
}

func TestContentTypeFallbacks(t *testing.T) {
	assert.Equal(t, "application/pdf", contentTypeFor("a.PDF"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", contentTypeFor("a.doc"))
	assert.Equal(t, "application/octet-stream", contentTypeFor("no-extension"))
}
