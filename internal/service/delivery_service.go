package service

import (
	"context"
	"errors"
	"mime"
	"path/filepath"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/eduportal/course-portal-api/internal/models"
	appErrors "github.com/eduportal/course-portal-api/pkg/errors"
	"github.com/eduportal/course-portal-api/pkg/storage"
)

type deliveryCourseRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
}

// DeliveryMode selects the content disposition of a served file.
type DeliveryMode string

const (
	// ModeDownload always forces an attachment disposition.
	ModeDownload DeliveryMode = "download"
	// ModeView serves inline except for formats browsers cannot render.
	ModeView DeliveryMode = "view"
)

// Delivery describes a resolved file ready to be served: the absolute path
// on disk plus the headers the transport should set.
type Delivery struct {
	Path        string
	FileName    string
	ContentType string
	Disposition string
}

// DeliveryService resolves (course, content) references to files on disk
// and decides how each is presented. Every resolution re-checks enrollment
// and re-validates the stored path against the upload root, so a corrupted
// or hostile stored locator can never escape it.
type DeliveryService struct {
	courses deliveryCourseRepository
	store   *storage.UploadStore
	logger  *zap.Logger
}

// NewDeliveryService constructs a DeliveryService.
func NewDeliveryService(courses deliveryCourseRepository, store *storage.UploadStore, logger *zap.Logger) *DeliveryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeliveryService{courses: courses, store: store, logger: logger}
}

// Resolve authorizes and locates one file content item. Checks run in a
// fixed order so the caller's status codes are deterministic: enrollment,
// course existence, content existence (file-typed only), path containment,
// file presence.
func (s *DeliveryService) Resolve(ctx context.Context, student *models.Student, courseIDHex, contentID string, mode DeliveryMode) (*Delivery, error) {
	courseID, err := primitive.ObjectIDFromHex(courseIDHex)
	if err != nil {
		return nil, appErrors.ErrCourseNotFound
	}
	if !student.IsEnrolled(courseID) {
		return nil, appErrors.ErrNotEnrolled
	}

	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.ErrCourseNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	item, ok := course.FindContentItem(contentID)
	if !ok || !item.IsFile() {
		return nil, appErrors.ErrContentNotFound
	}

	path, err := s.store.Resolve(item.File.Path)
	if err != nil {
		if errors.Is(err, storage.ErrOutsideRoot) {
			s.logger.Warn("stored content path escapes upload root",
				zap.String("course_id", courseIDHex),
				zap.String("content_id", contentID))
			return nil, appErrors.ErrForbidden
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve content path")
	}
	if !s.store.Exists(path) {
		return nil, appErrors.ErrFileMissing
	}

	name := item.File.Name
	contentType := contentTypeFor(name)
	return &Delivery{
		Path:        path,
		FileName:    name,
		ContentType: contentType,
		Disposition: dispositionFor(name, mode),
	}, nil
}

// contentTypeFor maps a filename to a MIME type, with explicit overrides
// for the document formats the portal serves most.
func contentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".doc", ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}

// dispositionFor returns the Content-Disposition header value. Word
// documents are forced to attachment even in view mode since browsers
// cannot render them inline.
func dispositionFor(name string, mode DeliveryMode) string {
	ext := strings.ToLower(filepath.Ext(name))
	if mode == ModeDownload || ext == ".doc" || ext == ".docx" {
		return `attachment; filename="` + name + `"`
	}
	return `inline; filename="` + name + `"`
}
