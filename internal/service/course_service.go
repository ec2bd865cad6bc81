package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/eduportal/course-portal-api/internal/dto"
	"github.com/eduportal/course-portal-api/internal/models"
	appErrors "github.com/eduportal/course-portal-api/pkg/errors"
	"github.com/eduportal/course-portal-api/pkg/storage"
)

type courseRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
	List(ctx context.Context, includeContent bool) ([]models.Course, error)
	Insert(ctx context.Context, course *models.Course) error
	PushContent(ctx context.Context, courseID primitive.ObjectID, item models.ContentItem) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CreateCourseRequest describes a catalog entry creation payload.
type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// UploadContentRequest describes a content upload: either a file stream or
// a YouTube link, not both.
type UploadContentRequest struct {
	CourseID    string
	FileName    string
	File        io.Reader
	YouTubeLink string
}

// CourseService manages the catalog and projects courses into their
// learner-visible delivery shape.
type CourseService struct {
	courses   courseRepository
	store     *storage.UploadStore
	validator *validator.Validate
	logger    *zap.Logger
	apiPrefix string
}

// NewCourseService constructs a CourseService. apiPrefix roots the derived
// download and view URLs.
func NewCourseService(courses courseRepository, store *storage.UploadStore, apiPrefix string, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if apiPrefix == "" {
		apiPrefix = "/api/v1"
	}
	return &CourseService{courses: courses, store: store, validator: validate, logger: logger, apiPrefix: apiPrefix}
}

// GetForStudent returns the normalized course for an enrolled learner.
// The enrollment gate is re-derived from the live enrollment set on every
// request; there is no cached capability.
func (s *CourseService) GetForStudent(ctx context.Context, student *models.Student, courseIDHex string) (*dto.PublicCourse, error) {
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

	return s.NormalizeForDelivery(course), nil
}

// NormalizeForDelivery projects a course into its learner-visible shape:
// file items gain derived download/view URLs, YouTube items get their URL
// normalised. Nothing is stripped and nothing derived is stored.
func (s *CourseService) NormalizeForDelivery(course *models.Course) *dto.PublicCourse {
	courseID := course.ID.Hex()
	content := make([]dto.PublicContentItem, 0, len(course.CourseContent))
	for _, item := range course.CourseContent {
		public := dto.PublicContentItem{
			ContentID:  item.ContentID,
			Kind:       string(item.Kind),
			UploadedAt: item.UploadedAt,
		}
		switch {
		case item.IsFile():
			public.Name = item.File.Name
			public.DownloadURL = fmt.Sprintf("%s/student/course/%s/download/%s", s.apiPrefix, courseID, item.ContentID)
			public.ViewURL = fmt.Sprintf("%s/student/course/%s/view/%s", s.apiPrefix, courseID, item.ContentID)
		case item.YouTube != nil:
			public.URL = NormalizeYouTubeURL(item.YouTube.URL)
		}
		content = append(content, public)
	}

	return &dto.PublicCourse{
		ID:            courseID,
		Title:         course.Title,
		Description:   course.Description,
		CourseContent: content,
		CreatedAt:     course.CreatedAt,
	}
}

// Catalog lists all courses with content stripped (student view).
func (s *CourseService) Catalog(ctx context.Context) ([]dto.CourseSummary, error) {
	courses, err := s.courses.List(ctx, false)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	summaries := make([]dto.CourseSummary, 0, len(courses))
	for _, course := range courses {
		summaries = append(summaries, dto.CourseSummary{
			ID:          course.ID.Hex(),
			Title:       course.Title,
			Description: course.Description,
			CreatedAt:   course.CreatedAt,
		})
	}
	return summaries, nil
}

// ListAll returns every course with full content (admin view).
func (s *CourseService) ListAll(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courses.List(ctx, true)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, nil
}

// Create inserts a new empty course.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course := &models.Course{Title: req.Title, Description: req.Description, CreatedAt: time.Now().UTC()}
	if err := s.courses.Insert(ctx, course); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	return course.ID.Hex(), nil
}

// Delete removes a course. Enrollments and progress referencing it are left
// dangling and degrade to zero-valued aggregates on read.
func (s *CourseService) Delete(ctx context.Context, courseIDHex string) error {
	courseID, err := primitive.ObjectIDFromHex(courseIDHex)
	if err != nil {
		return appErrors.ErrCourseNotFound
	}
	if err := s.courses.Delete(ctx, courseID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}
	return nil
}

// UploadContent appends one content item to a course: an uploaded file
// stored under the upload root, or a YouTube link. Content ids are fresh
// uuids and are never reused.
func (s *CourseService) UploadContent(ctx context.Context, req UploadContentRequest) error {
	hasFile := req.File != nil && req.FileName != ""
	if !hasFile && req.YouTubeLink == "" {
		return appErrors.Clone(appErrors.ErrValidation, "file or YouTube link must be provided")
	}

	courseID, err := primitive.ObjectIDFromHex(req.CourseID)
	if err != nil {
		return appErrors.ErrCourseNotFound
	}
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return appErrors.ErrCourseNotFound
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	contentID := uuid.NewString()
	var item models.ContentItem
	if hasFile {
		safeName := sanitizeFilename(req.FileName)
		locator, err := s.store.SaveStream(fmt.Sprintf("%s_%s", req.CourseID, safeName), req.File)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store file")
		}
		item = models.NewFileItem(contentID, safeName, locator, time.Now().UTC())
	} else {
		item = models.NewYouTubeItem(contentID, req.YouTubeLink, time.Now().UTC())
	}

	if err := s.courses.PushContent(ctx, courseID, item); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to append content")
	}

	s.logger.Info("course content appended",
		zap.String("course_id", req.CourseID),
		zap.String("content_id", contentID),
		zap.String("kind", string(item.Kind)))
	return nil
}

// NormalizeYouTubeURL rewrites a bare 11-character video id token into a
// canonical watch URL. Anything else passes through unchanged. This is a
// best-effort heuristic over alphanumerics, hyphen and underscore, not a
// validation of the real video-id alphabet.
func NormalizeYouTubeURL(url string) string {
	if len(url) != 11 {
		return url
	}
	for _, r := range url {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return url
		}
	}
	return "https://www.youtube.com/watch?v=" + url
}

// sanitizeFilename keeps alphanumerics and a small set of safe punctuation,
// mirroring what the upload endpoint accepts for display names.
func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-', r == ' ':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
