package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/eduportal/course-portal-api/internal/dto"
	"github.com/eduportal/course-portal-api/internal/models"
	appErrors "github.com/eduportal/course-portal-api/pkg/errors"
)

type enrollmentStudentRepository interface {
	AddEnrolledCourse(ctx context.Context, studentID, courseID primitive.ObjectID) error
}

type enrollmentCourseRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
	ListByIDs(ctx context.Context, ids []primitive.ObjectID, includeContent bool) ([]models.Course, error)
}

// EnrollmentService owns the single state transition of the (learner,
// course) pair: NotEnrolled to Enrolled. There is no unenroll.
type EnrollmentService struct {
	students enrollmentStudentRepository
	courses  enrollmentCourseRepository
	logger   *zap.Logger
}

// NewEnrollmentService constructs an EnrollmentService.
func NewEnrollmentService(students enrollmentStudentRepository, courses enrollmentCourseRepository, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{students: students, courses: courses, logger: logger}
}

// Enroll adds the course to the student's enrollment set. The existence
// check and the student update are sequential, not transactional: a course
// deleted in between leaves a dangling reference, tolerated on read.
func (s *EnrollmentService) Enroll(ctx context.Context, student *models.Student, courseIDHex string) error {
	courseID, err := primitive.ObjectIDFromHex(courseIDHex)
	if err != nil {
		return appErrors.ErrCourseNotFound
	}

	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return appErrors.ErrCourseNotFound
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	if student.IsEnrolled(courseID) {
		return appErrors.ErrAlreadyEnrolled
	}

	if err := s.students.AddEnrolledCourse(ctx, student.ID, courseID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enroll")
	}

	s.logger.Info("student enrolled",
		zap.String("student_id", student.ID.Hex()),
		zap.String("course_id", courseIDHex))
	return nil
}

// EnrolledCourses lists the student's courses with content stripped.
// Dangling enrollment references simply produce fewer rows.
func (s *EnrollmentService) EnrolledCourses(ctx context.Context, student *models.Student) ([]dto.CourseSummary, error) {
	courses, err := s.courses.ListByIDs(ctx, student.EnrolledCourses, false)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrolled courses")
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
