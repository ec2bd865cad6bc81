package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/eduportal/course-portal-api/internal/models"
	appErrors "github.com/eduportal/course-portal-api/pkg/errors"
	"github.com/eduportal/course-portal-api/pkg/export"
)

type certificateStudentRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error)
	GrantCertificate(ctx context.Context, studentID primitive.ObjectID, cert models.Certificate) error
}

type certificateCourseRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
}

// CertificateService issues completion certificates. Issuance is an
// administrative act independent of tracked progress: the grant snapshots
// the course title so the certificate survives catalog changes.
type CertificateService struct {
	students certificateStudentRepository
	courses  certificateCourseRepository
	renderer *export.CertificatePDF
	logger   *zap.Logger
}

// NewCertificateService constructs a CertificateService.
func NewCertificateService(students certificateStudentRepository, courses certificateCourseRepository, renderer *export.CertificatePDF, logger *zap.Logger) *CertificateService {
	if renderer == nil {
		renderer = export.NewCertificatePDF()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CertificateService{students: students, courses: courses, renderer: renderer, logger: logger}
}

// Grant issues a certificate to the student for the course. The grant is
// unconditional on progress, and repeated grants append duplicate
// snapshots rather than failing.
func (s *CertificateService) Grant(ctx context.Context, studentIDHex, courseIDHex string) (*models.Certificate, error) {
	courseID, err := primitive.ObjectIDFromHex(courseIDHex)
	if err != nil {
		return nil, appErrors.ErrCourseNotFound
	}
	studentID, err := primitive.ObjectIDFromHex(studentIDHex)
	if err != nil {
		return nil, appErrors.ErrStudentNotFound
	}

	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.ErrCourseNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.ErrStudentNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	cert := models.Certificate{
		CourseID:    courseID.Hex(),
		CourseTitle: course.Title,
		IssuedAt:    time.Now().UTC(),
	}
	if err := s.students.GrantCertificate(ctx, studentID, cert); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to grant certificate")
	}

	s.logger.Info("certificate granted",
		zap.String("student_id", studentIDHex),
		zap.String("course_id", courseIDHex),
		zap.String("course_title", course.Title))
	return &cert, nil
}

// List returns the student's issuance history, duplicates included.
func (s *CertificateService) List(student *models.Student) []models.Certificate {
	if student.Certificates == nil {
		return []models.Certificate{}
	}
	return student.Certificates
}

// RenderPDF renders the certificate for one of the student's granted
// courses as a downloadable document.
func (s *CertificateService) RenderPDF(student *models.Student, courseIDHex string) ([]byte, error) {
	for _, cert := range student.Certificates {
		if cert.CourseID == courseIDHex {
			pdf, err := s.renderer.Render(student.FullName, cert.CourseTitle, cert.IssuedAt)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render certificate")
			}
			return pdf, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "no certificate issued for this course")
}
