package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/eduportal/course-portal-api/internal/dto"
	"github.com/eduportal/course-portal-api/internal/models"
	appErrors "github.com/eduportal/course-portal-api/pkg/errors"
)

type reviewRepository interface {
	Insert(ctx context.Context, review *models.Review) error
	ListWithCourseTitles(ctx context.Context) ([]dto.ReviewWithCourse, error)
}

// SubmitReviewRequest describes a review submission payload.
type SubmitReviewRequest struct {
	CourseID string `json:"course_id" validate:"required"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comment  string `json:"comment"`
}

// ReviewService records course ratings. Submissions are not gated on
// enrollment, and the author's name is snapshotted so the review survives
// account deletion.
type ReviewService struct {
	reviews   reviewRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReviewService constructs a ReviewService.
func NewReviewService(reviews reviewRepository, validate *validator.Validate, logger *zap.Logger) *ReviewService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewService{reviews: reviews, validator: validate, logger: logger}
}

// Submit stores a review authored by the student.
func (s *ReviewService) Submit(ctx context.Context, student *models.Student, req SubmitReviewRequest) (*models.Review, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid review payload")
	}
	courseID, err := primitive.ObjectIDFromHex(req.CourseID)
	if err != nil {
		return nil, appErrors.ErrCourseNotFound
	}

	review := &models.Review{
		CourseID:    courseID,
		StudentID:   student.ID,
		StudentName: student.FullName,
		Rating:      req.Rating,
		Comment:     req.Comment,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.reviews.Insert(ctx, review); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store review")
	}
	return review, nil
}

// ListAll returns every review newest first, joined with course titles.
func (s *ReviewService) ListAll(ctx context.Context) ([]dto.ReviewWithCourse, error) {
	reviews, err := s.reviews.ListWithCourseTitles(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reviews")
	}
	return reviews, nil
}
