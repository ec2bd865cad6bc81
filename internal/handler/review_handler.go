package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduportal/course-portal-api/internal/middleware"
	"github.com/eduportal/course-portal-api/internal/service"
	appErrors "github.com/eduportal/course-portal-api/pkg/errors"
	"github.com/eduportal/course-portal-api/pkg/response"
)

// ReviewHandler serves review submission.
type ReviewHandler struct {
	reviews *service.ReviewService
}

// NewReviewHandler creates a new handler.
func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// Submit godoc
// @Summary Submit a course review
// @Tags Reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.SubmitReviewRequest true "Review payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /reviews [post]
func (h *ReviewHandler) Submit(c *gin.Context) {
	student, ok := middleware.CurrentStudent(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	var req service.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid review payload"))
		return
	}

	review, err := h.reviews.Submit(c.Request.Context(), student, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, review)
}
