package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduportal/course-portal-api/internal/middleware"
	"github.com/eduportal/course-portal-api/internal/service"
	appErrors "github.com/eduportal/course-portal-api/pkg/errors"
	"github.com/eduportal/course-portal-api/pkg/response"
)

// CourseHandler serves the catalog, the enrolled course view and the
// content delivery endpoints.
type CourseHandler struct {
	courses  *service.CourseService
	progress *service.ProgressService
	delivery *service.DeliveryService
	metrics  *service.MetricsService
}

// NewCourseHandler creates a new handler. metrics may be nil.
func NewCourseHandler(courses *service.CourseService, progress *service.ProgressService, delivery *service.DeliveryService, metrics *service.MetricsService) *CourseHandler {
	return &CourseHandler{courses: courses, progress: progress, delivery: delivery, metrics: metrics}
}

// Catalog godoc
// @Summary List the course catalog
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) Catalog(c *gin.Context) {
	courses, err := h.courses.Catalog(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses)
}

// GetCourse godoc
// @Summary Get an enrolled course with its content
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Param courseID path string true "Course id"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /student/course/{courseID} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	student, ok := middleware.CurrentStudent(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}
	course, err := h.courses.GetForStudent(c.Request.Context(), student, c.Param("courseID"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// MarkComplete godoc
// @Summary Mark a content item completed
// @Tags Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseID path string true "Course id"
// @Param payload body object{content_id=string} true "Content id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /student/course/{courseID}/mark-complete [post]
func (h *CourseHandler) MarkComplete(c *gin.Context) {
	student, ok := middleware.CurrentStudent(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	var payload struct {
		ContentID string `json:"content_id"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	if err := h.progress.MarkComplete(c.Request.Context(), student, c.Param("courseID"), payload.ContentID); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"completed": true})
}

// Download godoc
// @Summary Download a file content item
// @Tags Courses
// @Produce application/octet-stream
// @Security BearerAuth
// @Param courseID path string true "Course id"
// @Param contentID path string true "Content id"
// @Success 200 {file} binary
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /student/course/{courseID}/download/{contentID} [get]
func (h *CourseHandler) Download(c *gin.Context) {
	h.serve(c, service.ModeDownload)
}

// View godoc
// @Summary View a file content item inline
// @Tags Courses
// @Produce application/octet-stream
// @Security BearerAuth
// @Param courseID path string true "Course id"
// @Param contentID path string true "Content id"
// @Success 200 {file} binary
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /student/course/{courseID}/view/{contentID} [get]
func (h *CourseHandler) View(c *gin.Context) {
	h.serve(c, service.ModeView)
}

func (h *CourseHandler) serve(c *gin.Context, mode service.DeliveryMode) {
	student, ok := middleware.CurrentStudent(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	delivery, err := h.delivery.Resolve(c.Request.Context(), student, c.Param("courseID"), c.Param("contentID"), mode)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.metrics.ObserveDelivery(string(mode))
	c.Header("Content-Disposition", delivery.Disposition)
	c.Header("Content-Type", delivery.ContentType)
	c.File(delivery.Path)
}
