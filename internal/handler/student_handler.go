package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduportal/course-portal-api/internal/middleware"
	"github.com/eduportal/course-portal-api/internal/service"
	appErrors "github.com/eduportal/course-portal-api/pkg/errors"
	"github.com/eduportal/course-portal-api/pkg/response"
)

// StudentHandler serves the learner's own account, enrollment, progress,
// certificate and messaging endpoints.
type StudentHandler struct {
	accounts     *service.AccountService
	enrollments  *service.EnrollmentService
	progress     *service.ProgressService
	certificates *service.CertificateService
	messages     *service.MessageService
}

// NewStudentHandler creates a new handler.
func NewStudentHandler(accounts *service.AccountService, enrollments *service.EnrollmentService, progress *service.ProgressService, certificates *service.CertificateService, messages *service.MessageService) *StudentHandler {
	return &StudentHandler{
		accounts:     accounts,
		enrollments:  enrollments,
		progress:     progress,
		certificates: certificates,
		messages:     messages,
	}
}

// Profile godoc
// @Summary Get own profile
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /student/profile [get]
func (h *StudentHandler) Profile(c *gin.Context) {
	student, ok := middleware.CurrentStudent(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}
	response.JSON(c, http.StatusOK, student.Profile())
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags Student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.UpdateProfileRequest true "Partial profile update"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /student/profile [put]
func (h *StudentHandler) UpdateProfile(c *gin.Context) {
	student, ok := middleware.CurrentStudent(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid profile payload"))
		return
	}

	if err := h.accounts.UpdateStudent(c.Request.Context(), student, req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"updated": true})
}

// DeleteProfile godoc
// @Summary Delete own account
// @Tags Student
// @Security BearerAuth
// @Success 204 {object} response.Envelope
// @Router /student/profile [delete]
func (h *StudentHandler) DeleteProfile(c *gin.Context) {
	student, ok := middleware.CurrentStudent(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}
	if err := h.accounts.DeleteStudent(c.Request.Context(), student); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Enroll godoc
// @Summary Enroll in a course
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Param courseID path string true "Course id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /student/enroll/{courseID} [post]
func (h *StudentHandler) Enroll(c *gin.Context) {
	student, ok := middleware.CurrentStudent(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}
	if err := h.enrollments.Enroll(c.Request.Context(), student, c.Param("courseID")); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"enrolled": true})
}

// EnrolledCourses godoc
// @Summary List enrolled courses
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /student/enrolled-courses [get]
func (h *StudentHandler) EnrolledCourses(c *gin.Context) {
	student, ok := middleware.CurrentStudent(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}
	courses, err := h.enrollments.EnrolledCourses(c.Request.Context(), student)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses)
}

// ProgressOverview godoc
// @Summary Get progress for every enrolled course
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /student/progress [get]
func (h *StudentHandler) ProgressOverview(c *gin.Context) {
	student, ok := middleware.CurrentStudent(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}
	overview, err := h.progress.Overview(c.Request.Context(), student)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview)
}

// DashboardStats godoc
// @Summary Get learner dashboard statistics
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /student/dashboard-stats [get]
func (h *StudentHandler) DashboardStats(c *gin.Context) {
	student, ok := middleware.CurrentStudent(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}
	stats, err := h.progress.DashboardStats(c.Request.Context(), student)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

// Certificates godoc
// @Summary List issued certificates
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /student/certificates [get]
func (h *StudentHandler) Certificates(c *gin.Context) {
	student, ok := middleware.CurrentStudent(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}
	response.JSON(c, http.StatusOK, h.certificates.List(student))
}

// CertificatePDF godoc
// @Summary Download a certificate as PDF
// @Tags Student
// @Produce application/pdf
// @Security BearerAuth
// @Param courseID path string true "Course id"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /student/certificates/{courseID}/pdf [get]
func (h *StudentHandler) CertificatePDF(c *gin.Context) {
	student, ok := middleware.CurrentStudent(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}
	pdf, err := h.certificates.RenderPDF(student, c.Param("courseID"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="certificate.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Inbox godoc
// @Summary List messages from administrators
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /student/messages [get]
func (h *StudentHandler) Inbox(c *gin.Context) {
	student, ok := middleware.CurrentStudent(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}
	messages, err := h.messages.Inbox(c.Request.Context(), student)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, messages)
}

// SendMessage godoc
// @Summary Send a message to the administrators
// @Tags Student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.SendMessageRequest true "Message payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /student/messages [post]
func (h *StudentHandler) SendMessage(c *gin.Context) {
	student, ok := middleware.CurrentStudent(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	var req service.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid message payload"))
		return
	}

	if err := h.messages.SendFromStudent(c.Request.Context(), student, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"sent": true})
}
