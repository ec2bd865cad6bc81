package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduportal/course-portal-api/internal/middleware"
	"github.com/eduportal/course-portal-api/internal/service"
	appErrors "github.com/eduportal/course-portal-api/pkg/errors"
	"github.com/eduportal/course-portal-api/pkg/response"
)

// AdminHandler serves the administrative surface: profile, roster,
// dashboard, course management, certificates and messaging.
type AdminHandler struct {
	accounts     *service.AccountService
	courses      *service.CourseService
	certificates *service.CertificateService
	reports      *service.ReportService
	messages     *service.MessageService
	reviews      *service.ReviewService
}

// NewAdminHandler creates a new handler.
func NewAdminHandler(accounts *service.AccountService, courses *service.CourseService, certificates *service.CertificateService, reports *service.ReportService, messages *service.MessageService, reviews *service.ReviewService) *AdminHandler {
	return &AdminHandler{
		accounts:     accounts,
		courses:      courses,
		certificates: certificates,
		reports:      reports,
		messages:     messages,
		reviews:      reviews,
	}
}

// Profile godoc
// @Summary Get own profile
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/profile [get]
func (h *AdminHandler) Profile(c *gin.Context) {
	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}
	response.JSON(c, http.StatusOK, admin.Profile())
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.UpdateProfileRequest true "Partial profile update"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/profile [put]
func (h *AdminHandler) UpdateProfile(c *gin.Context) {
	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid profile payload"))
		return
	}

	if err := h.accounts.UpdateAdmin(c.Request.Context(), admin, req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"updated": true})
}

// DeleteProfile godoc
// @Summary Delete own account
// @Tags Admin
// @Security BearerAuth
// @Success 204 {object} response.Envelope
// @Router /admin/profile [delete]
func (h *AdminHandler) DeleteProfile(c *gin.Context) {
	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}
	if err := h.accounts.DeleteAdmin(c.Request.Context(), admin); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DashboardStats godoc
// @Summary Get fleet-wide dashboard statistics
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/dashboard-stats [get]
func (h *AdminHandler) DashboardStats(c *gin.Context) {
	stats, err := h.reports.AdminDashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

// Students godoc
// @Summary List the student roster
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/students [get]
func (h *AdminHandler) Students(c *gin.Context) {
	roster, err := h.reports.Roster(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roster)
}

// DeleteStudent godoc
// @Summary Remove a student account
// @Tags Admin
// @Security BearerAuth
// @Param id path string true "Student id"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/students/{id} [delete]
func (h *AdminHandler) DeleteStudent(c *gin.Context) {
	if err := h.accounts.DeleteStudentByID(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AllowCertificate godoc
// @Summary Grant a completion certificate to a student
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student id"
// @Param payload body object{course_id=string} true "Course id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/students/{id}/allow-certificate [post]
func (h *AdminHandler) AllowCertificate(c *gin.Context) {
	var payload struct {
		CourseID string `json:"course_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "course_id is required"))
		return
	}

	cert, err := h.certificates.Grant(c.Request.Context(), c.Param("id"), payload.CourseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cert)
}

// Courses godoc
// @Summary List every course with full content
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/courses [get]
func (h *AdminHandler) Courses(c *gin.Context) {
	courses, err := h.courses.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses)
}

// CreateCourse godoc
// @Summary Create a course without content
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateCourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /courses/no-file [post]
func (h *AdminHandler) CreateCourse(c *gin.Context) {
	var req service.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid course payload"))
		return
	}

	id, err := h.courses.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"id": id})
}

// UploadContent godoc
// @Summary Upload course content
// @Description Appends a file or a YouTube link to a course as a new content item.
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param course_id formData string true "Course id"
// @Param file formData file false "File to upload"
// @Param youtube_link formData string false "YouTube link or bare video id"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/upload [post]
func (h *AdminHandler) UploadContent(c *gin.Context) {
	req := service.UploadContentRequest{
		CourseID:    c.PostForm("course_id"),
		YouTubeLink: c.PostForm("youtube_link"),
	}

	if fileHeader, err := c.FormFile("file"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unreadable upload"))
			return
		}
		defer file.Close() //nolint:errcheck
		req.File = file
		req.FileName = fileHeader.Filename
	}

	if err := h.courses.UploadContent(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"uploaded": true})
}

// DeleteCourse godoc
// @Summary Delete a course
// @Tags Admin
// @Security BearerAuth
// @Param id path string true "Course id"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/courses/{id} [delete]
func (h *AdminHandler) DeleteCourse(c *gin.Context) {
	if err := h.courses.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Inbox godoc
// @Summary List the shared inbox of student messages
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/messages [get]
func (h *AdminHandler) Inbox(c *gin.Context) {
	inbox, err := h.messages.AdminInbox(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, inbox)
}

// SendMessage godoc
// @Summary Send a message to a student
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.AdminMessageRequest true "Message payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/messages [post]
func (h *AdminHandler) SendMessage(c *gin.Context) {
	admin, ok := middleware.CurrentAdmin(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	var req service.AdminMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid message payload"))
		return
	}

	if err := h.messages.SendToStudent(c.Request.Context(), admin, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"sent": true})
}

// Reviews godoc
// @Summary List every course review
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/reviews [get]
func (h *AdminHandler) Reviews(c *gin.Context) {
	reviews, err := h.reviews.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reviews)
}
