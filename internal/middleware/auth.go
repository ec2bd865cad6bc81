package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eduportal/course-portal-api/internal/models"
	"github.com/eduportal/course-portal-api/internal/service"
	appErrors "github.com/eduportal/course-portal-api/pkg/errors"
	"github.com/eduportal/course-portal-api/pkg/response"
)

// Gin context keys for the authenticated principal.
const (
	ContextStudentKey = "currentStudent"
	ContextAdminKey   = "currentAdmin"
)

// StudentAuth protects routes by resolving the bearer token to a student.
// The principal is re-resolved from the store on every request, so a token
// overwritten by a newer login stops working immediately.
func StudentAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		student, err := authService.ResolveStudentToken(c.Request.Context(), token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextStudentKey, student)
		c.Next()
	}
}

// AdminAuth protects routes by resolving the bearer token to an admin.
func AdminAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		admin, err := authService.ResolveAdminToken(c.Request.Context(), token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextAdminKey, admin)
		c.Next()
	}
}

// CurrentStudent fetches the authenticated student from the gin context.
func CurrentStudent(c *gin.Context) (*models.Student, bool) {
	value, ok := c.Get(ContextStudentKey)
	if !ok {
		return nil, false
	}
	student, ok := value.(*models.Student)
	return student, ok
}

// CurrentAdmin fetches the authenticated admin from the gin context.
func CurrentAdmin(c *gin.Context) (*models.Admin, bool) {
	value, ok := c.Get(ContextAdminKey)
	if !ok {
		return nil, false
	}
	admin, ok := value.(*models.Admin)
	return admin, ok
}

func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", appErrors.ErrUnauthenticated
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", appErrors.Clone(appErrors.ErrUnauthenticated, "invalid authorization header")
	}
	return parts[1], nil
}
