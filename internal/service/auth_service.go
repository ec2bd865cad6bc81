package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/eduportal/course-portal-api/internal/models"
	appErrors "github.com/eduportal/course-portal-api/pkg/errors"
)

type authStudentRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
	FindByToken(ctx context.Context, token string) (*models.Student, error)
	Insert(ctx context.Context, student *models.Student) error
	SetAccessToken(ctx context.Context, id primitive.ObjectID, token string) error
}

type authAdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	FindByToken(ctx context.Context, token string) (*models.Admin, error)
	Insert(ctx context.Context, admin *models.Admin) error
	SetAccessToken(ctx context.Context, id primitive.ObjectID, token string) error
}

// RegisterRequest describes an account registration payload.
type RegisterRequest struct {
	FullName         string `json:"full_name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=4"`
	DateOfBirth      string `json:"date_of_birth" validate:"required"`
	Gender           string `json:"gender" validate:"required"`
	SecurityQuestion string `json:"security_question" validate:"required"`
	SecurityAnswer   string `json:"security_answer" validate:"required"`
}

// LoginRequest describes a login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued opaque session token.
type LoginResponse struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	AccessToken string `json:"access_token"`
}

// AuthService implements registration, login and session-token resolution
// for both roles. Tokens are opaque, long-lived and single-valued per
// account: each successful login overwrites the stored token, so the older
// session stops resolving immediately (last write wins on a race).
type AuthService struct {
	students  authStudentRepository
	admins    authAdminRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(students authStudentRepository, admins authAdminRepository, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{students: students, admins: admins, validator: validate, logger: logger}
}

// RegisterStudent creates a student account with a hashed password.
func (s *AuthService) RegisterStudent(ctx context.Context, req RegisterRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	if _, err := s.students.FindByEmail(ctx, req.Email); err == nil {
		return "", appErrors.ErrEmailTaken
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	student := &models.Student{
		FullName:         req.FullName,
		Email:            req.Email,
		PasswordHash:     string(hash),
		DateOfBirth:      req.DateOfBirth,
		Gender:           req.Gender,
		SecurityQuestion: req.SecurityQuestion,
		SecurityAnswer:   req.SecurityAnswer,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.students.Insert(ctx, student); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}

	return student.ID.Hex(), nil
}

// RegisterAdmin creates an administrator account.
func (s *AuthService) RegisterAdmin(ctx context.Context, req RegisterRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	if _, err := s.admins.FindByEmail(ctx, req.Email); err == nil {
		return "", appErrors.ErrEmailTaken
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	admin := &models.Admin{
		FullName:         req.FullName,
		Email:            req.Email,
		PasswordHash:     string(hash),
		DateOfBirth:      req.DateOfBirth,
		Gender:           req.Gender,
		SecurityQuestion: req.SecurityQuestion,
		SecurityAnswer:   req.SecurityAnswer,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.admins.Insert(ctx, admin); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create admin")
	}

	return admin.ID.Hex(), nil
}

// LoginStudent verifies credentials and issues a fresh session token.
func (s *AuthService) LoginStudent(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	student, err := s.students.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch student")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	token, err := generateSessionToken()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session token")
	}
	if err := s.students.SetAccessToken(ctx, student.ID, token); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store session token")
	}

	return &LoginResponse{ID: student.ID.Hex(), FullName: student.FullName, AccessToken: token}, nil
}

// LoginAdmin verifies credentials and issues a fresh session token.
func (s *AuthService) LoginAdmin(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	admin, err := s.admins.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch admin")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	token, err := generateSessionToken()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session token")
	}
	if err := s.admins.SetAccessToken(ctx, admin.ID, token); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store session token")
	}

	return &LoginResponse{ID: admin.ID.Hex(), FullName: admin.FullName, AccessToken: token}, nil
}

// ResolveStudentToken looks up the student holding the given session token.
// Read-only: identity is re-resolved from the store on every request.
func (s *AuthService) ResolveStudentToken(ctx context.Context, token string) (*models.Student, error) {
	student, err := s.students.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.ErrInvalidToken
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve token")
	}
	return student, nil
}

// ResolveAdminToken looks up the admin holding the given session token.
func (s *AuthService) ResolveAdminToken(ctx context.Context, token string) (*models.Admin, error) {
	admin, err := s.admins.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appErrors.ErrInvalidToken
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve token")
	}
	return admin, nil
}

func generateSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
