package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/eduportal/course-portal-api/internal/models"
	appErrors "github.com/eduportal/course-portal-api/pkg/errors"
)

type accountStudentRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error)
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type accountAdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UpdateProfileRequest is a partial profile update. Blank fields are
// skipped, not blanked.
type UpdateProfileRequest struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email" validate:"omitempty,email"`
	Password    string `json:"password" validate:"omitempty,min=4"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
}

// AccountService owns profile reads, partial updates and account deletion
// for both roles.
type AccountService struct {
	students  accountStudentRepository
	admins    accountAdminRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAccountService constructs an AccountService.
func NewAccountService(students accountStudentRepository, admins accountAdminRepository, validate *validator.Validate, logger *zap.Logger) *AccountService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{students: students, admins: admins, validator: validate, logger: logger}
}

// UpdateStudent applies a partial update to the student's own profile.
// Changing the email re-checks uniqueness against other students.
func (s *AccountService) UpdateStudent(ctx context.Context, student *models.Student, req UpdateProfileRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}

	fields := bson.M{}
	if req.FullName != "" {
		fields["full_name"] = req.FullName
	}
	if req.Email != "" && req.Email != student.Email {
		other, err := s.students.FindByEmail(ctx, req.Email)
		if err == nil && other.ID != student.ID {
			return appErrors.ErrEmailTaken
		} else if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
		}
		fields["email"] = req.Email
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
		}
		fields["password_hash"] = string(hash)
	}
	if req.DateOfBirth != "" {
		fields["date_of_birth"] = req.DateOfBirth
	}
	if req.Gender != "" {
		fields["gender"] = req.Gender
	}
	if len(fields) == 0 {
		return nil
	}

	if err := s.students.UpdateFields(ctx, student.ID, fields); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update profile")
	}
	return nil
}

// UpdateAdmin applies a partial update to the admin's own profile.
func (s *AccountService) UpdateAdmin(ctx context.Context, admin *models.Admin, req UpdateProfileRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}

	fields := bson.M{}
	if req.FullName != "" {
		fields["full_name"] = req.FullName
	}
	if req.Email != "" && req.Email != admin.Email {
		other, err := s.admins.FindByEmail(ctx, req.Email)
		if err == nil && other.ID != admin.ID {
			return appErrors.ErrEmailTaken
		} else if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
		}
		fields["email"] = req.Email
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
		}
		fields["password_hash"] = string(hash)
	}
	if req.DateOfBirth != "" {
		fields["date_of_birth"] = req.DateOfBirth
	}
	if req.Gender != "" {
		fields["gender"] = req.Gender
	}
	if len(fields) == 0 {
		return nil
	}

	if err := s.admins.UpdateFields(ctx, admin.ID, fields); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update profile")
	}
	return nil
}

// DeleteStudent removes the student's own account. Reviews and messages
// authored by the account are left in place; joins drop or orphan them.
func (s *AccountService) DeleteStudent(ctx context.Context, student *models.Student) error {
	if err := s.students.Delete(ctx, student.ID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete account")
	}
	s.logger.Info("student account deleted", zap.String("student_id", student.ID.Hex()))
	return nil
}

// DeleteStudentByID removes a student account on an administrator's behalf.
func (s *AccountService) DeleteStudentByID(ctx context.Context, studentIDHex string) error {
	studentID, err := primitive.ObjectIDFromHex(studentIDHex)
	if err != nil {
		return appErrors.ErrStudentNotFound
	}
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return appErrors.ErrStudentNotFound
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if err := s.students.Delete(ctx, studentID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	s.logger.Info("student removed by administrator", zap.String("student_id", studentIDHex))
	return nil
}

// DeleteAdmin removes the admin's own account.
func (s *AccountService) DeleteAdmin(ctx context.Context, admin *models.Admin) error {
	if err := s.admins.Delete(ctx, admin.ID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete account")
	}
	s.logger.Info("admin account deleted", zap.String("admin_id", admin.ID.Hex()))
	return nil
}
