package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/eduportal/course-portal-api/internal/dto"
	"github.com/eduportal/course-portal-api/internal/models"
	appErrors "github.com/eduportal/course-portal-api/pkg/errors"
)

type messageRepository interface {
	Insert(ctx context.Context, message *models.Message) error
	ListForStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Message, error)
	ListFromStudents(ctx context.Context) ([]dto.AdminInboxMessage, error)
}

type messageStudentRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error)
}

// SendMessageRequest is a student-to-admin message payload.
type SendMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// AdminMessageRequest is an admin-to-student message payload.
type AdminMessageRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

// MessageService routes direct messages between the two roles. Student
// messages land in one shared admin inbox; admin messages target a single
// student.
type MessageService struct {
	messages  messageRepository
	students  messageStudentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMessageService constructs a MessageService.
func NewMessageService(messages messageRepository, students messageStudentRepository, validate *validator.Validate, logger *zap.Logger) *MessageService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageService{messages: messages, students: students, validator: validate, logger: logger}
}

// SendFromStudent stores a message addressed to the shared admin inbox.
func (s *MessageService) SendFromStudent(ctx context.Context, student *models.Student, req SendMessageRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid message payload")
	}
	message := &models.Message{
		SenderID:      student.ID,
		SenderType:    models.MessageRoleStudent,
		RecipientType: models.MessageRoleAdmin,
		Body:          req.Message,
		Timestamp:     time.Now().UTC(),
	}
	if err := s.messages.Insert(ctx, message); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store message")
	}
	return nil
}

// SendToStudent stores an admin message addressed to one student. The
// recipient must exist at send time.
func (s *MessageService) SendToStudent(ctx context.Context, admin *models.Admin, req AdminMessageRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid message payload")
	}
	studentID, err := primitive.ObjectIDFromHex(req.StudentID)
	if err != nil {
		return appErrors.ErrStudentNotFound
	}
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return appErrors.ErrStudentNotFound
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	message := &models.Message{
		SenderID:      admin.ID,
		SenderType:    models.MessageRoleAdmin,
		RecipientID:   &studentID,
		RecipientType: models.MessageRoleStudent,
		Body:          req.Message,
		Timestamp:     time.Now().UTC(),
	}
	if err := s.messages.Insert(ctx, message); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store message")
	}
	return nil
}

// Inbox returns admin messages addressed to the student, newest first.
func (s *MessageService) Inbox(ctx context.Context, student *models.Student) ([]models.Message, error) {
	messages, err := s.messages.ListForStudent(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list messages")
	}
	return messages, nil
}

// AdminInbox returns the shared inbox of student messages, newest first.
func (s *MessageService) AdminInbox(ctx context.Context) ([]dto.AdminInboxMessage, error) {
	inbox, err := s.messages.ListFromStudents(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list inbox")
	}
	return inbox, nil
}
