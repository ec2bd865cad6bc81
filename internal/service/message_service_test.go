package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/eduportal/course-portal-api/internal/dto"
	"github.com/eduportal/course-portal-api/internal/models"
	appErrors "github.com/eduportal/course-portal-api/pkg/errors"
)

type mockMessages struct {
	inserted []models.Message
}

func (m *mockMessages) Insert(ctx context.Context, message *models.Message) error {
	message.ID = primitive.NewObjectID()
	m.inserted = append(m.inserted, *message)
	return nil
}

func (m *mockMessages) ListForStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Message, error) {
	var out []models.Message
	for _, msg := range m.inserted {
		if msg.RecipientID != nil && *msg.RecipientID == studentID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *mockMessages) ListFromStudents(ctx context.Context) ([]dto.AdminInboxMessage, error) {
	var out []dto.AdminInboxMessage
	for _, msg := range m.inserted {
		if msg.SenderType == models.MessageRoleStudent {
			out = append(out, dto.AdminInboxMessage{MessageID: msg.ID.Hex(), Message: msg.Body})
		}
	}
	return out, nil
}

type mockMessageStudents struct {
	byID map[primitive.ObjectID]*models.Student
}

func (m *mockMessageStudents) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error) {
	if s, ok := m.byID[id]; ok {
		return s, nil
	}
	return nil, mongo.ErrNoDocuments
}

func TestSendFromStudentLandsInSharedInbox(t *testing.T) {
	messages := &mockMessages{}
	svc := NewMessageService(messages, &mockMessageStudents{}, validator.New(), zap.NewNop())

	student := &models.Student{ID: primitive.NewObjectID(), FullName: "Ada"}
	require.NoError(t, svc.SendFromStudent(context.Background(), student, SendMessageRequest{Message: "hello"}))

	require.Len(t, messages.inserted, 1)
	sent := messages.inserted[0]
	assert.Equal(t, models.MessageRoleStudent, sent.SenderType)
	assert.Nil(t, sent.RecipientID)

	inbox, err := svc.AdminInbox(context.Background())
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, "hello", inbox[0].Message)
}

func TestSendToStudentRequiresRecipient(t *testing.T) {
	svc := NewMessageService(&mockMessages{}, &mockMessageStudents{}, validator.New(), zap.NewNop())

	admin := &models.Admin{ID: primitive.NewObjectID()}
	err := svc.SendToStudent(context.Background(), admin, AdminMessageRequest{StudentID: primitive.NewObjectID().Hex(), Message: "hi"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrStudentNotFound.Code, appErrors.FromError(err).Code)
}

func TestSendToStudentAddressesOneRecipient(t *testing.T) {
	studentID := primitive.NewObjectID()
	messages := &mockMessages{}
	students := &mockMessageStudents{byID: map[primitive.ObjectID]*models.Student{studentID: {ID: studentID}}}
	svc := NewMessageService(messages, students, validator.New(), zap.NewNop())

	admin := &models.Admin{ID: primitive.NewObjectID()}
	require.NoError(t, svc.SendToStudent(context.Background(), admin, AdminMessageRequest{StudentID: studentID.Hex(), Message: "welcome"}))

	inbox, err := svc.Inbox(context.Background(), &models.Student{ID: studentID})
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, "welcome", inbox[0].Body)
	assert.Equal(t, models.MessageRoleAdmin, inbox[0].SenderType)
}

func TestSendMessageValidation(t *testing.T) {
	svc := NewMessageService(&mockMessages{}, &mockMessageStudents{}, validator.New(), zap.NewNop())

	err := svc.SendFromStudent(context.Background(), &models.Student{}, SendMessageRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
