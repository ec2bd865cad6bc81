package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eduportal/course-portal-api/internal/dto"
	"github.com/eduportal/course-portal-api/internal/models"
)

// MessageRepository provides typed access to the messages collection.
type MessageRepository struct {
	col *mongo.Collection
}

// NewMessageRepository constructs a MessageRepository.
func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{col: db.Collection("messages")}
}

// Insert stores a new message.
func (r *MessageRepository) Insert(ctx context.Context, message *models.Message) error {
	res, err := r.col.InsertOne(ctx, message)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		message.ID = id
	}
	return nil
}

// ListForStudent returns admin messages addressed to the student, newest
// first.
func (r *MessageRepository) ListForStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Message, error) {
	filter := bson.M{"recipient_id": studentID, "sender_type": models.MessageRoleAdmin}
	opts := options.Find().SetSort(bson.M{"timestamp": -1})

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx) //nolint:errcheck

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// ListFromStudents returns the shared admin inbox: every student message
// joined with the sender's name, newest first. Messages from deleted
// students drop out of the join.
func (r *MessageRepository) ListFromStudents(ctx context.Context) ([]dto.AdminInboxMessage, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"sender_type": models.MessageRoleStudent}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "students",
			"localField":   "sender_id",
			"foreignField": "_id",
			"as":           "student_info",
		}}},
		{{Key: "$unwind", Value: "$student_info"}},
		{{Key: "$sort", Value: bson.M{"timestamp": -1}}},
		{{Key: "$project", Value: bson.M{
			"_id":          0,
			"message_id":   bson.M{"$toString": "$_id"},
			"student_name": "$student_info.full_name",
			"message":      "$message",
			"timestamp":    "$timestamp",
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx) //nolint:errcheck

	var rows []struct {
		MessageID   string             `bson:"message_id"`
		StudentName string             `bson:"student_name"`
		Message     string             `bson:"message"`
		Timestamp   primitive.DateTime `bson:"timestamp"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	inbox := make([]dto.AdminInboxMessage, 0, len(rows))
	for _, row := range rows {
		inbox = append(inbox, dto.AdminInboxMessage{
			MessageID:   row.MessageID,
			StudentName: row.StudentName,
			Message:     row.Message,
			Timestamp:   row.Timestamp.Time(),
		})
	}
	return inbox, nil
}
