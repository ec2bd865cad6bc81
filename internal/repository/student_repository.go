package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eduportal/course-portal-api/internal/models"
)

// StudentRepository provides typed access to the students collection.
type StudentRepository struct {
	col *mongo.Collection
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *mongo.Database) *StudentRepository {
	return &StudentRepository{col: db.Collection("students")}
}

// FindByID loads a student by id.
func (r *StudentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error) {
	var student models.Student
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&student); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByEmail loads a student by email.
func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	var student models.Student
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&student); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByToken resolves the stored session token to its student by exact
// match. Exactly one account can hold a given token at a time.
func (r *StudentRepository) FindByToken(ctx context.Context, token string) (*models.Student, error) {
	var student models.Student
	if err := r.col.FindOne(ctx, bson.M{"access_token": token}).Decode(&student); err != nil {
		return nil, err
	}
	return &student, nil
}

// Insert stores a new student and backfills the generated id.
func (r *StudentRepository) Insert(ctx context.Context, student *models.Student) error {
	res, err := r.col.InsertOne(ctx, student)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		student.ID = id
	}
	return nil
}

// SetAccessToken unconditionally overwrites the stored session token.
// Last write wins: a concurrent login invalidates the older token.
func (r *StudentRepository) SetAccessToken(ctx context.Context, id primitive.ObjectID, token string) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"access_token": token}})
	return err
}

// UpdateFields applies a partial $set update to the student document.
func (r *StudentRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	if len(fields) == 0 {
		return nil
	}
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return err
}

// Delete removes the student document.
func (r *StudentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// AddEnrolledCourse atomically adds the course to the enrollment set.
func (r *StudentRepository) AddEnrolledCourse(ctx context.Context, studentID, courseID primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": studentID},
		bson.M{"$addToSet": bson.M{"enrolled_courses": courseID}})
	return err
}

// AddCompletedContent atomically records a completed content id for a
// course. The update is a set union on a single document, so racing marks
// cannot lose each other; marking an already-completed id is a no-op.
func (r *StudentRepository) AddCompletedContent(ctx context.Context, studentID primitive.ObjectID, courseID, contentID string) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": studentID},
		bson.M{"$addToSet": bson.M{"progress." + courseID: contentID}})
	return err
}

// GrantCertificate flags the student and appends the issuance snapshot.
// Repeated grants append duplicate snapshots; that is accepted behaviour.
func (r *StudentRepository) GrantCertificate(ctx context.Context, studentID primitive.ObjectID, cert models.Certificate) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": studentID}, bson.M{
		"$set":  bson.M{"certificate_allowed": true, "status": "Completed"},
		"$push": bson.M{"certificates": cert},
	})
	return err
}

// List returns all students with credentials and session tokens projected
// away at the store level.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	opts := options.Find().SetProjection(bson.M{"password_hash": 0, "access_token": 0, "security_answer": 0})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx) //nolint:errcheck

	var students []models.Student
	if err := cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// Count returns the total number of student documents.
func (r *StudentRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

// TrendingCourse returns the title of the course with the highest enrollment
// count across all students. Ties break on store order (first encountered).
// ok is false when no student is enrolled in anything that still exists.
func (r *StudentRepository) TrendingCourse(ctx context.Context) (title string, ok bool, err error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$enrolled_courses"}},
		{{Key: "$group", Value: bson.M{"_id": "$enrolled_courses", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
		{{Key: "$limit", Value: 1}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "courses",
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "course_details",
		}}},
		{{Key: "$unwind", Value: "$course_details"}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return "", false, err
	}
	defer cursor.Close(ctx) //nolint:errcheck

	var results []struct {
		CourseDetails struct {
			Title string `bson:"title"`
		} `bson:"course_details"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return "", false, err
	}
	if len(results) == 0 {
		return "", false, nil
	}
	return results[0].CourseDetails.Title, true, nil
}
