package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eduportal/course-portal-api/internal/models"
)

// CourseRepository provides typed access to the courses collection.
type CourseRepository struct {
	col *mongo.Collection
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{col: db.Collection("courses")}
}

// FindByID loads a course including its content sequence.
func (r *CourseRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	var course models.Course
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&course); err != nil {
		return nil, err
	}
	return &course, nil
}

// List returns all courses; content is projected away unless requested.
func (r *CourseRepository) List(ctx context.Context, includeContent bool) ([]models.Course, error) {
	opts := options.Find()
	if !includeContent {
		opts.SetProjection(bson.M{"course_content": 0})
	}
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx) //nolint:errcheck

	var courses []models.Course
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// ListByIDs returns the courses matching the given ids. Missing ids are
// silently absent from the result; dangling enrollment references degrade
// to fewer rows, never errors.
func (r *CourseRepository) ListByIDs(ctx context.Context, ids []primitive.ObjectID, includeContent bool) ([]models.Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	opts := options.Find()
	if !includeContent {
		opts.SetProjection(bson.M{"course_content": 0})
	}
	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx) //nolint:errcheck

	var courses []models.Course
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// Insert stores a new course and backfills the generated id.
func (r *CourseRepository) Insert(ctx context.Context, course *models.Course) error {
	res, err := r.col.InsertOne(ctx, course)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		course.ID = id
	}
	return nil
}

// PushContent appends a content item to the course's content sequence.
// Content is append-only; items are never reordered or mutated in place.
func (r *CourseRepository) PushContent(ctx context.Context, courseID primitive.ObjectID, item models.ContentItem) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": courseID},
		bson.M{"$push": bson.M{"course_content": item}})
	return err
}

// Delete removes the course. Enrollments, progress keys and certificates
// referencing it are left dangling and tolerated on read.
func (r *CourseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Count returns the catalog size.
func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
