package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eduportal/course-portal-api/internal/dto"
	"github.com/eduportal/course-portal-api/internal/models"
)

// ReviewRepository provides typed access to the reviews collection.
type ReviewRepository struct {
	col *mongo.Collection
}

// NewReviewRepository constructs a ReviewRepository.
func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Collection("reviews")}
}

// Insert stores a new review and backfills the generated id.
func (r *ReviewRepository) Insert(ctx context.Context, review *models.Review) error {
	res, err := r.col.InsertOne(ctx, review)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		review.ID = id
	}
	return nil
}

// ListWithCourseTitles returns all reviews newest first, joined with their
// course title. The join preserves orphans: a review whose course was
// deleted keeps flowing with an empty title.
func (r *ReviewRepository) ListWithCourseTitles(ctx context.Context) ([]dto.ReviewWithCourse, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.M{"created_at": -1}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "courses",
			"localField":   "course_id",
			"foreignField": "_id",
			"as":           "course_info",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$course_info", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$project", Value: bson.M{
			"_id":          bson.M{"$toString": "$_id"},
			"course_title": "$course_info.title",
			"student_name": "$student_name",
			"rating":       "$rating",
			"comment":      "$comment",
			"created_at":   "$created_at",
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx) //nolint:errcheck

	var rows []struct {
		ID          string             `bson:"_id"`
		CourseTitle string             `bson:"course_title"`
		StudentName string             `bson:"student_name"`
		Rating      int                `bson:"rating"`
		Comment     string             `bson:"comment"`
		CreatedAt   primitive.DateTime `bson:"created_at"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	reviews := make([]dto.ReviewWithCourse, 0, len(rows))
	for _, row := range rows {
		reviews = append(reviews, dto.ReviewWithCourse{
			ID:          row.ID,
			CourseTitle: row.CourseTitle,
			StudentName: row.StudentName,
			Rating:      row.Rating,
			Comment:     row.Comment,
			CreatedAt:   row.CreatedAt.Time(),
		})
	}
	return reviews, nil
}
