package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a course rating left by a student. The student name is a
// snapshot, not a live reference; reviews outlive both their author and
// their course.
type Review struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CourseID    primitive.ObjectID `bson:"course_id" json:"course_id"`
	StudentID   primitive.ObjectID `bson:"student_id,omitempty" json:"student_id"`
	StudentName string             `bson:"student_name" json:"student_name"`
	Rating      int                `bson:"rating" json:"rating"`
	Comment     string             `bson:"comment" json:"comment"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
