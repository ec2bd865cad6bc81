package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student represents a learner account. The access token is the stored
// single-valued session credential; a new login overwrites it and the
// previous token stops resolving immediately.
type Student struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName         string             `bson:"full_name" json:"full_name"`
	Email            string             `bson:"email" json:"email"`
	PasswordHash     string             `bson:"password_hash" json:"-"`
	DateOfBirth      string             `bson:"date_of_birth" json:"date_of_birth"`
	Gender           string             `bson:"gender" json:"gender"`
	SecurityQuestion string             `bson:"security_question" json:"security_question"`
	SecurityAnswer   string             `bson:"security_answer" json:"-"`
	AccessToken      string             `bson:"access_token,omitempty" json:"-"`

	EnrolledCourses    []primitive.ObjectID `bson:"enrolled_courses,omitempty" json:"enrolled_courses"`
	Progress           map[string][]string  `bson:"progress,omitempty" json:"-"`
	Certificates       []Certificate        `bson:"certificates,omitempty" json:"certificates"`
	CertificateAllowed bool                 `bson:"certificate_allowed,omitempty" json:"certificate_allowed"`
	Status             string               `bson:"status,omitempty" json:"status,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// IsEnrolled reports whether the course id is in the live enrollment set.
func (s *Student) IsEnrolled(courseID primitive.ObjectID) bool {
	for _, id := range s.EnrolledCourses {
		if id == courseID {
			return true
		}
	}
	return false
}

// CompletedContent returns the completed content ids recorded for a course.
// Ids that no longer match any content item are returned as stored; callers
// derive percentages against the current content list.
func (s *Student) CompletedContent(courseID string) []string {
	if s.Progress == nil {
		return nil
	}
	return s.Progress[courseID]
}

// Certificate is an issuance snapshot appended by an administrator grant.
// The course title is copied at grant time and survives course deletion.
type Certificate struct {
	CourseID    string    `bson:"course_id" json:"course_id"`
	CourseTitle string    `bson:"course_name" json:"course_name"`
	IssuedAt    time.Time `bson:"issued_date" json:"issued_date"`
}

// StudentProfile is the learner-visible projection of a Student with
// credentials and session state stripped.
type StudentProfile struct {
	ID               string   `json:"id"`
	FullName         string   `json:"full_name"`
	Email            string   `json:"email"`
	DateOfBirth      string   `json:"date_of_birth"`
	Gender           string   `json:"gender"`
	SecurityQuestion string   `json:"security_question"`
	EnrolledCourses  []string `json:"enrolled_courses"`
}

// Profile projects the student into its public shape.
func (s *Student) Profile() StudentProfile {
	enrolled := make([]string, 0, len(s.EnrolledCourses))
	for _, id := range s.EnrolledCourses {
		enrolled = append(enrolled, id.Hex())
	}
	return StudentProfile{
		ID:               s.ID.Hex(),
		FullName:         s.FullName,
		Email:            s.Email,
		DateOfBirth:      s.DateOfBirth,
		Gender:           s.Gender,
		SecurityQuestion: s.SecurityQuestion,
		EnrolledCourses:  enrolled,
	}
}
