package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin represents an administrator account.
type Admin struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName         string             `bson:"full_name" json:"full_name"`
	Email            string             `bson:"email" json:"email"`
	PasswordHash     string             `bson:"password_hash" json:"-"`
	DateOfBirth      string             `bson:"date_of_birth" json:"date_of_birth"`
	Gender           string             `bson:"gender" json:"gender"`
	SecurityQuestion string             `bson:"security_question" json:"security_question"`
	SecurityAnswer   string             `bson:"security_answer" json:"-"`
	AccessToken      string             `bson:"access_token,omitempty" json:"-"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
}

// AdminProfile is the admin-visible projection with session state stripped.
type AdminProfile struct {
	ID               string `json:"id"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	DateOfBirth      string `json:"date_of_birth"`
	Gender           string `json:"gender"`
	SecurityQuestion string `json:"security_question"`
}

// Profile projects the admin into its public shape.
func (a *Admin) Profile() AdminProfile {
	return AdminProfile{
		ID:               a.ID.Hex(),
		FullName:         a.FullName,
		Email:            a.Email,
		DateOfBirth:      a.DateOfBirth,
		Gender:           a.Gender,
		SecurityQuestion: a.SecurityQuestion,
	}
}
