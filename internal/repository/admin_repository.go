package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eduportal/course-portal-api/internal/models"
)

// AdminRepository provides typed access to the admins collection.
type AdminRepository struct {
	col *mongo.Collection
}

// NewAdminRepository constructs an AdminRepository.
func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{col: db.Collection("admins")}
}

// FindByEmail loads an admin by email.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// FindByToken resolves the stored session token to its admin by exact match.
func (r *AdminRepository) FindByToken(ctx context.Context, token string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.col.FindOne(ctx, bson.M{"access_token": token}).Decode(&admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// Insert stores a new admin and backfills the generated id.
func (r *AdminRepository) Insert(ctx context.Context, admin *models.Admin) error {
	res, err := r.col.InsertOne(ctx, admin)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		admin.ID = id
	}
	return nil
}

// SetAccessToken unconditionally overwrites the stored session token.
func (r *AdminRepository) SetAccessToken(ctx context.Context, id primitive.ObjectID, token string) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"access_token": token}})
	return err
}

// UpdateFields applies a partial $set update to the admin document.
func (r *AdminRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	if len(fields) == 0 {
		return nil
	}
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return err
}

// Delete removes the admin document.
func (r *AdminRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
