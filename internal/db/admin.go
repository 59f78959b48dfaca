package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/albercy/auto-clinic/internal/models"
)

// AdminsCollectionName is the capability collection: any document keyed by
// a uid grants that uid admin access.
const AdminsCollectionName = "admins"

// MongoAdminCollection implements AdminCollection for MongoDB.
type MongoAdminCollection struct {
	Collection *mongo.Collection
}

// InsertAdmin stores the capability document for a new admin.
func (c *MongoAdminCollection) InsertAdmin(ctx context.Context, admin models.AdminUser) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	admin.Role = "admin"
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now()
	}
	_, err := c.Collection.InsertOne(ctx, admin)
	return err
}

// FindAdminByUID looks up the capability document for uid. Absence is a
// normal outcome and returns (nil, nil): the caller treats it as
// "not an admin", not as a failure.
func (c *MongoAdminCollection) FindAdminByUID(ctx context.Context, uid string) (*models.AdminUser, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	var admin models.AdminUser
	err := c.Collection.FindOne(ctx, bson.M{"_id": uid}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// FindAdminByEmail finds an admin by email, (nil, nil) when absent.
func (c *MongoAdminCollection) FindAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	var admin models.AdminUser
	err := c.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}
