package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/albercy/auto-clinic/internal/models"
)

// VehiclesCollectionName is the document collection holding the catalog.
const VehiclesCollectionName = "vehicles"

var (
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrInvalidID       = errors.New("invalid vehicle ID")
)

// MongoVehicleCollection implements VehicleCollection for MongoDB.
//
// Updates are last-write-wins: there is no version check protecting two
// admins editing the same record concurrently.
type MongoVehicleCollection struct {
	Collection *mongo.Collection
}

// AddVehicle inserts a new vehicle document, stamping CreatedAt and
// UpdatedAt with the same instant, and returns the assigned id.
func (c *MongoVehicleCollection) AddVehicle(ctx context.Context, input models.VehicleInput) (string, error) {
	if c.Collection == nil {
		return "", fmt.Errorf("mongo collection is nil")
	}

	now := time.Now()
	vehicle := models.Vehicle{
		Make:        input.Make,
		Model:       input.Model,
		Year:        input.Year,
		Price:       input.Price,
		Condition:   input.Condition,
		FuelType:    input.FuelType,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		ImageURLs:   input.ImageURLs,
		Status:      input.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result, err := c.Collection.InsertOne(ctx, vehicle)
	if err != nil {
		return "", err
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted ID type %T", result.InsertedID)
	}
	return id.Hex(), nil
}

// UpdateVehicle merges the non-nil fields of update into the document and
// stamps UpdatedAt. It does not check existence first; a missing document
// surfaces as ErrVehicleNotFound from the write itself.
func (c *MongoVehicleCollection) UpdateVehicle(ctx context.Context, id string, update models.VehicleUpdate) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidID, err)
	}

	set := bson.M{"updated_at": time.Now()}
	if update.Make != nil {
		set["make"] = *update.Make
	}
	if update.Model != nil {
		set["model"] = *update.Model
	}
	if update.Year != nil {
		set["year"] = *update.Year
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Condition != nil {
		set["condition"] = *update.Condition
	}
	if update.FuelType != nil {
		set["fuel_type"] = *update.FuelType
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.ImageURL != nil {
		set["image_url"] = *update.ImageURL
	}
	if update.ImageURLs != nil {
		set["image_urls"] = update.ImageURLs
	}
	if update.Status != nil {
		set["status"] = *update.Status
	}

	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrVehicleNotFound
	}
	return nil
}

// UpdateVehicleStatus touches only status and updated_at. Every status may
// move to every other status, so no transition check is made.
func (c *MongoVehicleCollection) UpdateVehicleStatus(ctx context.Context, id string, status models.VehicleStatus) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidID, err)
	}

	result, err := c.Collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrVehicleNotFound
	}
	return nil
}

// DeleteVehicle hard-deletes the document. Deleting an absent id reports
// ErrVehicleNotFound.
func (c *MongoVehicleCollection) DeleteVehicle(ctx context.Context, id string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidID, err)
	}

	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrVehicleNotFound
	}
	return nil
}

// GetVehicle returns the vehicle or (nil, nil) when no document exists:
// absence is a normal outcome, not an error.
func (c *MongoVehicleCollection) GetVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}

	var vehicle models.Vehicle
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&vehicle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &vehicle, nil
}

// GetAllVehicles returns every vehicle ordered by created_at descending.
// The listing page depends on this ordering (newest first).
func (c *MongoVehicleCollection) GetAllVehicles(ctx context.Context) ([]models.Vehicle, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := c.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var vehicles []models.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// GetAvailableVehicles returns every vehicle that is not sold, in the same
// order as GetAllVehicles.
func (c *MongoVehicleCollection) GetAvailableVehicles(ctx context.Context) ([]models.Vehicle, error) {
	vehicles, err := c.GetAllVehicles(ctx)
	if err != nil {
		return nil, err
	}

	available := make([]models.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if v.Status != models.StatusSold {
			available = append(available, v)
		}
	}
	return available, nil
}
