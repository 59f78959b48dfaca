package db

import (
	"context"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/albercy/auto-clinic/internal/models"
)

func testInput() models.VehicleInput {
	in := models.VehicleInput{
		Make:      "Toyota",
		Model:     "Corolla",
		Year:      2022,
		Price:     2_000_000,
		Condition: models.ConditionUsed,
		FuelType:  "Petrol",
		ImageURLs: []string{"https://img.example/corolla-0.jpg"},
	}
	if err := in.Validate(); err != nil {
		panic(err)
	}
	return in
}

func TestMongoVehicleCollection_NilCollection(t *testing.T) {
	coll := &MongoVehicleCollection{Collection: nil}
	ctx := context.Background()

	if _, err := coll.AddVehicle(ctx, testInput()); err == nil {
		t.Error("AddVehicle: expected error when collection is nil")
	}
	if err := coll.UpdateVehicle(ctx, "deadbeefdeadbeefdeadbeef", models.VehicleUpdate{}); err == nil {
		t.Error("UpdateVehicle: expected error when collection is nil")
	}
	if err := coll.UpdateVehicleStatus(ctx, "deadbeefdeadbeefdeadbeef", models.StatusSold); err == nil {
		t.Error("UpdateVehicleStatus: expected error when collection is nil")
	}
	if err := coll.DeleteVehicle(ctx, "deadbeefdeadbeefdeadbeef"); err == nil {
		t.Error("DeleteVehicle: expected error when collection is nil")
	}
	if _, err := coll.GetVehicle(ctx, "deadbeefdeadbeefdeadbeef"); err == nil {
		t.Error("GetVehicle: expected error when collection is nil")
	}
	if _, err := coll.GetAllVehicles(ctx); err == nil {
		t.Error("GetAllVehicles: expected error when collection is nil")
	}
}

func TestConnectMongo_BadURI(t *testing.T) {
	old := os.Getenv("MONGO_URI")
	defer os.Setenv("MONGO_URI", old)

	os.Setenv("MONGO_URI", "mongodb://bad:uri")
	client, err := ConnectMongo()
	if err == nil {
		t.Error("expected error for bad URI, got nil")
	}
	if client != nil {
		t.Error("expected nil client on error")
	}
}

// Integration tests (require a running MongoDB)

func integrationCollection(t *testing.T) *MongoVehicleCollection {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" || uri == "uri" {
		t.Skip("MONGO_URI not set or invalid, skipping integration test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("failed to connect: %v, skipping integration test", err)
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "albercy_test"
	}
	return &MongoVehicleCollection{Collection: client.Database(dbName).Collection(VehiclesCollectionName)}
}

func TestVehicleLifecycle_Integration(t *testing.T) {
	coll := integrationCollection(t)
	ctx := context.Background()

	id, err := coll.AddVehicle(ctx, testInput())
	if err != nil {
		t.Fatalf("AddVehicle failed: %v", err)
	}

	created, err := coll.GetVehicle(ctx, id)
	if err != nil {
		t.Fatalf("GetVehicle failed: %v", err)
	}
	if created == nil {
		t.Fatal("expected created vehicle, got nil")
	}
	if created.ImageURL != created.ImageURLs[0] {
		t.Errorf("imageURL %q != imageURLs[0] %q after creation", created.ImageURL, created.ImageURLs[0])
	}
	if created.UpdatedAt.Before(created.CreatedAt) {
		t.Error("updatedAt must be >= createdAt after creation")
	}

	// Status round-trip: the new status is visible on re-fetch and
	// updatedAt moved forward.
	before := created.UpdatedAt
	time.Sleep(5 * time.Millisecond)
	if err := coll.UpdateVehicleStatus(ctx, id, models.StatusSold); err != nil {
		t.Fatalf("UpdateVehicleStatus failed: %v", err)
	}
	after, err := coll.GetVehicle(ctx, id)
	if err != nil || after == nil {
		t.Fatalf("GetVehicle after status update failed: %v", err)
	}
	if after.Status != models.StatusSold {
		t.Errorf("status = %s, want %s", after.Status, models.StatusSold)
	}
	if !after.UpdatedAt.After(before) {
		t.Errorf("updatedAt %v must be strictly greater than %v", after.UpdatedAt, before)
	}

	// Sold vehicles drop out of the available listing.
	available, err := coll.GetAvailableVehicles(ctx)
	if err != nil {
		t.Fatalf("GetAvailableVehicles failed: %v", err)
	}
	for _, v := range available {
		if v.ID.Hex() == id {
			t.Error("sold vehicle must not appear in available listing")
		}
	}

	if err := coll.DeleteVehicle(ctx, id); err != nil {
		t.Fatalf("DeleteVehicle failed: %v", err)
	}
	gone, err := coll.GetVehicle(ctx, id)
	if err != nil {
		t.Fatalf("GetVehicle after delete failed: %v", err)
	}
	if gone != nil {
		t.Error("expected nil vehicle after delete")
	}
}

func TestGetAllVehicles_NewestFirst_Integration(t *testing.T) {
	coll := integrationCollection(t)
	ctx := context.Background()

	first, err := coll.AddVehicle(ctx, testInput())
	if err != nil {
		t.Fatalf("AddVehicle failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	second, err := coll.AddVehicle(ctx, testInput())
	if err != nil {
		t.Fatalf("AddVehicle failed: %v", err)
	}
	defer coll.DeleteVehicle(ctx, first)
	defer coll.DeleteVehicle(ctx, second)

	all, err := coll.GetAllVehicles(ctx)
	if err != nil {
		t.Fatalf("GetAllVehicles failed: %v", err)
	}

	var firstIdx, secondIdx = -1, -1
	for i, v := range all {
		switch v.ID.Hex() {
		case first:
			firstIdx = i
		case second:
			secondIdx = i
		}
	}
	if firstIdx == -1 || secondIdx == -1 {
		t.Fatal("inserted vehicles missing from listing")
	}
	if secondIdx > firstIdx {
		t.Error("expected created_at-descending order (newest first)")
	}
}
