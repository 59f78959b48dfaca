package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VehicleStatus is the workflow/presentation tag on a vehicle listing.
// Any status may change to any other status; there is no transition guard.
type VehicleStatus string

const (
	StatusAvailable      VehicleStatus = "available"
	StatusSold           VehicleStatus = "sold"
	StatusNewlyPosted    VehicleStatus = "newly-posted"
	StatusLimitedEdition VehicleStatus = "limited-edition"
)

// StatusBadge carries the fixed display label and badge color for a status.
type StatusBadge struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var statusBadges = map[VehicleStatus]StatusBadge{
	StatusAvailable:      {Label: "Available", Color: "green"},
	StatusSold:           {Label: "Sold", Color: "red"},
	StatusNewlyPosted:    {Label: "New Listing", Color: "blue"},
	StatusLimitedEdition: {Label: "Limited Edition", Color: "amber"},
}

// IsValidStatus reports whether s is one of the four known statuses.
func IsValidStatus(s VehicleStatus) bool {
	switch s {
	case StatusAvailable, StatusSold, StatusNewlyPosted, StatusLimitedEdition:
		return true
	default:
		return false
	}
}

// Badge returns the display label and color for s, falling back to the
// "available" badge for anything unknown.
func (s VehicleStatus) Badge() StatusBadge {
	if badge, ok := statusBadges[s]; ok {
		return badge
	}
	return statusBadges[StatusAvailable]
}

// Vehicle conditions.
const (
	ConditionNew  = "New"
	ConditionUsed = "Used"
)

// Vehicle represents a car for sale in the catalog.
type Vehicle struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Make        string             `bson:"make" json:"make"`
	Model       string             `bson:"model" json:"model"`
	Year        int                `bson:"year" json:"year"`
	Price       int                `bson:"price" json:"price"`         // whole currency units
	Condition   string             `bson:"condition" json:"condition"` // "New" or "Used"
	FuelType    string             `bson:"fuel_type" json:"fuel_type"` // conventionally Petrol/Diesel/Electric/Hybrid
	Description string             `bson:"description" json:"description"`
	ImageURL    string             `bson:"image_url" json:"image_url"`   // primary display image, equals ImageURLs[0] at creation
	ImageURLs   []string           `bson:"image_urls" json:"image_urls"` // all images, primary first
	Status      VehicleStatus      `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// VehicleInput carries every writable field of a new vehicle. The store
// assigns ID, CreatedAt and UpdatedAt.
type VehicleInput struct {
	Make        string        `json:"make"`
	Model       string        `json:"model"`
	Year        int           `json:"year"`
	Price       int           `json:"price"`
	Condition   string        `json:"condition"`
	FuelType    string        `json:"fuel_type"`
	Description string        `json:"description"`
	ImageURL    string        `json:"image_url"`
	ImageURLs   []string      `json:"image_urls"`
	Status      VehicleStatus `json:"status"`
}

var (
	ErrMakeRequired     = errors.New("make is required")
	ErrModelRequired    = errors.New("model is required")
	ErrYearRequired     = errors.New("year is required")
	ErrNegativePrice    = errors.New("price must not be negative")
	ErrInvalidCondition = errors.New("condition must be New or Used")
	ErrNoImages         = errors.New("at least one image is required")
	ErrUnknownStatus    = errors.New("unknown vehicle status")
)

// Validate enforces the input-boundary invariants before any store call.
// It also fills defaults: an empty status becomes "newly-posted" and an
// empty primary image becomes the first entry of ImageURLs.
func (in *VehicleInput) Validate() error {
	if in.Make == "" {
		return ErrMakeRequired
	}
	if in.Model == "" {
		return ErrModelRequired
	}
	if in.Year <= 0 {
		return ErrYearRequired
	}
	if in.Price < 0 {
		return ErrNegativePrice
	}
	if in.Condition != ConditionNew && in.Condition != ConditionUsed {
		return ErrInvalidCondition
	}
	if len(in.ImageURLs) == 0 {
		return ErrNoImages
	}
	if in.Status == "" {
		in.Status = StatusNewlyPosted
	}
	if !IsValidStatus(in.Status) {
		return ErrUnknownStatus
	}
	if in.ImageURL == "" {
		in.ImageURL = in.ImageURLs[0]
	}
	return nil
}

// VehicleUpdate is a partial update: nil fields are left untouched by the
// store adapter. UpdatedAt is always stamped by the store.
type VehicleUpdate struct {
	Make        *string        `json:"make,omitempty"`
	Model       *string        `json:"model,omitempty"`
	Year        *int           `json:"year,omitempty"`
	Price       *int           `json:"price,omitempty"`
	Condition   *string        `json:"condition,omitempty"`
	FuelType    *string        `json:"fuel_type,omitempty"`
	Description *string        `json:"description,omitempty"`
	ImageURL    *string        `json:"image_url,omitempty"`
	ImageURLs   []string       `json:"image_urls,omitempty"`
	Status      *VehicleStatus `json:"status,omitempty"`
}
