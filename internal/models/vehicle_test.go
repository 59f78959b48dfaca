package models

import (
	"testing"
)

func TestIsValidStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   VehicleStatus
		expected bool
	}{
		{"available", StatusAvailable, true},
		{"sold", StatusSold, true},
		{"newly-posted", StatusNewlyPosted, true},
		{"limited-edition", StatusLimitedEdition, true},
		{"unknown status", "reserved", false},
		{"empty status", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidStatus(tt.status)
			if result != tt.expected {
				t.Errorf("IsValidStatus(%s) = %v, want %v", tt.status, result, tt.expected)
			}
		})
	}
}

func TestVehicleStatus_Badge(t *testing.T) {
	tests := []struct {
		status VehicleStatus
		label  string
		color  string
	}{
		{StatusAvailable, "Available", "green"},
		{StatusSold, "Sold", "red"},
		{StatusNewlyPosted, "New Listing", "blue"},
		{StatusLimitedEdition, "Limited Edition", "amber"},
		{"bogus", "Available", "green"}, // unknown falls back to available
	}

	for _, tt := range tests {
		badge := tt.status.Badge()
		if badge.Label != tt.label {
			t.Errorf("Badge(%s).Label = %s, want %s", tt.status, badge.Label, tt.label)
		}
		if badge.Color != tt.color {
			t.Errorf("Badge(%s).Color = %s, want %s", tt.status, badge.Color, tt.color)
		}
	}
}

func validInput() VehicleInput {
	return VehicleInput{
		Make:      "Toyota",
		Model:     "Corolla",
		Year:      2022,
		Price:     2_000_000,
		Condition: ConditionUsed,
		FuelType:  "Petrol",
		ImageURLs: []string{"https://img.example/corolla-0.jpg"},
	}
}

func TestVehicleInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*VehicleInput)
		wantErr error
	}{
		{"valid input", func(in *VehicleInput) {}, nil},
		{"missing make", func(in *VehicleInput) { in.Make = "" }, ErrMakeRequired},
		{"missing model", func(in *VehicleInput) { in.Model = "" }, ErrModelRequired},
		{"zero year", func(in *VehicleInput) { in.Year = 0 }, ErrYearRequired},
		{"negative price", func(in *VehicleInput) { in.Price = -1 }, ErrNegativePrice},
		{"bad condition", func(in *VehicleInput) { in.Condition = "Refurbished" }, ErrInvalidCondition},
		{"no images", func(in *VehicleInput) { in.ImageURLs = nil }, ErrNoImages},
		{"empty image slice", func(in *VehicleInput) { in.ImageURLs = []string{} }, ErrNoImages},
		{"unknown status", func(in *VehicleInput) { in.Status = "reserved" }, ErrUnknownStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			err := in.Validate()
			if err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVehicleInput_Validate_Defaults(t *testing.T) {
	in := validInput()
	in.Status = ""
	in.ImageURL = ""

	if err := in.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}

	if in.Status != StatusNewlyPosted {
		t.Errorf("empty status should default to %s, got %s", StatusNewlyPosted, in.Status)
	}
	if in.ImageURL != in.ImageURLs[0] {
		t.Errorf("empty imageURL should default to imageURLs[0] = %s, got %s", in.ImageURLs[0], in.ImageURL)
	}
}

func TestVehicleInput_Validate_KeepsExplicitPrimaryImage(t *testing.T) {
	in := validInput()
	in.ImageURLs = []string{"https://img.example/a.jpg", "https://img.example/b.jpg"}
	in.ImageURL = "https://img.example/a.jpg"

	if err := in.Validate(); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if in.ImageURL != "https://img.example/a.jpg" {
		t.Errorf("explicit imageURL was overwritten: %s", in.ImageURL)
	}
}
