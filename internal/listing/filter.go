// Package listing derives the visible subset of the vehicle catalog from
// the full in-memory list and a filter specification. Filtering is a pure
// function with no I/O; the result is recomputed in full on every call.
// Catalogs are tens to low hundreds of records, so no index is kept.
package listing

import (
	"strings"
	"time"

	"github.com/albercy/auto-clinic/internal/models"
)

// All is the sentinel for the condition and status filters meaning
// "no restriction on this axis".
const All = "All"

// Selection is a set-membership filter over string values. The empty
// selection is a deliberate sentinel meaning unrestricted: it matches
// everything, never nothing.
type Selection []string

// Unrestricted reports whether the selection places no restriction.
func (s Selection) Unrestricted() bool {
	return len(s) == 0
}

// Matches reports whether v passes the selection: always true when
// unrestricted, otherwise exact membership.
func (s Selection) Matches(v string) bool {
	if s.Unrestricted() {
		return true
	}
	for _, member := range s {
		if member == v {
			return true
		}
	}
	return false
}

// Range is an inclusive numeric interval.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether n lies within the range, bounds included.
func (r Range) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// FilterSpec is the ephemeral set of active listing filters. All criteria
// are combined conjunctively. It is never persisted.
type FilterSpec struct {
	Search    string    `json:"search"`    // case-insensitive substring on make OR model
	Condition string    `json:"condition"` // All, New or Used
	Price     Range     `json:"price"`
	Year      Range     `json:"year"`
	Makes     Selection `json:"makes"`
	FuelTypes Selection `json:"fuel_types"`
	Status    string    `json:"status"` // All or an exact VehicleStatus
}

// Default filter bounds. The year ceiling tracks the current year plus
// one so next-model-year vehicles still pass the reset filter.
const (
	DefaultPriceMin = 0
	DefaultPriceMax = 100_000_000
	DefaultYearMin  = 1990
)

// DefaultYearMax returns the reset upper bound for the year range.
func DefaultYearMax() int {
	return time.Now().Year() + 1
}

// DefaultSpec returns the reset state: empty search, All condition and
// status, full price and year ranges, unrestricted make and fuel sets.
// Applying it leaves the list unchanged.
func DefaultSpec() FilterSpec {
	return FilterSpec{
		Search:    "",
		Condition: All,
		Price:     Range{Min: DefaultPriceMin, Max: DefaultPriceMax},
		Year:      Range{Min: DefaultYearMin, Max: DefaultYearMax()},
		Makes:     Selection{},
		FuelTypes: Selection{},
		Status:    All,
	}
}

// Matches reports whether a single vehicle passes every active criterion.
func (f FilterSpec) Matches(v models.Vehicle) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(v.Make), term) &&
			!strings.Contains(strings.ToLower(v.Model), term) {
			return false
		}
	}
	if f.Condition != All && v.Condition != f.Condition {
		return false
	}
	if !f.Price.Contains(v.Price) {
		return false
	}
	if !f.Year.Contains(v.Year) {
		return false
	}
	if !f.Makes.Matches(v.Make) {
		return false
	}
	if !f.FuelTypes.Matches(v.FuelType) {
		return false
	}
	if f.Status != All && string(v.Status) != f.Status {
		return false
	}
	return true
}

// Apply returns the subset of vehicles matching every active criterion.
// The output preserves the input order, which getAllVehicles guarantees
// is created_at descending.
func Apply(vehicles []models.Vehicle, spec FilterSpec) []models.Vehicle {
	filtered := make([]models.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if spec.Matches(v) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// EmptyState distinguishes an empty catalog from an exhausting filter so
// the presentation layer can show the right message.
type EmptyState string

const (
	EmptyNone        EmptyState = ""             // results exist
	EmptyNoInventory EmptyState = "no-inventory" // the catalog itself is empty
	EmptyNoMatches   EmptyState = "no-matches"   // vehicles exist, none match
)

// Emptiness classifies a filter result against its source list.
func Emptiness(full, filtered []models.Vehicle) EmptyState {
	if len(full) == 0 {
		return EmptyNoInventory
	}
	if len(filtered) == 0 {
		return EmptyNoMatches
	}
	return EmptyNone
}

// UniqueMakes returns the distinct makes in first-appearance order, for
// building the make filter sidebar.
func UniqueMakes(vehicles []models.Vehicle) []string {
	return uniqueBy(vehicles, func(v models.Vehicle) string { return v.Make })
}

// UniqueFuelTypes returns the distinct fuel types in first-appearance order.
func UniqueFuelTypes(vehicles []models.Vehicle) []string {
	return uniqueBy(vehicles, func(v models.Vehicle) string { return v.FuelType })
}

func uniqueBy(vehicles []models.Vehicle, key func(models.Vehicle) string) []string {
	seen := make(map[string]bool, len(vehicles))
	var out []string
	for _, v := range vehicles {
		k := key(v)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
