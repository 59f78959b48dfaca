package db

import (
	"context"

	"github.com/albercy/auto-clinic/internal/models"
)

// VehicleCollection is the store adapter for the vehicle catalog: the sole
// reader/writer of persisted vehicle state. There is no cache behind it;
// callers observe their own writes only by re-fetching.
type VehicleCollection interface {
	AddVehicle(ctx context.Context, input models.VehicleInput) (string, error)
	UpdateVehicle(ctx context.Context, id string, update models.VehicleUpdate) error
	UpdateVehicleStatus(ctx context.Context, id string, status models.VehicleStatus) error
	DeleteVehicle(ctx context.Context, id string) error
	GetVehicle(ctx context.Context, id string) (*models.Vehicle, error)
	GetAllVehicles(ctx context.Context) ([]models.Vehicle, error)
	GetAvailableVehicles(ctx context.Context) ([]models.Vehicle, error)
}

// AdminCollection defines the interface for admin capability documents.
type AdminCollection interface {
	InsertAdmin(ctx context.Context, admin models.AdminUser) error
	FindAdminByUID(ctx context.Context, uid string) (*models.AdminUser, error)
	FindAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}
