package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/albercy/auto-clinic/internal/db"
	"github.com/albercy/auto-clinic/internal/listing"
	"github.com/albercy/auto-clinic/internal/models"
	"github.com/albercy/auto-clinic/internal/storage"
)

// maxUploadBytes caps a multipart image upload request.
const maxUploadBytes = 32 << 20 // 32 MiB

// VehicleHandler serves the public listing endpoints and the admin CRUD
// surface of the vehicle catalog.
type VehicleHandler struct {
	vehicles db.VehicleCollection
	images   storage.ImageStore
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicles db.VehicleCollection, images storage.ImageStore) *VehicleHandler {
	return &VehicleHandler{
		vehicles: vehicles,
		images:   images,
	}
}

// ListResponse is the public listing payload: the filtered vehicles, the
// facet values for the filter sidebar, and the empty-state discriminator
// so the UI can tell "no inventory" from "no matches".
type ListResponse struct {
	Vehicles   []models.Vehicle   `json:"vehicles"`
	Total      int                `json:"total"` // catalog size before filtering
	Makes      []string           `json:"makes"`
	FuelTypes  []string           `json:"fuel_types"`
	EmptyState listing.EmptyState `json:"empty_state,omitempty"`
}

// List serves GET /api/vehicles. The full catalog is fetched every time
// and the filter spec from the query string is applied in memory.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	spec, err := specFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	vehicles, err := h.vehicles.GetAllVehicles(r.Context())
	if err != nil {
		log.WithError(err).Error("Failed to fetch vehicles")
		http.Error(w, "Failed to load vehicles", http.StatusInternalServerError)
		return
	}

	filtered := listing.Apply(vehicles, spec)
	writeJSON(w, http.StatusOK, ListResponse{
		Vehicles:   filtered,
		Total:      len(vehicles),
		Makes:      listing.UniqueMakes(vehicles),
		FuelTypes:  listing.UniqueFuelTypes(vehicles),
		EmptyState: listing.Emptiness(vehicles, filtered),
	})
}

// ListAvailable serves GET /api/vehicles/available: everything not sold.
func (h *VehicleHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicles.GetAvailableVehicles(r.Context())
	if err != nil {
		log.WithError(err).Error("Failed to fetch available vehicles")
		http.Error(w, "Failed to load vehicles", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"vehicles": vehicles})
}

// Get serves GET /api/vehicles/{id}. An absent vehicle is a 404, not a
// server error.
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	vehicle, err := h.vehicles.GetVehicle(r.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrInvalidID) {
			http.Error(w, "Invalid vehicle ID", http.StatusBadRequest)
			return
		}
		log.WithError(err).WithField("vehicle_id", id).Error("Failed to fetch vehicle")
		http.Error(w, "Failed to load vehicle", http.StatusInternalServerError)
		return
	}
	if vehicle == nil {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

// Create serves POST /api/vehicles (admin). Validation happens before any
// store call; no document is created when the input is rejected.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.VehicleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := input.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.vehicles.AddVehicle(r.Context(), input)
	if err != nil {
		log.WithError(err).Error("Failed to add vehicle")
		http.Error(w, "Failed to post vehicle", http.StatusInternalServerError)
		return
	}

	log.WithFields(log.Fields{
		"vehicle_id": id,
		"make":       input.Make,
		"model":      input.Model,
	}).Info("Vehicle posted")

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// Update serves PUT /api/vehicles/{id} (admin): a partial merge of the
// provided fields.
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var update models.VehicleUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if update.Status != nil && !models.IsValidStatus(*update.Status) {
		http.Error(w, models.ErrUnknownStatus.Error(), http.StatusBadRequest)
		return
	}

	if err := h.vehicles.UpdateVehicle(r.Context(), id, update); err != nil {
		h.writeStoreError(w, id, "update vehicle", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Vehicle updated successfully"})
}

// UpdateStatus serves PATCH /api/vehicles/{id}/status (admin). Any status
// may replace any other.
func (h *VehicleHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var body struct {
		Status models.VehicleStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if !models.IsValidStatus(body.Status) {
		http.Error(w, models.ErrUnknownStatus.Error(), http.StatusBadRequest)
		return
	}

	if err := h.vehicles.UpdateVehicleStatus(r.Context(), id, body.Status); err != nil {
		h.writeStoreError(w, id, "update vehicle status", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Vehicle marked as " + body.Status.Badge().Label,
	})
}

// Delete serves DELETE /api/vehicles/{id} (admin). A hard delete; there is
// no tombstone.
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.vehicles.DeleteVehicle(r.Context(), id); err != nil {
		h.writeStoreError(w, id, "delete vehicle", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Vehicle deleted successfully"})
}

// UploadImages serves POST /api/images (admin): a multipart form with
// "make", "model" and one or more "images" files. Files upload one at a
// time; the first failure aborts the request and earlier uploads stay in
// storage.
func (h *VehicleHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	vehicleMake := r.FormValue("make")
	model := r.FormValue("model")
	if vehicleMake == "" || model == "" {
		http.Error(w, "make and model are required", http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		http.Error(w, models.ErrNoImages.Error(), http.StatusBadRequest)
		return
	}

	pending := make([]storage.Image, 0, len(files))
	for i, header := range files {
		file, err := header.Open()
		if err != nil {
			http.Error(w, "Failed to read image "+strconv.Itoa(i+1), http.StatusBadRequest)
			return
		}
		defer file.Close()
		pending = append(pending, storage.Image{
			Reader:      file,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
		})
	}

	urls, err := storage.UploadAll(r.Context(), h.images, vehicleMake, model, pending)
	if err != nil {
		log.WithError(err).Error("Image upload failed")
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"image_urls": urls})
}

func (h *VehicleHandler) writeStoreError(w http.ResponseWriter, id, op string, err error) {
	switch {
	case errors.Is(err, db.ErrInvalidID):
		http.Error(w, "Invalid vehicle ID", http.StatusBadRequest)
	case errors.Is(err, db.ErrVehicleNotFound):
		http.Error(w, "Vehicle not found", http.StatusNotFound)
	default:
		log.WithError(err).WithField("vehicle_id", id).Errorf("Failed to %s", op)
		http.Error(w, "Failed to "+op, http.StatusInternalServerError)
	}
}

// specFromQuery builds a FilterSpec from listing query parameters,
// starting from the default (unrestricted) spec.
func specFromQuery(r *http.Request) (listing.FilterSpec, error) {
	spec := listing.DefaultSpec()
	q := r.URL.Query()

	spec.Search = q.Get("search")
	if v := q.Get("condition"); v != "" {
		spec.Condition = v
	}
	if v := q.Get("status"); v != "" {
		spec.Status = v
	}
	spec.Makes = listing.Selection(q["make"])
	spec.FuelTypes = listing.Selection(q["fuel_type"])

	var err error
	if spec.Price.Min, err = intParam(q.Get("price_min"), spec.Price.Min); err != nil {
		return spec, errors.New("invalid price_min")
	}
	if spec.Price.Max, err = intParam(q.Get("price_max"), spec.Price.Max); err != nil {
		return spec, errors.New("invalid price_max")
	}
	if spec.Year.Min, err = intParam(q.Get("year_min"), spec.Year.Min); err != nil {
		return spec, errors.New("invalid year_min")
	}
	if spec.Year.Max, err = intParam(q.Get("year_max"), spec.Year.Max); err != nil {
		return spec, errors.New("invalid year_max")
	}
	return spec, nil
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
