package models

import (
	"errors"
	"regexp"
	"strings"
)

var reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

var (
	ErrNameRequired    = errors.New("name is required")
	ErrEmailRequired   = errors.New("email is required")
	ErrEmailInvalid    = errors.New("invalid email format")
	ErrPhoneRequired   = errors.New("phone is required")
	ErrMessageRequired = errors.New("message is required")
	ErrIssueRequired   = errors.New("issue description is required")
)

// ContactRequest is a workshop contact-form submission. It is never
// persisted; it is relayed to the shop by email and discarded.
type ContactRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	VehicleMake  string `json:"vehicle_make"`
	VehicleModel string `json:"vehicle_model"`
	VehicleYear  string `json:"vehicle_year"`
	ServiceType  string `json:"service_type"`
	Message      string `json:"message"`
}

// Validate checks required fields and email format before any remote call.
func (r *ContactRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(r.Email) == "" {
		return ErrEmailRequired
	}
	if !reEmail.MatchString(r.Email) {
		return ErrEmailInvalid
	}
	if strings.TrimSpace(r.Phone) == "" {
		return ErrPhoneRequired
	}
	if strings.TrimSpace(r.Message) == "" {
		return ErrMessageRequired
	}
	return nil
}

// Fields returns the template parameter map sent to the email service.
func (r *ContactRequest) Fields() map[string]string {
	return map[string]string{
		"name":          r.Name,
		"email":         r.Email,
		"phone":         r.Phone,
		"vehicle_make":  r.VehicleMake,
		"vehicle_model": r.VehicleModel,
		"vehicle_year":  r.VehicleYear,
		"service_type":  r.ServiceType,
		"message":       r.Message,
	}
}

// EmergencyRequest is a roadside-emergency form submission. Email is
// optional here; the shop calls back by phone.
type EmergencyRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Location    string `json:"location"`
	VehicleInfo string `json:"vehicle_info"`
	Issue       string `json:"issue"`
}

// Validate checks required fields before any remote call.
func (r *EmergencyRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(r.Phone) == "" {
		return ErrPhoneRequired
	}
	if r.Email != "" && !reEmail.MatchString(r.Email) {
		return ErrEmailInvalid
	}
	if strings.TrimSpace(r.Issue) == "" {
		return ErrIssueRequired
	}
	return nil
}

// Fields returns the template parameter map sent to the email service.
func (r *EmergencyRequest) Fields() map[string]string {
	return map[string]string{
		"name":         r.Name,
		"phone":        r.Phone,
		"email":        r.Email,
		"location":     r.Location,
		"vehicle_info": r.VehicleInfo,
		"issue":        r.Issue,
	}
}
