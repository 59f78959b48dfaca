package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/albercy/auto-clinic/internal/email"
	"github.com/albercy/auto-clinic/internal/models"
)

// InquiryHandler relays contact and emergency form submissions to the shop
// by email. Submissions are never persisted and never retried; a failed
// send is reported to the caller, who may re-submit.
type InquiryHandler struct {
	sender    email.Sender
	contact   email.Template
	emergency email.Template
}

// NewInquiryHandler creates a new inquiry handler
func NewInquiryHandler(sender email.Sender, contact, emergency email.Template) *InquiryHandler {
	return &InquiryHandler{
		sender:    sender,
		contact:   contact,
		emergency: emergency,
	}
}

// Contact serves POST /api/contact.
func (h *InquiryHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ref := uuid.NewString()
	if err := h.sender.Send(r.Context(), h.contact, req.Fields()); err != nil {
		log.WithError(err).WithField("reference", ref).Error("Failed to send contact email")
		http.Error(w, "Failed to submit request. Please try again later.", http.StatusBadGateway)
		return
	}

	log.WithFields(log.Fields{"reference": ref, "service_type": req.ServiceType}).Info("Contact request relayed")
	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "Your request has been submitted successfully!",
		"reference": ref,
	})
}

// Emergency serves POST /api/emergency.
func (h *InquiryHandler) Emergency(w http.ResponseWriter, r *http.Request) {
	var req models.EmergencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ref := uuid.NewString()
	if err := h.sender.Send(r.Context(), h.emergency, req.Fields()); err != nil {
		log.WithError(err).WithField("reference", ref).Error("Failed to send emergency email")
		http.Error(w, "Failed to send request. Please try again or call our emergency number.", http.StatusBadGateway)
		return
	}

	log.WithField("reference", ref).Info("Emergency request relayed")
	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "Emergency request sent. We will contact you shortly.",
		"reference": ref,
	})
}
