package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"quikbill-backend/internal/models"
	"quikbill-backend/internal/repositories"
	"quikbill-backend/internal/services"
)

type SettingsHandler struct {
	Service *services.ShopSettingsService
}

func NewSettingsHandler(s *services.ShopSettingsService) *SettingsHandler {
	return &SettingsHandler{Service: s}
}

func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Service.GetSettings(context.Background())
	if err != nil {
		if errors.Is(err, repositories.ErrNotConfigured) {
			http.Error(w, "Shop settings not configured", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

// SaveSettings creates or updates the shop profile. The invoice counter
// cannot be written through this endpoint.
func (h *SettingsHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateShopSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.SaveProfile(context.Background(), &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	settings, err := h.Service.GetSettings(context.Background())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}
