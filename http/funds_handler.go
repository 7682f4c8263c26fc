package http

import (
	"encoding/json"
	"net/http"

	"cart-optimizer/domain"
	"cart-optimizer/repository"
	"cart-optimizer/service"
)

type FundsRequest struct {
	UserID    string
	Profile   *domain.FinancialProfile
	DaysAhead int
}

type FundsHandler struct {
	service  *service.OptimizerService
	profiles repository.ProfileRepository
}

func NewFundsHandler(
	service *service.OptimizerService,
	profiles repository.ProfileRepository,
) *FundsHandler {
	return &FundsHandler{service: service, profiles: profiles}
}

func (h *FundsHandler) AvailableFunds(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input FundsRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	profile, ok := resolveProfile(input.Profile, input.UserID, h.profiles)
	if !ok {
		http.Error(w, "profile not found", http.StatusNotFound)
		return
	}

	result, err := h.service.AvailableFunds(profile, input.DaysAhead)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
