package http

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"cart-optimizer/domain"
	"cart-optimizer/repository"
	"cart-optimizer/service"
)

// OptimizeRequest carries either an inline profile or the id of a stored one.
type OptimizeRequest struct {
	UserID  string
	Items   []domain.CartItem
	Profile *domain.FinancialProfile
}

type OptimizeHandler struct {
	service  *service.OptimizerService
	profiles repository.ProfileRepository
}

func NewOptimizeHandler(
	service *service.OptimizerService,
	profiles repository.ProfileRepository,
) *OptimizeHandler {
	return &OptimizeHandler{service: service, profiles: profiles}
}

func (h *OptimizeHandler) OptimizeCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Validar Content-Type
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var input OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Printf("Error decoding request body: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	profile, ok := resolveProfile(input.Profile, input.UserID, h.profiles)
	if !ok {
		http.Error(w, "profile not found", http.StatusNotFound)
		return
	}

	result, err := h.service.Optimize(domain.Cart(input.Items), profile)
	if err != nil {
		log.Printf("Error optimizing cart: %v", err)
		if service.IsValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		} else {
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	// Codificar JSON en buffer primero para evitar escribir header si falla
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(result); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

func resolveProfile(
	inline *domain.FinancialProfile,
	userID string,
	profiles repository.ProfileRepository,
) (domain.FinancialProfile, bool) {
	if inline != nil {
		return *inline, true
	}
	return profiles.GetProfile(userID)
}
