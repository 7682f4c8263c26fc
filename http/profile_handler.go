package http

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"cart-optimizer/repository"
)

type ProfileHandler struct {
	profiles repository.ProfileRepository
}

func NewProfileHandler(profiles repository.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type profileSummary struct {
	ID      string
	Name    string
	Balance decimal.Decimal
}

func (h *ProfileHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	profiles := h.profiles.ListProfiles()
	summaries := make([]profileSummary, 0, len(profiles))
	for _, p := range profiles {
		summaries = append(summaries, profileSummary{
			ID:      p.ID,
			Name:    p.Name,
			Balance: p.CurrentBalance,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summaries)
}
