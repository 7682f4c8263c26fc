package repository

import "cart-optimizer/domain"

type RecommendationRepository interface {
	Save(profileID string, rec domain.Recommendation) error
}

type savedRecommendation struct {
	ProfileID      string
	Recommendation domain.Recommendation
}

// RecommendationRepositoryMemory keeps computed recommendations in memory so
// a session can review past results. Not a durable store.
type RecommendationRepositoryMemory struct {
	data []savedRecommendation
}

func NewRecommendationRepositoryMemory() *RecommendationRepositoryMemory {
	return &RecommendationRepositoryMemory{
		data: []savedRecommendation{},
	}
}

// Save stores the recommendation in memory.
func (r *RecommendationRepositoryMemory) Save(
	profileID string,
	rec domain.Recommendation,
) error {
	r.data = append(r.data, savedRecommendation{
		ProfileID:      profileID,
		Recommendation: rec,
	})
	return nil
}
