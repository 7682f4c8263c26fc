package repository

import "cart-optimizer/domain"

// ProfileRepository resolves financial profiles for optimize requests that
// reference a stored user instead of carrying the profile inline.
type ProfileRepository interface {
	GetProfile(id string) (domain.FinancialProfile, bool)
	ListProfiles() []domain.FinancialProfile
}
