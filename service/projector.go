package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"cart-optimizer/domain"
)

// Project applies each obligation's signed amount in date order starting from
// balance, up to and including horizonEnd, and returns the running-balance
// trajectory. Obligations sharing a date keep their input order. The
// projector holds no state; every call computes a fresh trajectory.
func Project(
	balance decimal.Decimal,
	obligations []domain.Obligation,
	horizonEnd time.Time,
) []domain.TrajectoryEntry {

	inWindow := make([]domain.Obligation, 0, len(obligations))
	for _, ob := range obligations {
		if !ob.DueDate.After(horizonEnd) {
			inWindow = append(inWindow, ob)
		}
	}

	// Orden estable: empates de fecha conservan el orden de entrada.
	sort.SliceStable(inWindow, func(i, j int) bool {
		return inWindow[i].DueDate.Before(inWindow[j].DueDate)
	})

	trajectory := make([]domain.TrajectoryEntry, 0, len(inWindow))
	running := balance
	for _, ob := range inWindow {
		running = running.Add(ob.Amount)
		trajectory = append(trajectory, domain.TrajectoryEntry{
			Date:        ob.DueDate,
			Description: ob.Description,
			Delta:       ob.Amount,
			Balance:     running,
		})
	}
	return trajectory
}

// MinBalance returns the trajectory entry with the lowest running balance.
// The earliest entry wins ties. ok is false for an empty trajectory.
func MinBalance(trajectory []domain.TrajectoryEntry) (domain.TrajectoryEntry, bool) {
	if len(trajectory) == 0 {
		return domain.TrajectoryEntry{}, false
	}
	lowest := trajectory[0]
	for _, entry := range trajectory[1:] {
		if entry.Balance.LessThan(lowest.Balance) {
			lowest = entry
		}
	}
	return lowest, true
}
