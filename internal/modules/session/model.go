// README: Parking session aggregate and status definitions.
package session

import (
	"time"

	"parkd/internal/modules/tariff"
	"parkd/internal/types"
)

type Status string

const (
	StatusOpen      Status = "open"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Session struct {
	ID          types.ID
	LotID       types.ID
	CompanyID   types.ID
	Plate       string
	VehicleType tariff.VehicleType
	SpotCode    *string
	EntryAt     time.Time
	ExitAt      *time.Time
	Fee         *types.Money
	TicketLost  bool
	Status      Status
	CreatedAt   time.Time
}

// AllowedTransitions represents the session state flow as code.
var AllowedTransitions = map[Status][]Status{
	StatusOpen: {StatusCompleted, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	for _, s := range AllowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
