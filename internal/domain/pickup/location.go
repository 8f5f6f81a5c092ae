package pickup

import (
	"github.com/nursery/backend/internal/domain/shared"
	"github.com/nursery/backend/internal/domain/shared/valueobject"
)

// PickupLocation represents a physical site customers collect orders from
type PickupLocation struct {
	shared.BaseAggregateRoot
	Name         string              `gorm:"type:varchar(100);not null"`
	Address      valueobject.Address `gorm:"type:text"`
	Instructions string              `gorm:"type:text"`
	Active       bool                `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (PickupLocation) TableName() string {
	return "pickup_locations"
}

// NewPickupLocation creates a pickup location
func NewPickupLocation(name string, address valueobject.Address) (*PickupLocation, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location name cannot be empty")
	}

	return &PickupLocation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Address:           address,
		Active:            true,
	}, nil
}

// SetInstructions sets the customer-facing pickup instructions
func (l *PickupLocation) SetInstructions(instructions string) {
	l.Instructions = instructions
	l.Touch()
	l.IncrementVersion()
}

// Activate enables the location
func (l *PickupLocation) Activate() {
	if l.Active {
		return
	}
	l.Active = true
	l.Touch()
	l.IncrementVersion()
}

// Deactivate disables the location
func (l *PickupLocation) Deactivate() {
	if !l.Active {
		return
	}
	l.Active = false
	l.Touch()
	l.IncrementVersion()
}
