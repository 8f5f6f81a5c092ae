package shipping

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/nursery/backend/internal/domain/shared"
)

// ZoneStatus represents the shipping eligibility of a destination state
type ZoneStatus string

const (
	ZoneAllowed     ZoneStatus = "allowed"
	ZoneBlocked     ZoneStatus = "blocked"
	ZoneConditional ZoneStatus = "conditional"
)

// IsValid checks if the zone status is recognised
func (s ZoneStatus) IsValid() bool {
	switch s {
	case ZoneAllowed, ZoneBlocked, ZoneConditional:
		return true
	}
	return false
}

// ServiceLevel is the shipping speed class required by conditional zones
type ServiceLevel string

const (
	ServiceLevelStandard  ServiceLevel = "standard"
	ServiceLevelExpedited ServiceLevel = "expedited"
	ServiceLevelOvernight ServiceLevel = "overnight"
)

// rank orders service levels by speed
func (l ServiceLevel) rank() int {
	switch l {
	case ServiceLevelOvernight:
		return 3
	case ServiceLevelExpedited:
		return 2
	case ServiceLevelStandard:
		return 1
	}
	return 0
}

// AtLeast reports whether this level meets or exceeds the required level
func (l ServiceLevel) AtLeast(required ServiceLevel) bool {
	return l.rank() >= required.rank()
}

var (
	stateCodePattern = regexp.MustCompile(`^[A-Z]{2}$`)
	monthDayPattern  = regexp.MustCompile(`^(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)
)

// MonthDay is a recurring calendar date in "MM-DD" form used for seasonal
// shipping windows that repeat every year
type MonthDay string

// Validate checks the MM-DD format
func (m MonthDay) Validate() error {
	if !monthDayPattern.MatchString(string(m)) {
		return shared.NewDomainError("INVALID_DATE", fmt.Sprintf("Invalid month-day %q, expected MM-DD", string(m)))
	}
	return nil
}

// ordinal returns a comparable value within a year (month*100 + day)
func (m MonthDay) ordinal() int {
	var month, day int
	fmt.Sscanf(string(m), "%d-%d", &month, &day)
	return month*100 + day
}

// OfTime converts a time to its MonthDay ordinal for window comparison
func monthDayOf(t time.Time) int {
	return int(t.Month())*100 + t.Day()
}

// ShippingZone represents per-state shipping eligibility
// One record exists per destination state
type ShippingZone struct {
	shared.BaseAggregateRoot
	StateCode       string       `gorm:"type:varchar(2);not null;uniqueIndex"`
	StateName       string       `gorm:"type:varchar(50);not null"`
	Status          ZoneStatus   `gorm:"type:varchar(20);not null;default:'allowed'"`
	SeasonStart     MonthDay     `gorm:"type:varchar(5)"` // conditional zones: window start (MM-DD)
	SeasonEnd       MonthDay     `gorm:"type:varchar(5)"` // conditional zones: window end (MM-DD)
	RequiredService ServiceLevel `gorm:"type:varchar(20)"`
	Note            string       `gorm:"type:text"` // e.g. agricultural quarantine details
}

// TableName returns the table name for GORM
func (ShippingZone) TableName() string {
	return "shipping_zones"
}

// NewShippingZone creates a zone record for a state
func NewShippingZone(stateCode, stateName string, status ZoneStatus) (*ShippingZone, error) {
	stateCode = strings.ToUpper(strings.TrimSpace(stateCode))
	if !stateCodePattern.MatchString(stateCode) {
		return nil, shared.NewDomainError("INVALID_STATE", "State code must be two letters")
	}
	if stateName == "" {
		return nil, shared.NewDomainError("INVALID_STATE", "State name cannot be empty")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown zone status")
	}

	return &ShippingZone{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StateCode:         stateCode,
		StateName:         stateName,
		Status:            status,
	}, nil
}

// SetStatus updates the zone status, clearing conditions when the zone
// is no longer conditional
func (z *ShippingZone) SetStatus(status ZoneStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown zone status")
	}

	z.Status = status
	if status != ZoneConditional {
		z.SeasonStart = ""
		z.SeasonEnd = ""
		z.RequiredService = ""
	}
	z.Touch()
	z.IncrementVersion()
	return nil
}

// SetSeasonalWindow restricts a conditional zone to a yearly window
// The window may wrap the year end (e.g. 10-01 through 04-30)
func (z *ShippingZone) SetSeasonalWindow(start, end MonthDay) error {
	if z.Status != ZoneConditional {
		return shared.NewDomainError("INVALID_STATE", "Seasonal windows apply to conditional zones only")
	}
	if err := start.Validate(); err != nil {
		return err
	}
	if err := end.Validate(); err != nil {
		return err
	}
	if start == end {
		return shared.NewDomainError("INVALID_DATE", "Seasonal window cannot start and end on the same day")
	}

	z.SeasonStart = start
	z.SeasonEnd = end
	z.Touch()
	z.IncrementVersion()
	return nil
}

// SetRequiredService requires a minimum service level for a conditional zone
func (z *ShippingZone) SetRequiredService(level ServiceLevel) error {
	if z.Status != ZoneConditional {
		return shared.NewDomainError("INVALID_STATE", "Service requirements apply to conditional zones only")
	}
	if level.rank() == 0 {
		return shared.NewDomainError("INVALID_SERVICE", "Unknown service level")
	}

	z.RequiredService = level
	z.Touch()
	z.IncrementVersion()
	return nil
}

// SetNote sets the operator-facing note
func (z *ShippingZone) SetNote(note string) {
	z.Note = note
	z.Touch()
	z.IncrementVersion()
}

// InSeason reports whether the given date falls inside the seasonal window
// A zone without a window is always in season. Windows that wrap the year
// end (start > end) cover late-year and early-year dates.
func (z *ShippingZone) InSeason(at time.Time) bool {
	if z.SeasonStart == "" || z.SeasonEnd == "" {
		return true
	}

	day := monthDayOf(at)
	start := z.SeasonStart.ordinal()
	end := z.SeasonEnd.ordinal()

	if start <= end {
		return day >= start && day <= end
	}
	// Wrapping window, e.g. 10-01 .. 04-30
	return day >= start || day <= end
}

// Evaluate checks whether an order may ship to this zone on the given date
// with the given service level. Returns a domain error describing the first
// failed condition.
func (z *ShippingZone) Evaluate(at time.Time, level ServiceLevel) error {
	switch z.Status {
	case ZoneAllowed:
		return nil
	case ZoneBlocked:
		return shared.NewDomainError("DESTINATION_BLOCKED",
			fmt.Sprintf("Shipping to %s is not available", z.StateName))
	case ZoneConditional:
		if !z.InSeason(at) {
			return shared.NewDomainError("DESTINATION_OUT_OF_SEASON",
				fmt.Sprintf("Shipping to %s is seasonal and currently unavailable", z.StateName))
		}
		if z.RequiredService != "" && !level.AtLeast(z.RequiredService) {
			return shared.NewDomainError("DESTINATION_SERVICE_REQUIRED",
				fmt.Sprintf("Shipping to %s requires %s service or faster", z.StateName, z.RequiredService))
		}
		return nil
	}
	return shared.NewDomainError("INVALID_STATUS", "Unknown zone status")
}
