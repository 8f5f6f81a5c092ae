package pickup

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/shared"
)

// ScheduleKind distinguishes weekly recurring windows from one-time events
type ScheduleKind string

const (
	ScheduleRecurring ScheduleKind = "recurring"
	ScheduleOneTime   ScheduleKind = "one_time"
)

var timeOfDayPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// TimeOfDay is a wall-clock time in "HH:MM" 24-hour form
type TimeOfDay string

// Validate checks the HH:MM format
func (t TimeOfDay) Validate() error {
	if !timeOfDayPattern.MatchString(string(t)) {
		return shared.NewDomainError("INVALID_TIME", fmt.Sprintf("Invalid time %q, expected HH:MM", string(t)))
	}
	return nil
}

// Minutes returns minutes since midnight for ordering comparisons
func (t TimeOfDay) Minutes() int {
	var h, m int
	fmt.Sscanf(string(t), "%d:%d", &h, &m)
	return h*60 + m
}

// DateList stores blackout dates as a JSON array of "YYYY-MM-DD" strings
type DateList []string

// Value implements driver.Valuer
func (d DateList) Value() (driver.Value, error) {
	if len(d) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (d *DateList) Scan(value interface{}) error {
	if value == nil {
		*d = DateList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into DateList", value)
	}
	return json.Unmarshal(data, d)
}

// Contains checks membership of a date string
func (d DateList) Contains(date string) bool {
	for _, v := range d {
		if v == date {
			return true
		}
	}
	return false
}

// PickupSchedule defines when a location offers pickup slots
// Recurring schedules repeat on a weekday, one-time schedules cover a
// single calendar date. Capacity 0 means unlimited.
type PickupSchedule struct {
	shared.BaseAggregateRoot
	LocationID    uuid.UUID    `gorm:"type:uuid;not null;index"`
	Kind          ScheduleKind `gorm:"type:varchar(20);not null"`
	DayOfWeek     int          `gorm:"not null;default:0"` // recurring: 0=Sunday .. 6=Saturday
	Date          string       `gorm:"type:varchar(10)"`   // one-time: YYYY-MM-DD
	StartTime     TimeOfDay    `gorm:"type:varchar(5);not null"`
	EndTime       TimeOfDay    `gorm:"type:varchar(5);not null"`
	Capacity      int          `gorm:"not null;default:0"`
	BlackoutDates DateList     `gorm:"type:jsonb"`
	Active        bool         `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (PickupSchedule) TableName() string {
	return "pickup_schedules"
}

const dateLayout = "2006-01-02"

// NewRecurringSchedule creates a weekly recurring pickup window
func NewRecurringSchedule(locationID uuid.UUID, dayOfWeek int, start, end TimeOfDay, capacity int) (*PickupSchedule, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, shared.NewDomainError("INVALID_SCHEDULE", "Day of week must be 0 through 6")
	}
	if err := validateWindow(start, end, capacity); err != nil {
		return nil, err
	}

	return &PickupSchedule{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		LocationID:        locationID,
		Kind:              ScheduleRecurring,
		DayOfWeek:         dayOfWeek,
		StartTime:         start,
		EndTime:           end,
		Capacity:          capacity,
		BlackoutDates:     DateList{},
		Active:            true,
	}, nil
}

// NewOneTimeSchedule creates a pickup window for a single date
func NewOneTimeSchedule(locationID uuid.UUID, date string, start, end TimeOfDay, capacity int) (*PickupSchedule, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, shared.NewDomainError("INVALID_DATE", fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", date))
	}
	if err := validateWindow(start, end, capacity); err != nil {
		return nil, err
	}

	return &PickupSchedule{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		LocationID:        locationID,
		Kind:              ScheduleOneTime,
		Date:              date,
		StartTime:         start,
		EndTime:           end,
		Capacity:          capacity,
		BlackoutDates:     DateList{},
		Active:            true,
	}, nil
}

func validateWindow(start, end TimeOfDay, capacity int) error {
	if err := start.Validate(); err != nil {
		return err
	}
	if err := end.Validate(); err != nil {
		return err
	}
	if end.Minutes() <= start.Minutes() {
		return shared.NewDomainError("INVALID_TIME", "End time must be after start time")
	}
	if capacity < 0 {
		return shared.NewDomainError("INVALID_CAPACITY", "Capacity cannot be negative")
	}
	return nil
}

// SetWindow updates the time window
func (s *PickupSchedule) SetWindow(start, end TimeOfDay) error {
	if err := validateWindow(start, end, s.Capacity); err != nil {
		return err
	}
	s.StartTime = start
	s.EndTime = end
	s.Touch()
	s.IncrementVersion()
	return nil
}

// SetCapacity updates the slot capacity, 0 meaning unlimited
func (s *PickupSchedule) SetCapacity(capacity int) error {
	if capacity < 0 {
		return shared.NewDomainError("INVALID_CAPACITY", "Capacity cannot be negative")
	}
	s.Capacity = capacity
	s.Touch()
	s.IncrementVersion()
	return nil
}

// AddBlackoutDate excludes a date from a recurring schedule
func (s *PickupSchedule) AddBlackoutDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return shared.NewDomainError("INVALID_DATE", fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", date))
	}
	if s.BlackoutDates.Contains(date) {
		return nil
	}
	s.BlackoutDates = append(s.BlackoutDates, date)
	s.Touch()
	s.IncrementVersion()
	return nil
}

// RemoveBlackoutDate re-enables a previously excluded date
func (s *PickupSchedule) RemoveBlackoutDate(date string) {
	kept := s.BlackoutDates[:0]
	for _, v := range s.BlackoutDates {
		if v != date {
			kept = append(kept, v)
		}
	}
	s.BlackoutDates = kept
	s.Touch()
	s.IncrementVersion()
}

// Activate enables the schedule
func (s *PickupSchedule) Activate() {
	if s.Active {
		return
	}
	s.Active = true
	s.Touch()
	s.IncrementVersion()
}

// Deactivate disables the schedule
func (s *PickupSchedule) Deactivate() {
	if !s.Active {
		return
	}
	s.Active = false
	s.Touch()
	s.IncrementVersion()
}

// CoversDate reports whether this schedule offers a window on the date
// Blackout dates and inactive schedules never match
func (s *PickupSchedule) CoversDate(date time.Time) bool {
	if !s.Active {
		return false
	}
	key := date.Format(dateLayout)
	if s.BlackoutDates.Contains(key) {
		return false
	}
	switch s.Kind {
	case ScheduleRecurring:
		return int(date.Weekday()) == s.DayOfWeek
	case ScheduleOneTime:
		return s.Date == key
	}
	return false
}

// Unlimited reports whether the schedule has no capacity cap
func (s *PickupSchedule) Unlimited() bool {
	return s.Capacity == 0
}

// Remaining computes how many bookings are still available given the
// current booked count. Unlimited schedules always have room.
func (s *PickupSchedule) Remaining(booked int) int {
	if s.Unlimited() {
		return -1
	}
	remaining := s.Capacity - booked
	if remaining < 0 {
		return 0
	}
	return remaining
}

// HasRoom reports whether another booking fits
func (s *PickupSchedule) HasRoom(booked int) bool {
	return s.Unlimited() || booked < s.Capacity
}
