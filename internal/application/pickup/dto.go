package pickup

import (
	"time"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/pickup"
)

// CreateLocationRequest represents a request to create a pickup location
type CreateLocationRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=100"`
	AddressLine1 string `json:"address_line1" binding:"required,max=200"`
	AddressLine2 string `json:"address_line2" binding:"max=200"`
	City         string `json:"city" binding:"required,max=100"`
	State        string `json:"state" binding:"required,statecode"`
	PostalCode   string `json:"postal_code" binding:"required,max=20"`
	Instructions string `json:"instructions" binding:"max=2000"`
}

// UpdateLocationRequest represents a request to update a pickup location
type UpdateLocationRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=100"`
	AddressLine1 *string `json:"address_line1" binding:"omitempty,max=200"`
	AddressLine2 *string `json:"address_line2" binding:"omitempty,max=200"`
	City         *string `json:"city" binding:"omitempty,max=100"`
	State        *string `json:"state" binding:"omitempty,statecode"`
	PostalCode   *string `json:"postal_code" binding:"omitempty,max=20"`
	Instructions *string `json:"instructions" binding:"omitempty,max=2000"`
}

// LocationResponse represents a pickup location in API responses
type LocationResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	AddressLine1 string    `json:"address_line1"`
	AddressLine2 string    `json:"address_line2,omitempty"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	PostalCode   string    `json:"postal_code"`
	Instructions string    `json:"instructions,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToLocationResponse converts a domain PickupLocation to LocationResponse
func ToLocationResponse(l *pickup.PickupLocation) LocationResponse {
	return LocationResponse{
		ID:           l.ID,
		Name:         l.Name,
		AddressLine1: l.Address.Line1(),
		AddressLine2: l.Address.Line2(),
		City:         l.Address.City(),
		State:        l.Address.State(),
		PostalCode:   l.Address.PostalCode(),
		Instructions: l.Instructions,
		Active:       l.Active,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

// CreateScheduleRequest represents a request to create a pickup schedule
type CreateScheduleRequest struct {
	LocationID uuid.UUID `json:"location_id" binding:"required"`
	Kind       string    `json:"kind" binding:"required,oneof=recurring one_time"`
	DayOfWeek  int       `json:"day_of_week" binding:"min=0,max=6"`
	Date       string    `json:"date" binding:"omitempty,len=10"`
	StartTime  string    `json:"start_time" binding:"required,timewindow"`
	EndTime    string    `json:"end_time" binding:"required,timewindow"`
	Capacity   int       `json:"capacity" binding:"min=0"`
}

// UpdateScheduleRequest represents a request to update a pickup schedule
type UpdateScheduleRequest struct {
	StartTime *string `json:"start_time" binding:"omitempty,timewindow"`
	EndTime   *string `json:"end_time" binding:"omitempty,timewindow"`
	Capacity  *int    `json:"capacity" binding:"omitempty,min=0"`
}

// ScheduleResponse represents a pickup schedule in API responses
type ScheduleResponse struct {
	ID            uuid.UUID `json:"id"`
	LocationID    uuid.UUID `json:"location_id"`
	Kind          string    `json:"kind"`
	DayOfWeek     int       `json:"day_of_week"`
	Date          string    `json:"date,omitempty"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Capacity      int       `json:"capacity"`
	BlackoutDates []string  `json:"blackout_dates"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToScheduleResponse converts a domain PickupSchedule to ScheduleResponse
func ToScheduleResponse(s *pickup.PickupSchedule) ScheduleResponse {
	return ScheduleResponse{
		ID:            s.ID,
		LocationID:    s.LocationID,
		Kind:          string(s.Kind),
		DayOfWeek:     s.DayOfWeek,
		Date:          s.Date,
		StartTime:     string(s.StartTime),
		EndTime:       string(s.EndTime),
		Capacity:      s.Capacity,
		BlackoutDates: s.BlackoutDates,
		Active:        s.Active,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// AvailableSlotsRequest asks for bookable slots at a location
type AvailableSlotsRequest struct {
	LocationID uuid.UUID `form:"location_id" binding:"required"`
	FromDate   string    `form:"from_date" binding:"required,len=10"`
	ToDate     string    `form:"to_date" binding:"required,len=10"`
}

// CalendarRequest asks for the month calendar view of a location
type CalendarRequest struct {
	LocationID uuid.UUID `form:"location_id" binding:"required"`
	Year       int       `form:"year" binding:"required,min=2000,max=2100"`
	Month      int       `form:"month" binding:"required,min=1,max=12"`
}

// CalendarResponse is the month grid plus the slots behind it
type CalendarResponse struct {
	Year  int                   `json:"year"`
	Month int                   `json:"month"`
	Cells []pickup.CalendarCell `json:"cells"`
	Slots []pickup.Slot         `json:"slots"`
}
