package pickup

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/pickup"
	"github.com/nursery/backend/internal/domain/shared"
	"github.com/nursery/backend/internal/domain/shared/valueobject"
)

// PickupService handles pickup locations, schedules and slot availability
type PickupService struct {
	locationRepo pickup.LocationRepository
	scheduleRepo pickup.ScheduleRepository
	bookings     pickup.BookingCounter
}

// NewPickupService creates a new PickupService
func NewPickupService(locationRepo pickup.LocationRepository, scheduleRepo pickup.ScheduleRepository, bookings pickup.BookingCounter) *PickupService {
	return &PickupService{
		locationRepo: locationRepo,
		scheduleRepo: scheduleRepo,
		bookings:     bookings,
	}
}

// CreateLocation creates a pickup location
func (s *PickupService) CreateLocation(ctx context.Context, req CreateLocationRequest) (*LocationResponse, error) {
	var opts []valueobject.AddressOption
	if req.AddressLine2 != "" {
		opts = append(opts, valueobject.WithLine2(req.AddressLine2))
	}
	address, err := valueobject.NewAddress(req.AddressLine1, req.City, req.State, req.PostalCode, opts...)
	if err != nil {
		return nil, err
	}

	location, err := pickup.NewPickupLocation(req.Name, address)
	if err != nil {
		return nil, err
	}
	if req.Instructions != "" {
		location.SetInstructions(req.Instructions)
	}

	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}

	response := ToLocationResponse(location)
	return &response, nil
}

// GetLocation retrieves a location by ID
func (s *PickupService) GetLocation(ctx context.Context, locationID uuid.UUID) (*LocationResponse, error) {
	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	response := ToLocationResponse(location)
	return &response, nil
}

// ListLocations retrieves locations matching the filter
func (s *PickupService) ListLocations(ctx context.Context, filter shared.Filter) (*shared.Paginated[LocationResponse], error) {
	locations, err := s.locationRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.locationRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]LocationResponse, 0, len(locations))
	for idx := range locations {
		responses = append(responses, ToLocationResponse(&locations[idx]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListActiveLocations retrieves locations available for checkout
func (s *PickupService) ListActiveLocations(ctx context.Context) ([]LocationResponse, error) {
	locations, err := s.locationRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]LocationResponse, 0, len(locations))
	for idx := range locations {
		responses = append(responses, ToLocationResponse(&locations[idx]))
	}
	return responses, nil
}

// UpdateLocation updates a pickup location
func (s *PickupService) UpdateLocation(ctx context.Context, locationID uuid.UUID, req UpdateLocationRequest) (*LocationResponse, error) {
	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("INVALID_LOCATION", "Location name cannot be empty")
		}
		location.Name = *req.Name
	}
	if req.AddressLine1 != nil || req.AddressLine2 != nil || req.City != nil || req.State != nil || req.PostalCode != nil {
		line1 := location.Address.Line1()
		line2 := location.Address.Line2()
		city := location.Address.City()
		state := location.Address.State()
		postalCode := location.Address.PostalCode()
		if req.AddressLine1 != nil {
			line1 = *req.AddressLine1
		}
		if req.AddressLine2 != nil {
			line2 = *req.AddressLine2
		}
		if req.City != nil {
			city = *req.City
		}
		if req.State != nil {
			state = *req.State
		}
		if req.PostalCode != nil {
			postalCode = *req.PostalCode
		}
		var opts []valueobject.AddressOption
		if line2 != "" {
			opts = append(opts, valueobject.WithLine2(line2))
		}
		address, err := valueobject.NewAddress(line1, city, state, postalCode, opts...)
		if err != nil {
			return nil, err
		}
		location.Address = address
		location.Touch()
		location.IncrementVersion()
	}
	if req.Instructions != nil {
		location.SetInstructions(*req.Instructions)
	}

	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}

	response := ToLocationResponse(location)
	return &response, nil
}

// ActivateLocation enables a pickup location
func (s *PickupService) ActivateLocation(ctx context.Context, locationID uuid.UUID) error {
	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return err
	}
	location.Activate()
	return s.locationRepo.Save(ctx, location)
}

// DeactivateLocation disables a pickup location
func (s *PickupService) DeactivateLocation(ctx context.Context, locationID uuid.UUID) error {
	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return err
	}
	location.Deactivate()
	return s.locationRepo.Save(ctx, location)
}

// DeleteLocation deletes a pickup location and its schedules
func (s *PickupService) DeleteLocation(ctx context.Context, locationID uuid.UUID) error {
	if _, err := s.locationRepo.FindByID(ctx, locationID); err != nil {
		return err
	}
	schedules, err := s.scheduleRepo.FindByLocation(ctx, locationID)
	if err != nil {
		return err
	}
	for idx := range schedules {
		if err := s.scheduleRepo.Delete(ctx, schedules[idx].ID); err != nil {
			return err
		}
	}
	return s.locationRepo.Delete(ctx, locationID)
}

// CreateSchedule creates a pickup schedule for a location
func (s *PickupService) CreateSchedule(ctx context.Context, req CreateScheduleRequest) (*ScheduleResponse, error) {
	if _, err := s.locationRepo.FindByID(ctx, req.LocationID); err != nil {
		return nil, err
	}

	var schedule *pickup.PickupSchedule
	var err error
	switch pickup.ScheduleKind(req.Kind) {
	case pickup.ScheduleRecurring:
		schedule, err = pickup.NewRecurringSchedule(req.LocationID, req.DayOfWeek,
			pickup.TimeOfDay(req.StartTime), pickup.TimeOfDay(req.EndTime), req.Capacity)
	case pickup.ScheduleOneTime:
		schedule, err = pickup.NewOneTimeSchedule(req.LocationID, req.Date,
			pickup.TimeOfDay(req.StartTime), pickup.TimeOfDay(req.EndTime), req.Capacity)
	default:
		return nil, shared.NewDomainError("INVALID_SCHEDULE", "Unknown schedule kind")
	}
	if err != nil {
		return nil, err
	}

	if err := s.scheduleRepo.Save(ctx, schedule); err != nil {
		return nil, err
	}

	response := ToScheduleResponse(schedule)
	return &response, nil
}

// GetSchedule retrieves a schedule by ID
func (s *PickupService) GetSchedule(ctx context.Context, scheduleID uuid.UUID) (*ScheduleResponse, error) {
	schedule, err := s.scheduleRepo.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	response := ToScheduleResponse(schedule)
	return &response, nil
}

// ListSchedules retrieves all schedules for a location
func (s *PickupService) ListSchedules(ctx context.Context, locationID uuid.UUID) ([]ScheduleResponse, error) {
	schedules, err := s.scheduleRepo.FindByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	responses := make([]ScheduleResponse, 0, len(schedules))
	for idx := range schedules {
		responses = append(responses, ToScheduleResponse(&schedules[idx]))
	}
	return responses, nil
}

// UpdateSchedule updates a pickup schedule
func (s *PickupService) UpdateSchedule(ctx context.Context, scheduleID uuid.UUID, req UpdateScheduleRequest) (*ScheduleResponse, error) {
	schedule, err := s.scheduleRepo.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	if req.StartTime != nil || req.EndTime != nil {
		start := schedule.StartTime
		end := schedule.EndTime
		if req.StartTime != nil {
			start = pickup.TimeOfDay(*req.StartTime)
		}
		if req.EndTime != nil {
			end = pickup.TimeOfDay(*req.EndTime)
		}
		if err := schedule.SetWindow(start, end); err != nil {
			return nil, err
		}
	}
	if req.Capacity != nil {
		if err := schedule.SetCapacity(*req.Capacity); err != nil {
			return nil, err
		}
	}

	if err := s.scheduleRepo.Save(ctx, schedule); err != nil {
		return nil, err
	}

	response := ToScheduleResponse(schedule)
	return &response, nil
}

// AddBlackoutDate excludes a date from a schedule
func (s *PickupService) AddBlackoutDate(ctx context.Context, scheduleID uuid.UUID, date string) (*ScheduleResponse, error) {
	schedule, err := s.scheduleRepo.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if err := schedule.AddBlackoutDate(date); err != nil {
		return nil, err
	}
	if err := s.scheduleRepo.Save(ctx, schedule); err != nil {
		return nil, err
	}
	response := ToScheduleResponse(schedule)
	return &response, nil
}

// RemoveBlackoutDate restores a previously excluded date
func (s *PickupService) RemoveBlackoutDate(ctx context.Context, scheduleID uuid.UUID, date string) (*ScheduleResponse, error) {
	schedule, err := s.scheduleRepo.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	schedule.RemoveBlackoutDate(date)
	if err := s.scheduleRepo.Save(ctx, schedule); err != nil {
		return nil, err
	}
	response := ToScheduleResponse(schedule)
	return &response, nil
}

// ActivateSchedule enables a schedule
func (s *PickupService) ActivateSchedule(ctx context.Context, scheduleID uuid.UUID) error {
	schedule, err := s.scheduleRepo.FindByID(ctx, scheduleID)
	if err != nil {
		return err
	}
	schedule.Activate()
	return s.scheduleRepo.Save(ctx, schedule)
}

// DeactivateSchedule disables a schedule
func (s *PickupService) DeactivateSchedule(ctx context.Context, scheduleID uuid.UUID) error {
	schedule, err := s.scheduleRepo.FindByID(ctx, scheduleID)
	if err != nil {
		return err
	}
	schedule.Deactivate()
	return s.scheduleRepo.Save(ctx, schedule)
}

// DeleteSchedule deletes a schedule
func (s *PickupService) DeleteSchedule(ctx context.Context, scheduleID uuid.UUID) error {
	if _, err := s.scheduleRepo.FindByID(ctx, scheduleID); err != nil {
		return err
	}
	return s.scheduleRepo.Delete(ctx, scheduleID)
}

const dateLayout = "2006-01-02"

// GetAvailableSlots expands a location's schedules into bookable slots
func (s *PickupService) GetAvailableSlots(ctx context.Context, req AvailableSlotsRequest) ([]pickup.Slot, error) {
	from, err := time.Parse(dateLayout, req.FromDate)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_DATE", "Invalid from_date, expected YYYY-MM-DD")
	}
	to, err := time.Parse(dateLayout, req.ToDate)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_DATE", "Invalid to_date, expected YYYY-MM-DD")
	}
	if to.Before(from) {
		return nil, shared.NewDomainError("INVALID_DATE", "to_date cannot be before from_date")
	}

	location, err := s.locationRepo.FindByID(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}
	if !location.Active {
		return []pickup.Slot{}, nil
	}

	schedules, err := s.scheduleRepo.FindActiveByLocation(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}
	booked, err := s.bookings.CountBookings(ctx, req.LocationID, req.FromDate, req.ToDate)
	if err != nil {
		return nil, err
	}

	slots := pickup.AvailableSlots(schedules, booked, from, to, time.Now())
	if slots == nil {
		slots = []pickup.Slot{}
	}
	return slots, nil
}

// GetCalendar builds the month calendar view for a location
func (s *PickupService) GetCalendar(ctx context.Context, req CalendarRequest) (*CalendarResponse, error) {
	month := time.Month(req.Month)
	first := time.Date(req.Year, month, 1, 0, 0, 0, 0, time.Local)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := start.AddDate(0, 0, 41)

	slots, err := s.GetAvailableSlots(ctx, AvailableSlotsRequest{
		LocationID: req.LocationID,
		FromDate:   start.Format(dateLayout),
		ToDate:     end.Format(dateLayout),
	})
	if err != nil {
		return nil, err
	}

	return &CalendarResponse{
		Year:  req.Year,
		Month: req.Month,
		Cells: pickup.CalendarGrid(req.Year, month, slots, time.Now()),
		Slots: slots,
	}, nil
}

// CheckSlot verifies that a specific schedule still has room on a date
// Used by checkout before accepting a pickup order
func (s *PickupService) CheckSlot(ctx context.Context, scheduleID uuid.UUID, date string) error {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return shared.NewDomainError("INVALID_DATE", "Invalid pickup date, expected YYYY-MM-DD")
	}

	schedule, err := s.scheduleRepo.FindByID(ctx, scheduleID)
	if err != nil {
		return err
	}
	if !schedule.CoversDate(day) {
		return shared.NewDomainError("SLOT_UNAVAILABLE", "The selected pickup slot is not offered on that date")
	}

	booked, err := s.bookings.CountBookings(ctx, schedule.LocationID, date, date)
	if err != nil {
		return err
	}
	if !schedule.HasRoom(booked.Get(schedule.ID, date)) {
		return shared.NewDomainError("SLOT_FULL", "The selected pickup slot is fully booked")
	}
	return nil
}
