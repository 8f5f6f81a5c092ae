package handler

import (
	"github.com/gin-gonic/gin"
	pickupapp "github.com/nursery/backend/internal/application/pickup"
)

// PickupHandler handles pickup location and schedule API endpoints
type PickupHandler struct {
	BaseHandler
	pickupService *pickupapp.PickupService
}

// NewPickupHandler creates a new PickupHandler
func NewPickupHandler(pickupService *pickupapp.PickupService) *PickupHandler {
	return &PickupHandler{pickupService: pickupService}
}

// CreateLocation godoc
// @Summary  Create a pickup location
// @Tags     pickup
// @Router   /admin/pickup/locations [post]
func (h *PickupHandler) CreateLocation(c *gin.Context) {
	var req pickupapp.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	location, err := h.pickupService.CreateLocation(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, location)
}

// GetLocation godoc
// @Summary  Get pickup location by ID
// @Tags     pickup
// @Router   /admin/pickup/locations/{id} [get]
func (h *PickupHandler) GetLocation(c *gin.Context) {
	locationID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	location, err := h.pickupService.GetLocation(c.Request.Context(), locationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, location)
}

// ListLocations godoc
// @Summary  List pickup locations
// @Tags     pickup
// @Router   /admin/pickup/locations [get]
func (h *PickupHandler) ListLocations(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.pickupService.ListLocations(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListActiveLocations godoc
// @Summary  List active pickup locations for the storefront
// @Tags     pickup
// @Router   /store/pickup/locations [get]
func (h *PickupHandler) ListActiveLocations(c *gin.Context) {
	locations, err := h.pickupService.ListActiveLocations(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, locations)
}

// UpdateLocation godoc
// @Summary  Update a pickup location
// @Tags     pickup
// @Router   /admin/pickup/locations/{id} [put]
func (h *PickupHandler) UpdateLocation(c *gin.Context) {
	locationID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	var req pickupapp.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	location, err := h.pickupService.UpdateLocation(c.Request.Context(), locationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, location)
}

// ActivateLocation makes a location selectable at checkout
func (h *PickupHandler) ActivateLocation(c *gin.Context) {
	locationID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	if err := h.pickupService.ActivateLocation(c.Request.Context(), locationID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// DeactivateLocation hides a location from checkout
func (h *PickupHandler) DeactivateLocation(c *gin.Context) {
	locationID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	if err := h.pickupService.DeactivateLocation(c.Request.Context(), locationID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// DeleteLocation godoc
// @Summary  Delete a pickup location
// @Tags     pickup
// @Router   /admin/pickup/locations/{id} [delete]
func (h *PickupHandler) DeleteLocation(c *gin.Context) {
	locationID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	if err := h.pickupService.DeleteLocation(c.Request.Context(), locationID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateSchedule godoc
// @Summary  Create a pickup schedule window
// @Tags     pickup
// @Router   /admin/pickup/schedules [post]
func (h *PickupHandler) CreateSchedule(c *gin.Context) {
	var req pickupapp.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	schedule, err := h.pickupService.CreateSchedule(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, schedule)
}

// GetSchedule godoc
// @Summary  Get pickup schedule by ID
// @Tags     pickup
// @Router   /admin/pickup/schedules/{id} [get]
func (h *PickupHandler) GetSchedule(c *gin.Context) {
	scheduleID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid schedule ID format")
		return
	}

	schedule, err := h.pickupService.GetSchedule(c.Request.Context(), scheduleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, schedule)
}

// ListSchedules godoc
// @Summary  List schedules for a pickup location
// @Tags     pickup
// @Router   /admin/pickup/locations/{id}/schedules [get]
func (h *PickupHandler) ListSchedules(c *gin.Context) {
	locationID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	schedules, err := h.pickupService.ListSchedules(c.Request.Context(), locationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, schedules)
}

// UpdateSchedule godoc
// @Summary  Update a pickup schedule
// @Tags     pickup
// @Router   /admin/pickup/schedules/{id} [put]
func (h *PickupHandler) UpdateSchedule(c *gin.Context) {
	scheduleID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid schedule ID format")
		return
	}

	var req pickupapp.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	schedule, err := h.pickupService.UpdateSchedule(c.Request.Context(), scheduleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, schedule)
}

// BlackoutDateRequest adds or removes a blackout date on a schedule
type BlackoutDateRequest struct {
	Date string `json:"date" binding:"required,len=10"`
}

// AddBlackoutDate godoc
// @Summary  Block a specific date on a schedule
// @Tags     pickup
// @Router   /admin/pickup/schedules/{id}/blackouts [post]
func (h *PickupHandler) AddBlackoutDate(c *gin.Context) {
	scheduleID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid schedule ID format")
		return
	}

	var req BlackoutDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	schedule, err := h.pickupService.AddBlackoutDate(c.Request.Context(), scheduleID, req.Date)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, schedule)
}

// RemoveBlackoutDate godoc
// @Summary  Unblock a date on a schedule
// @Tags     pickup
// @Router   /admin/pickup/schedules/{id}/blackouts/{date} [delete]
func (h *PickupHandler) RemoveBlackoutDate(c *gin.Context) {
	scheduleID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid schedule ID format")
		return
	}

	date := c.Param("date")
	if date == "" {
		h.BadRequest(c, "Missing blackout date")
		return
	}

	schedule, err := h.pickupService.RemoveBlackoutDate(c.Request.Context(), scheduleID, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, schedule)
}

// ActivateSchedule resumes a paused schedule
func (h *PickupHandler) ActivateSchedule(c *gin.Context) {
	scheduleID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid schedule ID format")
		return
	}

	if err := h.pickupService.ActivateSchedule(c.Request.Context(), scheduleID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// DeactivateSchedule pauses a schedule without deleting it
func (h *PickupHandler) DeactivateSchedule(c *gin.Context) {
	scheduleID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid schedule ID format")
		return
	}

	if err := h.pickupService.DeactivateSchedule(c.Request.Context(), scheduleID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// DeleteSchedule godoc
// @Summary  Delete a pickup schedule
// @Tags     pickup
// @Router   /admin/pickup/schedules/{id} [delete]
func (h *PickupHandler) DeleteSchedule(c *gin.Context) {
	scheduleID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid schedule ID format")
		return
	}

	if err := h.pickupService.DeleteSchedule(c.Request.Context(), scheduleID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AvailableSlots godoc
// @Summary  List open pickup slots for a location and date range
// @Tags     pickup
// @Router   /store/pickup/slots [get]
func (h *PickupHandler) AvailableSlots(c *gin.Context) {
	var req pickupapp.AvailableSlotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	slots, err := h.pickupService.GetAvailableSlots(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, slots)
}

// Calendar godoc
// @Summary  Month calendar of pickup availability for a location
// @Tags     pickup
// @Router   /store/pickup/calendar [get]
func (h *PickupHandler) Calendar(c *gin.Context) {
	var req pickupapp.CalendarRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	calendar, err := h.pickupService.GetCalendar(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, calendar)
}
