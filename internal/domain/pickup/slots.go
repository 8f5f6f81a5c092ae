package pickup

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Slot is a concrete bookable pickup window on a specific date
type Slot struct {
	ScheduleID uuid.UUID `json:"schedule_id"`
	LocationID uuid.UUID `json:"location_id"`
	Date       string    `json:"date"` // YYYY-MM-DD
	StartTime  TimeOfDay `json:"start_time"`
	EndTime    TimeOfDay `json:"end_time"`
	Capacity   int       `json:"capacity"` // 0 = unlimited
	Booked     int       `json:"booked"`
	Remaining  int       `json:"remaining"` // -1 = unlimited
}

// BookedCounts maps schedule ID and date to the number of existing bookings
type BookedCounts map[uuid.UUID]map[string]int

// Get returns the booked count for a schedule on a date
func (b BookedCounts) Get(scheduleID uuid.UUID, date string) int {
	if byDate, ok := b[scheduleID]; ok {
		return byDate[date]
	}
	return 0
}

// AvailableSlots expands schedules into bookable slots between from and to
// inclusive. Dates before today, blackout dates, and inactive schedules are
// omitted. Fully booked slots are kept with Remaining set to zero so callers
// can render them as full. Slots are ordered by date then start time.
func AvailableSlots(schedules []PickupSchedule, booked BookedCounts, from, to, now time.Time) []Slot {
	var slots []Slot

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	last := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())

	for !day.After(last) {
		if day.Before(today) {
			day = day.AddDate(0, 0, 1)
			continue
		}
		key := day.Format(dateLayout)
		for i := range schedules {
			s := &schedules[i]
			if !s.CoversDate(day) {
				continue
			}
			count := booked.Get(s.ID, key)
			slots = append(slots, Slot{
				ScheduleID: s.ID,
				LocationID: s.LocationID,
				Date:       key,
				StartTime:  s.StartTime,
				EndTime:    s.EndTime,
				Capacity:   s.Capacity,
				Booked:     count,
				Remaining:  s.Remaining(count),
			})
		}
		day = day.AddDate(0, 0, 1)
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Date != slots[j].Date {
			return slots[i].Date < slots[j].Date
		}
		return slots[i].StartTime.Minutes() < slots[j].StartTime.Minutes()
	})
	return slots
}

// CalendarCell is one day in the pickup calendar grid
type CalendarCell struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Day       int    `json:"day"`
	InMonth   bool   `json:"in_month"`
	Today     bool   `json:"today"`
	HasSlots  bool   `json:"has_slots"`
	SlotCount int    `json:"slot_count"`
}

// CalendarGrid builds the 6x42 month view for a pickup calendar
// The grid always holds exactly 42 cells: it starts on the Sunday on or
// before the first of the month and carries leading and trailing days of
// the adjacent months.
func CalendarGrid(year int, month time.Month, slots []Slot, now time.Time) []CalendarCell {
	slotsByDate := make(map[string]int, len(slots))
	for _, s := range slots {
		slotsByDate[s.Date]++
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	start := first.AddDate(0, 0, -int(first.Weekday()))
	todayKey := now.Format(dateLayout)

	cells := make([]CalendarCell, 0, 42)
	for i := 0; i < 42; i++ {
		day := start.AddDate(0, 0, i)
		key := day.Format(dateLayout)
		count := slotsByDate[key]
		cells = append(cells, CalendarCell{
			Date:      key,
			Day:       day.Day(),
			InMonth:   day.Month() == month,
			Today:     key == todayKey,
			HasSlots:  count > 0,
			SlotCount: count,
		})
	}
	return cells
}
