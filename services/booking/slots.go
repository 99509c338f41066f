package booking

import (
	"fmt"
	"time"

	"bookflow/models"
)

// Bookable hours of the day. Slots are generated hourly inside this window.
const (
	slotOpenHour  = 8
	slotCloseHour = 20
)

const dateLayout = "2006-01-02"

// SlotNow is the label of the immediate flash slot.
const SlotNow = "Maintenant"

// BuildSlots generates the selectable slot set: one "Maintenant" flash slot,
// hourly slots for the remainder of today, and hourly slots for the whole
// of tomorrow.
func BuildSlots(now time.Time) []models.Slot {
	today := now.Format(dateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(dateLayout)

	slots := []models.Slot{{
		ID:       "slot-now",
		Date:     today,
		Heure:    SlotNow,
		DayLabel: "Aujourd'hui",
		Flash:    true,
	}}

	firstHour := now.Hour() + 1
	if firstHour < slotOpenHour {
		firstHour = slotOpenHour
	}
	for h := firstHour; h <= slotCloseHour; h++ {
		slots = append(slots, hourlySlot(today, "Aujourd'hui", h))
	}
	for h := slotOpenHour; h <= slotCloseHour; h++ {
		slots = append(slots, hourlySlot(tomorrow, "Demain", h))
	}
	return slots
}

func hourlySlot(date, dayLabel string, hour int) models.Slot {
	return models.Slot{
		ID:       fmt.Sprintf("slot-%s-%02d", date, hour),
		Date:     date,
		Heure:    fmt.Sprintf("%02d:00", hour),
		DayLabel: dayLabel,
	}
}

// FindSlot resolves a slot id against the generated set.
func FindSlot(slots []models.Slot, id string) (models.Slot, bool) {
	for _, s := range slots {
		if s.ID == id {
			return s, true
		}
	}
	return models.Slot{}, false
}
