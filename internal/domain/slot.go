package domain

import "github.com/m04kA/SMC-SalonBooking/pkg/types"

// SlotAvailability is the partition of a day's slots for one service.
// Available and Booked are disjoint, both ordered, and together equal All.
type SlotAvailability struct {
	All       []types.TimeString
	Available []types.TimeString
	Booked    []types.TimeString
}

// PartitionSlots splits slots by membership in taken
func PartitionSlots(slots []types.TimeString, taken map[types.TimeString]struct{}) SlotAvailability {
	result := SlotAvailability{
		All:       slots,
		Available: make([]types.TimeString, 0, len(slots)),
		Booked:    make([]types.TimeString, 0),
	}

	for _, slot := range slots {
		if _, ok := taken[slot]; ok {
			result.Booked = append(result.Booked, slot)
		} else {
			result.Available = append(result.Available, slot)
		}
	}

	return result
}

// IsFullyBooked returns true if no slot is left
func (a *SlotAvailability) IsFullyBooked() bool {
	return len(a.Available) == 0
}

// OccupancyRate returns the booked share as a percentage (0-100)
func (a *SlotAvailability) OccupancyRate() float64 {
	if len(a.All) == 0 {
		return 0
	}
	return float64(len(a.Booked)) / float64(len(a.All)) * 100
}
