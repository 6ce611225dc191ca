package domain

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Default operating window
const (
	DefaultOpenTime    = types.TimeString("09:00")
	DefaultCloseTime   = types.TimeString("18:00")
	DefaultStepMinutes = 30
)

// OverflowPolicy decides what happens when start + duration runs past closing time
type OverflowPolicy string

const (
	// OverflowAllow accepts bookings that end after closing
	OverflowAllow OverflowPolicy = "allow"
	// OverflowReject refuses bookings that end after closing
	OverflowReject OverflowPolicy = "reject"
)

func (p OverflowPolicy) IsValid() bool {
	return p == OverflowAllow || p == OverflowReject
}

// OperatingHours is the daily window bookable slots are drawn from.
// Open is inclusive, Close exclusive.
type OperatingHours struct {
	Open        types.TimeString
	Close       types.TimeString
	StepMinutes int
	Overflow    OverflowPolicy
}

// DefaultOperatingHours 09:00-18:00, 30 minute slots, overflow allowed
func DefaultOperatingHours() OperatingHours {
	return OperatingHours{
		Open:        DefaultOpenTime,
		Close:       DefaultCloseTime,
		StepMinutes: DefaultStepMinutes,
		Overflow:    OverflowAllow,
	}
}

// Validate checks the window is non-empty and the step is positive
func (h OperatingHours) Validate() error {
	if err := h.Open.Validate(); err != nil {
		return fmt.Errorf("open: %w", err)
	}
	if err := h.Close.Validate(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if !h.Open.IsBefore(h.Close) {
		return fmt.Errorf("open %s must be before close %s", h.Open, h.Close)
	}
	if h.StepMinutes <= 0 {
		return fmt.Errorf("step must be positive, got %d", h.StepMinutes)
	}
	if !h.Overflow.IsValid() {
		return fmt.Errorf("unknown overflow policy %q", h.Overflow)
	}
	return nil
}

// Slots returns every start time in [Open, Close) at StepMinutes granularity,
// ascending. It does not depend on the date or the service.
func (h OperatingHours) Slots() []types.TimeString {
	open, closing := h.Open.Minutes(), h.Close.Minutes()
	if open < 0 || closing < 0 || h.StepMinutes <= 0 {
		return []types.TimeString{}
	}

	slots := make([]types.TimeString, 0, (closing-open)/h.StepMinutes+1)
	for m := open; m < closing; m += h.StepMinutes {
		slots = append(slots, types.FromMinutes(m))
	}
	return slots
}

// EndsWithin reports whether an appointment ending at end stays inside the window
func (h OperatingHours) EndsWithin(end types.TimeString) bool {
	return !end.IsAfter(h.Close)
}
