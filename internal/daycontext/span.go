package daycontext

import (
	"time"

	"github.com/jstrand/planwise/internal/models"
	"github.com/jstrand/planwise/internal/utils"
)

// FocusLevelForSpan resolves the focus level of a proposed time span
// against a day's focus slots. A slot that contains the span's start time
// wins; failing that, the first slot overlapping the span in list order is
// used. The second return value is false when no slot overlaps at all.
func FocusLevelForSpan(ctx models.DayContext, start, end time.Time) (models.FocusLevel, bool) {
	startClock := utils.ClockOf(start)
	endClock := utils.ClockOf(end)

	for _, slot := range ctx.FocusSlots {
		if utils.ClockRangeContains(slot.StartTime, slot.EndTime, startClock, startClock) &&
			utils.ClockRangesOverlap(slot.StartTime, slot.EndTime, startClock, endClock) {
			return slot.FocusLevel, true
		}
	}
	for _, slot := range ctx.FocusSlots {
		if utils.ClockRangesOverlap(slot.StartTime, slot.EndTime, startClock, endClock) {
			return slot.FocusLevel, true
		}
	}
	return "", false
}

// SpanOverlapsFocus reports whether the span overlaps any focus slot.
func SpanOverlapsFocus(ctx models.DayContext, start, end time.Time) bool {
	startClock := utils.ClockOf(start)
	endClock := utils.ClockOf(end)
	for _, slot := range ctx.FocusSlots {
		if utils.ClockRangesOverlap(slot.StartTime, slot.EndTime, startClock, endClock) {
			return true
		}
	}
	return false
}

// SpanWithinFocus reports whether the span lies entirely inside a single
// focus slot.
func SpanWithinFocus(ctx models.DayContext, start, end time.Time) bool {
	startClock := utils.ClockOf(start)
	endClock := utils.ClockOf(end)
	for _, slot := range ctx.FocusSlots {
		if utils.ClockRangeContains(slot.StartTime, slot.EndTime, startClock, endClock) {
			return true
		}
	}
	return false
}

// SpanWithinAvailability reports whether the span lies entirely inside an
// available-status slot. A day with no availability slots at all is treated
// as always available.
func SpanWithinAvailability(ctx models.DayContext, start, end time.Time) bool {
	if len(ctx.AvailabilitySlots) == 0 {
		return true
	}
	startClock := utils.ClockOf(start)
	endClock := utils.ClockOf(end)
	for _, slot := range ctx.AvailabilitySlots {
		if slot.Status != models.StatusAvailable {
			continue
		}
		if utils.ClockRangeContains(slot.StartTime, slot.EndTime, startClock, endClock) {
			return true
		}
	}
	return false
}
