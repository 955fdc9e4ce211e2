// Package decision implements the plant-condition classifier (C5): a pure
// function of the active profile, the latest sample, a short window of
// recent minutes, and recent daily summaries, memoising its own output so
// later calls can apply hysteresis (rule 9).
package decision

import "github.com/rx178nwj/SoilMonitorRev2/types"

// Engine holds the one piece of state the classifier needs across calls:
// the condition it last emitted. Everything else is passed in fresh on
// every call, the way the teacher keeps hal.Adaptor implementations free
// of hidden state beyond what a single Read needs.
//
// An Engine built by New starts in CondSoilWet, not CondError or an
// "unknown" sentinel (the zero Engine would start in CondSoilDry, the
// enum's zero value). This mirrors a source behaviour that looks like an oversight:
// a device that reboots into a hot, bone-dry pot will not satisfy rule 5's
// "previous was dry" clause on its very first classification, even though
// the soil has plainly been dry for days. The behaviour is preserved
// deliberately pending clarification, not fixed silently.
type Engine struct {
	prev types.Condition
}

// New returns an Engine primed with the source's boot default.
func New() *Engine {
	return &Engine{prev: types.CondSoilWet}
}

// Prev returns the condition memoised from the previous Classify call.
func (e *Engine) Prev() types.Condition { return e.prev }

// Classify runs the nine-rule ordered decision table and memoises its
// result for the next call's rule 9.
//
// recentMinutes must be sorted ascending by time with the latest sample
// last; it is used only for rule 4's two-steps-back comparison and may be
// shorter than 3 elements, in which case rule 4 is skipped.
//
// recentDailies must be sorted ascending by date, holding at most the
// profile's DryDaysTrigger most recent complete summaries.
func (e *Engine) Classify(profile types.PlantProfile, latest types.Sample, recentMinutes []types.Sample, recentDailies []types.DailySummary) types.Condition {
	next := e.classify(profile, latest, recentMinutes, recentDailies)
	e.prev = next
	return next
}

func (e *Engine) classify(profile types.PlantProfile, latest types.Sample, recentMinutes []types.Sample, recentDailies []types.DailySummary) types.Condition {
	if latest.Error {
		return types.CondError
	}
	if latest.AirTempC >= profile.TempHigh {
		return types.CondTempTooHigh
	}
	if latest.AirTempC <= profile.TempLow {
		return types.CondTempTooLow
	}
	if wateringJustCompleted(profile, latest, recentMinutes) {
		return types.CondWateringCompleted
	}
	if (e.prev == types.CondSoilDry || e.prev == types.CondNeedsWatering) && latest.Soil.Moisture <= profile.WetThreshold {
		return types.CondWateringCompleted
	}
	if prolongedlyDry(profile, recentDailies) {
		return types.CondNeedsWatering
	}
	if latest.Soil.Moisture >= profile.DryThreshold {
		return types.CondSoilDry
	}
	if latest.Soil.Moisture <= profile.WetThreshold {
		return types.CondSoilWet
	}
	return e.prev
}

// wateringJustCompleted implements rule 4: a fall of at least
// WateringDelta between the sample two steps back and the current one.
// Higher raw moisture means drier soil (§4.5's inversion note), so
// watering shows up as a drop, not a rise.
func wateringJustCompleted(profile types.PlantProfile, latest types.Sample, recentMinutes []types.Sample) bool {
	if len(recentMinutes) < 3 {
		return false
	}
	twoBack := recentMinutes[len(recentMinutes)-3]
	drop := twoBack.Soil.Moisture - latest.Soil.Moisture
	return drop >= profile.WateringDelta
}

// prolongedlyDry implements rule 6: at least DryDaysTrigger consecutive
// recent complete daily summaries whose average moisture stayed at or
// above the dry threshold.
func prolongedlyDry(profile types.PlantProfile, recentDailies []types.DailySummary) bool {
	trigger := int(profile.DryDaysTrigger)
	if trigger <= 0 {
		return false
	}
	streak := 0
	for i := len(recentDailies) - 1; i >= 0; i-- {
		d := recentDailies[i]
		if !d.Complete || d.AvgSoilMoisture < profile.DryThreshold {
			break
		}
		streak++
		if streak >= trigger {
			return true
		}
	}
	return false
}
