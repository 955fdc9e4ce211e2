package indicator

import (
	"image/color"

	"github.com/rx178nwj/SoilMonitorRev2/types"
)

// Discrete presets, transcribed from the source's colour table: one
// preset per plant-condition state, plus an OFF fallback for values
// outside the enum.
var (
	colorOff    = color.RGBA{A: 255}
	colorRed    = color.RGBA{R: 255, A: 255}
	colorGreen  = color.RGBA{G: 255, A: 255}
	colorBlue   = color.RGBA{B: 255, A: 255}
	colorYellow = color.RGBA{R: 255, G: 255, A: 255}
	colorOrange = color.RGBA{R: 255, G: 100, A: 255}
	colorPurple = color.RGBA{R: 128, B: 128, A: 255}
	colorWhite  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// discreteColor implements §4.9's discrete scheme: one fixed colour per
// state, matching the source's switch over plant_condition.
func discreteColor(c types.Condition) color.RGBA {
	switch c {
	case types.CondTempTooHigh:
		return colorRed
	case types.CondTempTooLow:
		return colorBlue
	case types.CondNeedsWatering:
		return colorYellow
	case types.CondSoilDry:
		return colorOrange
	case types.CondSoilWet:
		return colorGreen
	case types.CondWateringCompleted:
		return colorWhite
	case types.CondError:
		return colorPurple
	default:
		return colorOff
	}
}
