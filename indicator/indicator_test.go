package indicator

import (
	"image/color"
	"testing"
	"time"

	"github.com/rx178nwj/SoilMonitorRev2/types"
	"github.com/rx178nwj/SoilMonitorRev2/x/ramp"
)

type fakeStrip struct {
	last []color.RGBA
}

func (f *fakeStrip) WriteColors(colors []color.RGBA) error {
	f.last = colors
	return nil
}

func instantTick(d time.Duration) bool { return true }

func testProfile() types.PlantProfile {
	return types.PlantProfile{DryThreshold: 3000, WetThreshold: 1000}
}

func TestDiscreteSchemeUsesFixedPalette(t *testing.T) {
	strip := &fakeStrip{}
	d := New(strip, SchemeDiscrete, instantTick)

	cases := []struct {
		cond types.Condition
		want color.RGBA
	}{
		{types.CondTempTooHigh, colorRed},
		{types.CondTempTooLow, colorBlue},
		{types.CondNeedsWatering, colorYellow},
		{types.CondSoilDry, colorOrange},
		{types.CondSoilWet, colorGreen},
		{types.CondWateringCompleted, colorWhite},
		{types.CondError, colorPurple},
	}
	for _, c := range cases {
		if err := d.Show(c.cond, testProfile(), 2000); err != nil {
			t.Fatal(err)
		}
		if len(strip.last) != 1 || strip.last[0] != c.want {
			t.Fatalf("condition %v: got %+v, want %+v", c.cond, strip.last, c.want)
		}
	}
}

func TestGradientSchemeTempAndErrorStayDiscrete(t *testing.T) {
	strip := &fakeStrip{}
	d := New(strip, SchemeGradient, instantTick)

	if err := d.Show(types.CondTempTooHigh, testProfile(), 500); err != nil {
		t.Fatal(err)
	}
	if strip.last[0] != colorRed {
		t.Fatalf("expected discrete red under gradient scheme for temp-high, got %+v", strip.last[0])
	}

	if err := d.Show(types.CondError, testProfile(), 500); err != nil {
		t.Fatal(err)
	}
	if strip.last[0] != colorPurple {
		t.Fatalf("expected discrete purple under gradient scheme for error, got %+v", strip.last[0])
	}
}

func TestGradientSchemeMapsDryToWarmAndWetToCool(t *testing.T) {
	strip := &fakeStrip{}
	d := New(strip, SchemeGradient, instantTick)
	profile := testProfile()

	if err := d.Show(types.CondSoilDry, profile, profile.DryThreshold); err != nil {
		t.Fatal(err)
	}
	dry := strip.last[0]
	if dry.R < 200 || dry.B > 50 {
		t.Fatalf("driest moisture should render warm (orange), got %+v", dry)
	}

	if err := d.Show(types.CondSoilWet, profile, profile.WetThreshold); err != nil {
		t.Fatal(err)
	}
	wet := strip.last[0]
	if wet.B < 200 || wet.R > 50 {
		t.Fatalf("wettest moisture should render cool (blue), got %+v", wet)
	}
}

func TestGradientLevelClampsOutsideThresholds(t *testing.T) {
	profile := testProfile()
	if lvl := gradientLevel(profile, profile.DryThreshold+1000); lvl != 0 {
		t.Fatalf("beyond dry threshold should clamp to 0, got %d", lvl)
	}
	if lvl := gradientLevel(profile, profile.WetThreshold-1000); lvl != gradientTop {
		t.Fatalf("beyond wet threshold should clamp to top, got %d", lvl)
	}
}

func TestRampProducesFinalColorMatchingTarget(t *testing.T) {
	var got uint16
	ramp.StartLinear(0, gradientTop, gradientTop, gradientTransitionMs, gradientSteps, instantTick, func(level uint16) {
		got = level
	})
	if got != gradientTop {
		t.Fatalf("expected ramp to settle at target %d, got %d", gradientTop, got)
	}
}
