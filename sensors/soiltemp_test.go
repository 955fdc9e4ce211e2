package sensors

import (
	"context"
	"errors"
	"testing"
)

type fakeProbe struct {
	v   float32
	err error
}

func (p fakeProbe) Read(ctx context.Context) (float32, error) { return p.v, p.err }

func TestSoilTempArrayReadsAllPopulatedProbes(t *testing.T) {
	a := SoilTempArray{Probes: []SoilTempProbe{
		fakeProbe{v: 18.5},
		fakeProbe{v: 19.0},
		fakeProbe{v: 20.25},
	}}
	temps, n, anyErr := a.Read(context.Background())
	if anyErr {
		t.Fatal("did not expect anyErr")
	}
	if n != 3 {
		t.Fatalf("got n=%d, want 3", n)
	}
	want := [4]float32{18.5, 19.0, 20.25, 0}
	if temps != want {
		t.Fatalf("got %+v, want %+v", temps, want)
	}
}

func TestSoilTempArrayZeroesFailedProbeSlot(t *testing.T) {
	a := SoilTempArray{Probes: []SoilTempProbe{
		fakeProbe{v: 15.0},
		fakeProbe{err: errors.New("onewire crc fault")},
		fakeProbe{v: 22.0},
	}}
	temps, n, anyErr := a.Read(context.Background())
	if !anyErr {
		t.Fatal("expected anyErr true when a probe fails")
	}
	if n != 3 {
		t.Fatalf("got n=%d, want 3 (n counts detected probes, not successful reads)", n)
	}
	want := [4]float32{15.0, 0, 22.0, 0}
	if temps != want {
		t.Fatalf("got %+v, want %+v", temps, want)
	}
}

func TestSoilTempArrayEmptyIsNotAnError(t *testing.T) {
	a := SoilTempArray{}
	temps, n, anyErr := a.Read(context.Background())
	if anyErr {
		t.Fatal("no probes detected should not set anyErr")
	}
	if n != 0 {
		t.Fatalf("got n=%d, want 0", n)
	}
	if temps != ([4]float32{}) {
		t.Fatalf("got %+v, want zero value", temps)
	}
}

func TestSoilTempArrayCapsAtFourProbes(t *testing.T) {
	a := SoilTempArray{Probes: []SoilTempProbe{
		fakeProbe{v: 1}, fakeProbe{v: 2}, fakeProbe{v: 3}, fakeProbe{v: 4}, fakeProbe{v: 5},
	}}
	_, n, _ := a.Read(context.Background())
	if n != 4 {
		t.Fatalf("got n=%d, want capped at 4", n)
	}
}
