package sensors

import (
	"context"
	"errors"
	"testing"
)

func constantReads(vals ...float32) RawRead {
	i := 0
	return func(ctx context.Context) (float32, error) {
		v := vals[i%len(vals)]
		i++
		return v, nil
	}
}

func TestLightTrimsHighAndLowOfFiveReadings(t *testing.T) {
	l := Light{Raw: constantReads(10, 100, 20, 30, 90)}
	v, err := l.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	// Sorted: 10 20 30 90 100 -> drop 10 and 100 -> mean(20,30,90) = 46.666...
	if v < 46 || v > 47 {
		t.Fatalf("got %v, want ~46.67", v)
	}
}

func TestLightErrorsBelowMinValidReadings(t *testing.T) {
	calls := 0
	raw := func(ctx context.Context) (float32, error) {
		calls++
		if calls <= 2 {
			return 42, nil
		}
		return 0, errors.New("adc timeout")
	}
	l := Light{Raw: raw}
	_, err := l.Read(context.Background())
	if err == nil {
		t.Fatal("expected error with fewer than 3 valid readings")
	}
}

func TestLightSucceedsWithExactlyThreeValidReadings(t *testing.T) {
	calls := 0
	raw := func(ctx context.Context) (float32, error) {
		calls++
		if calls <= 3 {
			return 50, nil
		}
		return 0, errors.New("adc timeout")
	}
	l := Light{Raw: raw}
	v, err := l.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if v != 50 {
		t.Fatalf("got %v, want 50", v)
	}
}
