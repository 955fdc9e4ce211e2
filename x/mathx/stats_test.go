package mathx

import "testing"

func TestMeanF32(t *testing.T) {
	if got := MeanF32([]float32{1, 2, 3, 4}); got != 2.5 {
		t.Fatalf("got %v, want 2.5", got)
	}
}

func TestMeanF32Empty(t *testing.T) {
	if got := MeanF32(nil); got != 0 {
		t.Fatalf("got %v, want 0", got)
	}
}

func TestTrimmedMeanF32DiscardsExtremes(t *testing.T) {
	mean, ok := TrimmedMeanF32([]float32{10, 100, 20, 30, 90}, 1)
	if !ok {
		t.Fatal("expected ok=true")
	}
	want := float32(46.666668)
	if diff := mean - want; diff > 0.01 || diff < -0.01 {
		t.Fatalf("got %v, want ~%v", mean, want)
	}
}

func TestTrimmedMeanF32InsufficientValues(t *testing.T) {
	if _, ok := TrimmedMeanF32([]float32{1, 2}, 1); ok {
		t.Fatal("expected ok=false with fewer than 2*trim+1 values")
	}
}

func TestTrimmedMeanF32DoesNotMutateInput(t *testing.T) {
	vs := []float32{5, 1, 3}
	_, _ = TrimmedMeanF32(vs, 1)
	want := []float32{5, 1, 3}
	for i := range vs {
		if vs[i] != want[i] {
			t.Fatalf("input mutated: got %v, want %v", vs, want)
		}
	}
}

func TestMinMaxF32(t *testing.T) {
	min, max := MinMaxF32([]float32{5, 1, 9, -3, 4})
	if min != -3 || max != 9 {
		t.Fatalf("got min=%v max=%v, want -3, 9", min, max)
	}
}

func TestMinMaxF32SingleValue(t *testing.T) {
	min, max := MinMaxF32([]float32{7})
	if min != 7 || max != 7 {
		t.Fatalf("got min=%v max=%v, want 7, 7", min, max)
	}
}
