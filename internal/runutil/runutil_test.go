package runutil

import (
	"runtime"
	"testing"
)

func TestEffectiveWorkers(t *testing.T) {
	if got := EffectiveWorkers(3); got != 3 {
		t.Fatalf("want 3, got %d", got)
	}
	if got := EffectiveWorkers(0); got != runtime.NumCPU() {
		t.Fatalf("0 → want NumCPU=%d, got %d", runtime.NumCPU(), got)
	}
	if got := EffectiveWorkers(-2); got != runtime.NumCPU() {
		t.Fatalf("-2 → want NumCPU=%d, got %d", runtime.NumCPU(), got)
	}
}
