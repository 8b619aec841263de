package compat

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCompatibilityFactor_BothBelowThreshold(t *testing.T) {
	cases := []struct {
		name     string
		p1, p2   int64
		minPlay  int64
	}{
		{"both zero", 0, 0, 60},
		{"both nonzero below", 30, 59, 60},
		{"boundary just below", 59, 59, 60},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CompatibilityFactor(tc.p1, tc.p2, tc.minPlay); got != 0.1 {
				t.Errorf("CompatibilityFactor(%d, %d, %d) = %v, want 0.1", tc.p1, tc.p2, tc.minPlay, got)
			}
		})
	}
}

func TestCompatibilityFactor_OneBelowThreshold(t *testing.T) {
	cases := []struct {
		name    string
		p1, p2  int64
		minPlay int64
	}{
		{"first below", 10, 500, 60},
		{"second below", 500, 10, 60},
		{"second zero", 1000, 0, 60},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CompatibilityFactor(tc.p1, tc.p2, tc.minPlay); got != 0.4 {
				t.Errorf("CompatibilityFactor(%d, %d, %d) = %v, want 0.4", tc.p1, tc.p2, tc.minPlay, got)
			}
		})
	}
}

func TestCompatibilityFactor_BothAboveThreshold(t *testing.T) {
	cases := []struct {
		name    string
		p1, p2  int64
		minPlay int64
		want    float64
	}{
		// similarity 1.0, bonus 240/1200 = 0.2 -> 0.7 + 0.06
		{"identical two hours", 120, 120, 60, 0.76},
		// similarity 0.5, bonus min(1, 1800/1200) = 1 -> 0.35 + 0.3
		{"half similarity saturated bonus", 600, 1200, 60, 0.65},
		// similarity 1.0, bonus saturated -> capped at 1.0
		{"identical heavy playtime", 6000, 6000, 60, 1.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CompatibilityFactor(tc.p1, tc.p2, tc.minPlay)
			if !almostEqual(got, tc.want) {
				t.Errorf("CompatibilityFactor(%d, %d, %d) = %v, want %v", tc.p1, tc.p2, tc.minPlay, got, tc.want)
			}
		})
	}
}

func TestCompatibilityFactor_IdenticalPlaytimes(t *testing.T) {
	// For identical playtimes >= threshold the similarity term is always 0.7
	// and the bonus term scales with combined playtime.
	for _, p := range []int64{60, 120, 600, 1200, 10000} {
		bonus := float64(2*p) / 1200
		if bonus > 1 {
			bonus = 1
		}
		want := 0.7 + bonus*0.3
		if want > 1 {
			want = 1
		}
		if got := CompatibilityFactor(p, p, 60); !almostEqual(got, want) {
			t.Errorf("CompatibilityFactor(%d, %d, 60) = %v, want %v", p, p, got, want)
		}
	}
}

func TestCompatibilityFactor_ZeroThresholdZeroPlaytime(t *testing.T) {
	// With a zero threshold nothing is "below", so the zero-max guard applies:
	// similarity 0, bonus 0.
	if got := CompatibilityFactor(0, 0, 0); !almostEqual(got, 0) {
		t.Errorf("CompatibilityFactor(0, 0, 0) = %v, want 0", got)
	}
}

func TestCompatibilityFactor_Range(t *testing.T) {
	pairs := [][2]int64{{0, 0}, {1, 100000}, {100000, 1}, {500, 500}, {60, 61}, {99999, 100000}}
	for _, pair := range pairs {
		got := CompatibilityFactor(pair[0], pair[1], 60)
		if got < 0 || got > 1 {
			t.Errorf("CompatibilityFactor(%d, %d, 60) = %v, out of [0,1]", pair[0], pair[1], got)
		}
	}
}
