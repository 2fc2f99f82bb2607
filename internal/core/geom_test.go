package core

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestRectContains(t *testing.T) {
	r := NewRect(5, 5, 10, 10)

	tests := []struct {
		x, y     int
		expected bool
	}{
		{5, 5, true},
		{10, 10, true},
		{14, 14, true},
		{15, 15, false},
		{4, 5, false},
		{5, 4, false},
	}

	for _, tc := range tests {
		if got := r.Contains(tc.x, tc.y); got != tc.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestSafeRadius(t *testing.T) {
	tests := []struct {
		name      string
		container float64
		token     float64
		expected  float64
	}{
		{"normal", 100, 15, 85},
		{"token larger than bowl", 10, 15, 0},
		{"zero bowl", 0, 5, 0},
		{"negative bowl", -3, 1, 0},
		{"NaN bowl", math.NaN(), 1, 0},
		{"degenerate token", 50, math.NaN(), 50},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SafeRadius(tc.container, tc.token); got != tc.expected {
				t.Errorf("SafeRadius(%v, %v) = %v, expected %v", tc.container, tc.token, got, tc.expected)
			}
		})
	}
}

func TestClampToDisk(t *testing.T) {
	inside := r2.Vec{X: 1, Y: 1}
	if got := ClampToDisk(inside, 5); got != inside {
		t.Errorf("point inside disk should be unchanged, got %v", got)
	}

	outside := r2.Vec{X: 30, Y: 40}
	got := ClampToDisk(outside, 10)
	if math.Abs(r2.Norm(got)-10) > 1e-9 {
		t.Errorf("clamped point should lie on the rim, |p| = %v", r2.Norm(got))
	}
	if math.Abs(got.X-6) > 1e-9 || math.Abs(got.Y-8) > 1e-9 {
		t.Errorf("clamp should keep the direction, got %v", got)
	}

	if got := ClampToDisk(outside, 0); got != (r2.Vec{}) {
		t.Errorf("zero radius should collapse to origin, got %v", got)
	}
}

func TestKindRoundTrip(t *testing.T) {
	for _, k := range Kinds {
		parsed, ok := ParseKind(k.String())
		if !ok || parsed != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), parsed, ok)
		}
	}
	if _, ok := ParseKind("red"); ok {
		t.Error("ParseKind should reject unknown kinds")
	}
	if ContainerFor(White) != WhiteBowl || ContainerFor(Black) != BlackBowl {
		t.Error("ContainerFor should map kinds to their own bowl")
	}
}

func TestKindValid(t *testing.T) {
	for _, k := range Kinds {
		if !k.Valid() {
			t.Errorf("%s should be valid", k)
		}
	}
	if Kind(2).Valid() || Kind(-1).Valid() {
		t.Error("out-of-range kinds should be invalid")
	}
}
