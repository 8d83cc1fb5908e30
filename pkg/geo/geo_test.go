package geo

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Point
		want      float64
		tolerance float64
	}{
		{
			name:      "SamePoint",
			a:         Point{Lat: 45.5152, Lon: -122.6784},
			b:         Point{Lat: 45.5152, Lon: -122.6784},
			want:      0,
			tolerance: 0.001,
		},
		{
			name:      "PortlandToSeattle",
			a:         Point{Lat: 45.5152, Lon: -122.6784},
			b:         Point{Lat: 47.6062, Lon: -122.3321},
			want:      145,
			tolerance: 3,
		},
		{
			name:      "AcrossPrimeMeridian",
			a:         Point{Lat: 51.5074, Lon: -0.1278},
			b:         Point{Lat: 48.8566, Lon: 2.3522},
			want:      213,
			tolerance: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("Distance() = %.2f, want %.2f ± %.2f", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	pairs := []struct{ a, b Point }{
		{Point{Lat: 45.5, Lon: -122.6}, Point{Lat: 47.6, Lon: -122.3}},
		{Point{Lat: -33.8, Lon: 151.2}, Point{Lat: 35.6, Lon: 139.7}},
		{Point{Lat: 0, Lon: 0}, Point{Lat: 90, Lon: 0}},
	}
	for _, p := range pairs {
		ab := Distance(p.a, p.b)
		ba := Distance(p.b, p.a)
		if ab != ba {
			t.Errorf("Distance(%v, %v) = %v, reversed = %v", p.a, p.b, ab, ba)
		}
		if ab < 0 {
			t.Errorf("Distance(%v, %v) = %v, want non-negative", p.a, p.b, ab)
		}
	}
}

func TestValid(t *testing.T) {
	if !(Point{Lat: 45, Lon: -122}).Valid() {
		t.Error("expected valid point")
	}
	if (Point{Lat: 91, Lon: 0}).Valid() {
		t.Error("expected invalid latitude to fail")
	}
	if (Point{Lat: 0, Lon: -181}).Valid() {
		t.Error("expected invalid longitude to fail")
	}
}
