package geo

import (
	"math"
	"testing"

	"github.com/yismin/EV-charging-tunisia/internal/domain"
)

func almostEqual(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol
}

func TestDistanceKm(t *testing.T) {
	tunis := domain.Coordinate{Lat: 36.8065, Lon: 10.1815}
	sousse := domain.Coordinate{Lat: 35.8256, Lon: 10.6412}
	sfax := domain.Coordinate{Lat: 34.7406, Lon: 10.7603}

	if got := DistanceKm(tunis, sousse); !almostEqual(got, 116.588, 0.01) {
		t.Errorf("Tunis-Sousse = %v, want ~116.588", got)
	}
	if got := DistanceKm(tunis, sfax); !almostEqual(got, 235.576, 0.01) {
		t.Errorf("Tunis-Sfax = %v, want ~235.576", got)
	}
	if got := DistanceKm(tunis, tunis); got != 0 {
		t.Errorf("zero distance = %v, want 0", got)
	}
	if got, want := DistanceKm(tunis, sousse), DistanceKm(sousse, tunis); got != want {
		t.Errorf("distance not symmetric: %v vs %v", got, want)
	}
}

func TestBearingDegrees(t *testing.T) {
	tunis := domain.Coordinate{Lat: 36.8065, Lon: 10.1815}
	sfax := domain.Coordinate{Lat: 34.7406, Lon: 10.7603}

	cases := []struct {
		name string
		a, b domain.Coordinate
		want float64
	}{
		{"due north", domain.Coordinate{Lat: 34, Lon: 9}, domain.Coordinate{Lat: 36, Lon: 9}, 0},
		{"due south", domain.Coordinate{Lat: 36, Lon: 9}, domain.Coordinate{Lat: 34, Lon: 9}, 180},
		{"due east on the equator", domain.Coordinate{Lat: 0, Lon: 10}, domain.Coordinate{Lat: 0, Lon: 11}, 90},
		{"due west on the equator", domain.Coordinate{Lat: 0, Lon: 11}, domain.Coordinate{Lat: 0, Lon: 10}, 270},
		{"Tunis to Sfax", tunis, sfax, 167.0237},
	}
	for _, tc := range cases {
		if got := BearingDegrees(tc.a, tc.b); !almostEqual(got, tc.want, 0.001) {
			t.Errorf("%s: bearing = %v, want %v", tc.name, got, tc.want)
		}
	}

	if got := BearingDegrees(tunis, tunis); got != 0 {
		t.Errorf("same point bearing = %v, want 0", got)
	}
}

func TestProjectOntoSegment(t *testing.T) {
	// Segment running due north, about 222.39 km long.
	a := domain.Coordinate{Lat: 34.0, Lon: 9.0}
	b := domain.Coordinate{Lat: 36.0, Lon: 9.0}

	along, offset := ProjectOntoSegment(domain.Coordinate{Lat: 35.0, Lon: 9.0}, a, b)
	if !almostEqual(along, 111.195, 0.001) || !almostEqual(offset, 0, 1e-9) {
		t.Errorf("on-line point: along=%v offset=%v, want 111.195 / 0", along, offset)
	}

	along, offset = ProjectOntoSegment(domain.Coordinate{Lat: 35.0, Lon: 9.2}, a, b)
	if !almostEqual(along, 111.195, 0.001) {
		t.Errorf("east point along=%v, want 111.195", along)
	}
	if !almostEqual(offset, 18.437, 0.001) {
		t.Errorf("east point offset=%v, want 18.437", offset)
	}
}

func TestProjectOntoSegmentClampsToEndpoints(t *testing.T) {
	a := domain.Coordinate{Lat: 34.0, Lon: 9.0}
	b := domain.Coordinate{Lat: 36.0, Lon: 9.0}

	along, offset := ProjectOntoSegment(domain.Coordinate{Lat: 37.0, Lon: 9.0}, a, b)
	if !almostEqual(along, 222.390, 0.001) || !almostEqual(offset, 111.195, 0.001) {
		t.Errorf("past end: along=%v offset=%v, want 222.390 / 111.195", along, offset)
	}

	along, offset = ProjectOntoSegment(domain.Coordinate{Lat: 33.0, Lon: 9.0}, a, b)
	if along != 0 || !almostEqual(offset, 111.195, 0.001) {
		t.Errorf("before start: along=%v offset=%v, want 0 / 111.195", along, offset)
	}
}

func TestProjectOntoDegenerateSegment(t *testing.T) {
	a := domain.Coordinate{Lat: 34.0, Lon: 9.0}
	p := domain.Coordinate{Lat: 35.0, Lon: 9.0}

	along, offset := ProjectOntoSegment(p, a, a)
	if !almostEqual(along, 111.195, 0.001) {
		t.Errorf("degenerate along=%v, want the point distance 111.195", along)
	}
	if offset != 0 {
		t.Errorf("degenerate offset=%v, want 0", offset)
	}
}

func TestBoundingBoxAround(t *testing.T) {
	pts := []domain.Coordinate{
		{Lat: 36.8, Lon: 10.18},
		{Lat: 34.74, Lon: 10.76},
	}
	box := BoundingBoxAround(pts, 20)

	for _, p := range pts {
		if !box.Contains(p) {
			t.Errorf("box should contain %v", p)
		}
	}

	// A point 15 km east of the southern corner stays inside a 20 km pad.
	near := domain.Coordinate{Lat: 34.74, Lon: 10.76 + 15.0/(111.195*math.Cos(34.74*math.Pi/180))}
	if !box.Contains(near) {
		t.Errorf("box should contain point 15 km outside the hull, box=%+v", box)
	}

	far := domain.Coordinate{Lat: 38.5, Lon: 10.18}
	if box.Contains(far) {
		t.Errorf("box should not contain point ~190 km north, box=%+v", box)
	}

	if got := BoundingBoxAround(nil, 20); got != (domain.BoundingBox{}) {
		t.Errorf("empty input should yield zero box, got %+v", got)
	}
}
