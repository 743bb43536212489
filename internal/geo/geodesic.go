// Package geo holds the pure geodesic math behind corridor selection. All
// functions are deterministic and allocation-free so planning stays
// reproducible across runs.
package geo

import (
	"math"

	"github.com/yismin/EV-charging-tunisia/internal/domain"
)

const (
	// Mean Earth radius in kilometers.
	earthRadiusKm = 6371.0

	// Kilometers per degree of latitude.
	degreeKm = earthRadiusKm * math.Pi / 180.0
)

// DistanceKm returns the haversine great-circle distance between two
// coordinates in kilometers.
func DistanceKm(a, b domain.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// BearingDegrees returns the initial great-circle bearing from a to b in
// compass degrees, 0 pointing north and growing clockwise through [0, 360).
func BearingDegrees(a, b domain.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	deg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// ProjectOntoSegment projects p onto the segment from a to b and returns the
// distance from a to the projection measured along the segment, together with
// the lateral offset from p to that projection. The projection clamps to the
// segment endpoints. A degenerate segment (a == b) yields the distance to the
// point with a lateral offset of zero.
//
// The math works on a local equirectangular plane anchored at a, which is
// accurate to well under a percent at corridor scale.
func ProjectOntoSegment(p, a, b domain.Coordinate) (alongKm, offsetKm float64) {
	if a == b {
		return DistanceKm(p, a), 0
	}

	refCos := math.Cos(a.Lat * math.Pi / 180)
	bx := (b.Lon - a.Lon) * degreeKm * refCos
	by := (b.Lat - a.Lat) * degreeKm
	px := (p.Lon - a.Lon) * degreeKm * refCos
	py := (p.Lat - a.Lat) * degreeKm

	t := (px*bx + py*by) / (bx*bx + by*by)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	cx := t * bx
	cy := t * by
	alongKm = t * math.Hypot(bx, by)
	offsetKm = math.Hypot(px-cx, py-cy)
	return alongKm, offsetKm
}

// BoundingBoxAround returns the smallest box containing every point expanded
// by padKm on all sides. An empty point list yields a zero box.
func BoundingBoxAround(points []domain.Coordinate, padKm float64) domain.BoundingBox {
	if len(points) == 0 {
		return domain.BoundingBox{}
	}

	box := domain.BoundingBox{
		MinLat: points[0].Lat, MaxLat: points[0].Lat,
		MinLon: points[0].Lon, MaxLon: points[0].Lon,
	}
	for _, p := range points[1:] {
		box.MinLat = math.Min(box.MinLat, p.Lat)
		box.MaxLat = math.Max(box.MaxLat, p.Lat)
		box.MinLon = math.Min(box.MinLon, p.Lon)
		box.MaxLon = math.Max(box.MaxLon, p.Lon)
	}

	latPad := padKm / degreeKm

	// Longitude degrees shrink with latitude; pad with the widest span the box
	// touches so no point inside the corridor falls outside the box.
	maxAbsLat := math.Max(math.Abs(box.MinLat), math.Abs(box.MaxLat)) + latPad
	if maxAbsLat > 89 {
		maxAbsLat = 89
	}
	lonPad := padKm / (degreeKm * math.Cos(maxAbsLat*math.Pi/180))

	box.MinLat -= latPad
	box.MaxLat += latPad
	box.MinLon -= lonPad
	box.MaxLon += lonPad
	return box
}
