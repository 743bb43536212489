package domain

import "fmt"

// Immutable geographic coordinate in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Return the coordinate as [lon, lat], the order external routing APIs expect.
func (c Coordinate) LonLat() []float64 {
	return []float64{c.Lon, c.Lat}
}

// Validate checks that the coordinate lies on the globe.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidInput, c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidInput, c.Lon)
	}
	return nil
}

// BoundingBox is a latitude/longitude rectangle used to scope charger queries.
type BoundingBox struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// Contains reports whether the coordinate lies inside the box.
func (b BoundingBox) Contains(c Coordinate) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat &&
		c.Lon >= b.MinLon && c.Lon <= b.MaxLon
}
