// Package geometry assembles user-supplied map coordinates into the polygon
// payload the crop-monitoring service expects on field creation.
package geometry

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MinPolygonPoints is the floor below which a field submission is rejected
// locally and never sent to the service.
const MinPolygonPoints = 3

// ErrInsufficientPoints is returned by Build when fewer than MinPolygonPoints
// points have been collected.
var ErrInsufficientPoints = errors.New("polygon requires at least 3 points")

// Point is a single map coordinate in the order the user supplies it:
// latitude first, longitude second.
type Point struct {
	Lat float64
	Lon float64
}

// String renders the point for display in the point list.
func (p Point) String() string {
	return fmt.Sprintf("%.6f, %.6f", p.Lat, p.Lon)
}

// Polygon is the GeoJSON-shaped geometry submitted to the service.
// Coordinates hold a single ring of (lon, lat) pairs — axis order is swapped
// relative to Point. The ring is left open (first point not repeated) and is
// not checked for self-intersection; the service accepts it that way.
type Polygon struct {
	Type        string         `json:"type"`
	Coordinates [][][2]float64 `json:"coordinates"`
}

// Ring returns the outer ring of the polygon.
func (g Polygon) Ring() [][2]float64 {
	if len(g.Coordinates) == 0 {
		return nil
	}
	return g.Coordinates[0]
}

// Encode serializes the polygon to the JSON string form the service expects
// in the polygon_geometry field.
func (g Polygon) Encode() (string, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return "", fmt.Errorf("encode polygon: %w", err)
	}
	return string(data), nil
}

// BuilderState is the explicit two-state view of a Builder: below the point
// floor it is Insufficient, at or above it Submittable. AddPoint moves the
// state monotonically forward; Clear resets it.
type BuilderState int

const (
	StateInsufficient BuilderState = iota
	StateSubmittable
)

func (s BuilderState) String() string {
	if s == StateSubmittable {
		return "submittable"
	}
	return "insufficient"
}

// Builder accumulates clicked points in order. The zero value is ready to use.
// Builder is not safe for concurrent use; in the TUI all mutation happens on
// the update loop.
type Builder struct {
	points []Point
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddPoint appends p to the sequence. No deduplication and no range
// validation: callers supply coordinates from a map-click source.
func (b *Builder) AddPoint(p Point) {
	b.points = append(b.points, p)
}

// Undo removes the most recently added point. It is a no-op on an empty
// sequence.
func (b *Builder) Undo() {
	if len(b.points) == 0 {
		return
	}
	b.points = b.points[:len(b.points)-1]
}

// Clear empties the point sequence.
func (b *Builder) Clear() {
	b.points = nil
}

// Count returns the number of collected points.
func (b *Builder) Count() int {
	return len(b.points)
}

// Points returns a copy of the collected points in insertion order.
func (b *Builder) Points() []Point {
	out := make([]Point, len(b.points))
	copy(out, b.points)
	return out
}

// State derives the tagged builder state from the point count.
func (b *Builder) State() BuilderState {
	if len(b.points) >= MinPolygonPoints {
		return StateSubmittable
	}
	return StateInsufficient
}

// Build converts the point sequence into a Polygon. It fails with
// ErrInsufficientPoints below the floor. The transformation is an
// order-preserving map from (lat, lon) to (lon, lat) — nothing else: no
// closing-point duplication, no winding normalization, no simplification.
// Build does not consume or mutate the builder.
func (b *Builder) Build() (Polygon, error) {
	if len(b.points) < MinPolygonPoints {
		return Polygon{}, fmt.Errorf("%w (have %d)", ErrInsufficientPoints, len(b.points))
	}

	ring := make([][2]float64, len(b.points))
	for i, p := range b.points {
		ring[i] = [2]float64{p.Lon, p.Lat}
	}

	return Polygon{
		Type:        "Polygon",
		Coordinates: [][][2]float64{ring},
	}, nil
}

// Serialize is Build followed by Encode: the string handed to the fields API.
func (b *Builder) Serialize() (string, error) {
	poly, err := b.Build()
	if err != nil {
		return "", err
	}
	return poly.Encode()
}
