package geometry

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildSwapsAxisOrder(t *testing.T) {
	b := NewBuilder()
	b.AddPoint(Point{Lat: 34.05, Lon: -118.24})
	b.AddPoint(Point{Lat: 34.06, Lon: -118.25})
	b.AddPoint(Point{Lat: 34.04, Lon: -118.23})

	poly, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	want := [][2]float64{
		{-118.24, 34.05},
		{-118.25, 34.06},
		{-118.23, 34.04},
	}
	if diff := cmp.Diff(want, poly.Ring()); diff != "" {
		t.Errorf("ring mismatch (-want +got):\n%s", diff)
	}
	if poly.Type != "Polygon" {
		t.Errorf("expected type Polygon, got %q", poly.Type)
	}
}

func TestBuildInsufficientPoints(t *testing.T) {
	for _, count := range []int{0, 1, 2} {
		b := NewBuilder()
		for i := 0; i < count; i++ {
			b.AddPoint(Point{Lat: float64(i), Lon: float64(-i)})
		}
		if _, err := b.Build(); !errors.Is(err, ErrInsufficientPoints) {
			t.Errorf("count=%d: expected ErrInsufficientPoints, got %v", count, err)
		}
		if b.State() != StateInsufficient {
			t.Errorf("count=%d: expected insufficient state", count)
		}
	}
}

func TestBuildPreservesOrderAndLength(t *testing.T) {
	b := NewBuilder()
	pts := []Point{
		{Lat: 3, Lon: 30}, {Lat: 1, Lon: 10}, {Lat: 2, Lon: 20},
		{Lat: 5, Lon: 50}, {Lat: 4, Lon: 40},
	}
	for _, p := range pts {
		b.AddPoint(p)
	}

	poly, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	ring := poly.Ring()
	if len(ring) != len(pts) {
		t.Fatalf("expected ring of %d pairs, got %d", len(pts), len(ring))
	}
	for i, p := range pts {
		if ring[i][0] != p.Lon || ring[i][1] != p.Lat {
			t.Errorf("pair %d: expected [%v %v], got %v", i, p.Lon, p.Lat, ring[i])
		}
	}
	// The ring is left open: last pair must not repeat the first.
	if ring[0] == ring[len(ring)-1] {
		t.Error("ring should not be closed")
	}
}

func TestDuplicatePointsAccepted(t *testing.T) {
	b := NewBuilder()
	p := Point{Lat: 10, Lon: 20}
	b.AddPoint(p)
	b.AddPoint(p)
	b.AddPoint(p)

	if b.Count() != 3 {
		t.Fatalf("expected count 3, got %d", b.Count())
	}
	if b.State() != StateSubmittable {
		t.Error("three duplicate points should still be submittable")
	}
	if _, err := b.Build(); err != nil {
		t.Errorf("Build failed: %v", err)
	}
}

func TestClearResetsRegardlessOfHistory(t *testing.T) {
	b := NewBuilder()
	for i := 0; i < 10; i++ {
		b.AddPoint(Point{Lat: float64(i), Lon: float64(i)})
	}
	b.Clear()

	if b.Count() != 0 {
		t.Fatalf("expected empty builder after Clear, got %d points", b.Count())
	}
	if _, err := b.Build(); !errors.Is(err, ErrInsufficientPoints) {
		t.Errorf("expected ErrInsufficientPoints after Clear, got %v", err)
	}
}

func TestUndoRemovesLastPoint(t *testing.T) {
	b := NewBuilder()
	b.AddPoint(Point{Lat: 1, Lon: 1})
	b.AddPoint(Point{Lat: 2, Lon: 2})
	b.AddPoint(Point{Lat: 3, Lon: 3})
	b.Undo()

	if b.Count() != 2 {
		t.Fatalf("expected 2 points after Undo, got %d", b.Count())
	}
	pts := b.Points()
	if pts[len(pts)-1] != (Point{Lat: 2, Lon: 2}) {
		t.Errorf("unexpected last point after Undo: %v", pts[len(pts)-1])
	}

	// Undo on empty is a no-op.
	b.Clear()
	b.Undo()
	if b.Count() != 0 {
		t.Error("Undo on empty builder should be a no-op")
	}
}

func TestBuildDoesNotConsumeBuilder(t *testing.T) {
	b := NewBuilder()
	b.AddPoint(Point{Lat: 1, Lon: 1})
	b.AddPoint(Point{Lat: 2, Lon: 2})
	b.AddPoint(Point{Lat: 3, Lon: 3})

	first, err := b.Build()
	if err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	second, err := b.Build()
	if err != nil {
		t.Fatalf("second Build failed: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated Build diverged (-first +second):\n%s", diff)
	}
	if b.Count() != 3 {
		t.Errorf("Build mutated the builder: count=%d", b.Count())
	}
}

func TestSerializeProducesGeoJSON(t *testing.T) {
	b := NewBuilder()
	b.AddPoint(Point{Lat: 34.05, Lon: -118.24})
	b.AddPoint(Point{Lat: 34.06, Lon: -118.25})
	b.AddPoint(Point{Lat: 34.04, Lon: -118.23})

	s, err := b.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var decoded Polygon
	if err := json.Unmarshal([]byte(s), &decoded); err != nil {
		t.Fatalf("serialized form is not valid JSON: %v", err)
	}
	if decoded.Type != "Polygon" || len(decoded.Ring()) != 3 {
		t.Errorf("unexpected decoded geometry: %+v", decoded)
	}

	if _, err := NewBuilder().Serialize(); !errors.Is(err, ErrInsufficientPoints) {
		t.Errorf("empty Serialize: expected ErrInsufficientPoints, got %v", err)
	}
}
