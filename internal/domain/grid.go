// Package domain describes the spatial grids that climate fields live on,
// together with the request/response contracts of the diagnostics
// activities and the events they emit.
//
// A Domain is an ordered list of coordinate axes; its shape is the number of
// points on each axis in that order. Domains satisfy field.Domain and are
// shared read-only by every Field defined over them.
package domain

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// AxisType identifies the physical dimension a coordinate axis spans.
type AxisType string

const (
	// AxisLev is atmospheric pressure level, in millibars.
	AxisLev AxisType = "lev"

	// AxisLat is latitude, in degrees north.
	AxisLat AxisType = "lat"

	// AxisLon is longitude, in degrees east.
	AxisLon AxisType = "lon"

	// AxisDepth is ocean or surface-layer depth, in meters.
	AxisDepth AxisType = "depth"
)

// String returns the string representation of the axis type.
func (t AxisType) String() string { return string(t) }

// defaultUnits maps each axis type to the unit its points are expressed in.
var defaultUnits = map[AxisType]string{
	AxisLev:   "mb",
	AxisLat:   "degrees",
	AxisLon:   "degrees",
	AxisDepth: "meters",
}

// Axis is a named, ordered sequence of coordinate points.
// When Bounds is set it holds len(Points)+1 cell edges.
type Axis struct {
	Type   AxisType  `json:"type"             validate:"required,oneof=lev lat lon depth"`
	Units  string    `json:"units,omitempty"`
	Points []float64 `json:"points"           validate:"required,min=1"`
	Bounds []float64 `json:"bounds,omitempty" validate:"omitempty,min=2"`
}

// NewAxis creates an axis with the given points and the default units of t.
func NewAxis(t AxisType, points []float64) (*Axis, error) {
	a := &Axis{Type: t, Units: defaultUnits[t], Points: cloneFloats(points)}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// NewEvenAxis creates an axis of num cells evenly dividing [start, stop].
// Points are the cell midpoints.
func NewEvenAxis(t AxisType, num int, start, stop float64) (*Axis, error) {
	if num < 1 {
		return nil, fmt.Errorf("%w: %s axis needs at least one point, got %d", ErrInvalidDomain, t, num)
	}

	bounds := floats.Span(make([]float64, num+1), start, stop)
	points := make([]float64, num)
	for i := range points {
		points[i] = (bounds[i] + bounds[i+1]) / 2
	}

	a := &Axis{Type: t, Units: defaultUnits[t], Points: points, Bounds: bounds}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks the struct constraints and that bounds, when present,
// bracket every point.
func (a *Axis) Validate() error {
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDomain, err)
	}
	if a.Bounds != nil && len(a.Bounds) != len(a.Points)+1 {
		return fmt.Errorf("%w: %s axis has %d bounds for %d points",
			ErrInvalidDomain, a.Type, len(a.Bounds), len(a.Points))
	}
	return nil
}

// NumPoints returns the number of coordinate points.
func (a *Axis) NumPoints() int { return len(a.Points) }

// Delta returns the width of each cell, or nil if the axis has no bounds.
func (a *Axis) Delta() []float64 {
	if len(a.Bounds) < 2 {
		return nil
	}
	delta := make([]float64, len(a.Bounds)-1)
	floats.SubTo(delta, a.Bounds[1:], a.Bounds[:len(a.Bounds)-1])
	return delta
}

// Domain is a grid made of ordered coordinate axes.
type Domain struct {
	Name string  `json:"name" validate:"required"`
	Axes []*Axis `json:"axes" validate:"required,min=1,dive,required"`
}

// New creates a grid from the given axes, in order.
// Each axis type may appear at most once.
func New(name string, axes ...*Axis) (*Domain, error) {
	d := &Domain{Name: name, Axes: axes}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate checks the grid and every axis it holds.
func (d *Domain) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDomain, err)
	}

	seen := make(map[AxisType]bool, len(d.Axes))
	for _, a := range d.Axes {
		if seen[a.Type] {
			return fmt.Errorf("%w: %s in domain %q", ErrDuplicateAxis, a.Type, d.Name)
		}
		seen[a.Type] = true

		if err := a.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Shape returns the number of points on each axis. A nil Domain has no shape.
func (d *Domain) Shape() []int {
	if d == nil {
		return nil
	}
	shape := make([]int, len(d.Axes))
	for i, a := range d.Axes {
		shape[i] = a.NumPoints()
	}
	return shape
}

// Axis returns the axis of the given type.
func (d *Domain) Axis(t AxisType) (*Axis, bool) {
	if d == nil {
		return nil, false
	}
	for _, a := range d.Axes {
		if a.Type == t {
			return a, true
		}
	}
	return nil, false
}

// Points returns a copy of the points of the named axis.
func (d *Domain) Points(axis string) ([]float64, bool) {
	a, ok := d.Axis(AxisType(axis))
	if !ok {
		return nil, false
	}
	return cloneFloats(a.Points), true
}

// SingleColumn creates an atmospheric column of numLev evenly spaced
// pressure levels between 0 and 1000 mb.
func SingleColumn(numLev int) (*Domain, error) {
	lev, err := NewEvenAxis(AxisLev, numLev, 0, 1000)
	if err != nil {
		return nil, err
	}
	return New("atm", lev)
}

// SurfaceZonalMean creates a zonally averaged surface layer of numLat evenly
// spaced latitude bands from pole to pole over a single slab of waterDepth
// meters. Its shape is (numLat, 1).
func SurfaceZonalMean(numLat int, waterDepth float64) (*Domain, error) {
	lat, err := NewEvenAxis(AxisLat, numLat, -90, 90)
	if err != nil {
		return nil, err
	}
	depth, err := NewEvenAxis(AxisDepth, 1, 0, waterDepth)
	if err != nil {
		return nil, err
	}
	return New("sfc", lat, depth)
}

// ZonalMeanColumn creates a latitude by pressure-level atmosphere of shape
// (numLat, numLev).
func ZonalMeanColumn(numLat, numLev int) (*Domain, error) {
	lat, err := NewEvenAxis(AxisLat, numLat, -90, 90)
	if err != nil {
		return nil, err
	}
	lev, err := NewEvenAxis(AxisLev, numLev, 0, 1000)
	if err != nil {
		return nil, err
	}
	return New("atm", lat, lev)
}
