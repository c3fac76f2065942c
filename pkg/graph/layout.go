package graph

import (
	"encoding/json"
	"math"
	"os"

	"github.com/matzehuels/assetmap/pkg/errors"
)

// =============================================================================
// Rect - Axis-aligned Box
// =============================================================================

// Rect is an axis-aligned box in surface coordinates.
type Rect struct {
	MinX float64 `json:"min_x" yaml:"min_x" toml:"min_x"`
	MinY float64 `json:"min_y" yaml:"min_y" toml:"min_y"`
	MaxX float64 `json:"max_x" yaml:"max_x" toml:"max_x"`
	MaxY float64 `json:"max_y" yaml:"max_y" toml:"max_y"`
}

// RectAround returns a box of the given size centered on p.
func RectAround(p Position, width, height float64) Rect {
	return Rect{
		MinX: p.X - width/2,
		MinY: p.Y - height/2,
		MaxX: p.X + width/2,
		MaxY: p.Y + height/2,
	}
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Center returns the midpoint of the box.
func (r Rect) Center() Position {
	return Position{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Union returns the smallest box containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, o.MinX),
		MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX),
		MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

// Expand grows the box by pad on every side.
func (r Rect) Expand(pad float64) Rect {
	return Rect{MinX: r.MinX - pad, MinY: r.MinY - pad, MaxX: r.MaxX + pad, MaxY: r.MaxY + pad}
}

// EnsureMin grows the box symmetrically around its center until both
// dimensions are at least minW and minH. Larger dimensions are unchanged.
func (r Rect) EnsureMin(minW, minH float64) Rect {
	if w := r.Width(); w < minW {
		d := (minW - w) / 2
		r.MinX -= d
		r.MaxX += d
	}
	if h := r.Height(); h < minH {
		d := (minH - h) / 2
		r.MinY -= d
		r.MaxY += d
	}
	return r
}

// =============================================================================
// Layout - Rendered Extents
// =============================================================================

// Layout holds the rendered extents of display elements, keyed by display id.
// It is what a drawing surface reports back after layout and what the hull
// engine consumes through its bounds callback.
type Layout struct {
	Boxes map[string]Rect `json:"boxes" yaml:"boxes" toml:"boxes"`
}

// Bounds returns the box for a display id. Its signature matches the hull
// engine's bounds callback.
func (l *Layout) Bounds(id string) (Rect, bool) {
	if l == nil || l.Boxes == nil {
		return Rect{}, false
	}
	r, ok := l.Boxes[id]
	return r, ok
}

// Set records the box for a display id.
func (l *Layout) Set(id string, r Rect) {
	if l.Boxes == nil {
		l.Boxes = make(map[string]Rect)
	}
	l.Boxes[id] = r
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Boxes with inverted extents are rejected.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	for id, r := range l.Boxes {
		if r.MaxX < r.MinX || r.MaxY < r.MinY {
			return Layout{}, errors.New(errors.ErrCodeInvalidInput, "box %q has inverted extents", id)
		}
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return UnmarshalLayout(data)
}
