// Package sprite holds the in-memory representation of loadable cards: pixel
// buffers with an independent alpha channel, a label, and the bounding boxes
// annotated in the card's own coordinate space.
package sprite

import (
	"image"
	"math"
)

// Box is an axis-aligned bounding box. Coordinates are in the frame of
// whichever buffer currently owns the box: sprite-local before placement,
// canvas-space after.
type Box struct {
	Label string
	XMin  float64
	YMin  float64
	XMax  float64
	YMax  float64
}

// Width returns the box width; negative for degenerate boxes.
func (b Box) Width() float64 { return b.XMax - b.XMin }

// Height returns the box height; negative for degenerate boxes.
func (b Box) Height() float64 { return b.YMax - b.YMin }

// Area returns the box area, or 0 when the box is degenerate.
func (b Box) Area() float64 {
	w, h := b.Width(), b.Height()
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Empty reports whether the box has no positive extent.
func (b Box) Empty() bool { return b.XMin >= b.XMax || b.YMin >= b.YMax }

// Translate returns the box shifted by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	return Box{Label: b.Label, XMin: b.XMin + dx, YMin: b.YMin + dy, XMax: b.XMax + dx, YMax: b.YMax + dy}
}

// IntersectionArea returns the area of overlap with another box.
func (b Box) IntersectionArea(other Box) float64 {
	xmin := math.Max(b.XMin, other.XMin)
	ymin := math.Max(b.YMin, other.YMin)
	xmax := math.Min(b.XMax, other.XMax)
	ymax := math.Min(b.YMax, other.YMax)
	if xmin >= xmax || ymin >= ymax {
		return 0
	}
	return (xmax - xmin) * (ymax - ymin)
}

// Clip returns the box clipped to a width x height canvas. The result may be
// degenerate when the box lies entirely outside.
func (b Box) Clip(width, height float64) Box {
	return Box{
		Label: b.Label,
		XMin:  math.Max(0, b.XMin),
		YMin:  math.Max(0, b.YMin),
		XMax:  math.Min(width, b.XMax),
		YMax:  math.Min(height, b.YMax),
	}
}

// Sprite is a loadable card: an RGBA pixel buffer with straight alpha, a
// label derived from the source filename, and zero or more local-space boxes.
// Transforms never mutate a sprite; they return a new one, so a pool sprite
// stays valid however many times it is drawn.
type Sprite struct {
	Image *image.NRGBA
	Label string
	Boxes []Box
}

// Width returns the pixel width of the sprite buffer.
func (s *Sprite) Width() int {
	if s.Image == nil {
		return 0
	}
	return s.Image.Bounds().Dx()
}

// Height returns the pixel height of the sprite buffer.
func (s *Sprite) Height() int {
	if s.Image == nil {
		return 0
	}
	return s.Image.Bounds().Dy()
}

// Area returns the pixel area of the sprite buffer.
func (s *Sprite) Area() float64 {
	return float64(s.Width()) * float64(s.Height())
}

// CloneBoxes returns an independent copy of the sprite's box list.
func (s *Sprite) CloneBoxes() []Box {
	boxes := make([]Box, len(s.Boxes))
	copy(boxes, s.Boxes)
	return boxes
}

// Vocabulary is the fixed, ordered class list. Box class ids index into it
// and annotation records are emitted against it.
type Vocabulary struct {
	names []string
	ids   map[string]int
}

// NewVocabulary builds a vocabulary from an ordered class list.
func NewVocabulary(names []string) *Vocabulary {
	v := &Vocabulary{
		names: append([]string(nil), names...),
		ids:   make(map[string]int, len(names)),
	}
	for i, name := range names {
		v.ids[name] = i
	}
	return v
}

// Len returns the number of classes.
func (v *Vocabulary) Len() int { return len(v.names) }

// Names returns a copy of the ordered class list.
func (v *Vocabulary) Names() []string {
	return append([]string(nil), v.names...)
}

// ID returns the class id for a label.
func (v *Vocabulary) ID(label string) (int, bool) {
	id, ok := v.ids[label]
	return id, ok
}

// Name returns the label for a class id.
func (v *Vocabulary) Name(id int) (string, bool) {
	if id < 0 || id >= len(v.names) {
		return "", false
	}
	return v.names[id], true
}

// LabelToID returns the label -> id mapping as a plain map.
func (v *Vocabulary) LabelToID() map[string]int {
	m := make(map[string]int, len(v.ids))
	for k, id := range v.ids {
		m[k] = id
	}
	return m
}

// Match resolves a filename-derived label against the vocabulary. An exact
// match wins; otherwise the longest class name the label starts with is used,
// so "maki_roll_special" still maps to "maki_roll".
func (v *Vocabulary) Match(label string) (string, bool) {
	if _, ok := v.ids[label]; ok {
		return label, true
	}
	best := ""
	for _, name := range v.names {
		if len(name) > len(best) && len(label) > len(name) && label[:len(name)] == name {
			best = name
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}
