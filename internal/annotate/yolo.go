// Package annotate converts canvas-space boxes to and from the normalized
// center-size record format used by the label files.
package annotate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// Record is one annotation line: a class id plus a box expressed as center
// and size, normalized to [0,1] against the image dimensions.
type Record struct {
	ClassID int
	XCenter float64
	YCenter float64
	Width   float64
	Height  float64
}

// String formats the record as an annotation line, coordinates to 5 decimals.
func (r Record) String() string {
	return fmt.Sprintf("%d %.5f %.5f %.5f %.5f", r.ClassID, r.XCenter, r.YCenter, r.Width, r.Height)
}

// PixelBox converts the record back to pixel min/max coordinates on an image
// of the given dimensions.
func (r Record) PixelBox(imgWidth, imgHeight int) (xmin, ymin, xmax, ymax float64) {
	cx := r.XCenter * float64(imgWidth)
	cy := r.YCenter * float64(imgHeight)
	w := r.Width * float64(imgWidth)
	h := r.Height * float64(imgHeight)
	return cx - w/2, cy - h/2, cx + w/2, cy + h/2
}

// ParseRecord parses one annotation line. It accepts exactly five
// space-separated fields: class id then four normalized floats.
func ParseRecord(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return Record{}, fmt.Errorf("expected 5 fields, got %d", len(fields))
	}

	classID, err := strconv.Atoi(fields[0])
	if err != nil {
		return Record{}, fmt.Errorf("invalid class id %q: %w", fields[0], err)
	}

	var vals [4]float64
	for i, f := range fields[1:] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Record{}, fmt.Errorf("invalid coordinate %q: %w", f, err)
		}
		vals[i] = v
	}

	return Record{
		ClassID: classID,
		XCenter: vals[0],
		YCenter: vals[1],
		Width:   vals[2],
		Height:  vals[3],
	}, nil
}

// NewRecord builds a record from a pixel-space box, normalizing against the
// image dimensions and clamping every component to [0,1].
func NewRecord(classID int, xmin, ymin, xmax, ymax float64, imgWidth, imgHeight int) Record {
	w := float64(imgWidth)
	h := float64(imgHeight)
	return Record{
		ClassID: classID,
		XCenter: clamp01((xmin + xmax) / (2 * w)),
		YCenter: clamp01((ymin + ymax) / (2 * h)),
		Width:   clamp01((xmax - xmin) / w),
		Height:  clamp01((ymax - ymin) / h),
	}
}

// Object is a labeled canvas-space box as produced by the placement engine.
type Object struct {
	Label string
	XMin  float64
	YMin  float64
	XMax  float64
	YMax  float64
}

// Encode converts placed objects into records, preserving input order.
// Objects whose label is missing from labelToID are skipped with a warning.
// Encoding is deterministic: the same input always yields the same records.
func Encode(objects []Object, imgWidth, imgHeight int, labelToID map[string]int, logger *log.Logger) []Record {
	if logger == nil {
		logger = log.Default()
	}

	records := make([]Record, 0, len(objects))
	for _, obj := range objects {
		classID, ok := labelToID[obj.Label]
		if !ok {
			logger.Warn("label not in class vocabulary, skipping box", "label", obj.Label)
			continue
		}
		records = append(records, NewRecord(classID, obj.XMin, obj.YMin, obj.XMax, obj.YMax, imgWidth, imgHeight))
	}
	return records
}

// EncodeLines renders records as annotation file lines.
func EncodeLines(records []Record) []string {
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.String()
	}
	return lines
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
