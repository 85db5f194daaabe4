package sprite

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	_ "golang.org/x/image/tiff"

	"card-synth/internal/annotate"
	"card-synth/internal/imaging"
)

// Loader reads card sprites and backgrounds from disk. Malformed annotation
// lines, unreadable images and unknown labels are skipped with a diagnostic;
// only directory-level failures surface as errors.
type Loader struct {
	Vocab           *Vocabulary
	GroupVariations bool

	logger *log.Logger
}

// NewLoader creates a loader over the given class vocabulary. When
// groupVariations is set, filenames ending in _<number> collapse onto the
// same label, so maki_roll_2.png is still a maki_roll.
func NewLoader(vocab *Vocabulary, groupVariations bool, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{Vocab: vocab, GroupVariations: groupVariations, logger: logger}
}

var imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".tif": true, ".tiff": true}

// LoadSprites loads every card image in dir that has a sibling .txt of
// annotation records. The returned sprites have a straight-alpha NRGBA
// buffer; sources without an alpha channel come out fully opaque.
func (l *Loader) LoadSprites(dir string) ([]*Sprite, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading card directory: %w", err)
	}

	var sprites []*Sprite
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if !imageExts[ext] {
			continue
		}
		base := strings.TrimSuffix(name, filepath.Ext(name))

		txtPath := filepath.Join(dir, base+".txt")
		if _, err := os.Stat(txtPath); err != nil {
			l.logger.Warn("card has no annotation file, skipping", "image", name)
			continue
		}

		label, ok := l.Vocab.Match(l.normalizeLabel(base))
		if !ok {
			l.logger.Warn("card filename does not match any class, skipping", "image", name)
			continue
		}

		img, err := loadImage(filepath.Join(dir, name))
		if err != nil {
			l.logger.Warn("cannot load card image, skipping", "image", name, "err", err)
			continue
		}
		buf := imaging.ToNRGBA(img)

		boxes := l.loadBoxes(txtPath, buf.Bounds().Dx(), buf.Bounds().Dy())
		if len(boxes) == 0 {
			l.logger.Warn("card has no valid boxes, skipping", "image", name)
			continue
		}

		sprites = append(sprites, &Sprite{Image: buf, Label: label, Boxes: boxes})
	}

	l.logger.Info("loaded cards", "count", len(sprites), "dir", dir)
	return sprites, nil
}

// loadBoxes parses one annotation file into sprite-local pixel boxes.
func (l *Loader) loadBoxes(path string, imgWidth, imgHeight int) []Box {
	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Warn("cannot read annotation file", "path", path, "err", err)
		return nil
	}

	var boxes []Box
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		rec, err := annotate.ParseRecord(line)
		if err != nil {
			l.logger.Warn("malformed annotation line, skipping", "path", path, "line", i+1, "err", err)
			continue
		}

		name, ok := l.Vocab.Name(rec.ClassID)
		if !ok {
			l.logger.Warn("annotation class id out of range, skipping", "path", path, "line", i+1, "class", rec.ClassID)
			continue
		}

		xmin, ymin, xmax, ymax := rec.PixelBox(imgWidth, imgHeight)
		box := Box{Label: name, XMin: xmin, YMin: ymin, XMax: xmax, YMax: ymax}
		if box.Empty() {
			l.logger.Warn("annotation box has no extent, skipping", "path", path, "line", i+1)
			continue
		}
		boxes = append(boxes, box)
	}
	return boxes
}

// LoadBackgrounds loads every image in dir and resamples each one to the
// canvas size with area averaging.
func (l *Loader) LoadBackgrounds(dir string, width, height int) ([]*image.NRGBA, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading background directory: %w", err)
	}

	var backgrounds []*image.NRGBA
	for _, entry := range entries {
		if entry.IsDir() || !imageExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}

		img, err := loadImage(filepath.Join(dir, entry.Name()))
		if err != nil {
			l.logger.Warn("cannot load background, skipping", "image", entry.Name(), "err", err)
			continue
		}

		resized, err := imaging.ResizeArea(imaging.ToNRGBA(img), width, height)
		if err != nil {
			l.logger.Warn("cannot resize background, skipping", "image", entry.Name(), "err", err)
			continue
		}
		backgrounds = append(backgrounds, resized)
	}

	l.logger.Info("loaded backgrounds", "count", len(backgrounds), "dir", dir)
	return backgrounds, nil
}

// normalizeLabel strips a trailing _<number> variation suffix when grouping
// is enabled.
func (l *Loader) normalizeLabel(base string) string {
	if !l.GroupVariations {
		return base
	}
	i := strings.LastIndex(base, "_")
	if i <= 0 {
		return base
	}
	if _, err := strconv.Atoi(base[i+1:]); err == nil {
		return base[:i]
	}
	return base
}

func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
