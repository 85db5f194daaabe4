// Package preview renders generated annotations back onto their images as
// colored box outlines, for eyeballing dataset quality.
package preview

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"card-synth/internal/annotate"
	"card-synth/pkg/colorutil"
)

// Render draws every box in labelPath over the image at imagePath and saves
// the overlay as a PNG at outPath.
func Render(imagePath, labelPath, outPath string, classes []string) error {
	img, err := loadImage(imagePath)
	if err != nil {
		return err
	}
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	data, err := os.ReadFile(labelPath)
	if err != nil {
		return fmt.Errorf("reading labels %s: %w", labelPath, err)
	}

	dc := gg.NewContextForImage(img)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetLineWidth(2)

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rec, err := annotate.ParseRecord(line)
		if err != nil {
			continue
		}

		xmin, ymin, xmax, ymax := rec.PixelBox(w, h)
		dc.SetColor(colorutil.PaletteColor(rec.ClassID))
		dc.DrawRectangle(xmin, ymin, xmax-xmin, ymax-ymin)
		dc.Stroke()

		name := fmt.Sprintf("class_%d", rec.ClassID)
		if rec.ClassID >= 0 && rec.ClassID < len(classes) {
			name = classes[rec.ClassID]
		}
		ty := ymin - 4
		if ty < 12 {
			ty = ymin + 14
		}
		dc.DrawString(name, xmin+2, ty)
	}

	if err := dc.SavePNG(outPath); err != nil {
		return fmt.Errorf("saving preview %s: %w", outPath, err)
	}
	return nil
}

// RenderSamples overlays up to n images from one dataset partition into
// destDir, pairing each image with its label file by name.
func RenderSamples(outputDir, partition string, n int, classes []string, destDir string, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}

	imagesDir := filepath.Join(outputDir, partition, "images")
	labelsDir := filepath.Join(outputDir, partition, "labels")

	entries, err := os.ReadDir(imagesDir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", imagesDir, err)
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", destDir, err)
	}

	rendered := 0
	for _, entry := range entries {
		if rendered >= n {
			break
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if entry.IsDir() || (ext != ".jpg" && ext != ".jpeg" && ext != ".png") {
			continue
		}

		base := strings.TrimSuffix(name, filepath.Ext(name))
		imagePath := filepath.Join(imagesDir, name)
		labelPath := filepath.Join(labelsDir, base+".txt")
		outPath := filepath.Join(destDir, base+"_boxes.png")

		if err := Render(imagePath, labelPath, outPath, classes); err != nil {
			logger.Warn("cannot render preview, skipping", "image", name, "err", err)
			continue
		}
		rendered++
	}

	logger.Info("rendered previews", "partition", partition, "count", rendered, "dest", destDir)
	return nil
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
