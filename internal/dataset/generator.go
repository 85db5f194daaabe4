// Package dataset orchestrates full generation runs: it loads the card and
// background pools, drives the placement engine once per output image, and
// writes images, label files and the dataset manifest across the three
// partitions.
package dataset

import (
	"fmt"
	"image"
	"image/jpeg"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"card-synth/internal/annotate"
	"card-synth/internal/compose"
	"card-synth/internal/config"
	"card-synth/internal/sprite"
)

const jpegQuality = 90

// Generator produces one synthetic dataset per Run call.
type Generator struct {
	cfg    config.Config
	logger *log.Logger
}

// New creates a generator for the given configuration.
func New(cfg config.Config, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.Default()
	}
	return &Generator{cfg: cfg, logger: logger}
}

// split returns the image counts per partition. Train and valid round down;
// test takes the remainder.
func split(total int, trainRatio, validRatio float64) (train, valid, test int) {
	train = int(float64(total) * trainRatio)
	valid = int(float64(total) * validRatio)
	test = total - train - valid
	return train, valid, test
}

// Run generates the configured number of images and returns how many were
// written. An empty card or background pool aborts the run before any output
// is produced.
func (g *Generator) Run(rng *rand.Rand) (int, error) {
	cfg := g.cfg
	vocab := sprite.NewVocabulary(cfg.Classes)
	loader := sprite.NewLoader(vocab, cfg.GroupVariations, g.logger)

	cards, err := loader.LoadSprites(cfg.CardsDir)
	if err != nil {
		return 0, err
	}
	if len(cards) == 0 {
		return 0, fmt.Errorf("no usable card sprites in %s", cfg.CardsDir)
	}

	backgrounds, err := loader.LoadBackgrounds(cfg.BackgroundsDir, cfg.CanvasWidth, cfg.CanvasHeight)
	if err != nil {
		return 0, err
	}
	if len(backgrounds) == 0 {
		return 0, fmt.Errorf("no usable backgrounds in %s", cfg.BackgroundsDir)
	}

	if err := createLayout(cfg.OutputDir); err != nil {
		return 0, err
	}

	engine := compose.NewEngine(compose.Constraints{
		MaxFootprintCoverage: cfg.MaxFootprintCoverage,
		MaxBoxCoverage:       cfg.MaxBoxCoverage,
	}, cfg.AttemptsPerCard, g.logger)

	labelToID := vocab.LabelToID()
	numTrain, numValid, numTest := split(cfg.TotalImages, cfg.TrainRatio, cfg.ValidRatio)
	partitions := []struct {
		name  string
		count int
	}{
		{PartitionTrain, numTrain},
		{PartitionValid, numValid},
		{PartitionTest, numTest},
	}

	index := 0
	for _, part := range partitions {
		g.logger.Info("generating partition", "partition", part.name, "images", part.count)
		imagesDir, labelsDir := partitionDirs(cfg.OutputDir, part.name)

		for i := 0; i < part.count; i++ {
			if err := g.generateImage(rng, engine, cards, backgrounds, imagesDir, labelsDir, index, labelToID); err != nil {
				return index, err
			}
			index++
			if (i+1)%10 == 0 {
				g.logger.Info("progress", "partition", part.name, "done", i+1, "total", part.count)
			}
		}
	}

	if err := annotate.NewManifest(vocab.Names()).Write(cfg.OutputDir); err != nil {
		return index, err
	}

	g.logger.Info("generation complete", "images", index, "output", cfg.OutputDir)
	return index, nil
}

// generateImage composites one image and writes it with its label file.
func (g *Generator) generateImage(rng *rand.Rand, engine *compose.Engine, cards []*sprite.Sprite,
	backgrounds []*image.NRGBA, imagesDir, labelsDir string, index int, labelToID map[string]int) error {

	canvas := cloneNRGBA(backgrounds[rng.Intn(len(backgrounds))])
	targets := compose.GenerateAreaTargets(rng, cards, g.cfg.MinAreaFraction, g.cfg.MaxAreaFraction)

	boxes, err := engine.Place(rng, canvas, cards, targets)
	if err != nil {
		return fmt.Errorf("placing cards: %w", err)
	}

	objects := make([]annotate.Object, len(boxes))
	for i, b := range boxes {
		objects[i] = annotate.Object{Label: b.Label, XMin: b.XMin, YMin: b.YMin, XMax: b.XMax, YMax: b.YMax}
	}
	records := annotate.Encode(objects, g.cfg.CanvasWidth, g.cfg.CanvasHeight, labelToID, g.logger)

	imageName := uniqueImageName(index)
	if err := writeJPEG(filepath.Join(imagesDir, imageName), canvas); err != nil {
		return err
	}

	var sb strings.Builder
	for _, line := range annotate.EncodeLines(records) {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	labelPath := filepath.Join(labelsDir, labelNameFor(imageName))
	if err := os.WriteFile(labelPath, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("writing labels %s: %w", labelPath, err)
	}
	return nil
}

func writeJPEG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating image %s: %w", path, err)
	}
	defer f.Close()

	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return fmt.Errorf("encoding image %s: %w", path, err)
	}
	return nil
}

// cloneNRGBA copies a background so placement never mutates the pool.
func cloneNRGBA(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
