package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Partition names, in generation order.
const (
	PartitionTrain = "train"
	PartitionValid = "valid"
	PartitionTest  = "test"
)

// partitionDirs returns the image and label directories for one partition.
func partitionDirs(outputDir, partition string) (imagesDir, labelsDir string) {
	return filepath.Join(outputDir, partition, "images"),
		filepath.Join(outputDir, partition, "labels")
}

// createLayout creates the image/label directory pair for every partition.
func createLayout(outputDir string) error {
	for _, partition := range []string{PartitionTrain, PartitionValid, PartitionTest} {
		imagesDir, labelsDir := partitionDirs(outputDir, partition)
		for _, dir := range []string{imagesDir, labelsDir} {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("creating %s: %w", dir, err)
			}
		}
	}
	return nil
}

// uniqueImageName builds a collision-free image filename from the running
// index, a timestamp and a short random suffix.
func uniqueImageName(index int) string {
	stamp := time.Now().Format("20060102150405")
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("IMG_%d_%s_%s.jpg", index, stamp, suffix)
}

// labelNameFor swaps an image filename's extension for .txt.
func labelNameFor(imageName string) string {
	ext := filepath.Ext(imageName)
	return imageName[:len(imageName)-len(ext)] + ".txt"
}
