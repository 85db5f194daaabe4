package dataset

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name                string
		total               int
		trainRatio          float64
		validRatio          float64
		train, valid, testN int
	}{
		{"canonical 100", 100, 0.75, 0.15, 75, 15, 10},
		{"rounding remainder to test", 7, 0.75, 0.15, 5, 1, 1},
		{"single image", 1, 0.75, 0.15, 0, 0, 1},
		{"no validation", 10, 0.8, 0, 8, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			train, valid, test := split(tt.total, tt.trainRatio, tt.validRatio)
			if train != tt.train || valid != tt.valid || test != tt.testN {
				t.Errorf("split = (%d, %d, %d), want (%d, %d, %d)",
					train, valid, test, tt.train, tt.valid, tt.testN)
			}
			if train+valid+test != tt.total {
				t.Errorf("partitions sum to %d, want %d", train+valid+test, tt.total)
			}
		})
	}
}

func TestUniqueImageName(t *testing.T) {
	pattern := regexp.MustCompile(`^IMG_3_\d{14}_[0-9a-f]{8}\.jpg$`)
	name := uniqueImageName(3)
	if !pattern.MatchString(name) {
		t.Errorf("uniqueImageName = %q, want match for %s", name, pattern)
	}

	if uniqueImageName(3) == name {
		t.Error("consecutive names for the same index should differ")
	}
}

func TestLabelNameFor(t *testing.T) {
	tests := []struct {
		image string
		want  string
	}{
		{"IMG_0_20260823120000_deadbeef.jpg", "IMG_0_20260823120000_deadbeef.txt"},
		{"photo.png", "photo.txt"},
	}

	for _, tt := range tests {
		if got := labelNameFor(tt.image); got != tt.want {
			t.Errorf("labelNameFor(%q) = %q, want %q", tt.image, got, tt.want)
		}
	}
}

func TestCreateLayout(t *testing.T) {
	root := t.TempDir()
	if err := createLayout(root); err != nil {
		t.Fatalf("createLayout: %v", err)
	}

	for _, partition := range []string{PartitionTrain, PartitionValid, PartitionTest} {
		for _, sub := range []string{"images", "labels"} {
			dir := filepath.Join(root, partition, sub)
			info, err := os.Stat(dir)
			if err != nil {
				t.Errorf("missing %s: %v", dir, err)
				continue
			}
			if !info.IsDir() {
				t.Errorf("%s is not a directory", dir)
			}
		}
	}
}

func TestPartitionDirs(t *testing.T) {
	images, labels := partitionDirs("out", PartitionTrain)
	if images != filepath.Join("out", "train", "images") {
		t.Errorf("images dir = %q", images)
	}
	if labels != filepath.Join("out", "train", "labels") {
		t.Errorf("labels dir = %q", labels)
	}
}
