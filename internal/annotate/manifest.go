package annotate

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest describes a generated dataset: where the training and validation
// images live and which classes the annotations index.
type Manifest struct {
	Train string   `yaml:"train"`
	Val   string   `yaml:"val"`
	NC    int      `yaml:"nc"`
	Names []string `yaml:"names,flow"`
}

// NewManifest builds the standard manifest for a dataset rooted at outputDir.
func NewManifest(classes []string) Manifest {
	return Manifest{
		Train: "./train/images",
		Val:   "./valid/images",
		NC:    len(classes),
		Names: classes,
	}
}

// Write serializes the manifest to data.yaml inside the dataset root.
func (m Manifest) Write(outputDir string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	path := filepath.Join(outputDir, "data.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}
