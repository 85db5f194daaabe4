package annotate

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestManifestWrite(t *testing.T) {
	classes := []string{"egg_nigiri", "maki_roll"}
	dir := t.TempDir()

	if err := NewManifest(classes).Write(dir); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "data.yaml"))
	if err != nil {
		t.Fatalf("reading manifest: %v", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatalf("parsing manifest: %v", err)
	}

	if m.Train != "./train/images" || m.Val != "./valid/images" {
		t.Errorf("paths = %q, %q", m.Train, m.Val)
	}
	if m.NC != 2 {
		t.Errorf("nc = %d, want 2", m.NC)
	}
	if !reflect.DeepEqual(m.Names, classes) {
		t.Errorf("names = %v, want %v", m.Names, classes)
	}
}
