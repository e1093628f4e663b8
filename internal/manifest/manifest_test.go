package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleManifest() *Manifest {
	m := New("noir")
	m.BuildInfo = &BuildInfo{Workers: 4, Format: "jpeg", Quality: 85, Filter: "grayscale(100%)"}
	m.Assets["test/image"] = Asset{
		Original: OriginalInfo{
			Width: 800, Height: 600,
			Format: "jpeg", Size: 100000, HasAlpha: false,
		},
		AspectRatio: 1.3333,
		Palette:     []string{"#1A1A1A", "#F0F0F0"},
		TextColor:   "#FFFFFF",
		Variants: []Variant{
			{Role: RoleFull, Format: "jpeg", Width: 800, Height: 600, Size: 5, Hash: "abcd1234abcd1234", Path: "test/image.abcd1234.jpg"},
		},
	}
	m.ComputeStats()
	return m
}

func TestManifestRoundtrip(t *testing.T) {
	m := sampleManifest()

	dir := t.TempDir()
	path := filepath.Join(dir, Filename)
	if err := WriteJSON(m, path); err != nil {
		t.Fatalf("write: %v", err)
	}

	// Read back through the directory form.
	m2, err := ReadJSON(dir)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if m2.Version != SupportedManifestVersion {
		t.Errorf("version: got %d, want %d", m2.Version, SupportedManifestVersion)
	}
	if m2.Preset != "noir" {
		t.Errorf("preset: got %q", m2.Preset)
	}
	if m2.BuildInfo == nil {
		t.Fatal("build_info missing")
	}
	if m2.BuildInfo.Workers != 4 || m2.BuildInfo.Quality != 85 {
		t.Errorf("build_info: got %+v", *m2.BuildInfo)
	}

	a, ok := m2.Assets["test/image"]
	if !ok {
		t.Fatal("asset test/image missing")
	}
	if len(a.Palette) != 2 || a.Palette[0] != "#1A1A1A" {
		t.Errorf("palette: got %v", a.Palette)
	}
	if len(a.Variants) != 1 {
		t.Fatalf("variants: got %d", len(a.Variants))
	}
	if a.Variants[0].Role != RoleFull {
		t.Errorf("variant role: got %q", a.Variants[0].Role)
	}

	if m2.Stats.TotalAssets != 1 {
		t.Errorf("total_assets: got %d", m2.Stats.TotalAssets)
	}
	if m2.Stats.TotalVariants != 1 {
		t.Errorf("total_variants: got %d", m2.Stats.TotalVariants)
	}
	if m2.Stats.TotalInputBytes != 100000 || m2.Stats.TotalOutputBytes != 5 {
		t.Errorf("byte totals: got %+v", m2.Stats)
	}
}

func TestManifestVersion(t *testing.T) {
	m := New("v-test")
	if m.Version != SupportedManifestVersion {
		t.Errorf("new manifest version: got %d, want %d", m.Version, SupportedManifestVersion)
	}
}

func TestComputeStatsKeepsFailures(t *testing.T) {
	m := sampleManifest()
	m.Stats.Failed = 3
	m.ComputeStats()
	if m.Stats.Failed != 3 {
		t.Errorf("failed: got %d", m.Stats.Failed)
	}
}

func TestManifestIgnoresUnknownFields(t *testing.T) {
	// Simulate a future manifest with extra fields.
	raw := `{
		"version": 1,
		"generated_at": "2025-01-01T00:00:00Z",
		"preset": "test",
		"base_path": "./",
		"future_field": "should be ignored",
		"build_info": { "workers": 8, "format": "png", "quality": 90, "new_flag": true },
		"assets": {},
		"stats": { "total_input_bytes": 0, "total_output_bytes": 0, "total_assets": 0, "total_variants": 0, "new_stat": 42 }
	}`

	var m Manifest
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal with unknown fields: %v", err)
	}
	if m.Version != 1 {
		t.Errorf("version: got %d", m.Version)
	}
	if m.BuildInfo == nil || m.BuildInfo.Workers != 8 {
		t.Error("build_info not parsed correctly")
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	m := sampleManifest()
	full := filepath.Join(dir, "test", "image.abcd1234.jpg")
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte("12345"), 0o644); err != nil {
		t.Fatal(err)
	}

	if errs := Validate(m, dir); len(errs) != 0 {
		t.Fatalf("expected valid manifest, got %v", errs)
	}

	// Break it in several ways at once.
	a := m.Assets["test/image"]
	a.Palette = append(a.Palette, "blue")
	a.Variants = append(a.Variants, Variant{Role: RoleThumb, Format: "png", Width: 64, Height: 48, Hash: "x", Path: "missing.png"})
	m.Assets["test/image"] = a

	errs := Validate(m, dir)
	joined := strings.Join(errs, "\n")
	for _, want := range []string{"malformed color", "file not found", "stats.total_variants mismatch"} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q in %v", want, errs)
		}
	}
}

func TestValidateSizeMismatch(t *testing.T) {
	dir := t.TempDir()
	m := sampleManifest()
	full := filepath.Join(dir, "test", "image.abcd1234.jpg")
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte("1234567"), 0o644); err != nil {
		t.Fatal(err)
	}
	errs := Validate(m, dir)
	if len(errs) != 1 || !strings.Contains(errs[0], "size mismatch") {
		t.Errorf("got %v", errs)
	}
}

func TestReadJSONMissing(t *testing.T) {
	if _, err := ReadJSON(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing manifest")
	}
}
