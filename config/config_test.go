package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewAppliesDefaults(t *testing.T) {
	cfg := New()
	if cfg != defaults {
		t.Fatalf("expected defaults with no attrs, got %+v", cfg)
	}
}

func TestNewAppliesOverrides(t *testing.T) {
	cfg := New(RenderDistance(20), WorldExtents(-16, 31))

	if cfg.RenderDistance != 20 {
		t.Errorf("expected render distance 20, got %d", cfg.RenderDistance)
	}
	if cfg.WorldBottomSectionY != -16 || cfg.WorldTopSectionY != 31 {
		t.Errorf("expected world extents (-16, 31), got (%d, %d)", cfg.WorldBottomSectionY, cfg.WorldTopSectionY)
	}
}

func TestLoadReadsYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.yaml")
	contents := "render_distance: 8\nworld_bottom_section_y: -4\nworld_top_section_y: 19\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.RenderDistance != 8 {
		t.Errorf("expected render distance 8, got %d", cfg.RenderDistance)
	}
}

func TestLoadPartialFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.yaml")
	if err := os.WriteFile(path, []byte("render_distance: 6\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.WorldBottomSectionY != defaults.WorldBottomSectionY {
		t.Errorf("expected world bottom section to fall back to default %d, got %d", defaults.WorldBottomSectionY, cfg.WorldBottomSectionY)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
