// Package config builds the three scalar arguments hypercull.NewGraph
// needs from either functional options or a YAML file, the way a host
// embedding this engine would wire it up in practice.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Graph holds the arguments hypercull.NewGraph takes.
type Graph struct {
	RenderDistance      uint8
	WorldBottomSectionY int8
	WorldTopSectionY    int8
}

// defaults matches a vanilla Minecraft-scale world: render distance 12,
// world from bedrock (section -4) to the build limit (section 19).
var defaults = Graph{
	RenderDistance:      12,
	WorldBottomSectionY: -4,
	WorldTopSectionY:    19,
}

// Attr is an optional override applied over the defaults.
//
//	cfg := config.New(
//	    config.RenderDistance(16),
//	    config.WorldExtents(-4, 19),
//	)
type Attr func(*Graph)

// New builds a Graph configuration from the defaults plus any overrides.
func New(attrs ...Attr) Graph {
	cfg := defaults
	for _, a := range attrs {
		a(&cfg)
	}
	return cfg
}

// RenderDistance sets the render distance, in chunks, the graph's storage
// distance is derived from.
func RenderDistance(n uint8) Attr {
	return func(c *Graph) { c.RenderDistance = n }
}

// WorldExtents sets the world's vertical section bounds.
func WorldExtents(bottomSectionY, topSectionY int8) Attr {
	return func(c *Graph) {
		c.WorldBottomSectionY = bottomSectionY
		c.WorldTopSectionY = topSectionY
	}
}

// fileConfig is the YAML-facing shape; fields are strings-and-numbers only
// so the file stays easy to hand-edit.
type fileConfig struct {
	RenderDistance      uint8 `yaml:"render_distance"`
	WorldBottomSectionY int8  `yaml:"world_bottom_section_y"`
	WorldTopSectionY    int8  `yaml:"world_top_section_y"`
}

// Load reads a graph configuration from a YAML file at path. Fields absent
// from the file fall back to the same defaults New() uses.
func Load(path string) (Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Graph{}, fmt.Errorf("config.Load: %w", err)
	}

	cfg := fileConfig{
		RenderDistance:      defaults.RenderDistance,
		WorldBottomSectionY: defaults.WorldBottomSectionY,
		WorldTopSectionY:    defaults.WorldTopSectionY,
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Graph{}, fmt.Errorf("config.Load: yaml %w", err)
	}

	return Graph{
		RenderDistance:      cfg.RenderDistance,
		WorldBottomSectionY: cfg.WorldBottomSectionY,
		WorldTopSectionY:    cfg.WorldTopSectionY,
	}, nil
}
