// Package testfixtures holds the end-to-end culling scenarios used to
// exercise a full graph: world dimensions, the section connectivity graph
// to seed, and the camera to search from. Each scenario is a YAML file
// embedded at build time.
package testfixtures

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed scenarios/*.yaml
var scenarioFiles embed.FS

// SectionFixture sets one section's visibility graph. Visibility is a hex
// string (e.g. "0x7fff") so fixtures stay readable by hand.
type SectionFixture struct {
	Coords     [3]int32 `yaml:"coords"`
	Visibility string   `yaml:"visibility"`
}

// CameraFixture is the camera a scenario searches from.
type CameraFixture struct {
	Pos                 [3]float64   `yaml:"pos"`
	FrustumPlanes       [6][4]float32 `yaml:"frustum_planes"`
	SearchDistance      float32      `yaml:"search_distance"`
	UseOcclusionCulling bool         `yaml:"use_occlusion_culling"`
}

// Scenario is one complete end-to-end test case: the graph to build, the
// sections to seed into it, and the camera to cull from.
//
// FillVisibility, if set, is applied to every section the graph can hold
// before Sections is applied on top of it — the only practical way to
// describe a "fully open" or "fully closed" world of thousands of sections
// by hand. Sections lists exceptions to that fill.
type Scenario struct {
	Name                string           `yaml:"name"`
	RenderDistance      uint8            `yaml:"render_distance"`
	WorldBottomSectionY int8             `yaml:"world_bottom_section_y"`
	WorldTopSectionY    int8             `yaml:"world_top_section_y"`
	FillVisibility      string           `yaml:"fill_visibility"`
	// OpenTileOrigins lists the global section coordinates of the (0,0,0)
	// corner of each tile whose 512 sections should all be set fully open,
	// applied after FillVisibility. Used to describe "one open tile
	// surrounded by closed ones" without enumerating 512 sections by hand.
	OpenTileOrigins [][3]int32       `yaml:"open_tile_origins"`
	Sections        []SectionFixture `yaml:"sections"`
	Camera          CameraFixture    `yaml:"camera"`
}

// FullyOpenVisibility is the visibility word for a section connected to
// all 15 of its unique neighbor relationships: every bit position listed in
// direction's connection table.
const FullyOpenVisibility = 0x2030383c3e

// FillVisibilityWord parses FillVisibility, returning (0, false) if the
// scenario has none set.
func (s Scenario) FillVisibilityWord() (uint64, bool, error) {
	if s.FillVisibility == "" {
		return 0, false, nil
	}
	v, err := parseVisibility(s.FillVisibility)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

// Load reads the named scenario (without its .yaml extension) from the
// embedded fixture set.
func Load(name string) (Scenario, error) {
	data, err := scenarioFiles.ReadFile("scenarios/" + name + ".yaml")
	if err != nil {
		return Scenario{}, fmt.Errorf("testfixtures.Load(%q): %w", name, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("testfixtures.Load(%q): yaml: %w", name, err)
	}
	return s, nil
}

// VisibilityWord parses a SectionFixture's hex visibility string into a
// uint64, the form Graph.SetSection expects.
func (f SectionFixture) VisibilityWord() (uint64, error) {
	return parseVisibility(f.Visibility)
}

func parseVisibility(s string) (uint64, error) {
	var v uint64
	_, err := fmt.Sscanf(s, "0x%x", &v)
	if err != nil {
		return 0, fmt.Errorf("testfixtures: invalid visibility %q: %w", s, err)
	}
	return v, nil
}
