package render

import (
	"fmt"
	"io"
	"time"

	"github.com/BurntSushi/toml"
)

// Artifact kinds.
const (
	KindCurve = "curve"
	KindMap   = "map"
)

// Manifest describes one run and every artifact it produced. Seed is the
// decimal seed; TOML integers cannot hold every uint64.
type Manifest struct {
	RunID        string    `toml:"run_id"`
	Created      time.Time `toml:"created"`
	Backend      string    `toml:"backend"`
	SIMD         string    `toml:"simd"`
	Seed         string    `toml:"seed,omitempty"`
	Seeded       bool      `toml:"seeded"`
	Correlated   bool      `toml:"correlated"`
	PlaneSamples int       `toml:"plane_samples"`
	PointSamples int       `toml:"point_samples"`

	Artifacts []Artifact `toml:"artifact"`
}

// Artifact is one written file.
type Artifact struct {
	Kind string     `toml:"kind"`
	Key  string     `toml:"key"`
	Band [2]float64 `toml:"band"`
	X    [2]float64 `toml:"x"`
	Y    [2]float64 `toml:"y"`

	// Step is set for curves, D and Texture for maps.
	Step    float64 `toml:"step,omitempty"`
	D       float64 `toml:"d,omitempty"`
	Texture float64 `toml:"texture,omitempty"`

	NaN int `toml:"nan"`
}

// Add appends an artifact.
func (m *Manifest) Add(a Artifact) {
	m.Artifacts = append(m.Artifacts, a)
}

// Encode writes m to w as TOML.
func (m *Manifest) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(m); err != nil {
		return fmt.Errorf("render: encode manifest: %w", err)
	}
	return nil
}

// DecodeManifest parses a manifest written by Encode.
func DecodeManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("render: parse manifest: %w", err)
	}
	return &m, nil
}
