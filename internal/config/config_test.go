package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-interference/artifact"
	"github.com/cwbudde/algo-interference/field"
	"github.com/cwbudde/algo-interference/integrate/mc"
	"github.com/cwbudde/algo-interference/sweep"
)

func load(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	fs := pflag.NewFlagSet("bandavg", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return Load(fs)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(t)
	require.NoError(t, err)

	assert.Equal(t, ModeCurve, cfg.Mode)
	assert.Equal(t, "auto", cfg.Backend)
	assert.Equal(t, mc.DefaultBlockSize, cfg.BlockSize)
	assert.Equal(t, sweep.DefaultPlaneSamples, cfg.PlaneSamples)
	assert.Equal(t, sweep.DefaultPointSamples, cfg.PointSamples)
	assert.False(t, cfg.Seeded)
	assert.Equal(t, CurveConfig{MaxD: 10, Step: 0.01}, cfg.Curve)
	assert.Equal(t, []float64{0.3}, cfg.Map.Distances)
	assert.Equal(t, 10.0, cfg.Map.PixelsPerMeter)
	assert.Equal(t, sweep.DefaultGrid(), cfg.Grid)
	assert.Equal(t, artifact.KindLocal, cfg.Output.Kind)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFlags(t *testing.T) {
	cfg, err := load(t,
		"--mode=map",
		"--seed=42",
		"--correlated",
		"--point-samples=5000",
		"--distances=0.5,1.25",
		"--ppm=4",
		"--bands=60:250",
		"--x=-5:5",
		"--y=0:2.5",
		"--sink=minio",
		"--bucket=runs",
	)
	require.NoError(t, err)

	assert.Equal(t, ModeMap, cfg.Mode)
	assert.True(t, cfg.Seeded)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.True(t, cfg.Correlated)
	assert.Equal(t, 5000, cfg.PointSamples)
	assert.Equal(t, []float64{0.5, 1.25}, cfg.Map.Distances)
	assert.Equal(t, 4.0, cfg.Map.PixelsPerMeter)
	assert.Equal(t, []field.Band{{Lo: 60, Hi: 250}}, cfg.Grid.Bands)
	assert.Equal(t, []mc.Interval{{Lo: -5, Hi: 5}}, cfg.Grid.XRanges)
	assert.Equal(t, []mc.Interval{{Lo: 0, Hi: 2.5}}, cfg.Grid.YRanges)
	assert.Equal(t, "minio", cfg.Output.Kind)
	assert.Equal(t, "runs", cfg.Output.Bucket)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("BANDAVG_PLANE_SAMPLES", "12345")
	t.Setenv("BANDAVG_SEED", "0x10")
	t.Setenv("BANDAVG_GRID_BANDS", "16:60,250:500")
	t.Setenv("BANDAVG_OUTPUT_ACCESS_KEY", "key")

	cfg, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, 12345, cfg.PlaneSamples)
	assert.Equal(t, uint64(16), cfg.Seed)
	assert.Equal(t, []field.Band{{Lo: 16, Hi: 60}, {Lo: 250, Hi: 500}}, cfg.Grid.Bands)
	assert.Equal(t, "key", cfg.Output.AccessKey)

	// flags win over the environment
	cfg, err = load(t, "--plane-samples=99")
	require.NoError(t, err)
	assert.Equal(t, 99, cfg.PlaneSamples)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bandavg.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
mode = "map"
backend = "serial"

[map]
distances = ["2"]
pixels_per_meter = 5

[grid]
bands = ["500:2000"]
x = ["0:10"]
y = ["0:10"]

[output]
kind = "s3"
bucket = "artifacts"
`), 0o644))

	cfg, err := load(t, "--config", path, "--ppm=8")
	require.NoError(t, err)
	assert.Equal(t, ModeMap, cfg.Mode)
	assert.Equal(t, "serial", cfg.Backend)
	assert.Equal(t, []float64{2}, cfg.Map.Distances)
	assert.Equal(t, 8.0, cfg.Map.PixelsPerMeter, "flag overrides file")
	assert.Equal(t, []field.Band{{Lo: 500, Hi: 2000}}, cfg.Grid.Bands)
	assert.Equal(t, "s3", cfg.Output.Kind)
	assert.Equal(t, "artifacts", cfg.Output.Bucket)

	_, err = load(t, "--config", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"mode", []string{"--mode=video"}},
		{"format", []string{"--format=bmp"}},
		{"seed", []string{"--seed=abc"}},
		{"samples", []string{"--point-samples=0"}},
		{"workers", []string{"--workers=-1"}},
		{"step", []string{"--step=0"}},
		{"step above max", []string{"--step=2", "--max-d=1"}},
		{"band syntax", []string{"--bands=16-60"}},
		{"band order", []string{"--bands=60:16"}},
		{"empty window", []string{"--x=1:1"}},
		{"map distance", []string{"--mode=map", "--distances=-1"}},
		{"map scale", []string{"--mode=map", "--ppm=0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(t, tt.args...)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParseRanges(t *testing.T) {
	got, err := parseRanges([]string{"-1:1", " 0 : 2.5 ,3:4"})
	require.NoError(t, err)
	assert.Equal(t, []mc.Interval{{Lo: -1, Hi: 1}, {Lo: 0, Hi: 2.5}, {Lo: 3, Hi: 4}}, got)

	_, err = parseRanges([]string{"1"})
	assert.Error(t, err)
}
