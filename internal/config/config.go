// Package config loads bandavg settings from defaults, an optional config
// file, BANDAVG_* environment variables and command-line flags, in
// increasing priority.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-interference/artifact"
	"github.com/cwbudde/algo-interference/field"
	"github.com/cwbudde/algo-interference/integrate/mc"
	"github.com/cwbudde/algo-interference/sweep"
)

// EnvPrefix prefixes environment overrides: BANDAVG_POINT_SAMPLES, …
const EnvPrefix = "BANDAVG"

// Run modes.
const (
	ModeCurve = "curve"
	ModeMap   = "map"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds all settings of a bandavg run.
type Config struct {
	Mode string

	Backend      string
	Workers      int
	PixelWorkers int
	BlockSize    int

	Seed       uint64
	Seeded     bool
	Correlated bool

	PlaneSamples int
	PointSamples int

	Curve CurveConfig
	Map   MapConfig
	Grid  sweep.Grid

	Format   string
	Output   artifact.Config
	LogLevel string
}

// CurveConfig holds distance curve settings.
type CurveConfig struct {
	MaxD float64
	Step float64
}

// MapConfig holds deviation map settings.
type MapConfig struct {
	Distances      []float64
	PixelsPerMeter float64
}

// key, flag name, default, usage
var (
	stringFlags = []struct{ key, flag, def, usage string }{
		{"mode", "mode", ModeCurve, "run mode: curve or map"},
		{"backend", "backend", "auto", "sample block backend: auto, serial, parallel"},
		{"seed", "seed", "", "seed for reproducible estimates (empty: random)"},
		{"format", "format", "png", "curve plot format: png, svg, pdf"},
		{"output.kind", "sink", artifact.KindLocal, "artifact sink: local, s3, minio"},
		{"output.dir", "out", "out", "output directory of the local sink"},
		{"output.bucket", "bucket", "", "bucket of the s3 and minio sinks"},
		{"output.endpoint", "endpoint", "", "S3-compatible endpoint (host:port)"},
		{"output.region", "region", "", "bucket region"},
		{"output.access_key", "access-key", "", "object storage access key"},
		{"output.secret_key", "secret-key", "", "object storage secret key"},
		{"output.run_id", "run-id", "", "artifact prefix (empty: random UUID)"},
		{"log.level", "log-level", "info", "log level: debug, info, warn, error"},
	}
	intFlags = []struct {
		key, flag string
		def       int
		usage     string
	}{
		{"workers", "workers", 0, "block workers (0: backend default)"},
		{"pixel_workers", "pixel-workers", 0, "map pixel workers (0: GOMAXPROCS)"},
		{"block_size", "block-size", mc.DefaultBlockSize, "samples per block"},
		{"plane_samples", "plane-samples", sweep.DefaultPlaneSamples, "samples per plane estimate"},
		{"point_samples", "point-samples", sweep.DefaultPointSamples, "samples per point estimate"},
	}
	floatFlags = []struct {
		key, flag string
		def       float64
		usage     string
	}{
		{"curve.max_d", "max-d", 10, "largest source separation of a curve, m"},
		{"curve.step", "step", 0.01, "separation step of a curve, m"},
		{"map.pixels_per_meter", "ppm", 10, "map resolution, pixels per meter"},
	}
	boolFlags = []struct {
		key, flag string
		def       bool
		usage     string
	}{
		{"correlated", "correlated", false, "reuse one sample stream for every seeded estimate"},
		{"output.ssl", "ssl", false, "use TLS for object storage"},
	}
	listFlags = []struct {
		key, flag string
		def       []string
		usage     string
	}{
		{"map.distances", "distances", []string{"0.3"}, "map source separations, m"},
		{"grid.bands", "bands", rangeStrings(bandRanges(sweep.DefaultGrid().Bands)), "frequency bands lo:hi, Hz"},
		{"grid.x", "x", rangeStrings(sweep.DefaultGrid().XRanges), "x windows lo:hi, m"},
		{"grid.y", "y", rangeStrings(sweep.DefaultGrid().YRanges), "y windows lo:hi, m"},
	}
)

// RegisterFlags adds every setting plus --config to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (toml, yaml or json)")
	for _, f := range stringFlags {
		fs.String(f.flag, f.def, f.usage)
	}
	for _, f := range intFlags {
		fs.Int(f.flag, f.def, f.usage)
	}
	for _, f := range floatFlags {
		fs.Float64(f.flag, f.def, f.usage)
	}
	for _, f := range boolFlags {
		fs.Bool(f.flag, f.def, f.usage)
	}
	for _, f := range listFlags {
		fs.StringSlice(f.flag, f.def, f.usage)
	}
}

// Load resolves the settings for a parsed flag set prepared by
// RegisterFlags, and validates them.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for _, f := range stringFlags {
		v.SetDefault(f.key, f.def)
	}
	for _, f := range intFlags {
		v.SetDefault(f.key, f.def)
	}
	for _, f := range floatFlags {
		v.SetDefault(f.key, f.def)
	}
	for _, f := range boolFlags {
		v.SetDefault(f.key, f.def)
	}
	for _, f := range listFlags {
		v.SetDefault(f.key, f.def)
	}

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if err := bindFlags(v, fs); err != nil {
		return nil, err
	}

	cfg, err := fromViper(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	bind := func(key, name string) error {
		flag := fs.Lookup(name)
		if flag == nil {
			return fmt.Errorf("config: flag --%s not registered", name)
		}
		return v.BindPFlag(key, flag)
	}

	for _, f := range stringFlags {
		if err := bind(f.key, f.flag); err != nil {
			return err
		}
	}
	for _, f := range intFlags {
		if err := bind(f.key, f.flag); err != nil {
			return err
		}
	}
	for _, f := range floatFlags {
		if err := bind(f.key, f.flag); err != nil {
			return err
		}
	}
	for _, f := range boolFlags {
		if err := bind(f.key, f.flag); err != nil {
			return err
		}
	}
	for _, f := range listFlags {
		if err := bind(f.key, f.flag); err != nil {
			return err
		}
	}
	return nil
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Mode:         strings.ToLower(v.GetString("mode")),
		Backend:      v.GetString("backend"),
		Workers:      v.GetInt("workers"),
		PixelWorkers: v.GetInt("pixel_workers"),
		BlockSize:    v.GetInt("block_size"),
		Correlated:   v.GetBool("correlated"),
		PlaneSamples: v.GetInt("plane_samples"),
		PointSamples: v.GetInt("point_samples"),
		Curve: CurveConfig{
			MaxD: v.GetFloat64("curve.max_d"),
			Step: v.GetFloat64("curve.step"),
		},
		Format:   strings.ToLower(v.GetString("format")),
		LogLevel: v.GetString("log.level"),
		Output: artifact.Config{
			Kind:      v.GetString("output.kind"),
			Dir:       v.GetString("output.dir"),
			Bucket:    v.GetString("output.bucket"),
			Endpoint:  v.GetString("output.endpoint"),
			Region:    v.GetString("output.region"),
			AccessKey: v.GetString("output.access_key"),
			SecretKey: v.GetString("output.secret_key"),
			RunID:     v.GetString("output.run_id"),
			UseSSL:    v.GetBool("output.ssl"),
		},
	}
	cfg.Map.PixelsPerMeter = v.GetFloat64("map.pixels_per_meter")

	if s := strings.TrimSpace(v.GetString("seed")); s != "" {
		seed, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: seed %q: %w", ErrInvalid, s, err)
		}
		cfg.Seed, cfg.Seeded = seed, true
	}

	for _, s := range splitList(v.GetStringSlice("map.distances")) {
		d, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: map distance %q: %w", ErrInvalid, s, err)
		}
		cfg.Map.Distances = append(cfg.Map.Distances, d)
	}

	bands, err := parseRanges(v.GetStringSlice("grid.bands"))
	if err != nil {
		return nil, fmt.Errorf("%w: bands: %w", ErrInvalid, err)
	}
	for _, b := range bands {
		cfg.Grid.Bands = append(cfg.Grid.Bands, field.Band(b))
	}
	if cfg.Grid.XRanges, err = parseRanges(v.GetStringSlice("grid.x")); err != nil {
		return nil, fmt.Errorf("%w: x windows: %w", ErrInvalid, err)
	}
	if cfg.Grid.YRanges, err = parseRanges(v.GetStringSlice("grid.y")); err != nil {
		return nil, fmt.Errorf("%w: y windows: %w", ErrInvalid, err)
	}

	return cfg, nil
}

// Validate checks value ranges. Every error wraps ErrInvalid.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeCurve, ModeMap:
	default:
		return fmt.Errorf("%w: mode %q", ErrInvalid, c.Mode)
	}
	switch c.Format {
	case "png", "svg", "pdf":
	default:
		return fmt.Errorf("%w: format %q", ErrInvalid, c.Format)
	}

	if c.Workers < 0 || c.PixelWorkers < 0 {
		return fmt.Errorf("%w: worker counts must be non-negative", ErrInvalid)
	}
	if c.BlockSize <= 0 || c.PlaneSamples <= 0 || c.PointSamples <= 0 {
		return fmt.Errorf("%w: block size and sample counts must be positive", ErrInvalid)
	}

	if c.Mode == ModeCurve && !(c.Curve.Step > 0 && c.Curve.MaxD > c.Curve.Step) {
		return fmt.Errorf("%w: curve needs 0 < step < max-d", ErrInvalid)
	}
	if c.Mode == ModeMap {
		if !(c.Map.PixelsPerMeter > 0) {
			return fmt.Errorf("%w: pixels per meter must be positive", ErrInvalid)
		}
		if len(c.Map.Distances) == 0 {
			return fmt.Errorf("%w: no map distances", ErrInvalid)
		}
		for _, d := range c.Map.Distances {
			if !(d >= 0) {
				return fmt.Errorf("%w: map distance %g", ErrInvalid, d)
			}
		}
	}

	if len(c.Grid.Bands) == 0 || len(c.Grid.XRanges) == 0 || len(c.Grid.YRanges) == 0 {
		return fmt.Errorf("%w: grid needs at least one band, x and y window", ErrInvalid)
	}
	for _, b := range c.Grid.Bands {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}
	for _, r := range append(append([]mc.Interval{}, c.Grid.XRanges...), c.Grid.YRanges...) {
		if !(r.Hi > r.Lo) {
			return fmt.Errorf("%w: window [%g, %g] is empty", ErrInvalid, r.Lo, r.Hi)
		}
	}
	return nil
}

// parseRanges parses "lo:hi" items.
func parseRanges(items []string) ([]mc.Interval, error) {
	var out []mc.Interval
	for _, s := range splitList(items) {
		lo, hi, ok := strings.Cut(s, ":")
		if !ok {
			return nil, fmt.Errorf("range %q is not lo:hi", s)
		}
		l, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
		if err != nil {
			return nil, fmt.Errorf("range %q: %w", s, err)
		}
		h, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
		if err != nil {
			return nil, fmt.Errorf("range %q: %w", s, err)
		}
		out = append(out, mc.Interval{Lo: l, Hi: h})
	}
	return out, nil
}

// splitList flattens comma-separated items, as environment variables carry
// lists in a single string.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, s := range strings.Split(item, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func rangeStrings(rs []mc.Interval) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = strconv.FormatFloat(r.Lo, 'f', -1, 64) + ":" + strconv.FormatFloat(r.Hi, 'f', -1, 64)
	}
	return out
}

func bandRanges(bands []field.Band) []mc.Interval {
	out := make([]mc.Interval, len(bands))
	for i, b := range bands {
		out[i] = mc.Interval{Lo: b.Lo, Hi: b.Hi}
	}
	return out
}
