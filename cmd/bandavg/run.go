package main

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-interference/artifact"
	"github.com/cwbudde/algo-interference/integrate/mc"
	"github.com/cwbudde/algo-interference/internal/config"
	"github.com/cwbudde/algo-interference/measure/texture"
	"github.com/cwbudde/algo-interference/render"
	"github.com/cwbudde/algo-interference/sweep"
)

const manifestName = "manifest.toml"

var contentTypes = map[string]string{
	"png": "image/png",
	"svg": "image/svg+xml",
	"pdf": "application/pdf",
}

// job carries what every window of a run shares.
type job struct {
	cfg      *config.Config
	est      *sweep.Estimator
	sink     artifact.Sink
	manifest *render.Manifest
	log      zerolog.Logger
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	backend := cfg.Backend
	if cfg.Mode == config.ModeMap && (backend == "" || backend == "auto") {
		// pixels already run in parallel
		backend = "serial"
	}

	exec, err := mc.NewExec(backend, cfg.Workers)
	if err != nil {
		return err
	}
	integ := mc.New(exec, mc.WithBlockSize(cfg.BlockSize))

	opts := []sweep.Option{
		sweep.WithPlaneSamples(cfg.PlaneSamples),
		sweep.WithPointSamples(cfg.PointSamples),
		sweep.WithWorkers(cfg.PixelWorkers),
		sweep.WithCorrelatedNoise(cfg.Correlated),
		sweep.WithLogger(logger),
	}
	if cfg.Seeded {
		opts = append(opts, sweep.WithSeed(cfg.Seed))
	}
	est := sweep.NewEstimator(integ, opts...)

	sink, err := artifact.New(ctx, cfg.Output)
	if err != nil {
		return err
	}

	manifest := &render.Manifest{
		RunID:        sink.RunID(),
		Created:      time.Now().UTC(),
		Backend:      exec.Backend(),
		SIMD:         exec.SIMD(),
		Seeded:       cfg.Seeded,
		Correlated:   cfg.Correlated,
		PlaneSamples: cfg.PlaneSamples,
		PointSamples: cfg.PointSamples,
	}
	if cfg.Seeded {
		manifest.Seed = strconv.FormatUint(cfg.Seed, 10)
	}

	j := &job{cfg: cfg, est: est, sink: sink, manifest: manifest, log: logger}

	windows := cfg.Grid.Windows()
	logger.Info().
		Str("mode", cfg.Mode).
		Str("run", sink.RunID()).
		Str("backend", exec.Backend()).
		Int("workers", exec.Workers()).
		Str("simd", exec.SIMD()).
		Int("windows", len(windows)).
		Msg("run started")

	start := time.Now()
	for _, w := range windows {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch cfg.Mode {
		case config.ModeCurve:
			err = j.curve(ctx, w)
		case config.ModeMap:
			for _, d := range cfg.Map.Distances {
				if err = j.planeMap(ctx, w, d); err != nil {
					break
				}
			}
		}
		if err != nil {
			return err
		}
	}

	if err := j.writeManifest(ctx); err != nil {
		return err
	}

	logger.Info().
		Int("artifacts", len(manifest.Artifacts)).
		Dur("elapsed", time.Since(start)).
		Msg("run finished")
	return nil
}

func (j *job) curve(ctx context.Context, w sweep.Window) error {
	spec := sweep.CurveSpec{
		MaxD: j.cfg.Curve.MaxD,
		Step: j.cfg.Curve.Step,
		Band: w.Band,
		X:    w.X,
		Y:    w.Y,
	}

	curve, err := j.est.DistanceCurveContext(ctx, spec)
	if err != nil {
		return err
	}
	for i, v := range curve.Deviation {
		if math.IsNaN(v) {
			j.log.Warn().Float64("d", curve.D[i]).Msg("estimate is NaN")
		}
	}

	var buf bytes.Buffer
	if err := render.WriteCurve(&buf, curve, j.cfg.Format); err != nil {
		return err
	}

	name := render.CurveName(spec) + "." + j.cfg.Format
	return j.put(ctx, name, buf.Bytes(), j.cfg.Format, render.Artifact{
		Kind: render.KindCurve,
		Band: [2]float64{w.Band.Lo, w.Band.Hi},
		X:    [2]float64{w.X.Lo, w.X.Hi},
		Y:    [2]float64{w.Y.Lo, w.Y.Hi},
		Step: spec.Step,
		NaN:  curve.NaNCount(),
	})
}

func (j *job) planeMap(ctx context.Context, w sweep.Window, d float64) error {
	spec := sweep.MapSpec{
		D:              d,
		Band:           w.Band,
		X:              w.X,
		Y:              w.Y,
		PixelsPerMeter: j.cfg.Map.PixelsPerMeter,
	}

	m, err := j.est.PlaneMapContext(ctx, spec)
	if err != nil {
		return err
	}
	for r := range m.Height {
		for c, v := range m.Row(r) {
			if math.IsNaN(v) {
				j.log.Warn().Int("row", r).Int("col", c).Float64("d", d).Msg("estimate is NaN")
			}
		}
	}

	ratio, err := texture.HighBandRatio(m.Values, m.Width, m.Height)
	if err != nil {
		return err
	}
	j.log.Info().
		Float64("d", d).
		Floats64("band", []float64{w.Band.Lo, w.Band.Hi}).
		Float64("high_band_ratio", ratio).
		Msg("map texture")

	var buf bytes.Buffer
	if err := render.WriteHeatmap(&buf, m); err != nil {
		return err
	}

	return j.put(ctx, render.MapName(spec)+".png", buf.Bytes(), "png", render.Artifact{
		Kind:    render.KindMap,
		Band:    [2]float64{w.Band.Lo, w.Band.Hi},
		X:       [2]float64{w.X.Lo, w.X.Hi},
		Y:       [2]float64{w.Y.Lo, w.Y.Hi},
		D:       d,
		Texture: ratio,
		NaN:     m.NaNCount(),
	})
}

func (j *job) put(ctx context.Context, name string, data []byte, format string, a render.Artifact) error {
	loc, err := j.sink.Put(ctx, name, data, contentTypes[format])
	if err != nil {
		return err
	}
	a.Key = name
	j.manifest.Add(a)
	j.log.Info().Str("location", loc).Msg("artifact written")
	return nil
}

func (j *job) writeManifest(ctx context.Context) error {
	var buf bytes.Buffer
	if err := j.manifest.Encode(&buf); err != nil {
		return err
	}
	if _, err := j.sink.Put(ctx, manifestName, buf.Bytes(), "application/toml"); err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	return nil
}
