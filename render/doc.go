// Package render turns sweep results into files: distance/deviation line
// plots, deviation heatmaps and the TOML manifest describing a run.
//
// File names follow the scheme
//
//	plot-F{lo}:{hi}Hz-X{x0}:{x1}m-Y{y0}:{y1}m
//	plane-F{lo}:{hi}Hz-D:{d}m-X{x0}:{x1}m-Y{y0}:{y1}m
//
// with every '.' replaced by ',' so that names never carry a second dot.
package render
