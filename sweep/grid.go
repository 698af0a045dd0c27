package sweep

import (
	"github.com/cwbudde/algo-interference/field"
	"github.com/cwbudde/algo-interference/integrate/mc"
)

// Window is one band and spatial window of a grid sweep.
type Window struct {
	Band field.Band
	X, Y mc.Interval
}

// Grid is the cross product of bands, y-ranges and x-ranges.
type Grid struct {
	Bands   []field.Band
	XRanges []mc.Interval
	YRanges []mc.Interval
}

// DefaultGrid returns the bands and windows of the reference sweep.
func DefaultGrid() Grid {
	return Grid{
		Bands: []field.Band{
			{Lo: 16, Hi: 60},
			{Lo: 60, Hi: 250},
			{Lo: 250, Hi: 500},
			{Lo: 500, Hi: 2000},
			{Lo: 2000, Hi: 4000},
		},
		XRanges: []mc.Interval{
			{Lo: -1, Hi: 1}, {Lo: -3, Hi: 3}, {Lo: -5, Hi: 5}, {Lo: -10, Hi: 10},
			{Lo: 0, Hi: 1}, {Lo: 0, Hi: 3}, {Lo: 0, Hi: 5}, {Lo: 0, Hi: 10},
		},
		YRanges: []mc.Interval{
			{Lo: 0, Hi: 1}, {Lo: 0, Hi: 3}, {Lo: 0, Hi: 5}, {Lo: 0, Hi: 10},
		},
	}
}

// Windows enumerates the grid with the band outermost and the x-range
// innermost.
func (g Grid) Windows() []Window {
	out := make([]Window, 0, len(g.Bands)*len(g.YRanges)*len(g.XRanges))
	for _, band := range g.Bands {
		for _, y := range g.YRanges {
			for _, x := range g.XRanges {
				out = append(out, Window{Band: band, X: x, Y: y})
			}
		}
	}
	return out
}
