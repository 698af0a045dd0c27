// Package texture measures how grainy a deviation map is.
//
// Monte Carlo noise in a map shows up as pixel-to-pixel jitter, which lives
// in the upper half of each row's spectrum, while the interference pattern
// itself varies slowly across the plane. HighBandRatio reports the share of
// row-spectrum power above half Nyquist.
package texture
