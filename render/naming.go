package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-interference/sweep"
)

// num formats v in its shortest exact form: 16, 0.3, -10.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CurveTitle returns the plot title of a distance curve.
func CurveTitle(spec sweep.CurveSpec) string {
	return fmt.Sprintf("f ∈ [%s, %s]; x ∈ [%s, %s]; y ∈ [%s, %s]; Step size = %sm",
		num(spec.Band.Lo), num(spec.Band.Hi),
		num(spec.X.Lo), num(spec.X.Hi),
		num(spec.Y.Lo), num(spec.Y.Hi),
		num(spec.Step))
}

// CurveName returns the extension-less file name of a distance curve.
func CurveName(spec sweep.CurveSpec) string {
	name := fmt.Sprintf("plot-F%s:%sHz-X%s:%sm-Y%s:%sm",
		num(spec.Band.Lo), num(spec.Band.Hi),
		num(spec.X.Lo), num(spec.X.Hi),
		num(spec.Y.Lo), num(spec.Y.Hi))
	return strings.ReplaceAll(name, ".", ",")
}

// MapName returns the extension-less file name of a deviation map.
func MapName(spec sweep.MapSpec) string {
	name := fmt.Sprintf("plane-F%s:%sHz-D:%sm-X%s:%sm-Y%s:%sm",
		num(spec.Band.Lo), num(spec.Band.Hi),
		num(spec.D),
		num(spec.X.Lo), num(spec.X.Hi),
		num(spec.Y.Lo), num(spec.Y.Hi))
	return strings.ReplaceAll(name, ".", ",")
}
