package nbt

import (
	"math"
	"strconv"
	"strings"
)

const (
	lineSep = "\r\n"
	indent  = "   "
)

// header returns the `TAG_Kind("name"): ` prefix of the debug output, the
// name part is omitted for unnamed tags.
func header(t Type, name string) string {
	if name == "" {
		return t.String() + ": "
	}
	return t.String() + `("` + name + `"): `
}

// writeChild appends the nested rendering of t indented by one level.
func writeChild(sb *strings.Builder, t Tag) {
	sb.WriteString(indent)
	sb.WriteString(strings.ReplaceAll(t.String(), lineSep, lineSep+indent))
	sb.WriteString(lineSep)
}

// formatFloat renders f the way JVM tools do: plain notation with at least
// one fractional digit for 1e-3 <= |f| < 1e7, scientific otherwise.
func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	if abs := math.Abs(f); f == 0 || (abs >= 1e-3 && abs < 1e7) {
		s := strconv.FormatFloat(f, 'f', -1, bitSize)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}
	mant, exp, _ := strings.Cut(strconv.FormatFloat(f, 'E', -1, bitSize), "E")
	if !strings.Contains(mant, ".") {
		mant += ".0"
	}
	neg := strings.HasPrefix(exp, "-")
	exp = strings.TrimLeft(exp, "+-0")
	if neg {
		exp = "-" + exp
	}
	return mant + "E" + exp
}
