package motive

import (
	"math"
	"strconv"
	"strings"
)

// ConversionContext supplies the geometry a single conversion call needs.
// Built fresh per call (usually via Element.Context); never cached beyond
// the ConversionCache TTL window.
type ConversionContext struct {
	ViewportWidth  float64
	ViewportHeight float64
	ElementWidth   float64
	ElementHeight  float64
	ParentWidth    float64
	ParentHeight   float64
	FontSize       float64 // element font size; 0 falls back to defaultFontSize
	RootFontSize   float64 // root font size; 0 falls back to defaultFontSize
}

// defaultFontSize is the fallback for em/rem when the context has no font
// information (the browser default).
const defaultFontSize = 16

// Fixed physical ratios for absolute units, px per unit.
const (
	pxPerPoint = 96.0 / 72.0
	pxPerPica  = 16.0
	pxPerInch  = 96.0
	pxPerCm    = 96.0 / 2.54
	pxPerMm    = 96.0 / 25.4
	pxPerQ     = 96.0 / 101.6 // quarter-millimeter
)

// UnitCategory classifies a known unit.
type UnitCategory uint8

const (
	UnitAbsolute UnitCategory = iota // px, pt, pc, in, cm, mm, q
	UnitRelative                     // em, rem, %
	UnitViewport                     // vw, vh, vmin, vmax
	UnitAngular                      // deg, rad, grad, turn
	UnitTime                         // s, ms
	UnitUnknown                      // degrades to px with a warning
)

// unitCategories maps every known unit suffix to its category.
var unitCategories = map[string]UnitCategory{
	"px": UnitAbsolute, "pt": UnitAbsolute, "pc": UnitAbsolute,
	"in": UnitAbsolute, "cm": UnitAbsolute, "mm": UnitAbsolute, "q": UnitAbsolute,
	"em": UnitRelative, "rem": UnitRelative, "%": UnitRelative,
	"vw": UnitViewport, "vh": UnitViewport, "vmin": UnitViewport, "vmax": UnitViewport,
	"deg": UnitAngular, "rad": UnitAngular, "grad": UnitAngular, "turn": UnitAngular,
	"s": UnitTime, "ms": UnitTime,
}

// ValueKind tags a parsed value.
type ValueKind uint8

const (
	ValueSimple     ValueKind = iota // number + unit
	ValueCalc                        // calc() expression, evaluated lazily
	ValueUnresolved                  // unparseable; converts to 0
)

// Value is the parsed form of a CSS-like value string.
type Value struct {
	Kind ValueKind

	// Simple fields.
	Number float64
	Unit   string // lowercase suffix, "" for a bare number

	// Calc field: the expression body without the calc( ) wrapper.
	Expr string
}

// ParseValue parses a raw value string into its tagged form. Parsing never
// fails hard: anything unrecognizable comes back as ValueUnresolved, which
// converts to 0 with a warning.
func ParseValue(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Value{Kind: ValueUnresolved}
	}

	if body, ok := calcBody(s); ok {
		return Value{Kind: ValueCalc, Expr: body}
	}

	num, unit, ok := splitNumberUnit(s)
	if !ok {
		return Value{Kind: ValueUnresolved}
	}
	return Value{Kind: ValueSimple, Number: num, Unit: unit}
}

// calcBody strips a calc( ... ) wrapper, returning the inner expression.
func calcBody(s string) (string, bool) {
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "calc(") || !strings.HasSuffix(s, ")") {
		return "", false
	}
	return s[len("calc(") : len(s)-1], true
}

// splitNumberUnit splits a simple value into its numeric literal and unit
// suffix. The split point is the first rune that cannot continue a number.
func splitNumberUnit(s string) (float64, string, bool) {
	i := 0
	for i < len(s) {
		c := s[i]
		if c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+' || c == 'e' || c == 'E' {
			// 'e' only continues a number when followed by a digit or sign
			// ("2em" must split as 2 + "em", not swallow the 'e').
			if c == 'e' || c == 'E' {
				if i+1 >= len(s) || !isExponentStart(s[i+1]) {
					break
				}
			}
			// '-' and '+' only lead the literal or follow an exponent.
			if (c == '-' || c == '+') && i > 0 && s[i-1] != 'e' && s[i-1] != 'E' {
				break
			}
			i++
			continue
		}
		break
	}
	num, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, "", false
	}
	return num, strings.ToLower(strings.TrimSpace(s[i:])), true
}

func isExponentStart(c byte) bool {
	return c >= '0' && c <= '9' || c == '-' || c == '+'
}

// ConvertToPixels converts a raw value string to a canonical pixel number
// for the given property and context. Unknown units degrade to pixels with
// a warning; calc() arithmetic errors degrade to 0. This function never
// panics and never returns Inf/NaN.
func ConvertToPixels(raw string, ctx ConversionContext, property string) float64 {
	v := ParseValue(raw)
	switch v.Kind {
	case ValueSimple:
		return convertSimple(v.Number, v.Unit, ctx, property)
	case ValueCalc:
		px, err := evalCalcBody(v.Expr, ctx, property)
		if err != nil {
			warnf("calc %q: %v (degrading to 0)", raw, err)
			return 0
		}
		return px
	default:
		warnf("unparseable value %q (degrading to 0)", raw)
		return 0
	}
}

// convertSimple converts number+unit to pixels, dispatching on unit category.
func convertSimple(num float64, unit string, ctx ConversionContext, property string) float64 {
	if unit == "" || unit == "px" {
		return num
	}
	switch unitCategories[unit] {
	case UnitAbsolute:
		switch unit {
		case "pt":
			return num * pxPerPoint
		case "pc":
			return num * pxPerPica
		case "in":
			return num * pxPerInch
		case "cm":
			return num * pxPerCm
		case "mm":
			return num * pxPerMm
		case "q":
			return num * pxPerQ
		}

	case UnitViewport:
		switch unit {
		case "vw":
			return num / 100 * ctx.ViewportWidth
		case "vh":
			return num / 100 * ctx.ViewportHeight
		case "vmin":
			return num / 100 * math.Min(ctx.ViewportWidth, ctx.ViewportHeight)
		case "vmax":
			return num / 100 * math.Max(ctx.ViewportWidth, ctx.ViewportHeight)
		}

	case UnitRelative:
		switch unit {
		case "em":
			return num * fontSizeOr(ctx.FontSize)
		case "rem":
			return num * fontSizeOr(ctx.RootFontSize)
		case "%":
			return num / 100 * percentBasis(ctx, property)
		}

	case UnitAngular:
		// Angular values normalize to degrees; the numeric result stands in
		// for pixels so rotation tracks flow through the same pipeline.
		switch unit {
		case "deg":
			return num
		case "rad":
			return num * 180 / math.Pi
		case "grad":
			return num * 0.9
		case "turn":
			return num * 360
		}

	case UnitTime:
		// Time normalizes to milliseconds.
		if unit == "s" {
			return num * 1000
		}
		return num
	}

	warnf("unknown unit %q, treating as px", unit)
	return num
}

// percentBasis selects the length a percentage scales against. Property-
// aware: transform-adjacent properties resolve against the element's own
// size, size/position properties against the parent's, falling back to
// viewport width when no parent dimension is available.
func percentBasis(ctx ConversionContext, property string) float64 {
	switch property {
	case "translateX", "x":
		if ctx.ElementWidth > 0 {
			return ctx.ElementWidth
		}
	case "translateY", "y":
		if ctx.ElementHeight > 0 {
			return ctx.ElementHeight
		}
	case "height", "top", "bottom":
		if ctx.ParentHeight > 0 {
			return ctx.ParentHeight
		}
	default:
		// width, left, right, margins, and anything unrecognized scale
		// against the parent width.
		if ctx.ParentWidth > 0 {
			return ctx.ParentWidth
		}
	}
	return ctx.ViewportWidth
}

func fontSizeOr(size float64) float64 {
	if size > 0 {
		return size
	}
	return defaultFontSize
}
