package motive

import "strings"

// Cross-unit interpolation: both endpoints resolve to pixels independently
// and the pixel values are lerped. One documented special case keeps more
// structure: a pure percentage on one side against a calc() mixing
// percentages and pixels on the other interpolates the percent and pixel
// components separately, so the result stays responsive to container size
// changes that happen after the interpolation was computed.

// Mixed is a value of the form "P% + Xpx" kept in component form.
type Mixed struct {
	Percent float64
	Pixels  float64
}

// ToPixels resolves the mixed value against a context for the given property.
func (m Mixed) ToPixels(ctx ConversionContext, property string) float64 {
	return m.Percent/100*percentBasis(ctx, property) + m.Pixels
}

// InterpolateUnits resolves from and to (each simple or calc) to pixels and
// linearly interpolates. Arithmetic errors on one endpoint degrade to the
// other endpoint's value when progress is past the midpoint toward it, or
// to 0 when both endpoints fail.
func InterpolateUnits(from, to string, progress float64, ctx ConversionContext, property string) float64 {
	if m, ok := InterpolateMixed(from, to, progress); ok {
		return m.ToPixels(ctx, property)
	}

	fromPx, fromErr := resolveEndpoint(from, ctx, property)
	toPx, toErr := resolveEndpoint(to, ctx, property)

	switch {
	case fromErr != nil && toErr != nil:
		warnf("interpolate %q -> %q: both endpoints failed (%v; %v)", from, to, fromErr, toErr)
		return 0
	case fromErr != nil:
		warnf("interpolate %q -> %q: from endpoint failed: %v", from, to, fromErr)
		if progress >= 0.5 {
			return toPx
		}
		return 0
	case toErr != nil:
		warnf("interpolate %q -> %q: to endpoint failed: %v", from, to, toErr)
		if progress < 0.5 {
			return fromPx
		}
		return 0
	}

	return fromPx + (toPx-fromPx)*progress
}

// InterpolateMixed handles the percent-vs-calc special case: when one side
// is a pure percentage and the other a calc() combining only percentage and
// pixel terms with + or -, the components interpolate separately instead of
// reducing early to pixels. Returns ok=false when the pair doesn't match
// the pattern, in which case callers fall back to pixel-space lerp.
func InterpolateMixed(from, to string, progress float64) (Mixed, bool) {
	fromMixed, fromOK := asMixed(from)
	toMixed, toOK := asMixed(to)
	if !fromOK || !toOK {
		return Mixed{}, false
	}
	// At least one side must be a real calc; two plain percentages are
	// served fine by the ordinary path.
	if !isCalcString(from) && !isCalcString(to) {
		return Mixed{}, false
	}
	return Mixed{
		Percent: fromMixed.Percent + (toMixed.Percent-fromMixed.Percent)*progress,
		Pixels:  fromMixed.Pixels + (toMixed.Pixels-fromMixed.Pixels)*progress,
	}, true
}

func isCalcString(s string) bool {
	_, ok := calcBody(strings.TrimSpace(s))
	return ok
}

// asMixed decomposes a value into percent and pixel components. Pure
// percentages and pure pixel values qualify; calc bodies qualify when they
// are a +/- combination of percent and px terms only.
func asMixed(raw string) (Mixed, bool) {
	v := ParseValue(raw)
	switch v.Kind {
	case ValueSimple:
		switch v.Unit {
		case "%":
			return Mixed{Percent: v.Number}, true
		case "", "px":
			return Mixed{Pixels: v.Number}, true
		}
		return Mixed{}, false
	case ValueCalc:
		return calcAsMixed(v.Expr)
	default:
		return Mixed{}, false
	}
}

// calcAsMixed folds a flat +/- calc body into percent and pixel components.
// Any parenthesis, * or /, or non-%/px unit disqualifies the expression.
func calcAsMixed(body string) (Mixed, bool) {
	tokens, err := tokenizeCalc(body)
	if err != nil {
		return Mixed{}, false
	}

	var m Mixed
	sign := 1.0
	expectValue := true
	for _, tok := range tokens {
		switch tok.kind {
		case tokenValue:
			if !expectValue {
				return Mixed{}, false
			}
			num, unit, ok := splitNumberUnit(tok.text)
			if !ok {
				return Mixed{}, false
			}
			switch unit {
			case "%":
				m.Percent += sign * num
			case "", "px":
				m.Pixels += sign * num
			default:
				return Mixed{}, false
			}
			expectValue = false
		case tokenOperator:
			if expectValue {
				return Mixed{}, false
			}
			switch tok.text {
			case "+":
				sign = 1
			case "-":
				sign = -1
			default:
				return Mixed{}, false
			}
			expectValue = true
		default:
			return Mixed{}, false
		}
	}
	if expectValue {
		return Mixed{}, false
	}
	return m, true
}

// resolveEndpoint converts one interpolation endpoint to pixels, surfacing
// calc errors to the caller instead of degrading silently.
func resolveEndpoint(raw string, ctx ConversionContext, property string) (float64, error) {
	v := ParseValue(raw)
	if v.Kind == ValueCalc {
		return evalCalcBody(v.Expr, ctx, property)
	}
	return ConvertToPixels(raw, ctx, property), nil
}
