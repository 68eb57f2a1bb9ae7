package motive

import (
	"math"
	"strings"
	"testing"
)

// --- Evaluation ---

func TestEvaluateCalcBasics(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"calc(10px + 20px)", 30},
		{"calc(100px - 30px)", 70},
		{"calc(10px * 3)", 30},
		{"calc(100px / 4)", 25},
		{"calc(10px + 20px * 2)", 50},     // * binds tighter than +
		{"calc((10px + 20px) * 2)", 60},   // parens override precedence
		{"calc(100px - 20px - 30px)", 50}, // left-to-right
		{"calc(-10px + 30px)", 20},        // leading unary sign
		{"calc(10px + -5px)", 5},          // unary sign after operator
		{"10px + 5px", 15},                // wrapper optional
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := EvaluateCalcExpression(tt.expr, testCtx, "width")
			if err != nil {
				t.Fatalf("EvaluateCalcExpression(%q): %v", tt.expr, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("EvaluateCalcExpression(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvaluateCalcMixedUnits(t *testing.T) {
	// 50% of parent width (400) minus 20px.
	got, err := EvaluateCalcExpression("calc(50% - 20px)", testCtx, "width")
	if err != nil {
		t.Fatal(err)
	}
	if !closeTo(got, 180) {
		t.Errorf("calc(50%% - 20px) on 400px parent = %v, want 180", got)
	}

	// Consistency with the standalone conversion path.
	want := ConvertToPixels("50%", testCtx, "width") - 20
	if !closeTo(got, want) {
		t.Errorf("calc result %v differs from convert-then-subtract %v", got, want)
	}

	// Percentages inside calc stay property-aware.
	got, err = EvaluateCalcExpression("calc(50% + 10px)", testCtx, "translateX")
	if err != nil {
		t.Fatal(err)
	}
	if !closeTo(got, 110) { // 50% of element width 200 = 100
		t.Errorf("calc(50%% + 10px) on translateX = %v, want 110", got)
	}
}

func TestEvaluateCalcViewportAndFontUnits(t *testing.T) {
	got, err := EvaluateCalcExpression("calc(10vw + 1rem)", testCtx, "width")
	if err != nil {
		t.Fatal(err)
	}
	if !closeTo(got, 144) { // 128 + 16
		t.Errorf("calc(10vw + 1rem) = %v, want 144", got)
	}
}

func TestEvaluateCalcNested(t *testing.T) {
	got, err := EvaluateCalcExpression("calc((100px - (20px + 30px)) / 2)", testCtx, "width")
	if err != nil {
		t.Fatal(err)
	}
	if !closeTo(got, 25) {
		t.Errorf("nested calc = %v, want 25", got)
	}
}

// --- Errors ---

func TestEvaluateCalcDivisionByZero(t *testing.T) {
	got, err := EvaluateCalcExpression("calc(100px / 0)", testCtx, "width")
	if err == nil {
		t.Fatal("division by zero must be an error, not Inf")
	}
	if !strings.Contains(err.Error(), "division by zero") {
		t.Errorf("error = %v, want division by zero", err)
	}
	if math.IsInf(got, 0) || math.IsNaN(got) {
		t.Errorf("result = %v, must not be Inf/NaN", got)
	}
}

func TestEvaluateCalcMalformed(t *testing.T) {
	malformed := []string{
		"calc()",
		"calc(10px +)",
		"calc(+ 10px x)",
		"calc((10px + 5px)",
		"calc(10px + 5px))",
		"calc(10px 5px)",
		"calc(@)",
	}
	for _, expr := range malformed {
		t.Run(expr, func(t *testing.T) {
			if _, err := EvaluateCalcExpression(expr, testCtx, "width"); err == nil {
				t.Errorf("EvaluateCalcExpression(%q) should error", expr)
			}
		})
	}
}

func TestConvertToPixelsDegradesCalcErrorsToZero(t *testing.T) {
	// The conversion boundary catches calc errors and degrades to 0.
	if got := ConvertToPixels("calc(10px / 0)", testCtx, "width"); got != 0 {
		t.Errorf("degraded calc = %v, want 0", got)
	}
}

func TestEvaluateCalcUppercaseWrapper(t *testing.T) {
	got, err := EvaluateCalcExpression("CALC(10px + 5px)", testCtx, "width")
	if err != nil {
		t.Fatal(err)
	}
	if !closeTo(got, 15) {
		t.Errorf("uppercase wrapper = %v, want 15", got)
	}
}

func BenchmarkEvaluateCalc(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = EvaluateCalcExpression("calc(50% - 20px)", testCtx, "width")
	}
}
