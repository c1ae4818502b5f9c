// Package numeric performs the arithmetic behind Int/Float/Numeric binary
// operators through an arbitrary-precision decimal context, the way the
// teacher's internal/core/adt/binop.go routes numeric arithmetic through
// a shared apd.Context rather than raw float64 math, so chained
// operations on values like "2.1pt + 0.9pt" do not accumulate binary
// floating point error before being rounded back for display.
package numeric

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

var apdCtx apd.Context

func init() {
	apdCtx = apd.BaseContext
	apdCtx.Precision = 34
}

func fromFloat(f float64) *apd.Decimal {
	d, _, err := apd.NewFromString(fmt.Sprintf("%g", f))
	if err != nil {
		// fmt's own %g output is always a valid decimal literal.
		panic(fmt.Sprintf("numeric: unreachable: %g is not a valid decimal: %v", f, err))
	}
	return d
}

func binFloat(a, b float64, fn func(z, x, y *apd.Decimal) (apd.Condition, error)) (float64, error) {
	var d apd.Decimal
	cond, err := fn(&d, fromFloat(a), fromFloat(b))
	if err != nil {
		return 0, err
	}
	if cond.DivisionByZero() {
		return 0, fmt.Errorf("division by zero")
	}
	f, err := d.Float64()
	if err != nil {
		return 0, err
	}
	return f, nil
}

// AddFloat, SubFloat, MulFloat operate on the float64 payload shared by
// Float and Numeric values.
func AddFloat(a, b float64) float64 {
	f, _ := binFloat(a, b, apdCtx.Add)
	return f
}

func SubFloat(a, b float64) float64 {
	f, _ := binFloat(a, b, apdCtx.Sub)
	return f
}

func MulFloat(a, b float64) float64 {
	f, _ := binFloat(a, b, apdCtx.Mul)
	return f
}

func DivFloat(a, b float64) (float64, error) {
	return binFloat(a, b, apdCtx.Quo)
}

// AddInt, SubInt, MulInt operate on exact integers via the same decimal
// context; overflow beyond the configured precision is not expected for
// the magnitudes a document evaluator deals in.
func AddInt(a, b int64) int64 { return intOp(a, b, apdCtx.Add) }
func SubInt(a, b int64) int64 { return intOp(a, b, apdCtx.Sub) }
func MulInt(a, b int64) int64 { return intOp(a, b, apdCtx.Mul) }

func intOp(a, b int64, fn func(z, x, y *apd.Decimal) (apd.Condition, error)) int64 {
	var d apd.Decimal
	_, _ = fn(&d, apd.New(a, 0), apd.New(b, 0))
	i, _ := d.Int64()
	return i
}

// DivIntExact divides two integers, succeeding only when the result is
// itself an integer (spec.md integer division semantics: non-exact
// integer division promotes to Float at the call site, not here).
func DivIntExact(a, b int64) (int64, bool) {
	if b == 0 {
		return 0, false
	}
	if a%b != 0 {
		return 0, false
	}
	return a / b, true
}

// CompareFloat returns -1, 0, or 1 the way apd.Decimal.Cmp does, routing
// comparison through the same decimal representation as arithmetic so
// "0.1 + 0.2 == 0.3"-style float surprises do not appear in user-visible
// comparisons.
func CompareFloat(a, b float64) int {
	return fromFloat(a).Cmp(fromFloat(b))
}
