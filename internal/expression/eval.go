package expression

import (
	"context"
	"fmt"
	"math"
	"time"
)

// EvalContext is the asset and reference date an expression is scored for.
type EvalContext struct {
	Symbol string
	Date   time.Time
}

// MarketData supplies the metric functions. Implementations wrap
// ErrMissingData when the asset has no data for the requested dates.
type MarketData interface {
	Price(ctx context.Context, symbol string, date time.Time) (float64, error)
	PricePercentChange(ctx context.Context, symbol string, start, end time.Time) (float64, error)
	Stdev(ctx context.Context, symbol string, start, end time.Time) (float64, error)
	PbRatio(ctx context.Context, symbol string, date time.Time) (float64, error)
	PeRatio(ctx context.Context, symbol string, date time.Time) (float64, error)
	MarketCap(ctx context.Context, symbol string, date time.Time) (float64, error)
	Eps(ctx context.Context, symbol string, date time.Time) (float64, error)
}

// offset limits keep AddDate far from integer overflow
const (
	maxDaysOffset   = 366 * 500
	maxMonthsOffset = 12 * 500
	maxYearsOffset  = 500
)

type evaluator struct {
	ctx  context.Context
	ec   EvalContext
	data MarketData
	// lenient evaluation swallows arithmetic and data failures so every
	// metric call in the tree is reached
	lenient bool
}

// Evaluate scores root for one asset on one date. Division by zero, a
// non-finite intermediate value and missing market data are all errors.
func Evaluate(ctx context.Context, root Node, ec EvalContext, data MarketData) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if root.Type() != TypeNumber {
		return 0, fmt.Errorf("expression produces a %s, not a number", root.Type())
	}
	e := evaluator{ctx: ctx, ec: ec, data: data}
	return e.number(root)
}

// Visit walks every metric call root would make for ec without failing on
// arithmetic or data errors. It is used to learn which prices an
// expression needs before evaluating it for real.
func Visit(ctx context.Context, root Node, ec EvalContext, data MarketData) error {
	e := evaluator{ctx: ctx, ec: ec, data: data, lenient: true}
	_, err := e.number(root)
	return err
}

func (e evaluator) arithmetic(err error) (float64, error) {
	if e.lenient {
		return 0, nil
	}
	return 0, err
}

func finite(v float64, pos int, what string) error {
	if math.IsNaN(v) {
		return fmt.Errorf("%s at position %d produced NaN", what, pos)
	}
	if math.IsInf(v, 0) {
		return fmt.Errorf("%s at position %d produced infinity", what, pos)
	}
	return nil
}

func (e evaluator) number(n Node) (float64, error) {
	switch x := n.(type) {
	case *NumberLit:
		return x.Value, nil
	case *UnaryExpr:
		v, err := e.number(x.Operand)
		if err != nil {
			return 0, err
		}
		return -v, nil
	case *BinaryExpr:
		return e.binary(x)
	case *CallExpr:
		return e.metric(x)
	}
	return 0, fmt.Errorf("node at position %d is not a number", n.Pos())
}

func (e evaluator) binary(x *BinaryExpr) (float64, error) {
	l, err := e.number(x.Left)
	if err != nil {
		return 0, err
	}
	r, err := e.number(x.Right)
	if err != nil {
		return 0, err
	}

	var v float64
	switch x.Op {
	case OpAdd:
		v = l + r
	case OpSub:
		v = l - r
	case OpMul:
		v = l * r
	case OpDiv:
		if r == 0 {
			return e.arithmetic(fmt.Errorf("division by zero at position %d", x.At))
		}
		v = l / r
	default:
		return 0, fmt.Errorf("unknown operator '%c'", x.Op)
	}
	if err := finite(v, x.At, fmt.Sprintf("operator '%c'", x.Op)); err != nil {
		return e.arithmetic(err)
	}
	return v, nil
}

func (e evaluator) metric(x *CallExpr) (float64, error) {
	dates := make([]time.Time, len(x.Args))
	for i, a := range x.Args {
		d, err := e.date(a)
		if err != nil {
			return 0, err
		}
		dates[i] = d
	}

	var (
		v      float64
		err    error
		symbol = e.ec.Symbol
	)
	switch x.Func {
	case FuncPrice:
		v, err = e.data.Price(e.ctx, symbol, dates[0])
	case FuncPricePercentChange:
		v, err = e.data.PricePercentChange(e.ctx, symbol, dates[0], dates[1])
	case FuncStdev:
		v, err = e.data.Stdev(e.ctx, symbol, dates[0], dates[1])
	case FuncPbRatio:
		v, err = e.data.PbRatio(e.ctx, symbol, dates[0])
	case FuncPeRatio:
		v, err = e.data.PeRatio(e.ctx, symbol, dates[0])
	case FuncMarketCap:
		v, err = e.data.MarketCap(e.ctx, symbol, dates[0])
	case FuncEps:
		v, err = e.data.Eps(e.ctx, symbol, dates[0])
	default:
		return 0, fmt.Errorf("%s does not produce a number", x.Func)
	}
	if err != nil {
		if e.lenient {
			return 0, nil
		}
		return 0, fmt.Errorf("%s: %w", x.Func, err)
	}
	if err := finite(v, x.At, x.Func.String()); err != nil {
		return e.arithmetic(err)
	}
	return v, nil
}

// wholeNumber converts v to an int offset, rejecting fractions and values
// beyond limit in magnitude.
func wholeNumber(v float64, limit int, pos int, what string) (int, error) {
	if v != math.Trunc(v) || math.IsNaN(v) {
		return 0, fmt.Errorf("%s at position %d must be a whole number, got %g", what, pos, v)
	}
	if math.Abs(v) > float64(limit) {
		return 0, fmt.Errorf("%s at position %d is out of range: %g", what, pos, v)
	}
	return int(v), nil
}

func (e evaluator) date(n Node) (time.Time, error) {
	switch x := n.(type) {
	case *CurrentDate:
		return e.ec.Date, nil
	case *CallExpr:
		return e.dateCall(x)
	}
	return time.Time{}, fmt.Errorf("node at position %d is not a date", n.Pos())
}

func (e evaluator) dateCall(x *CallExpr) (time.Time, error) {
	if x.Func == FuncAddDate {
		base, err := e.date(x.Args[0])
		if err != nil {
			return time.Time{}, err
		}
		limits := []int{maxYearsOffset, maxMonthsOffset, maxDaysOffset}
		names := []string{"years", "months", "days"}
		offsets := make([]int, 3)
		for i := 0; i < 3; i++ {
			v, err := e.strict(x.Args[i+1])
			if err != nil {
				return time.Time{}, err
			}
			offsets[i], err = wholeNumber(v, limits[i], x.Args[i+1].Pos(), "addDate "+names[i])
			if err != nil {
				return time.Time{}, err
			}
		}
		return base.AddDate(offsets[0], offsets[1], offsets[2]), nil
	}

	var limit int
	switch x.Func {
	case FuncNDaysAgo:
		limit = maxDaysOffset
	case FuncNMonthsAgo:
		limit = maxMonthsOffset
	case FuncNYearsAgo:
		limit = maxYearsOffset
	default:
		return time.Time{}, fmt.Errorf("%s does not produce a date", x.Func)
	}

	v, err := e.strict(x.Args[0])
	if err != nil {
		return time.Time{}, err
	}
	n, err := wholeNumber(v, limit, x.Args[0].Pos(), x.Func.String())
	if err != nil {
		return time.Time{}, err
	}
	if n < 0 {
		return time.Time{}, fmt.Errorf("%s at position %d cannot look forward, got %d", x.Func, x.Args[0].Pos(), n)
	}

	switch x.Func {
	case FuncNDaysAgo:
		return e.ec.Date.AddDate(0, 0, -n), nil
	case FuncNMonthsAgo:
		return e.ec.Date.AddDate(0, -n, 0), nil
	default:
		return e.ec.Date.AddDate(-n, 0, 0), nil
	}
}

// strict evaluates date offsets. They decide which data is read, so they
// are never evaluated leniently.
func (e evaluator) strict(n Node) (float64, error) {
	s := e
	s.lenient = false
	return s.number(n)
}
