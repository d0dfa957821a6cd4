package expression

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		canonical string
	}{
		{"momentum", "pricePercentChange(nDaysAgo(7), currentDate)", "pricePercentChange(nDaysAgo(7), currentDate)"},
		{"whitespace is insignificant", "  pricePercentChange(\n\tnDaysAgo( 7 ),currentDate ) ", "pricePercentChange(nDaysAgo(7), currentDate)"},
		{"precedence", "1 + 2 * 3", "1+2*3"},
		{"redundant parens dropped", "((1 + 2)) * (3)", "(1+2)*3"},
		{"left associative subtraction", "(1 - 2) - 3", "1-2-3"},
		{"right grouping kept", "1 - (2 - 3)", "1-(2-3)"},
		{"division grouping kept", "8 / (4 / 2)", "8/(4/2)"},
		{"exponent literals", "marketCap(currentDate) / 1e12", "marketCap(currentDate)/1e+12"},
		{"signed exponent", "2.5E-3 + 1e+3", "0.0025+1000"},
		{"leading dot", ".5 * price(currentDate)", "0.5*price(currentDate)"},
		{"unary minus", "-price(currentDate)", "-price(currentDate)"},
		{"unary plus is dropped", "+price(currentDate)", "price(currentDate)"},
		{"negative offsets", "price(addDate(currentDate, 0, -6, 0))", "price(addDate(currentDate, 0, -6, 0))"},
		{"unary of group", "-(1 + 2)", "-(1+2)"},
		{"subtract negative", "3 - -7", "3--7"},
		{"multiply negative", "3 * -7", "3*-7"},
		{"value ratio", "1/peRatio(currentDate) + 1/pbRatio(currentDate)", "1/peRatio(currentDate)+1/pbRatio(currentDate)"},
		{"risk adjusted", "pricePercentChange(nYearsAgo(1), currentDate) / stdev(nYearsAgo(1), currentDate)", "pricePercentChange(nYearsAgo(1), currentDate)/stdev(nYearsAgo(1), currentDate)"},
		{"eps", "eps(nMonthsAgo(3))", "eps(nMonthsAgo(3))"},
		{"nested dates", "price(addDate(nMonthsAgo(1), 0, 0, -1))", "price(addDate(nMonthsAgo(1), 0, 0, -1))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Parse(tt.src)
			require.NoError(t, err)
			require.Equal(t, tt.canonical, n.String())
			require.Equal(t, TypeNumber, n.Type())

			again, err := Parse(n.String())
			require.NoError(t, err)
			require.True(t, Equal(n, again), "%s != %s", n, again)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		pos    int
		reason string
	}{
		{"empty", "", 0, "expression is empty"},
		{"blank", "   ", 0, "expression is empty"},
		{"unknown identifier", "foo(currentDate)", 0, "unknown identifier 'foo'"},
		{"case sensitive", "Price(currentDate)", 0, "did you mean 'price'?"},
		{"unknown variable", "price(today)", 6, "unknown identifier 'today'"},
		{"missing close paren", "price(currentDate", 5, "unmatched parenthesis '('"},
		{"missing close group", "(1 + 2", 0, "unmatched parenthesis '('"},
		{"extra close paren", "price(currentDate))", 18, "unmatched parenthesis ')'"},
		{"leading close paren", ")", 0, "unmatched parenthesis ')'"},
		{"wrong arity", "price(currentDate, currentDate)", 0, "function 'price' takes 1 argument(s), got 2"},
		{"no args", "price()", 0, "function 'price' takes 1 argument(s), got 0"},
		{"too few", "addDate(currentDate, 1)", 0, "function 'addDate' takes 4 argument(s), got 2"},
		{"function without call", "price + 1", 0, "function 'price' must be called with arguments"},
		{"keyword called", "currentDate()", 0, "currentDate is a keyword and cannot be called"},
		{"date where number expected", "nDaysAgo(currentDate)", 9, "argument 1 of 'nDaysAgo' must be a number, got a date"},
		{"number where date expected", "price(7)", 6, "argument 1 of 'price' must be a date, got a number"},
		{"date arithmetic", "currentDate + 1", 0, "operator '+' needs numbers, got a date"},
		{"negated date", "-currentDate", 1, "operator '-' needs numbers, got a date"},
		{"date root", "nDaysAgo(7)", 0, "expression must produce a number, got a date"},
		{"bad character", "price(currentDate) % 2", 19, "unexpected character '%'"},
		{"malformed exponent", "1e + 2", 0, "malformed number '1e'"},
		{"number glued to identifier", "7days", 0, "malformed number '7days'"},
		{"double dot", "1.2.3", 0, "malformed number '1.2.3'"},
		{"out of range", "1e400", 0, "number '1e400' is out of range"},
		{"dangling operator", "1 +", 3, "unexpected end of expression"},
		{"missing operator", "1 2", 2, "unexpected number '2'"},
		{"missing comma", "pricePercentChange(currentDate currentDate)", 31, "expected ',' or ')', got identifier 'currentDate'"},
		{"trailing comma", "price(currentDate,)", 18, "unmatched parenthesis ')'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)

			var pe *ParseError
			require.True(t, errors.As(err, &pe), "expected ParseError, got %T", err)
			require.Equal(t, tt.pos, pe.Pos, pe.Error())
			require.Contains(t, pe.Reason, tt.reason)
			require.True(t, strings.HasPrefix(err.Error(), fmt.Sprintf("parse error at position %d: ", tt.pos)))
		})
	}
}

func TestParse_DeepNesting(t *testing.T) {
	src := strings.Repeat("(", 5000) + "1" + strings.Repeat(")", 5000)
	_, err := Parse(src)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	require.Contains(t, pe.Reason, "nested too deeply")

	ok := strings.Repeat("(", 50) + "1" + strings.Repeat(")", 50)
	n, err := Parse(ok)
	require.NoError(t, err)
	require.Equal(t, "1", n.String())
}

func TestCanonical(t *testing.T) {
	a, err := Canonical("pricePercentChange( nDaysAgo(7) , currentDate )")
	require.NoError(t, err)
	b, err := Canonical("pricePercentChange(nDaysAgo(7),currentDate)")
	require.NoError(t, err)
	require.Equal(t, a, b)

	_, err = Canonical("price(")
	require.Error(t, err)
}

// randomExpr builds a random, well-typed expression string.
func randomExpr(r *rand.Rand, depth int) string {
	if depth <= 0 {
		switch r.Intn(4) {
		case 0:
			return fmt.Sprintf("%d", r.Intn(100))
		case 1:
			return fmt.Sprintf("%.3f", r.Float64()*10)
		case 2:
			return fmt.Sprintf("%de%d", 1+r.Intn(9), r.Intn(12))
		default:
			return fmt.Sprintf("price(%s)", randomDate(r, 1))
		}
	}
	switch r.Intn(7) {
	case 0:
		return randomExpr(r, depth-1) + " + " + randomExpr(r, depth-1)
	case 1:
		return randomExpr(r, depth-1) + " - " + randomExpr(r, depth-1)
	case 2:
		return randomExpr(r, depth-1) + " * " + randomExpr(r, depth-1)
	case 3:
		return randomExpr(r, depth-1) + " / " + randomExpr(r, depth-1)
	case 4:
		return "(" + randomExpr(r, depth-1) + ")"
	case 5:
		return "-" + randomExpr(r, depth-1)
	default:
		fns := []string{"pricePercentChange", "stdev"}
		return fmt.Sprintf("%s(%s, %s)", fns[r.Intn(len(fns))], randomDate(r, depth-1), randomDate(r, depth-1))
	}
}

func randomDate(r *rand.Rand, depth int) string {
	if depth <= 0 {
		return "currentDate"
	}
	switch r.Intn(5) {
	case 0:
		return "currentDate"
	case 1:
		return fmt.Sprintf("nDaysAgo(%d)", r.Intn(30))
	case 2:
		return fmt.Sprintf("nMonthsAgo(%d)", r.Intn(12))
	case 3:
		return fmt.Sprintf("nYearsAgo(%d)", r.Intn(3))
	default:
		return fmt.Sprintf("addDate(%s, %d, -%d, %d)", randomDate(r, depth-1), r.Intn(2), r.Intn(6), r.Intn(10))
	}
}

func TestParse_RoundTripProperty(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		src := randomExpr(r, 1+r.Intn(5))
		n, err := Parse(src)
		require.NoError(t, err, src)

		canonical := n.String()
		again, err := Parse(canonical)
		require.NoError(t, err, canonical)
		require.True(t, Equal(n, again), "round trip changed tree:\n%s\n%s", src, canonical)
		require.Equal(t, canonical, again.String())
	}
}

func TestLookupFunction(t *testing.T) {
	f, ok := LookupFunction("pricePercentChange")
	require.True(t, ok)
	require.Equal(t, FuncPricePercentChange, f)
	require.Equal(t, 2, f.Arity())
	require.Equal(t, TypeNumber, f.ResultType())

	f, ok = LookupFunction("addDate")
	require.True(t, ok)
	require.Equal(t, TypeDate, f.ResultType())

	_, ok = LookupFunction("currentDate")
	require.False(t, ok)
	_, ok = LookupFunction("PRICE")
	require.False(t, ok)
}
