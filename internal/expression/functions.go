package expression

import "strings"

// Type is the static type of an expression node.
type Type int

const (
	TypeNumber Type = iota
	TypeDate
)

func (t Type) String() string {
	if t == TypeDate {
		return "date"
	}
	return "number"
}

// Function enumerates every callable in the factor language.
type Function int

const (
	FuncNDaysAgo Function = iota
	FuncNMonthsAgo
	FuncNYearsAgo
	FuncAddDate
	FuncPrice
	FuncPricePercentChange
	FuncStdev
	FuncPbRatio
	FuncPeRatio
	FuncMarketCap
	FuncEps
)

type signature struct {
	name   string
	args   []Type
	result Type
}

var signatures = map[Function]signature{
	FuncNDaysAgo:           {"nDaysAgo", []Type{TypeNumber}, TypeDate},
	FuncNMonthsAgo:         {"nMonthsAgo", []Type{TypeNumber}, TypeDate},
	FuncNYearsAgo:          {"nYearsAgo", []Type{TypeNumber}, TypeDate},
	FuncAddDate:            {"addDate", []Type{TypeDate, TypeNumber, TypeNumber, TypeNumber}, TypeDate},
	FuncPrice:              {"price", []Type{TypeDate}, TypeNumber},
	FuncPricePercentChange: {"pricePercentChange", []Type{TypeDate, TypeDate}, TypeNumber},
	FuncStdev:              {"stdev", []Type{TypeDate, TypeDate}, TypeNumber},
	FuncPbRatio:            {"pbRatio", []Type{TypeDate}, TypeNumber},
	FuncPeRatio:            {"peRatio", []Type{TypeDate}, TypeNumber},
	FuncMarketCap:          {"marketCap", []Type{TypeDate}, TypeNumber},
	FuncEps:                {"eps", []Type{TypeDate}, TypeNumber},
}

var functionsByName = func() map[string]Function {
	out := map[string]Function{}
	for f, sig := range signatures {
		out[sig.name] = f
	}
	return out
}()

// currentDateKeyword is the only identifier that is not a function.
const currentDateKeyword = "currentDate"

func (f Function) String() string {
	return signatures[f].name
}

func (f Function) Arity() int {
	return len(signatures[f].args)
}

func (f Function) ResultType() Type {
	return signatures[f].result
}

// LookupFunction resolves a name to a Function. Names are case-sensitive.
func LookupFunction(name string) (Function, bool) {
	f, ok := functionsByName[name]
	return f, ok
}

// suggest returns a known name differing only in case, if any.
func suggest(name string) string {
	if strings.EqualFold(name, currentDateKeyword) {
		return currentDateKeyword
	}
	for known := range functionsByName {
		if strings.EqualFold(known, name) {
			return known
		}
	}
	return ""
}
