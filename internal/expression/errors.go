package expression

import (
	"errors"
	"fmt"
)

// ParseError reports invalid factor expression text. Pos is the byte offset
// of the offending token.
type ParseError struct {
	Pos    int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: %s", e.Pos, e.Reason)
}

func newParseError(pos int, format string, args ...any) *ParseError {
	return &ParseError{Pos: pos, Reason: fmt.Sprintf(format, args...)}
}

// ErrMissingData is wrapped by MarketData implementations when the data a
// function needs does not exist for the asset and date.
var ErrMissingData = errors.New("missing market data")

// IsMissingData reports whether err was caused by absent market data rather
// than a computation problem.
func IsMissingData(err error) bool {
	return errors.Is(err, ErrMissingData)
}
