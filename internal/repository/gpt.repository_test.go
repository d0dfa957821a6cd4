package repository

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func Test_parseFactorEquationResponse(t *testing.T) {
	t.Run("plain json", func(t *testing.T) {
		out, err := parseFactorEquationResponse(`{"factorExpression": "price(currentDate)", "factorName": "price"}`)
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(&ConstructFactorEquationResult{
			FactorExpression: "price(currentDate)",
			FactorName:       "price",
		}, out))
	})

	t.Run("fenced json", func(t *testing.T) {
		out, err := parseFactorEquationResponse("```json\n{\"error\": \"unsupported\", \"reason\": \"needs dividends\"}\n```")
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(&ConstructFactorEquationResult{
			Error:  "unsupported",
			Reason: "needs dividends",
		}, out))
	})

	t.Run("not json", func(t *testing.T) {
		_, err := parseFactorEquationResponse("sure! here is your factor")
		require.Error(t, err)
	})

	t.Run("empty object", func(t *testing.T) {
		_, err := parseFactorEquationResponse("{}")
		require.Error(t, err)
	})
}
