package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ayush6624/go-chatgpt"
)

type GptRepository interface {
	ConstructFactorEquation(ctx context.Context, description string) (*ConstructFactorEquationResult, error)
}

// ConstructFactorEquationResult carries either an expression or the
// model's explanation for why it could not write one.
type ConstructFactorEquationResult struct {
	FactorExpression string `json:"factorExpression"`
	FactorName       string `json:"factorName"`
	Error            string `json:"error"`
	Reason           string `json:"reason"`
}

type gptRepositoryHandler struct {
	GptClient *chatgpt.Client
}

func NewGptRepository(apiKey string) (GptRepository, error) {
	client, err := chatgpt.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to construct gpt client: %w", err)
	}

	return gptRepositoryHandler{
		GptClient: client,
	}, nil
}

const factorEquationPrompt = `
You are helping a user construct an equation for calculating the factor score of an asset. They will describe in English how the factor should be calculated. You must output an equation that will be evaluated for every asset on every rebalance date of a backtest.

The equation may contain numbers, + - * /, parentheses, and the following constructs. Function names are case sensitive.

dates:
- currentDate - keyword (no parentheses) for the date the calculation happens on
- nDaysAgo(n), nMonthsAgo(n), nYearsAgo(n) - subtract n whole days/months/years from currentDate. n must not be negative, since a backtest cannot look into the future
- addDate(date, years, months, days) - shift a date by whole, possibly negative, offsets

numbers:
- price(date) - adjusted close of the asset on the date
- pricePercentChange(startDate, endDate) - percent change of the asset's price
- stdev(startDate, endDate) - annualized standard deviation of daily returns over the period
- pbRatio(date), peRatio(date), marketCap(date), eps(date) - fundamentals as of the date

example description: average of the 6, 12 and 18 month returns, divided by the 3 year volatility
example equation:
((pricePercentChange(nMonthsAgo(6), currentDate) + pricePercentChange(nMonthsAgo(12), currentDate) + pricePercentChange(nMonthsAgo(18), currentDate)) / 3) / stdev(nYearsAgo(3), currentDate)

Respond with only a JSON object, no markdown:
{"factorExpression": "<equation>", "factorName": "<short snake_case name>"}
If the description cannot be expressed with these constructs respond with:
{"error": "<short message>", "reason": "<one sentence explanation>"}
`

func (h gptRepositoryHandler) ConstructFactorEquation(ctx context.Context, description string) (*ConstructFactorEquationResult, error) {
	res, err := h.GptClient.Send(ctx, &chatgpt.ChatCompletionRequest{
		Model: chatgpt.GPT4,
		Messages: []chatgpt.ChatMessage{
			{
				Role:    chatgpt.ChatGPTModelRoleSystem,
				Content: factorEquationPrompt,
			},
			{
				Role:    chatgpt.ChatGPTModelRoleUser,
				Content: description,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query gpt: %w", err)
	}
	if len(res.Choices) == 0 {
		return nil, fmt.Errorf("failed to construct factor equation: gpt returned no choices")
	}

	return parseFactorEquationResponse(res.Choices[0].Message.Content)
}

func parseFactorEquationResponse(content string) (*ConstructFactorEquationResult, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	out := ConstructFactorEquationResult{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &out); err != nil {
		return nil, fmt.Errorf("failed to parse gpt response %q: %w", content, err)
	}
	if out.Error == "" && out.FactorExpression == "" {
		return nil, fmt.Errorf("gpt response had neither an expression nor an error")
	}

	return &out, nil
}
