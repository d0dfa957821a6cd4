package domain

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Portfolio struct {
	Positions map[string]*Position
	Cash      decimal.Decimal
}

func NewPortfolio(cash decimal.Decimal) *Portfolio {
	return &Portfolio{
		Positions: map[string]*Position{},
		Cash:      cash,
	}
}

// HeldSymbols returns the symbols of every position, sorted.
func (p Portfolio) HeldSymbols() []string {
	symbols := make([]string, 0, len(p.Positions))
	for symbol := range p.Positions {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

func (p Portfolio) DeepCopy() *Portfolio {
	out := NewPortfolio(p.Cash)
	for symbol, position := range p.Positions {
		out.Positions[symbol] = position.DeepCopy()
	}
	return out
}

// TotalValue marks every position to priceMap. Positions are summed in
// symbol order so repeated calls agree to the last digit.
func (p Portfolio) TotalValue(priceMap map[string]decimal.Decimal) (decimal.Decimal, error) {
	total := p.Cash
	for _, symbol := range p.HeldSymbols() {
		price, ok := priceMap[symbol]
		if !ok {
			return decimal.Zero, fmt.Errorf("cannot compute portfolio total value: price map missing %s", symbol)
		}
		total = total.Add(p.Positions[symbol].Quantity.Mul(price))
	}
	return total, nil
}

type Position struct {
	Symbol   string
	TickerID uuid.UUID
	Quantity decimal.Decimal
}

func (p Position) DeepCopy() *Position {
	return &Position{
		Symbol:   p.Symbol,
		TickerID: p.TickerID,
		Quantity: p.Quantity,
	}
}

type ProposedTrade struct {
	Symbol        string
	TickerID      uuid.UUID
	ExactQuantity decimal.Decimal
	ExpectedPrice decimal.Decimal
}

func (p ProposedTrade) ExpectedAmount() decimal.Decimal {
	return p.ExactQuantity.Mul(p.ExpectedPrice).Abs()
}

// TradesToTarget lists the trades that move current to target, sorted by
// symbol. Positions with no quantity change are omitted.
func TradesToTarget(current, target *Portfolio, prices map[string]decimal.Decimal) []ProposedTrade {
	symbols := map[string]struct{}{}
	for s := range current.Positions {
		symbols[s] = struct{}{}
	}
	for s := range target.Positions {
		symbols[s] = struct{}{}
	}
	sorted := make([]string, 0, len(symbols))
	for s := range symbols {
		sorted = append(sorted, s)
	}
	sort.Strings(sorted)

	trades := []ProposedTrade{}
	for _, symbol := range sorted {
		from, to := decimal.Zero, decimal.Zero
		var tickerID uuid.UUID
		if p, ok := current.Positions[symbol]; ok {
			from = p.Quantity
			tickerID = p.TickerID
		}
		if p, ok := target.Positions[symbol]; ok {
			to = p.Quantity
			tickerID = p.TickerID
		}
		diff := to.Sub(from)
		if diff.IsZero() {
			continue
		}
		trades = append(trades, ProposedTrade{
			Symbol:        symbol,
			TickerID:      tickerID,
			ExactQuantity: diff,
			ExpectedPrice: prices[symbol],
		})
	}
	return trades
}
