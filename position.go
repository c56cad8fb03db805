package cryptofolio

import (
	"github.com/shopspring/decimal"
)

// Thresholds used when reporting positions. Accumulation itself is exact,
// these only decide what is worth showing.
var (
	// DustThreshold is the USDT value below which a position is noise.
	DustThreshold = decimal.NewFromFloat(0.01)
	// QuantityEpsilon is the quantity below which a holding counts as closed.
	QuantityEpsilon = decimal.New(1, -9)
)

// Trade is one processed operation in an asset's history, annotated with the
// accounting state it produced.
type Trade struct {
	Date     DateTime
	Side     Side
	Quantity Quantity
	Price    Money
	Amount   Money
	AvgCost  Money  // weighted average cost after a buy
	Profit   Money  // realized profit of a sell
	Invalid  string // non-empty when the operation was rejected
}

// Position is the weighted-average-cost state of one asset after replaying
// its full history.
type Position struct {
	Asset       string
	Quantity    Quantity
	AvgCost     Money
	CostBasis   Money
	Realized    Money
	Price       Money
	MarketValue Money
	Unrealized  Money
	Total       Money // realized + unrealized
	Trades      []Trade
}

// ReviewAsset folds the chronological transactions of one asset into its
// position at the given market price. It is pure: same inputs, same output.
//
// Sells against an empty or costless position are rejected with an annotated
// trade entry and leave the fold state untouched.
func ReviewAsset(asset string, txs []Transaction, price Money) Position {
	var (
		cost     = USDT(decimal.Zero)
		quantity = Q(decimal.Zero)
		avg      = USDT(decimal.Zero)
		realized = USDT(decimal.Zero)
	)
	trades := make([]Trade, 0, len(txs))

	for _, tx := range txs {
		trade := Trade{
			Date:     tx.Date,
			Side:     tx.Side,
			Quantity: tx.Quantity,
			Price:    tx.Price,
			Amount:   tx.Amount,
		}
		switch tx.Side {
		case Buy:
			cost = cost.Add(tx.Amount)
			quantity = quantity.Add(tx.Quantity)
			if quantity.IsPositive() {
				avg = cost.Div(quantity)
			}
			trade.AvgCost = avg
		case Sell:
			if !quantity.IsPositive() || !avg.IsPositive() {
				trade.Invalid = "sell without prior position"
				trades = append(trades, trade)
				continue
			}
			costOfSale := avg.Mul(tx.Quantity)
			trade.Profit = tx.Amount.Sub(costOfSale)
			realized = realized.Add(trade.Profit)
			cost = cost.Sub(costOfSale)
			quantity = quantity.Sub(tx.Quantity)
		}
		trades = append(trades, trade)
	}

	// A fully sold position keeps a tiny residual from the division, report
	// it as closed.
	closed := quantity.Abs().value.LessThanOrEqual(QuantityEpsilon)
	if closed {
		cost = USDT(decimal.Zero)
	}

	// Without a price there is no market value and no unrealized result:
	// the position degrades to its cost basis, never to a phantom loss.
	value := USDT(decimal.Zero)
	unrealized := USDT(decimal.Zero)
	if price.IsPositive() {
		value = price.Mul(quantity)
		if !closed {
			unrealized = value.Sub(cost)
		}
	}

	return Position{
		Asset:       normalizeAsset(asset),
		Quantity:    quantity,
		AvgCost:     avg,
		CostBasis:   cost,
		Realized:    realized,
		Price:       price,
		MarketValue: value,
		Unrealized:  unrealized,
		Total:       realized.Add(unrealized),
		Trades:      trades,
	}
}

// IsDust reports whether the position is too small to show: negligible
// market value and no realized result worth mentioning.
func (p Position) IsDust() bool {
	return !p.MarketValue.value.GreaterThan(DustThreshold) &&
		!p.Realized.value.Abs().GreaterThan(DustThreshold)
}
