package renderer

import (
	"fmt"
	"strings"

	"github.com/hfmartins/cryptofolio"
)

// ValuationMarkdown renders the full portfolio review: one row per shown
// asset, the synthetic cash row, and the totals.
// displayRate, when non-zero, adds the total converted to the display
// currency.
func ValuationMarkdown(v *cryptofolio.Valuation, displayRate cryptofolio.Money) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Portfolio\n\n")
	if len(v.Positions) == 0 {
		fmt.Fprintf(&b, "No operations recorded yet.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Asset | Position | Avg Cost | Cost Basis | Price | Value | Unrealized | Realized | Total P/L |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|---:|---:|")
	for _, p := range v.Positions {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			p.Asset,
			p.Quantity,
			p.AvgCost,
			p.CostBasis,
			p.Price,
			p.MarketValue,
			p.Unrealized.SignedString(),
			p.Realized.SignedString(),
			p.Total.SignedString(),
		)
	}
	fmt.Fprintf(&b, "\nMarket value: **%s**", v.Totals.MarketValue)
	if !displayRate.IsZero() {
		fmt.Fprintf(&b, " (%s)", v.Totals.MarketValue.Convert(displayRate))
	}
	fmt.Fprintf(&b, "\n\n")
	fmt.Fprintf(&b, "- Cash: %s\n", v.Cash)
	fmt.Fprintf(&b, "- Cost basis: %s\n", v.Totals.CostBasis)
	fmt.Fprintf(&b, "- Unrealized: %s\n", v.Totals.Unrealized.SignedString())
	fmt.Fprintf(&b, "- Realized: %s\n", v.Totals.Realized.SignedString())
	fmt.Fprintf(&b, "- Total P/L: %s\n", v.Totals.Total.SignedString())
	return b.String()
}

// PositionMarkdown renders one asset's processed history, rejected sells
// included, followed by its current accounting state.
func PositionMarkdown(p cryptofolio.Position) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Asset)
	if len(p.Trades) == 0 {
		fmt.Fprintf(&b, "No operations recorded for %s.\n", p.Asset)
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Side | Quantity | Price | Amount | Result |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|:---|")
	for _, t := range p.Trades {
		result := ""
		switch {
		case t.Invalid != "":
			result = "rejected: " + t.Invalid
		case t.Side == cryptofolio.Buy:
			result = "avg cost " + t.AvgCost.String()
		case t.Side == cryptofolio.Sell:
			result = "profit " + t.Profit.SignedString()
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			t.Date, t.Side, t.Quantity, t.Price, t.Amount, result)
	}
	fmt.Fprintf(&b, "\n")
	fmt.Fprintf(&b, "- Position: %s\n", p.Quantity)
	fmt.Fprintf(&b, "- Avg cost: %s\n", p.AvgCost)
	fmt.Fprintf(&b, "- Cost basis: %s\n", p.CostBasis)
	fmt.Fprintf(&b, "- Market value: %s\n", p.MarketValue)
	fmt.Fprintf(&b, "- Unrealized: %s\n", p.Unrealized.SignedString())
	fmt.Fprintf(&b, "- Realized: %s\n", p.Realized.SignedString())
	fmt.Fprintf(&b, "- Total P/L: %s\n", p.Total.SignedString())
	return b.String()
}
