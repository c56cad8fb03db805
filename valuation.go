package cryptofolio

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CashAsset labels the synthetic cash position in a valuation.
const CashAsset = "USDT (cash)"

// Totals accumulates a valuation across positions.
type Totals struct {
	CostBasis   Money
	Realized    Money
	Unrealized  Money
	Total       Money // realized + unrealized
	MarketValue Money // crypto value + cash balance
}

// Valuation is the full portfolio state at the current quotes: one position
// per shown asset, a synthetic cash position, and the totals.
type Valuation struct {
	Positions []Position // dust filtered, synthetic cash last
	Cash      Money
	Totals    Totals
}

// NewValuation reviews every asset of the ledger at the given quotes.
// Positions worth less than the dust threshold with no realized result are
// dropped; the cash balance always counts toward the total market value and
// shows as its own position when above the threshold. An empty ledger yields
// an empty valuation.
func NewValuation(ledger *Ledger, quotes *Quotes) *Valuation {
	v := &Valuation{Cash: ledger.CashBalance()}
	zero := USDT(decimal.Zero)
	v.Totals = Totals{CostBasis: zero, Realized: zero, Unrealized: zero, Total: zero, MarketValue: zero}

	for asset := range ledger.Assets() {
		price, _ := quotes.Price(asset)
		pos := ReviewAsset(asset, ledger.AssetTransactions(asset), price)
		if pos.IsDust() {
			continue
		}
		v.Positions = append(v.Positions, pos)
		v.Totals.CostBasis = v.Totals.CostBasis.Add(pos.CostBasis)
		v.Totals.Realized = v.Totals.Realized.Add(pos.Realized)
		v.Totals.Unrealized = v.Totals.Unrealized.Add(pos.Unrealized)
		v.Totals.Total = v.Totals.Total.Add(pos.Total)
		v.Totals.MarketValue = v.Totals.MarketValue.Add(pos.MarketValue)
	}
	sort.Slice(v.Positions, func(i, j int) bool {
		return v.Positions[i].MarketValue.GreaterThan(v.Positions[j].MarketValue)
	})

	v.Totals.MarketValue = v.Totals.MarketValue.Add(v.Cash)
	if v.Cash.value.GreaterThan(DustThreshold) {
		v.Positions = append(v.Positions, Position{
			Asset:       CashAsset,
			Quantity:    Q(v.Cash.value),
			Price:       USDT(1),
			MarketValue: v.Cash,
			CostBasis:   v.Cash,
		})
	}
	return v
}

// AllocationEntry is one slice of the portfolio distribution.
type AllocationEntry struct {
	Asset    string
	Quantity Quantity
	Value    Money
	Percent  float64 // share of the total, presentation only
}

// Allocation is the portfolio distribution by market value, cash included
// under its own symbol.
type Allocation struct {
	Entries     []AllocationEntry // sorted by descending share
	CryptoValue Money
	Cash        Money
	Total       Money
}

// NewAllocation computes each asset's share of the total portfolio value at
// the current quotes. Assets below the dust threshold are dropped; shares
// always sum to 100 over the shown entries.
func NewAllocation(ledger *Ledger, quotes *Quotes) *Allocation {
	a := &Allocation{
		CryptoValue: USDT(decimal.Zero),
		Cash:        ledger.CashBalance(),
	}

	for asset := range ledger.Assets() {
		price, _ := quotes.Price(asset)
		pos := ReviewAsset(asset, ledger.AssetTransactions(asset), price)
		if !pos.MarketValue.value.GreaterThan(DustThreshold) {
			continue
		}
		a.CryptoValue = a.CryptoValue.Add(pos.MarketValue)
		a.Entries = append(a.Entries, AllocationEntry{
			Asset:    pos.Asset,
			Quantity: pos.Quantity,
			Value:    pos.MarketValue,
		})
	}
	if a.Cash.value.GreaterThan(DustThreshold) {
		a.Entries = append(a.Entries, AllocationEntry{
			Asset:    ReferenceCurrency,
			Quantity: Q(a.Cash.value),
			Value:    a.Cash,
		})
	}

	a.Total = a.CryptoValue.Add(a.Cash)
	if a.Total.IsPositive() {
		for i := range a.Entries {
			share := a.Entries[i].Value.value.Div(a.Total.value).Mul(decimal.NewFromInt(100))
			a.Entries[i].Percent = share.InexactFloat64()
		}
	}
	sort.Slice(a.Entries, func(i, j int) bool {
		if a.Entries[i].Percent != a.Entries[j].Percent {
			return a.Entries[i].Percent > a.Entries[j].Percent
		}
		return a.Entries[i].Asset < a.Entries[j].Asset
	})
	return a
}
