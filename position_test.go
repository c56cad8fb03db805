package cryptofolio

import (
	"testing"
	"time"
)

func at(day, hour int) DateTime {
	return NewDateTime(2025, time.March, day, hour, 0, 0)
}

func TestReviewAsset_AverageCost(t *testing.T) {
	txs := []Transaction{
		NewBuy(at(1, 10), "BTC", USDT(100), USDT(50)),  // 2 units
		NewBuy(at(2, 10), "BTC", USDT(200), USDT(100)), // 2 units
	}
	pos := ReviewAsset("BTC", txs, USDT(80))

	if want := Q(4); !pos.Quantity.Equal(want) {
		t.Errorf("Quantity = %s, want %s", pos.Quantity, want)
	}
	if want := USDT(75); !pos.AvgCost.Equal(want) {
		t.Errorf("AvgCost = %s, want %s", pos.AvgCost, want)
	}
	if want := USDT(300); !pos.CostBasis.Equal(want) {
		t.Errorf("CostBasis = %s, want %s", pos.CostBasis, want)
	}
	if want := USDT(320); !pos.MarketValue.Equal(want) {
		t.Errorf("MarketValue = %s, want %s", pos.MarketValue, want)
	}
	if want := USDT(20); !pos.Unrealized.Equal(want) {
		t.Errorf("Unrealized = %s, want %s", pos.Unrealized, want)
	}
	if !pos.Realized.IsZero() {
		t.Errorf("Realized = %s, want 0", pos.Realized)
	}
	if want := USDT(20); !pos.Total.Equal(want) {
		t.Errorf("Total = %s, want %s", pos.Total, want)
	}
}

func TestReviewAsset_SellRealizesProfit(t *testing.T) {
	txs := []Transaction{
		NewBuy(at(1, 10), "BTC", USDT(100), USDT(50)), // 2 units, avg 50
		NewSell(at(2, 10), "BTC", USDT(70), USDT(70)), // 1 unit
	}
	pos := ReviewAsset("BTC", txs, USDT(60))

	if want := Q(1); !pos.Quantity.Equal(want) {
		t.Errorf("Quantity = %s, want %s", pos.Quantity, want)
	}
	if want := USDT(20); !pos.Realized.Equal(want) {
		t.Errorf("Realized = %s, want %s", pos.Realized, want)
	}
	// Selling at the average cost never changes it.
	if want := USDT(50); !pos.AvgCost.Equal(want) {
		t.Errorf("AvgCost = %s, want %s", pos.AvgCost, want)
	}
	if want := USDT(50); !pos.CostBasis.Equal(want) {
		t.Errorf("CostBasis = %s, want %s", pos.CostBasis, want)
	}
	if want := USDT(10); !pos.Unrealized.Equal(want) {
		t.Errorf("Unrealized = %s, want %s", pos.Unrealized, want)
	}
	if want := USDT(30); !pos.Total.Equal(want) {
		t.Errorf("Total = %s, want %s", pos.Total, want)
	}
	if got := pos.Trades[1].Profit; !got.Equal(USDT(20)) {
		t.Errorf("Trades[1].Profit = %s, want %s", got, USDT(20))
	}
}

func TestReviewAsset_RejectsSellWithoutPosition(t *testing.T) {
	txs := []Transaction{
		NewSell(at(1, 10), "BTC", USDT(70), USDT(70)),
		NewBuy(at(2, 10), "BTC", USDT(100), USDT(50)),
	}
	pos := ReviewAsset("BTC", txs, USDT(50))

	if got := pos.Trades[0].Invalid; got == "" {
		t.Fatal("Trades[0].Invalid is empty, want a rejection")
	}
	// The rejected sell must not touch the fold state.
	if want := Q(2); !pos.Quantity.Equal(want) {
		t.Errorf("Quantity = %s, want %s", pos.Quantity, want)
	}
	if !pos.Realized.IsZero() {
		t.Errorf("Realized = %s, want 0", pos.Realized)
	}
	if want := USDT(100); !pos.CostBasis.Equal(want) {
		t.Errorf("CostBasis = %s, want %s", pos.CostBasis, want)
	}
}

func TestReviewAsset_OversellRejectedOnEmptiedPosition(t *testing.T) {
	txs := []Transaction{
		NewBuy(at(1, 10), "BTC", USDT(100), USDT(50)),  // 2 units
		NewSell(at(2, 10), "BTC", USDT(120), USDT(60)), // 2 units, closes
		NewSell(at(3, 10), "BTC", USDT(60), USDT(60)),  // nothing left
	}
	pos := ReviewAsset("BTC", txs, USDT(60))

	if got := pos.Trades[2].Invalid; got == "" {
		t.Fatal("Trades[2].Invalid is empty, want a rejection")
	}
	if want := USDT(20); !pos.Realized.Equal(want) {
		t.Errorf("Realized = %s, want %s", pos.Realized, want)
	}
}

func TestReviewAsset_OversoldPositionStaysNegative(t *testing.T) {
	// Selling more than the holding while the position is still open is
	// accepted by the fold; the resulting negative quantity and cost basis
	// are reported as is, only residuals within the epsilon count as closed.
	txs := []Transaction{
		NewBuy(at(1, 10), "BTC", USDT(50), USDT(50)),   // 1 unit, avg 50
		NewSell(at(2, 10), "BTC", USDT(100), USDT(50)), // 2 units
	}
	pos := ReviewAsset("BTC", txs, USDT(50))

	if pos.Trades[1].Invalid != "" {
		t.Fatalf("Trades[1].Invalid = %q, want accepted", pos.Trades[1].Invalid)
	}
	if want := Q(-1); !pos.Quantity.Equal(want) {
		t.Errorf("Quantity = %s, want %s", pos.Quantity, want)
	}
	if want := USDT(-50); !pos.CostBasis.Equal(want) {
		t.Errorf("CostBasis = %s, want %s", pos.CostBasis, want)
	}
	if !pos.Realized.IsZero() {
		t.Errorf("Realized = %s, want 0", pos.Realized)
	}
	if !pos.Unrealized.IsZero() {
		t.Errorf("Unrealized = %s, want 0", pos.Unrealized)
	}
}

func TestReviewAsset_FullSellClosesExactly(t *testing.T) {
	// 10 USDT at 3 USDT/unit leaves a repeating-decimal quantity; closing the
	// position must still report a zero cost basis and zero unrealized.
	buy := NewBuy(at(1, 10), "BTC", USDT(10), USDT(3))
	sell := NewSell(at(2, 10), "BTC", USDT(12), USDT(3.6))
	sell.Quantity = buy.Quantity

	pos := ReviewAsset("BTC", []Transaction{buy, sell}, USDT(3.6))

	if !pos.CostBasis.IsZero() {
		t.Errorf("CostBasis = %s, want 0", pos.CostBasis)
	}
	if !pos.Unrealized.IsZero() {
		t.Errorf("Unrealized = %s, want 0", pos.Unrealized)
	}
	if !pos.Total.Equal(pos.Realized) {
		t.Errorf("Total = %s, want Realized %s", pos.Total, pos.Realized)
	}
}

func TestReviewAsset_ZeroPriceDegrades(t *testing.T) {
	// A missing quote zeroes the market value and the unrealized result,
	// never turns the open position into a loss of its whole cost basis.
	txs := []Transaction{
		NewBuy(at(1, 10), "BTC", USDT(100), USDT(50)),
		NewSell(at(2, 10), "BTC", USDT(70), USDT(70)),
	}
	pos := ReviewAsset("BTC", txs, Money{})

	if !pos.MarketValue.IsZero() {
		t.Errorf("MarketValue = %s, want 0", pos.MarketValue)
	}
	if !pos.Unrealized.IsZero() {
		t.Errorf("Unrealized = %s, want 0", pos.Unrealized)
	}
	if want := USDT(50); !pos.CostBasis.Equal(want) {
		t.Errorf("CostBasis = %s, want %s", pos.CostBasis, want)
	}
	if !pos.Total.Equal(pos.Realized) {
		t.Errorf("Total = %s, want Realized %s", pos.Total, pos.Realized)
	}
}

func TestReviewAsset_Empty(t *testing.T) {
	pos := ReviewAsset("BTC", nil, USDT(100))
	if !pos.Quantity.IsZero() || !pos.Realized.IsZero() || !pos.Total.IsZero() {
		t.Errorf("empty review not zero: %+v", pos)
	}
	if len(pos.Trades) != 0 {
		t.Errorf("Trades = %d, want 0", len(pos.Trades))
	}
}

func TestReviewAsset_IsPure(t *testing.T) {
	txs := []Transaction{
		NewBuy(at(1, 10), "BTC", USDT(100), USDT(50)),
		NewSell(at(2, 10), "BTC", USDT(70), USDT(70)),
	}
	first := ReviewAsset("BTC", txs, USDT(60))
	second := ReviewAsset("BTC", txs, USDT(60))

	if !first.Realized.Equal(second.Realized) || !first.Quantity.Equal(second.Quantity) ||
		!first.CostBasis.Equal(second.CostBasis) {
		t.Errorf("two identical reviews differ: %+v vs %+v", first, second)
	}
}

func TestReviewAsset_LedgerOrderIndependent(t *testing.T) {
	a := NewBuy(at(1, 10), "BTC", USDT(100), USDT(50))
	b := NewSell(at(2, 10), "BTC", USDT(70), USDT(70))
	c := NewBuy(at(3, 10), "BTC", USDT(90), USDT(90))

	forward := NewLedger()
	forward.Append(a, b, c)
	shuffled := NewLedger()
	shuffled.Append(c, a, b)

	p1 := ReviewAsset("BTC", forward.AssetTransactions("BTC"), USDT(80))
	p2 := ReviewAsset("BTC", shuffled.AssetTransactions("BTC"), USDT(80))

	if !p1.Realized.Equal(p2.Realized) || !p1.Quantity.Equal(p2.Quantity) ||
		!p1.AvgCost.Equal(p2.AvgCost) {
		t.Errorf("insertion order changed the review: %+v vs %+v", p1, p2)
	}
}

func TestPosition_IsDust(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		want bool
	}{
		{"no value no realized", Position{MarketValue: USDT(0), Realized: USDT(0)}, true},
		{"below threshold", Position{MarketValue: USDT(0.009), Realized: USDT(0.005)}, true},
		{"valuable", Position{MarketValue: USDT(5), Realized: USDT(0)}, false},
		{"closed with profit", Position{MarketValue: USDT(0), Realized: USDT(12)}, false},
		{"closed with loss", Position{MarketValue: USDT(0), Realized: USDT(-12)}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.pos.IsDust(); got != tc.want {
				t.Errorf("IsDust() = %v, want %v", got, tc.want)
			}
		})
	}
}
