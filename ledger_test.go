package cryptofolio

import (
	"testing"
)

func TestLedger_CashHistory(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		NewDeposit(at(1, 9), USDT(1000)),
		NewBuy(at(2, 9), "BTC", USDT(300), USDT(100)),
		NewSell(at(3, 9), "BTC", USDT(150), USDT(150)),
		NewWithdraw(at(4, 9), USDT(100)),
	)

	balance, movements := ledger.CashHistory()
	if want := USDT(750); !balance.Equal(want) {
		t.Fatalf("balance = %s, want %s", balance, want)
	}

	want := []struct {
		kind    MovementKind
		asset   string
		amount  Money
		balance Money
	}{
		{MovementDeposit, "", USDT(1000), USDT(1000)},
		{MovementBuyDebit, "BTC", USDT(-300), USDT(700)},
		{MovementSellCredit, "BTC", USDT(150), USDT(850)},
		{MovementWithdrawal, "", USDT(-100), USDT(750)},
	}
	if len(movements) != len(want) {
		t.Fatalf("got %d movements, want %d", len(movements), len(want))
	}
	for i, w := range want {
		m := movements[i]
		if m.Kind != w.kind || m.Asset != w.asset || !m.Amount.Equal(w.amount) || !m.Balance.Equal(w.balance) {
			t.Errorf("movement[%d] = %+v, want %+v", i, m, w)
		}
	}
}

func TestLedger_CashBalanceMayGoNegative(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(NewBuy(at(1, 9), "BTC", USDT(300), USDT(100)))

	if want := USDT(-300); !ledger.CashBalance().Equal(want) {
		t.Errorf("CashBalance() = %s, want %s", ledger.CashBalance(), want)
	}
}

func TestLedger_AppendSortsByDate(t *testing.T) {
	ledger := NewLedger()
	late := NewDeposit(at(5, 9), USDT(1))
	early := NewDeposit(at(1, 9), USDT(2))
	ledger.Append(late)
	ledger.Append(early)

	if got := ledger.OldestTransactionDate(); !got.Equal(early.Date) {
		t.Errorf("OldestTransactionDate() = %s, want %s", got, early.Date)
	}
	if got := ledger.NewestTransactionDate(); !got.Equal(late.Date) {
		t.Errorf("NewestTransactionDate() = %s, want %s", got, late.Date)
	}
}

func TestLedger_StableSortKeepsTieOrder(t *testing.T) {
	ledger := NewLedger()
	first := NewBuy(at(1, 9), "BTC", USDT(10), USDT(10))
	second := NewSell(at(1, 9), "BTC", USDT(5), USDT(5))
	ledger.Append(first, second)

	var got []Side
	for _, tx := range ledger.Transactions() {
		got = append(got, tx.Side)
	}
	if len(got) != 2 || got[0] != Buy || got[1] != Sell {
		t.Errorf("tie order = %v, want [buy sell]", got)
	}
}

func TestLedger_Assets(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		NewDeposit(at(1, 9), USDT(1000)),
		NewBuy(at(2, 9), "eth", USDT(10), USDT(10)),
		NewBuy(at(3, 9), "BTC", USDT(10), USDT(10)),
		NewSell(at(4, 9), "ETH", USDT(5), USDT(5)),
	)

	var assets []string
	for a := range ledger.Assets() {
		assets = append(assets, a)
	}
	// sorted, normalized, cash excluded
	if len(assets) != 2 || assets[0] != "BTC" || assets[1] != "ETH" {
		t.Errorf("Assets() = %v, want [BTC ETH]", assets)
	}
}

func TestLedger_CheckFunds(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(NewDeposit(at(1, 9), USDT(100)))

	if err := ledger.CheckFunds(USDT(100)); err != nil {
		t.Errorf("CheckFunds(100) = %v, want nil", err)
	}
	if err := ledger.CheckFunds(USDT(100.01)); err == nil {
		t.Error("CheckFunds(100.01) = nil, want error")
	}
}

func TestLedger_Holding(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(
		NewBuy(at(1, 9), "BTC", USDT(100), USDT(50)), // 2 units
		NewSell(at(2, 9), "BTC", USDT(30), USDT(60)), // 0.5 unit
	)

	if want := Q(1.5); !ledger.Holding("BTC").Equal(want) {
		t.Errorf("Holding(BTC) = %s, want %s", ledger.Holding("BTC"), want)
	}
	if !ledger.Holding("ETH").IsZero() {
		t.Errorf("Holding(ETH) = %s, want 0", ledger.Holding("ETH"))
	}
}
