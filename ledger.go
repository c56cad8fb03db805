package cryptofolio

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"sort"

	"github.com/shopspring/decimal"
)

// Ledger represents a list of transactions.
//
// In a Ledger transactions are always in chronological order; ties keep
// their insertion order.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{transactions: make([]Transaction, 0)}
}

// Append appends transactions to this ledger and maintains the chronological
// order of transactions.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	l.stableSort()
}

// stableSort sorts the ledger by transaction date. The sort is stable, so
// transactions with the same timestamp keep their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Date.Before(l.transactions[j].Date)
	})
}

func (l *Ledger) Len() int { return len(l.transactions) }

// Transactions returns an iterator that yields each transaction in
// chronological order, with its ledger index.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			accept := len(filters) == 0
			for _, filter := range filters {
				if filter(tx) {
					accept = true
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// ByAsset returns a predicate that filters transactions by asset symbol.
func ByAsset(asset string) func(Transaction) bool {
	asset = normalizeAsset(asset)
	return func(tx Transaction) bool { return tx.Asset == asset }
}

// AssetTransactions returns the chronological transactions of one asset.
func (l *Ledger) AssetTransactions(asset string) []Transaction {
	var txs []Transaction
	for _, tx := range l.Transactions(ByAsset(asset)) {
		txs = append(txs, tx)
	}
	return txs
}

// Assets iterates over the distinct non-cash asset symbols, sorted.
func (l *Ledger) Assets() iter.Seq[string] {
	return func(yield func(string) bool) {
		visited := make(map[string]struct{})
		for _, tx := range l.transactions {
			if !tx.IsCash() {
				visited[tx.Asset] = struct{}{}
			}
		}
		for _, asset := range slices.Sorted(maps.Keys(visited)) {
			if !yield(asset) {
				return
			}
		}
	}
}

// MovementKind classifies how a transaction moves the cash account.
type MovementKind string

const (
	MovementDeposit    MovementKind = "deposit"     // USDT buy, cash in
	MovementWithdrawal MovementKind = "withdrawal"  // USDT sell, cash out
	MovementBuyDebit   MovementKind = "buy-debit"   // crypto buy, cash out
	MovementSellCredit MovementKind = "sell-credit" // crypto sell, cash in
)

// CashMovement is one replayed step of the cash account.
type CashMovement struct {
	Date    DateTime
	Kind    MovementKind
	Asset   string // empty for deposits and withdrawals
	Amount  Money  // signed cash delta
	Balance Money  // balance after this movement
}

func (m CashMovement) String() string {
	if m.Asset == "" {
		return fmt.Sprintf("%s %s %s", m.Date, m.Kind, m.Amount.SignedString())
	}
	return fmt.Sprintf("%s %s %s %s", m.Date, m.Kind, m.Asset, m.Amount.SignedString())
}

// movement classifies one transaction. USDT trades move the cash account
// directly, crypto trades move it in the opposite direction of the asset.
func movement(tx Transaction) (MovementKind, Money) {
	switch {
	case tx.IsCash() && tx.Side == Buy:
		return MovementDeposit, tx.Amount
	case tx.IsCash() && tx.Side == Sell:
		return MovementWithdrawal, tx.Amount.Neg()
	case tx.Side == Buy:
		return MovementBuyDebit, tx.Amount.Neg()
	default:
		return MovementSellCredit, tx.Amount
	}
}

// CashBalance replays the whole ledger and returns the current USDT balance.
// The balance may go negative, the replay never blocks a transaction.
func (l *Ledger) CashBalance() Money {
	balance := M(decimal.Zero, ReferenceCurrency)
	for _, tx := range l.transactions {
		_, delta := movement(tx)
		balance = balance.Add(delta)
	}
	return balance
}

// CashHistory replays the whole ledger and returns the final balance along
// with every intermediate movement, in chronological order.
func (l *Ledger) CashHistory() (Money, []CashMovement) {
	balance := M(decimal.Zero, ReferenceCurrency)
	movements := make([]CashMovement, 0, len(l.transactions))
	for _, tx := range l.transactions {
		kind, delta := movement(tx)
		balance = balance.Add(delta)
		asset := tx.Asset
		if tx.IsCash() {
			asset = ""
		}
		movements = append(movements, CashMovement{
			Date:    tx.Date,
			Kind:    kind,
			Asset:   asset,
			Amount:  delta,
			Balance: balance,
		})
	}
	return balance, movements
}

// CheckFunds reports whether the cash account covers an upcoming debit.
// It is advisory only: callers may still journal the transaction.
func (l *Ledger) CheckFunds(amount Money) error {
	balance := l.CashBalance()
	if balance.LessThan(amount) {
		return fmt.Errorf("insufficient funds: balance %s, needed %s", balance, amount)
	}
	return nil
}

// Holding replays the buys and sells of one asset and returns the quantity
// currently held. Used to resolve "sell all".
func (l *Ledger) Holding(asset string) Quantity {
	q := Q(decimal.Zero)
	for _, tx := range l.Transactions(ByAsset(asset)) {
		switch tx.Side {
		case Buy:
			q = q.Add(tx.Quantity)
		case Sell:
			q = q.Sub(tx.Quantity)
		}
	}
	return q
}

// OldestTransactionDate returns the date of the earliest transaction in the
// ledger, or the zero DateTime when the ledger is empty.
func (l *Ledger) OldestTransactionDate() DateTime {
	if len(l.transactions) == 0 {
		return DateTime{}
	}
	return l.transactions[0].Date
}

// NewestTransactionDate returns the date of the latest transaction in the
// ledger, or the zero DateTime when the ledger is empty.
func (l *Ledger) NewestTransactionDate() DateTime {
	if len(l.transactions) == 0 {
		return DateTime{}
	}
	return l.transactions[len(l.transactions)-1].Date
}
