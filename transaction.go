package cryptofolio

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ReferenceCurrency is the currency every journal amount is denominated in.
// Cash deposits and withdrawals are recorded as trades of this symbol at a
// fixed unit price of 1.
const ReferenceCurrency = "USDT"

// TradeFee is the exchange fee rate applied when recording a crypto trade.
// It adjusts the recorded transaction (buy: smaller quantity, sell: smaller
// proceeds) and is never part of the accounting fold itself.
var TradeFee = decimal.NewFromFloat(0.001)

// Side is the direction of a transaction.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// ParseSide parses the journal representation of a side.
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToLower(strings.TrimSpace(s))) {
	case Buy:
		return Buy, nil
	case Sell:
		return Sell, nil
	}
	return "", fmt.Errorf("invalid side %q", s)
}

// Transaction is a single journal entry: a buy or a sell of one asset for a
// USDT amount. Deposits and withdrawals are buys and sells of USDT itself.
type Transaction struct {
	Date     DateTime
	Asset    string
	Side     Side
	Amount   Money // USDT notional of the operation
	Price    Money // unit price in USDT
	Quantity Quantity
}

// NewBuy records a purchase of quantity=amount/price.
func NewBuy(on DateTime, asset string, amount, price Money) Transaction {
	return Transaction{
		Date:     on,
		Asset:    normalizeAsset(asset),
		Side:     Buy,
		Amount:   amount,
		Price:    price,
		Quantity: amount.DivPrice(price),
	}
}

// NewSell records a sale of quantity=amount/price.
func NewSell(on DateTime, asset string, amount, price Money) Transaction {
	tx := NewBuy(on, asset, amount, price)
	tx.Side = Sell
	return tx
}

// NewDeposit records a cash deposit as a USDT buy at unit price 1.
func NewDeposit(on DateTime, amount Money) Transaction {
	return NewBuy(on, ReferenceCurrency, amount, USDT(1))
}

// NewWithdraw records a cash withdrawal as a USDT sell at unit price 1.
func NewWithdraw(on DateTime, amount Money) Transaction {
	return NewSell(on, ReferenceCurrency, amount, USDT(1))
}

func normalizeAsset(asset string) string {
	return strings.ToUpper(strings.TrimSpace(asset))
}

// IsCash reports whether the transaction moves the reference currency itself.
func (t Transaction) IsCash() bool { return t.Asset == ReferenceCurrency }

// WithFee returns a copy with the exchange fee applied. Buys keep their full
// cost but receive fewer units, sells yield smaller proceeds. Cash movements
// carry no fee.
func (t Transaction) WithFee() Transaction {
	if t.IsCash() {
		return t
	}
	keep := Q(decimal.NewFromInt(1).Sub(TradeFee))
	switch t.Side {
	case Buy:
		t.Quantity = t.Quantity.Mul(keep)
	case Sell:
		t.Amount = t.Amount.Mul(keep)
	}
	return t
}

// Validate reports the first reason the transaction cannot be journaled.
func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("missing transaction date")
	}
	if t.Asset == "" {
		return fmt.Errorf("missing asset symbol")
	}
	if t.Side != Buy && t.Side != Sell {
		return fmt.Errorf("invalid side %q", t.Side)
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", t.Amount)
	}
	if !t.Price.IsPositive() {
		return fmt.Errorf("price must be positive, got %s", t.Price)
	}
	if !t.Quantity.IsPositive() {
		return fmt.Errorf("quantity must be positive, got %s", t.Quantity)
	}
	return nil
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s %s %s %s @ %s", t.Date, t.Side, t.Quantity, t.Asset, t.Price)
}

// Equal compares every field, used by the edit and delete commands to make
// sure the journal row they target is the one the user saw.
func (t Transaction) Equal(o Transaction) bool {
	return t.Date.Equal(o.Date) && t.Asset == o.Asset && t.Side == o.Side &&
		t.Amount.Equal(o.Amount) && t.Price.Equal(o.Price) && t.Quantity.Equal(o.Quantity)
}
