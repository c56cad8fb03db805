package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/hfmartins/cryptofolio"
)

type sellCmd struct {
	asset  string
	amount string
	price  string
	date   string
	all    bool
	noFee  bool
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "journal the sale of an asset for a USDT amount" }
func (*sellCmd) Usage() string {
	return `dcaf sell -a <asset> (-amount <usdt> | -all) [-price <usdt>] [-d <date>] [-no-fee]

  Records a sell in the journal. With -all the whole current holding is sold
  at the resolved price. Without -price the current market price is used.
  The exchange fee is deducted from the USDT proceeds unless -no-fee is
  given.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "a", "", "Asset symbol, e.g. BTC.")
	f.StringVar(&c.amount, "amount", "", "USDT amount to sell for.")
	f.StringVar(&c.price, "price", "", "Unit price in USDT. Defaults to the market price.")
	f.StringVar(&c.date, "d", "", "Timestamp of the operation. Defaults to now.")
	f.BoolVar(&c.all, "all", false, "Sell the whole current holding.")
	f.BoolVar(&c.noFee, "no-fee", false, "Do not apply the exchange fee.")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.all {
		return c.sellAll()
	}
	tx, status := prepareTrade(cryptofolio.Sell, c.asset, c.amount, c.price, c.date, c.noFee, false)
	if status != subcommands.ExitSuccess {
		return status
	}
	return journal(tx)
}

// sellAll resolves the quantity from the current holding and the amount from
// the resolved price, then journals the sell with the exact quantity.
func (c *sellCmd) sellAll() subcommands.ExitStatus {
	if c.asset == "" {
		fmt.Fprintln(os.Stderr, "Error: missing required -a flag")
		return subcommands.ExitUsageError
	}
	if c.amount != "" {
		fmt.Fprintln(os.Stderr, "Error: -amount and -all cannot be used together")
		return subcommands.ExitUsageError
	}
	on, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	ledger, err := loadLedger(openStore(cfg))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	quantity := ledger.Holding(c.asset)
	if !quantity.IsPositive() {
		fmt.Fprintf(os.Stderr, "Error: nothing to sell, current %s holding is %s\n", c.asset, quantity)
		return subcommands.ExitFailure
	}
	unit, err := resolvePrice(cfg, c.asset, c.price)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	// Build the sell from the exact holding, the amount derives from it.
	tx := cryptofolio.NewSell(on, c.asset, unit.Mul(quantity), unit)
	tx.Quantity = quantity
	if !c.noFee {
		tx = tx.WithFee()
	}
	return journal(tx)
}
