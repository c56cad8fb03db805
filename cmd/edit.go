package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/hfmartins/cryptofolio"
)

type editCmd struct {
	index  int
	amount string
	price  string
	date   string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "amend a journaled transaction" }
func (*editCmd) Usage() string {
	return `dcaf edit -i <index> [-amount <usdt>] [-price <usdt>] [-d <date>]

  Overwrites the amount, price or date of one journal row. Asset and side
  are fixed: delete the row and journal a new one to change them. The
  quantity is recomputed as amount/price. Use "dcaf tx" to find the index.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.index, "i", -1, "Journal row index to amend.")
	f.StringVar(&c.amount, "amount", "", "New USDT amount.")
	f.StringVar(&c.price, "price", "", "New unit price in USDT.")
	f.StringVar(&c.date, "d", "", "New timestamp.")
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.index < 0 {
		fmt.Fprintln(os.Stderr, "Error: missing required -i flag")
		return subcommands.ExitUsageError
	}
	if c.amount == "" && c.price == "" && c.date == "" {
		fmt.Fprintln(os.Stderr, "Error: nothing to change")
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	store := openStore(cfg)
	txs, err := store.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if c.index >= len(txs) {
		fmt.Fprintf(os.Stderr, "Error: no transaction at index %d, journal has %d\n", c.index, len(txs))
		return subcommands.ExitFailure
	}
	tx := txs[c.index]

	if c.date != "" {
		on, err := cryptofolio.ParseDateTime(c.date)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
		tx.Date = on
	}
	if c.amount != "" {
		amount, err := parseAmount("amount", c.amount)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
		tx.Amount = amount
	}
	if c.price != "" {
		price, err := parseAmount("price", c.price)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
		tx.Price = price
	}
	tx.Quantity = tx.Amount.DivPrice(tx.Price)

	if err := store.ReplaceAt(c.index, tx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Amended #%d: %s\n", c.index, tx)
	return subcommands.ExitSuccess
}
