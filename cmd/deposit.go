package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/hfmartins/cryptofolio"
)

type depositCmd struct {
	amount string
	date   string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "journal a USDT deposit" }
func (*depositCmd) Usage() string {
	return `dcaf deposit -amount <usdt> [-d <date>]

  Records a cash deposit, journaled as a USDT buy at unit price 1.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "amount", "", "USDT amount to deposit.")
	f.StringVar(&c.date, "d", "", "Timestamp of the operation. Defaults to now.")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	amount, err := parseAmount("amount", c.amount)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	return journal(cryptofolio.NewDeposit(on, amount))
}
