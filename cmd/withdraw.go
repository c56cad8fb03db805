package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/hfmartins/cryptofolio"
)

type withdrawCmd struct {
	amount string
	date   string
	force  bool
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "journal a USDT withdrawal" }
func (*withdrawCmd) Usage() string {
	return `dcaf withdraw -amount <usdt> [-d <date>] [-force]

  Records a cash withdrawal, journaled as a USDT sell at unit price 1.
  A withdrawal exceeding the cash balance is refused unless -force is given.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "amount", "", "USDT amount to withdraw.")
	f.StringVar(&c.date, "d", "", "Timestamp of the operation. Defaults to now.")
	f.BoolVar(&c.force, "force", false, "Journal the withdrawal even without sufficient cash.")
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if err := ledger.CheckFunds(amount); err != nil {
		if !c.force {
			fmt.Fprintf(os.Stderr, "Error: %v (use -force to journal anyway)\n", err)
			return subcommands.ExitFailure
		}
		logger.Warn().Err(err).Msg("journaling anyway")
	}
	return journal(cryptofolio.NewWithdraw(on, amount))
}
