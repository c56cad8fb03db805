package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/hfmartins/cryptofolio/renderer"
)

type historyCmd struct{}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "show the replayed cash account" }
func (*historyCmd) Usage() string {
	return `dcaf history

  Replays the whole journal as cash movements (deposits, withdrawals, buy
  debits, sell credits) with the running balance, newest first.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	balance, movements := ledger.CashHistory()
	printMarkdown(renderer.HistoryMarkdown(balance, movements))
	return subcommands.ExitSuccess
}
