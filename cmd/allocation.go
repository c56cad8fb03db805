package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/hfmartins/cryptofolio"
	"github.com/hfmartins/cryptofolio/renderer"
)

type allocationCmd struct {
	offline bool
}

func (*allocationCmd) Name() string     { return "allocation" }
func (*allocationCmd) Synopsis() string { return "show the portfolio distribution by market value" }
func (*allocationCmd) Usage() string {
	return `dcaf allocation [-offline]

  Shows each asset's share of the total portfolio value, cash included,
  largest first.
`
}

func (c *allocationCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "Do not fetch prices.")
}

func (c *allocationCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	quotes := cryptofolio.NewQuotes()
	if !c.offline {
		quotes = refreshQuotes(cfg, ledger)
	}

	printMarkdown(renderer.AllocationMarkdown(cryptofolio.NewAllocation(ledger, quotes)))
	return subcommands.ExitSuccess
}
