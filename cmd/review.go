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

type reviewCmd struct {
	offline bool
}

func (*reviewCmd) Name() string     { return "review" }
func (*reviewCmd) Synopsis() string { return "show one asset's full trade history and position" }
func (*reviewCmd) Usage() string {
	return `dcaf review [-offline] <asset>

  Replays every operation of one asset: the average cost after each buy, the
  realized profit of each sell, rejected sells, and the resulting position.
`
}

func (c *reviewCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "Do not fetch prices.")
}

func (c *reviewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one asset symbol")
		return subcommands.ExitUsageError
	}
	asset := f.Arg(0)

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
	price, _ := quotes.Price(asset)

	position := cryptofolio.ReviewAsset(asset, ledger.AssetTransactions(asset), price)
	printMarkdown(renderer.PositionMarkdown(position))
	return subcommands.ExitSuccess
}
