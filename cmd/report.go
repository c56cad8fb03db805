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

type reportCmd struct {
	offline bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "show the full portfolio valuation" }
func (*reportCmd) Usage() string {
	return `dcaf report [-offline]

  Replays the whole journal and shows every position at the current market
  prices: quantity, average cost, cost basis, market value, unrealized and
  realized profit, plus the cash balance and the portfolio totals.
  With -offline no price is fetched and market values degrade to zero.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "Do not fetch prices.")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	valuation := cryptofolio.NewValuation(ledger, quotes)
	rate, _ := quotes.DisplayRate()
	printMarkdown(renderer.ValuationMarkdown(valuation, rate))
	return subcommands.ExitSuccess
}
