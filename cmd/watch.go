package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"
	"github.com/hfmartins/cryptofolio"
	"github.com/hfmartins/cryptofolio/renderer"
)

type watchCmd struct{}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "keep the portfolio valuation on screen" }
func (*watchCmd) Usage() string {
	return `dcaf watch

  Refreshes prices on the configured interval and re-renders the portfolio
  valuation after every refresh, until interrupted.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {}

func (c *watchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	interval, err := cfg.Interval()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	quotes := cryptofolio.NewQuotes()
	provider := cryptofolio.NewBinanceProvider(cfg.BinanceURL, cfg.DisplayCurrency, quotes, logger)
	refresher, err := cryptofolio.NewRefresher(provider, trackedAssets(cfg, ledger), interval, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	refresher.OnRefresh = func() {
		valuation := cryptofolio.NewValuation(ledger, quotes)
		rate, _ := quotes.DisplayRate()
		printMarkdown(renderer.ValuationMarkdown(valuation, rate))
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	refresher.Start()
	<-stop
	refresher.Stop()
	return subcommands.ExitSuccess
}
