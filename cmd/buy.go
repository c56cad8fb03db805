package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/hfmartins/cryptofolio"
)

type buyCmd struct {
	asset  string
	amount string
	price  string
	date   string
	noFee  bool
	force  bool
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "journal the purchase of an asset for a USDT amount" }
func (*buyCmd) Usage() string {
	return `dcaf buy -a <asset> -amount <usdt> [-price <usdt>] [-d <date>] [-no-fee] [-force]

  Records a buy in the journal. Without -price the current market price is
  used. The exchange fee is deducted from the received quantity unless
  -no-fee is given. A buy exceeding the cash balance is refused unless
  -force is given.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "a", "", "Asset symbol, e.g. BTC.")
	f.StringVar(&c.amount, "amount", "", "USDT amount to spend.")
	f.StringVar(&c.price, "price", "", "Unit price in USDT. Defaults to the market price.")
	f.StringVar(&c.date, "d", "", "Timestamp of the operation. Defaults to now.")
	f.BoolVar(&c.noFee, "no-fee", false, "Do not apply the exchange fee.")
	f.BoolVar(&c.force, "force", false, "Journal the buy even without sufficient cash.")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tx, status := prepareTrade(cryptofolio.Buy, c.asset, c.amount, c.price, c.date, c.noFee, c.force)
	if status != subcommands.ExitSuccess {
		return status
	}
	return journal(tx)
}

// prepareTrade builds a buy or sell from the shared command flags, resolving
// the market price and checking funds where it applies.
func prepareTrade(side cryptofolio.Side, asset, amount, price, date string, noFee, force bool) (cryptofolio.Transaction, subcommands.ExitStatus) {
	var zero cryptofolio.Transaction
	if asset == "" {
		fmt.Fprintln(os.Stderr, "Error: missing required -a flag")
		return zero, subcommands.ExitUsageError
	}
	on, err := parseDate(date)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return zero, subcommands.ExitUsageError
	}
	usdt, err := parseAmount("amount", amount)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return zero, subcommands.ExitUsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return zero, subcommands.ExitFailure
	}
	ledger, err := loadLedger(openStore(cfg))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return zero, subcommands.ExitFailure
	}

	unit, err := resolvePrice(cfg, asset, price)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return zero, subcommands.ExitFailure
	}

	var tx cryptofolio.Transaction
	if side == cryptofolio.Buy {
		tx = cryptofolio.NewBuy(on, asset, usdt, unit)
	} else {
		tx = cryptofolio.NewSell(on, asset, usdt, unit)
	}
	if !noFee {
		tx = tx.WithFee()
	}

	if side == cryptofolio.Buy && !tx.IsCash() {
		if err := ledger.CheckFunds(tx.Amount); err != nil {
			if !force {
				fmt.Fprintf(os.Stderr, "Error: %v (use -force to journal anyway)\n", err)
				return zero, subcommands.ExitFailure
			}
			logger.Warn().Err(err).Msg("journaling anyway")
		}
	}
	return tx, subcommands.ExitSuccess
}

// resolvePrice returns the flag price when given, the market price otherwise.
func resolvePrice(cfg *cryptofolio.Config, asset, price string) (cryptofolio.Money, error) {
	if price != "" {
		return parseAmount("price", price)
	}
	quotes := cryptofolio.NewQuotes()
	provider := cryptofolio.NewBinanceProvider(cfg.BinanceURL, "", quotes, logger)
	if err := provider.RefreshAll([]string{asset}); err != nil {
		return cryptofolio.Money{}, fmt.Errorf("could not fetch the market price of %s: %w", asset, err)
	}
	unit, ok := quotes.Price(asset)
	if !ok {
		return cryptofolio.Money{}, fmt.Errorf("no market price for %s, use -price", asset)
	}
	return unit, nil
}

// journal validates and appends the transaction.
func journal(tx cryptofolio.Transaction) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := openStore(cfg).Append(tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to journal %q: %v\n", cfg.Journal, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Journaled: %s\n", tx)
	return subcommands.ExitSuccess
}
