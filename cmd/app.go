// Package cmd implements the CLI application to manage the crypto journal.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/google/subcommands"
	"github.com/hfmartins/cryptofolio"
	"github.com/rs/zerolog"
)

// Commands lists every subcommand. A main package registers them all and
// executes the user-selected one.
var Commands = []subcommands.Command{
	&buyCmd{},
	&sellCmd{},
	&depositCmd{},
	&withdrawCmd{},
	&reportCmd{},
	&allocationCmd{},
	&reviewCmd{},
	&historyCmd{},
	&txCmd{},
	&editCmd{},
	&deleteCmd{},
	&watchCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "cryptofolio.yaml", "Path to the configuration file")
var journalFile = flag.String("journal", "", "Override the journal file from the configuration")

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
	With().Timestamp().Logger().Level(zerolog.InfoLevel)

// loadConfig reads the app configuration, applying the -journal override.
func loadConfig() (*cryptofolio.Config, error) {
	cfg, err := cryptofolio.LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	if *journalFile != "" {
		cfg.Journal = *journalFile
	}
	return cfg, nil
}

func openStore(cfg *cryptofolio.Config) *cryptofolio.CSVStore {
	return cryptofolio.NewCSVStore(cfg.Journal, logger)
}

// loadLedger reads the whole journal into a sorted ledger.
func loadLedger(store cryptofolio.RecordStore) (*cryptofolio.Ledger, error) {
	txs, err := store.Load()
	if err != nil {
		return nil, err
	}
	ledger := cryptofolio.NewLedger()
	ledger.Append(txs...)
	return ledger, nil
}

// trackedAssets merges the configured symbols with the ones actually present
// in the ledger, so a report never misses a price.
func trackedAssets(cfg *cryptofolio.Config, ledger *cryptofolio.Ledger) []string {
	assets := slices.Clone(cfg.Assets)
	for asset := range ledger.Assets() {
		if !slices.Contains(assets, asset) {
			assets = append(assets, asset)
		}
	}
	return assets
}

// refreshQuotes fetches the latest prices once, best effort. A partial
// refresh is reported but never fatal: the report degrades to zero prices.
func refreshQuotes(cfg *cryptofolio.Config, ledger *cryptofolio.Ledger) *cryptofolio.Quotes {
	quotes := cryptofolio.NewQuotes()
	provider := cryptofolio.NewBinanceProvider(cfg.BinanceURL, cfg.DisplayCurrency, quotes, logger)
	if err := provider.RefreshAll(trackedAssets(cfg, ledger)); err != nil {
		logger.Warn().Err(err).Msg("some prices could not be refreshed")
	}
	return quotes
}

// parseDate parses the -d flag, defaulting to now.
func parseDate(s string) (cryptofolio.DateTime, error) {
	if s == "" {
		return cryptofolio.Now(), nil
	}
	return cryptofolio.ParseDateTime(s)
}

// parseAmount parses a positive USDT amount from a flag value.
func parseAmount(name, s string) (cryptofolio.Money, error) {
	if s == "" {
		return cryptofolio.Money{}, fmt.Errorf("missing required -%s flag", name)
	}
	m, err := cryptofolio.ParseMoney(s, cryptofolio.ReferenceCurrency)
	if err != nil {
		return cryptofolio.Money{}, fmt.Errorf("invalid -%s value %q: %w", name, s, err)
	}
	if !m.IsPositive() {
		return cryptofolio.Money{}, fmt.Errorf("-%s must be positive, got %s", name, s)
	}
	return m, nil
}
