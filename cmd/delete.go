package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type deleteCmd struct {
	index int
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "remove a journaled transaction" }
func (*deleteCmd) Usage() string {
	return `dcaf delete -i <index>

  Removes one journal row. Use "dcaf tx" to find the index.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.index, "i", -1, "Journal row index to remove.")
}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.index < 0 {
		fmt.Fprintln(os.Stderr, "Error: missing required -i flag")
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
	if err := store.DeleteAt(c.index); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted #%d: %s\n", c.index, tx)
	return subcommands.ExitSuccess
}
