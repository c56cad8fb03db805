package renderer

import (
	"fmt"
	"strings"

	"github.com/hfmartins/cryptofolio"
)

// LogMarkdown renders the raw journal with its row indices, newest first.
// The indices are the ones the edit and delete commands accept.
func LogMarkdown(txs []cryptofolio.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Journal\n\n")
	if len(txs) == 0 {
		fmt.Fprintf(&b, "The journal is empty.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| # | Date | Asset | Side | Amount | Price | Quantity |")
	fmt.Fprintln(&b, "|---:|:---|:---|:---|---:|---:|---:|")
	for i := len(txs) - 1; i >= 0; i-- {
		tx := txs[i]
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s |\n",
			i, tx.Date, tx.Asset, tx.Side, tx.Amount, tx.Price, tx.Quantity)
	}
	return b.String()
}
