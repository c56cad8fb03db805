package renderer

import (
	"fmt"
	"strings"

	"github.com/hfmartins/cryptofolio"
)

// barWidth is the length of a full allocation bar.
const barWidth = 30

// AllocationMarkdown renders the portfolio distribution with a text bar per
// asset, largest share first.
func AllocationMarkdown(a *cryptofolio.Allocation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Allocation\n\n")
	if len(a.Entries) == 0 {
		fmt.Fprintf(&b, "Nothing to allocate yet.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "- Crypto: %s\n", a.CryptoValue)
	fmt.Fprintf(&b, "- Cash: %s\n", a.Cash)
	fmt.Fprintf(&b, "- Total: **%s**\n\n", a.Total)

	fmt.Fprintln(&b, "| Asset | Quantity | Value | Share | |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|:---|")
	for _, e := range a.Entries {
		fmt.Fprintf(&b, "| %s | %s | %s | %.2f%% | `%s` |\n",
			e.Asset, e.Quantity, e.Value, e.Percent, bar(e.Percent))
	}
	return b.String()
}

// bar draws a share of 100% as a fixed-width block bar.
func bar(percent float64) string {
	filled := int(percent/100*barWidth + 0.5)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}
