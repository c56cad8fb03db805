package renderer

import (
	"bytes"
	"fmt"

	"github.com/hfmartins/cryptofolio"
	md "github.com/nao1215/markdown"
)

// HistoryMarkdown renders the replayed cash account, newest movement first.
func HistoryMarkdown(balance cryptofolio.Money, movements []cryptofolio.CashMovement) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Cash history")
	doc.PlainText(fmt.Sprintf("Balance: **%s**", balance))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Movement", "Asset", "Amount", "Balance"},
		Rows:   [][]string{},
	}
	for i := len(movements) - 1; i >= 0; i-- {
		m := movements[i]
		table.Rows = append(table.Rows, []string{
			m.Date.String(),
			string(m.Kind),
			m.Asset,
			m.Amount.SignedString(),
			m.Balance.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
