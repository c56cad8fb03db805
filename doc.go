// Package cryptofolio tracks a DCA crypto portfolio from a flat transaction
// journal.
//
// Every buy and sell is denominated in USDT and appended to a CSV journal.
// Nothing else is persisted: cash balance, weighted-average-cost positions,
// realized and unrealized profit and allocation percentages are all
// recomputed on demand by pure folds over the full journal, with exact
// decimal arithmetic throughout. Live prices come from the Binance public
// ticker through a concurrent Quotes snapshot that a Refresher keeps warm.
package cryptofolio
