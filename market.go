package cryptofolio

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Quotes is a concurrent snapshot of the latest known prices, in USDT.
// Prices are set one at a time so a partially failed refresh still leaves
// the successful assets up to date.
type Quotes struct {
	mu          sync.RWMutex
	prices      map[string]Money
	displayRate Money // one USDT in the display currency
	updatedAt   time.Time
}

func NewQuotes() *Quotes {
	return &Quotes{prices: make(map[string]Money)}
}

// Price returns the latest known price of the asset. The reference currency
// is always worth exactly 1.
func (q *Quotes) Price(asset string) (Money, bool) {
	asset = normalizeAsset(asset)
	if asset == ReferenceCurrency {
		return USDT(1), true
	}
	q.mu.RLock()
	defer q.mu.RUnlock()
	p, ok := q.prices[asset]
	return p, ok
}

func (q *Quotes) Set(asset string, price Money) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.prices[normalizeAsset(asset)] = price
	q.updatedAt = time.Now()
}

// DisplayRate returns the USDT price in the display currency, if known.
func (q *Quotes) DisplayRate() (Money, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.displayRate, !q.displayRate.IsZero()
}

func (q *Quotes) SetDisplayRate(rate Money) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.displayRate = rate
	q.updatedAt = time.Now()
}

// UpdatedAt returns the time of the last successful price write.
func (q *Quotes) UpdatedAt() time.Time {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.updatedAt
}

// PriceSource refreshes a Quotes snapshot from a market data provider.
type PriceSource interface {
	// RefreshAll fetches the latest price of every given asset. It returns
	// nil only when every asset and the display rate refreshed.
	RefreshAll(assets []string) error
}

// DefaultBinanceURL is the public Binance REST endpoint.
const DefaultBinanceURL = "https://api.binance.com"

// BinanceProvider fetches last-trade prices from the Binance public ticker.
type BinanceProvider struct {
	client  *http.Client
	baseURL string
	display string // display currency symbol, e.g. "BRL"
	quotes  *Quotes
	log     zerolog.Logger
}

func NewBinanceProvider(baseURL, displayCurrency string, quotes *Quotes, log zerolog.Logger) *BinanceProvider {
	if baseURL == "" {
		baseURL = DefaultBinanceURL
	}
	return &BinanceProvider{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		display: displayCurrency,
		quotes:  quotes,
		log:     log,
	}
}

// RefreshAll fetches every asset's USDT price plus the display-currency rate.
// Failures are isolated per asset: the rest of the snapshot still updates.
func (p *BinanceProvider) RefreshAll(assets []string) error {
	var errs error
	for _, asset := range assets {
		asset = normalizeAsset(asset)
		if asset == ReferenceCurrency {
			continue
		}
		last, err := p.lastPrice(asset + ReferenceCurrency)
		if err != nil {
			p.log.Warn().Str("asset", asset).Err(err).Msg("price refresh failed")
			errs = errors.Join(errs, fmt.Errorf("could not refresh %s: %w", asset, err))
			continue
		}
		p.quotes.Set(asset, USDT(last))
	}
	if p.display != "" {
		rate, err := p.lastPrice(ReferenceCurrency + p.display)
		if err != nil {
			p.log.Warn().Str("currency", p.display).Err(err).Msg("display rate refresh failed")
			errs = errors.Join(errs, fmt.Errorf("could not refresh %s rate: %w", p.display, err))
		} else {
			p.quotes.SetDisplayRate(M(rate, p.display))
		}
	}
	return errs
}

// lastPrice fetches the last traded price of a Binance symbol. Binance
// serializes prices as JSON strings, which parse into exact decimals.
func (p *BinanceProvider) lastPrice(symbol string) (decimal.Decimal, error) {
	addr := fmt.Sprintf("%s/api/v3/ticker/24hr?symbol=%s", p.baseURL, symbol)
	var jobj any
	if err := jwget(p.client, addr, &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("error in wget %q: %w", symbol, err)
	}
	path := "$.lastPrice"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error parsing %q: %q %w", symbol, path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	s, ok := jval.(string)
	if !ok {
		return decimal.Zero, fmt.Errorf("error parsing %q: %q %s %v", symbol, path, "not a string", jval)
	}
	val, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error parsing %q: invalid price %q: %w", symbol, s, err)
	}
	if !val.IsPositive() {
		return decimal.Zero, fmt.Errorf("empty price for %s", symbol)
	}
	return val, nil
}
