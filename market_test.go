package cryptofolio

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBinance serves the ticker endpoint for a fixed symbol table.
func fakeBinance(t *testing.T, prices map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/ticker/24hr", r.URL.Path)
		symbol := r.URL.Query().Get("symbol")
		price, ok := prices[symbol]
		if !ok {
			http.Error(w, `{"code":-1121,"msg":"Invalid symbol."}`, http.StatusBadRequest)
			return
		}
		fmt.Fprintf(w, `{"symbol":%q,"lastPrice":%q,"volume":"12345.6"}`, symbol, price)
	}))
}

func TestBinanceProvider_RefreshAll(t *testing.T) {
	srv := fakeBinance(t, map[string]string{
		"BTCUSDT": "43521.12000000",
		"ETHUSDT": "2301.05000000",
		"USDTBRL": "5.40",
	})
	defer srv.Close()

	quotes := NewQuotes()
	provider := NewBinanceProvider(srv.URL, "BRL", quotes, zerolog.Nop())

	require.NoError(t, provider.RefreshAll([]string{"BTC", "ETH", "USDT"}))

	btc, ok := quotes.Price("BTC")
	require.True(t, ok)
	assert.True(t, btc.Equal(USDT(43521.12)), "BTC = %s", btc)

	eth, ok := quotes.Price("ETH")
	require.True(t, ok)
	assert.True(t, eth.Equal(USDT(2301.05)), "ETH = %s", eth)

	rate, ok := quotes.DisplayRate()
	require.True(t, ok)
	assert.Equal(t, "BRL", rate.Currency())
	assert.True(t, rate.Equal(M(5.4, "BRL")), "rate = %s", rate)
}

func TestBinanceProvider_PartialFailureKeepsGoing(t *testing.T) {
	srv := fakeBinance(t, map[string]string{
		"BTCUSDT": "43521.12",
		"USDTBRL": "5.40",
	})
	defer srv.Close()

	quotes := NewQuotes()
	provider := NewBinanceProvider(srv.URL, "BRL", quotes, zerolog.Nop())

	err := provider.RefreshAll([]string{"BTC", "NOPE"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOPE")

	// the failing symbol must not block the others
	btc, ok := quotes.Price("BTC")
	require.True(t, ok)
	assert.True(t, btc.Equal(USDT(43521.12)))

	_, ok = quotes.Price("NOPE")
	assert.False(t, ok)
}

func TestQuotes_ReferenceCurrencyIsAlwaysOne(t *testing.T) {
	quotes := NewQuotes()
	price, ok := quotes.Price("USDT")
	require.True(t, ok)
	assert.True(t, price.Equal(USDT(1)))
}

func TestQuotes_UnknownAsset(t *testing.T) {
	quotes := NewQuotes()
	_, ok := quotes.Price("BTC")
	assert.False(t, ok)
}

func TestQuotes_ConcurrentAccess(t *testing.T) {
	quotes := NewQuotes()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			quotes.Set("BTC", USDT(i))
		}
	}()
	for i := 0; i < 1000; i++ {
		quotes.Price("BTC")
	}
	<-done

	price, ok := quotes.Price("BTC")
	require.True(t, ok)
	assert.True(t, price.Equal(USDT(999)))
}
