package cryptofolio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// journal file column order, first row of every file.
var journalHeader = []string{"date", "asset", "side", "amount_usdt", "price", "quantity"}

// RecordStore persists the transaction journal.
type RecordStore interface {
	// Load returns every valid transaction in file order.
	Load() ([]Transaction, error)
	// Append adds one transaction at the end of the journal.
	Append(tx Transaction) error
	// ReplaceAt overwrites the i-th transaction.
	ReplaceAt(i int, tx Transaction) error
	// DeleteAt removes the i-th transaction.
	DeleteAt(i int) error
}

// CSVStore is the flat-file journal: one header row then one row per
// transaction, chronological by construction but never assumed so.
type CSVStore struct {
	path string
	log  zerolog.Logger
}

func NewCSVStore(path string, log zerolog.Logger) *CSVStore {
	return &CSVStore{path: path, log: log}
}

// Load reads the journal. A missing file is an empty journal. Malformed rows
// are dropped with a warning, they never reach the accounting core.
func (s *CSVStore) Load() ([]Transaction, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open journal %q: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // row length is validated per record
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read journal %q: %w", s.path, err)
	}

	var txs []Transaction
	for i, row := range rows {
		if i == 0 && isHeader(row) {
			continue
		}
		tx, err := parseRecord(row)
		if err != nil {
			s.log.Warn().Str("journal", s.path).Int("line", i+1).Err(err).Msg("dropping malformed row")
			continue
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// Append adds the transaction at the end of the journal, creating the file
// with its header row when needed.
func (s *CSVStore) Append(tx Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	created := false
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		created = true
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("could not open journal %q: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if created {
		if err := w.Write(journalHeader); err != nil {
			return err
		}
	}
	if err := w.Write(record(tx)); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// ReplaceAt overwrites the i-th journaled transaction and rewrites the file.
func (s *CSVStore) ReplaceAt(i int, tx Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	txs, err := s.Load()
	if err != nil {
		return err
	}
	if i < 0 || i >= len(txs) {
		return fmt.Errorf("no transaction at index %d, journal has %d", i, len(txs))
	}
	txs[i] = tx
	return s.rewrite(txs)
}

// DeleteAt removes the i-th journaled transaction and rewrites the file.
func (s *CSVStore) DeleteAt(i int) error {
	txs, err := s.Load()
	if err != nil {
		return err
	}
	if i < 0 || i >= len(txs) {
		return fmt.Errorf("no transaction at index %d, journal has %d", i, len(txs))
	}
	txs = append(txs[:i], txs[i+1:]...)
	return s.rewrite(txs)
}

// rewrite replaces the whole journal atomically via a sibling temp file.
func (s *CSVStore) rewrite(txs []Transaction) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("could not create temp journal: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(journalHeader); err != nil {
		tmp.Close()
		return err
	}
	for _, tx := range txs {
		if err := w.Write(record(tx)); err != nil {
			tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func isHeader(row []string) bool {
	return len(row) > 0 && row[0] == journalHeader[0]
}

func record(tx Transaction) []string {
	return []string{
		tx.Date.String(),
		tx.Asset,
		string(tx.Side),
		tx.Amount.value.String(),
		tx.Price.value.String(),
		tx.Quantity.String(),
	}
}

func parseRecord(row []string) (Transaction, error) {
	if len(row) != len(journalHeader) {
		return Transaction{}, fmt.Errorf("expected %d fields, got %d", len(journalHeader), len(row))
	}
	date, err := ParseDateTime(row[0])
	if err != nil {
		return Transaction{}, err
	}
	asset := normalizeAsset(row[1])
	if asset == "" {
		return Transaction{}, fmt.Errorf("missing asset symbol")
	}
	side, err := ParseSide(row[2])
	if err != nil {
		return Transaction{}, err
	}
	amount, err := ParseMoney(row[3], ReferenceCurrency)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid amount %q: %w", row[3], err)
	}
	price, err := ParseMoney(row[4], ReferenceCurrency)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid price %q: %w", row[4], err)
	}
	quantity, err := ParseQuantity(row[5])
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid quantity %q: %w", row[5], err)
	}
	tx := Transaction{Date: date, Asset: asset, Side: side, Amount: amount, Price: price, Quantity: quantity}
	// price is derivable when the journal came from another tool
	if !tx.Price.IsPositive() && tx.Quantity.IsPositive() {
		tx.Price = tx.Amount.Div(tx.Quantity)
	}
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}
