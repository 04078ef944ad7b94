// Package ledger persists the deduplicated trade ledger as a CSV file.
package ledger

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/mkrasov/folio/internal/domain"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// header is the fixed column order of the persisted ledger. Save always
// writes it, even for an empty record set.
var header = []string{"datetime", "symbol", "side", "price", "quantity", "quoteQty", "fee", "feeAsset", "tradeId"}

// CSVStore reads and writes the trade ledger at a fixed path. Writes are
// whole-file rewrites; concurrent writers must be serialized by the caller.
type CSVStore struct {
	path string
}

// NewCSVStore creates a store backed by the file at path.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Load reads all trade records from disk. A missing file is a valid empty
// ledger; a malformed file is a structural failure.
func (s *CSVStore) Load() ([]domain.TradeRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "open trade ledger")
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "read trade ledger %s", s.path)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	records := make([]domain.TradeRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec, err := decodeRow(row)
		if err != nil {
			return nil, errors.Wrapf(err, "malformed trade ledger %s", s.path)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Save rewrites the whole ledger file, header first. An empty record set
// produces a header-only file.
func (s *CSVStore) Save(records []domain.TradeRecord) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create ledger dir")
		}
	}

	f, err := os.Create(s.path)
	if err != nil {
		return errors.Wrap(err, "create trade ledger")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return errors.Wrap(err, "write ledger header")
	}
	for _, rec := range records {
		if err := w.Write(encodeRow(rec)); err != nil {
			return errors.Wrap(err, "write ledger row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(err, "flush trade ledger")
	}
	return f.Close()
}

// Merge combines previously stored and newly fetched records by
// (symbol, tradeId) identity. Incoming wins on collision so a re-fetch can
// correct an earlier record. The result is sorted by timestamp ascending;
// ties keep the existing-then-incoming relative order.
func Merge(existing, incoming []domain.TradeRecord) []domain.TradeRecord {
	byKey := make(map[string]int, len(existing)+len(incoming))
	merged := make([]domain.TradeRecord, 0, len(existing)+len(incoming))

	for _, rec := range existing {
		if i, ok := byKey[rec.Key()]; ok {
			merged[i] = rec
			continue
		}
		byKey[rec.Key()] = len(merged)
		merged = append(merged, rec)
	}
	for _, rec := range incoming {
		if i, ok := byKey[rec.Key()]; ok {
			merged[i] = rec
			continue
		}
		byKey[rec.Key()] = len(merged)
		merged = append(merged, rec)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Time.Before(merged[j].Time)
	})
	return merged
}

func encodeRow(rec domain.TradeRecord) []string {
	return []string{
		rec.Time.Format(domain.TimeLayout),
		rec.Symbol,
		string(rec.Side),
		rec.Price.String(),
		rec.Quantity.String(),
		rec.QuoteQuantity.String(),
		rec.Fee.String(),
		rec.FeeAsset,
		rec.TradeID,
	}
}

func decodeRow(row []string) (domain.TradeRecord, error) {
	if len(row) != len(header) {
		return domain.TradeRecord{}, errors.Errorf("expected %d columns, got %d", len(header), len(row))
	}

	ts, err := time.ParseInLocation(domain.TimeLayout, row[0], time.Local)
	if err != nil {
		return domain.TradeRecord{}, errors.Wrap(err, "parse datetime")
	}

	var dec [4]decimal.Decimal
	for i, col := range []int{3, 4, 5, 6} {
		dec[i], err = decimal.NewFromString(row[col])
		if err != nil {
			return domain.TradeRecord{}, errors.Wrapf(err, "parse column %s", header[col])
		}
	}

	return domain.TradeRecord{
		Time:          ts,
		Symbol:        row[1],
		Side:          domain.Side(row[2]),
		Price:         dec[0],
		Quantity:      dec[1],
		QuoteQuantity: dec[2],
		Fee:           dec[3],
		FeeAsset:      row[7],
		TradeID:       row[8],
	}, nil
}
