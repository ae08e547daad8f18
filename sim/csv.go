package sim

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
)

// CSVDataset streams ticks from a CSV file. Supported layouts:
//
//	time,instrument,bid,ask
//	time,instrument,bid,ask,last
//	time,instrument,bid,ask,last,bid_size,ask_size,volume
//
// Times are RFC3339. A header row is detected by the literal "time" in the
// first column. Files ending in .xz are decompressed transparently.
type CSVDataset struct {
	f      *os.File
	reader *csv.Reader

	pending []string // first data row when the file has no header
}

func OpenCSV(path string) (*CSVDataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var src io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open xz dataset: %w", err)
		}
		src = xr
	}

	r := csv.NewReader(src)
	r.FieldsPerRecord = -1

	ds := &CSVDataset{f: f, reader: r}

	first, err := r.Read()
	if err == io.EOF {
		return ds, nil
	}
	if err != nil {
		f.Close()
		return nil, err
	}
	if len(first) == 0 || !strings.EqualFold(strings.TrimSpace(first[0]), "time") {
		ds.pending = first
	}
	return ds, nil
}

func (d *CSVDataset) Next(ctx context.Context) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}

	row := d.pending
	d.pending = nil

	if row == nil {
		var err error
		row, err = d.reader.Read()
		if err == io.EOF {
			return Record{}, ErrExhausted
		}
		if err != nil {
			return Record{}, err
		}
	}

	return parseRow(row)
}

func (d *CSVDataset) Close() error {
	return d.f.Close()
}

func parseRow(row []string) (Record, error) {
	if len(row) < 4 {
		return Record{}, fmt.Errorf("bad row (need at least time,instrument,bid,ask): %v", row)
	}

	t, err := time.Parse(time.RFC3339, strings.TrimSpace(row[0]))
	if err != nil {
		return Record{}, fmt.Errorf("bad time %q: %w", row[0], err)
	}

	rec := Record{
		Time:       t,
		Instrument: strings.TrimSpace(row[1]),
	}

	floats := []*float64{&rec.Bid, &rec.Ask, &rec.Last, &rec.BidSize, &rec.AskSize, &rec.Volume}
	for i, dst := range floats {
		col := i + 2
		if col >= len(row) || strings.TrimSpace(row[col]) == "" {
			break
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
		if err != nil {
			return Record{}, fmt.Errorf("bad column %d %q: %w", col, row[col], err)
		}
		*dst = v
	}

	if rec.Last == 0 {
		rec.Last = (rec.Bid + rec.Ask) / 2
	}
	return rec, nil
}
