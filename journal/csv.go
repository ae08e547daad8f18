package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSVJournal struct {
	fills  *csv.Writer
	equity *csv.Writer
	ff, ef *os.File
}

func NewCSV(fillsPath, equityPath string) (*CSVJournal, error) {
	ff, err := os.Create(fillsPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		ff.Close()
		return nil, err
	}

	fw := csv.NewWriter(ff)
	ew := csv.NewWriter(ef)

	if err := fw.Write([]string{"order_id", "account", "instrument", "side", "type", "amount", "price", "realized_pl", "time"}); err != nil {
		return nil, err
	}
	if err := ew.Write([]string{"time", "account", "balance", "performance", "equity"}); err != nil {
		return nil, err
	}

	fw.Flush()
	if err := fw.Error(); err != nil {
		return nil, err
	}
	ew.Flush()
	if err := ew.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{fw, ew, ff, ef}, nil
}

func (j *CSVJournal) RecordFill(r FillRecord) error {
	err := j.fills.Write([]string{
		r.OrderID,
		r.Account,
		r.Instrument,
		r.Side,
		r.Type,
		f(r.Amount),
		f(r.Price),
		f(r.RealizedPL),
		r.Time.Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}

	j.fills.Flush()
	return j.fills.Error()
}

func (j *CSVJournal) RecordEquity(e EquitySnapshot) error {
	err := j.equity.Write([]string{
		e.Time.Format(time.RFC3339Nano),
		e.Account,
		f(e.Balance),
		f(e.Performance),
		f(e.Equity),
	})
	if err != nil {
		return err
	}

	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSVJournal) Close() error {
	j.fills.Flush()
	if err := j.fills.Error(); err != nil {
		return err
	}
	j.equity.Flush()
	if err := j.equity.Error(); err != nil {
		return err
	}

	if err := j.ff.Close(); err != nil {
		return err
	}
	return j.ef.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
