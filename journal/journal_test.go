package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFill(id string, at time.Time) FillRecord {
	return FillRecord{
		OrderID:    id,
		Account:    "SIM-001",
		Instrument: "ESU25",
		Side:       "long",
		Type:       "market",
		Amount:     2,
		Price:      100.5,
		RealizedPL: 0,
		Time:       at,
	}
}

func TestCSVJournalWritesRows(t *testing.T) {
	dir := t.TempDir()
	fillsPath := filepath.Join(dir, "fills.csv")
	equityPath := filepath.Join(dir, "equity.csv")

	j, err := NewCSV(fillsPath, equityPath)
	require.NoError(t, err)

	at := time.Date(2025, 6, 2, 10, 0, 10, 0, time.UTC)
	require.NoError(t, j.RecordFill(sampleFill("ord-1", at)))
	require.NoError(t, j.RecordEquity(EquitySnapshot{
		Time:        at,
		Account:     "SIM-001",
		Balance:     100000,
		Performance: 12.5,
		Equity:      100012.5,
	}))
	require.NoError(t, j.Close())

	ff, err := os.Open(fillsPath)
	require.NoError(t, err)
	defer ff.Close()

	rows, err := csv.NewReader(ff).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2, "header plus one fill")
	assert.Equal(t, "order_id", rows[0][0])
	assert.Equal(t, "ord-1", rows[1][0])
	assert.Equal(t, "100.500000", rows[1][6])

	ef, err := os.Open(equityPath)
	require.NoError(t, err)
	defer ef.Close()

	rows, err = csv.NewReader(ef).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "100012.500000", rows[1][4])
}

func TestSQLiteJournalRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)
	defer j.Close()

	t0 := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordFill(sampleFill("ord-2", t0.Add(time.Minute))))
	require.NoError(t, j.RecordFill(sampleFill("ord-1", t0)))

	// Same order id replaces the earlier row instead of duplicating it.
	amended := sampleFill("ord-1", t0)
	amended.Price = 101
	require.NoError(t, j.RecordFill(amended))

	fills, err := j.Fills()
	require.NoError(t, err)
	require.Len(t, fills, 2)
	assert.Equal(t, "ord-1", fills[0].OrderID)
	assert.Equal(t, 101.0, fills[0].Price)
	assert.Equal(t, "ord-2", fills[1].OrderID)
	assert.True(t, fills[0].Time.Equal(t0))

	require.NoError(t, j.RecordEquity(EquitySnapshot{Time: t0, Account: "SIM-001", Equity: 100000}))
}

func TestNopJournal(t *testing.T) {
	var j Journal = Nop{}
	assert.NoError(t, j.RecordFill(FillRecord{}))
	assert.NoError(t, j.RecordEquity(EquitySnapshot{}))
	assert.NoError(t, j.Close())
}
