package codex

import (
	"github.com/tidwall/gjson"
)

// BarSeries is the column-oriented candle data getBars returns: one array
// per field, indexed by candle. Numeric columns arrive as a mix of
// numbers and strings, so values are kept untyped until rendered.
type BarSeries struct {
	data gjson.Result
}

func newBarSeries(raw []byte) *BarSeries {
	return &BarSeries{data: gjson.ParseBytes(raw)}
}

// barColumns maps output column names to getBars field names, in output
// order. The first five are critical: a candle missing any of them is
// dropped.
var barColumns = []struct {
	name string
	key  string
}{
	{"timestamp", "t"},
	{"open", "o"},
	{"high", "h"},
	{"low", "l"},
	{"close", "c"},
	{"volume", "volume"},
	{"buyVolume", "buyVolume"},
	{"sellVolume", "sellVolume"},
	{"buyers", "buyers"},
	{"sellers", "sellers"},
	{"buys", "buys"},
	{"sells", "sells"},
	{"traders", "traders"},
	{"transactions", "transactions"},
}

const criticalColumns = 5

// Header returns the output column names.
func (b *BarSeries) Header() []string {
	header := make([]string, len(barColumns))
	for i, col := range barColumns {
		header[i] = col.name
	}
	return header
}

// Rows transposes the column arrays into per-candle rows. Candles with a
// null timestamp, open, high, low, or close are dropped. Returns nil when
// any expected column is absent.
func (b *BarSeries) Rows() [][]string {
	cols := make([]gjson.Result, len(barColumns))
	for i, col := range barColumns {
		v := b.data.Get(col.key)
		if !v.Exists() || !v.IsArray() {
			return nil
		}
		cols[i] = v
	}

	count := len(cols[0].Array())
	rows := make([][]string, 0, count)

next:
	for i := 0; i < count; i++ {
		row := make([]string, len(barColumns))
		for j, col := range cols {
			vals := col.Array()
			if i >= len(vals) {
				return rows
			}
			v := vals[i]
			if v.Type == gjson.Null && j < criticalColumns {
				continue next
			}
			row[j] = v.String()
		}
		rows = append(rows, row)
	}
	return rows
}
