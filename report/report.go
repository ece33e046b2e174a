// Package report renders aggregated results as rows sorted by key,
// formatted with exactly one fractional digit.
package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"tally/aggregate"
)

// Row is one report line: a key with its formatted minimum, mean and
// maximum.
type Row struct {
	Key  string
	Min  string
	Mean string
	Max  string
}

// Round1 rounds to one decimal place, halves away from zero. Rounding
// happens only at render time; accumulators keep full precision.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func format(v float64) string {
	return strconv.FormatFloat(Round1(v), 'f', 1, 64)
}

// Rows flattens a result into rows sorted ascending by key byte order.
func Rows(res *aggregate.Result) []Row {
	keys := res.Keys()
	sort.Strings(keys)

	rows := make([]Row, 0, len(keys))
	for _, key := range keys {
		run, _ := res.Get(key)
		rows = append(rows, Row{
			Key:  key,
			Min:  format(run.Min),
			Mean: format(run.Mean()),
			Max:  format(run.Max),
		})
	}
	return rows
}

// Write renders rows as a single sorted-map style block, e.g.
// {A=1.0/2.0/3.0, B=5.0/5.0/5.0}.
func Write(w io.Writer, rows []Row) error {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, row := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%s/%s/%s", row.Key, row.Min, row.Mean, row.Max)
	}
	sb.WriteString("}\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
