package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"runtime"
	"tally/aggregate"
	"tally/measure"
	"time"

	"github.com/fatih/color"
	"github.com/jamiealquiza/tachymeter"
	"github.com/pingcap/go-ycsb/pkg/generator"
	"github.com/rodaine/table"
)

var (
	numRows    int
	numKeys    int
	outPath    string
	numRuns    int
	numWorkers int
	seed       int64
)

func init() {
	flag.IntVar(&numRows, "rows", 1_000_000, "records to generate")
	flag.IntVar(&numKeys, "keys", 400, "distinct keys to draw from")
	flag.StringVar(&outPath, "out", "measurements.txt", "generated dataset path")
	flag.IntVar(&numRuns, "runs", 5, "timed aggregation runs per mode")
	flag.IntVar(&numWorkers, "workers", runtime.NumCPU(), "number of chunk workers")
	flag.Int64Var(&seed, "seed", 1, "generator seed")
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		slog.Error("loadgen failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	// The scrambled zipfian draws modulo the key count.
	if numKeys < 1 {
		return fmt.Errorf("key count must be at least 1, got %d", numKeys)
	}

	slog.Info("generating dataset",
		slog.Int("rows", numRows),
		slog.Int("keys", numKeys),
		slog.String("path", outPath))
	if err := generate(); err != nil {
		return err
	}

	memT := tachymeter.New(&tachymeter.Config{Size: numRuns})
	fileT := tachymeter.New(&tachymeter.Config{Size: numRuns})
	coord := aggregate.New(aggregate.WithWorkers(numWorkers))
	ctx := context.Background()

	var keys int
	for range numRuns {
		lines, err := measure.ReadFile(outPath)
		if err != nil {
			return err
		}

		start := time.Now()
		res, err := coord.Run(ctx, lines)
		if err != nil {
			return err
		}
		memT.AddTime(time.Since(start))
		keys = res.Len()

		start = time.Now()
		if _, err := coord.RunFile(ctx, outPath); err != nil {
			return err
		}
		fileT.AddTime(time.Since(start))
	}

	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()
	tbl := table.
		New("Mode", "Rows", "Keys", "P50", "P75", "P99", "Max").
		WithHeaderFormatter(headerFmt).
		WithFirstColumnFormatter(columnFmt)

	mem := memT.Calc()
	file := fileT.Calc()
	tbl.AddRow("materialized", numRows, keys, mem.Time.P50, mem.Time.P75, mem.Time.P99, mem.Time.Max)
	tbl.AddRow("sections", numRows, keys, file.Time.P50, file.Time.P75, file.Time.P99, file.Time.Max)
	tbl.Print()

	return nil
}

func generate() error {
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("unable to create dataset: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 1<<20)
	r := rand.New(rand.NewSource(seed))
	g := generator.NewScrambledZipfian(0, int64(numKeys)-1, generator.ZipfianConstant)

	for range numRows {
		fmt.Fprintf(w, "key_%d;%.1f\n", g.Next(r), r.Float64()*199.8-99.9)
	}
	return w.Flush()
}
