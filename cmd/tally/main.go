package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"
	"tally/aggregate"
	"tally/measure"
	"tally/report"
	"time"

	"github.com/olekukonko/tablewriter"
)

var (
	filePath   string
	numWorkers int
	stream     bool
	asTable    bool
	profile    bool
	verbose    bool
)

func init() {
	flag.StringVar(&filePath, "file", "measurements.txt", "input file of key;value lines")
	flag.IntVar(&numWorkers, "workers", runtime.NumCPU(), "number of chunk workers")
	flag.BoolVar(&stream, "stream", false, "aggregate file sections instead of materializing lines")
	flag.BoolVar(&asTable, "table", false, "render the report as a table")
	flag.BoolVar(&profile, "profile", false, "profile cpu")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()
}

func main() {
	lvl := slog.LevelInfo
	if verbose {
		lvl = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))

	if err := run(); err != nil {
		slog.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	if profile {
		f, err := os.Create("cpu_profile.pprof")
		if err != nil {
			return fmt.Errorf("unable to create CPU profile: %w", err)
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("unable to start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	coord := aggregate.New(aggregate.WithWorkers(numWorkers))
	ctx := context.Background()
	start := time.Now()

	var (
		res *aggregate.Result
		err error
	)
	if stream {
		res, err = coord.RunFile(ctx, filePath)
	} else {
		var lines []string
		if lines, err = measure.ReadFile(filePath); err != nil {
			return err
		}
		res, err = coord.Run(ctx, lines)
	}
	if err != nil {
		return err
	}

	slog.Debug("aggregation complete",
		slog.Int("workers", numWorkers),
		slog.Int("keys", res.Len()),
		slog.Duration("elapsed", time.Since(start)))

	rows := report.Rows(res)
	if asTable {
		writeTable(rows)
		return nil
	}
	return report.Write(os.Stdout, rows)
}

func writeTable(rows []report.Row) {
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		data = append(data, []string{row.Key, row.Min, row.Mean, row.Max})
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Min", "Mean", "Max"})
	table.AppendBulk(data)
	table.Render()
}
