package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/evdnx/gostrat/executor"
	"github.com/evdnx/gostrat/logger"
	"github.com/evdnx/gostrat/strategy"
	"github.com/evdnx/gostrat/types"
)

var replayBarsPath string

var replayCmd = &cobra.Command{
	Use:   "replay [config.json]",
	Short: "Replay a CSV of bars through a strategy and print its signals",
	Long: `Replay feeds bars from a CSV file (columns: high,low,close, or a
single close column) into the configured strategy, executes non-hold
signals against an in-memory paper account, and prints each signal as a
JSON line. It is a smoke tool, not a backtester.`,
	RunE: runReplay,
}

var validateCmd = &cobra.Command{
	Use:   "validate [config.json]",
	Short: "Validate a config file and show the resolved strategy",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(args)
		if err != nil {
			return err
		}
		fmt.Printf("config ok: strategy=%s registered=%v\n", cfg.Strategy, strategy.Names())
		return nil
	},
}

func init() {
	replayCmd.Flags().StringVarP(&replayBarsPath, "bars", "b", "", "CSV file of bars (required)")
	rootCmd.AddCommand(replayCmd, validateCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	if replayBarsPath == "" {
		return fmt.Errorf("--bars is required")
	}
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	log, err := logger.NewZapLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	strat, err := strategy.New(cfg.Strategy, cfg, log)
	if err != nil {
		return err
	}

	bars, err := readBars(replayBarsPath)
	if err != nil {
		return fmt.Errorf("read bars %s: %w", replayBarsPath, err)
	}

	paper := executor.NewPaper(cfg.StartingCash)
	enc := json.NewEncoder(os.Stdout)

	for _, bar := range bars {
		sig := strat.GenerateSignal(bar, paper)
		if sig.Action == types.Hold {
			continue
		}
		if err := enc.Encode(sig); err != nil {
			return err
		}
		price, _ := bar.LastPrice()
		paper.Execute(strat, sig, price, time.Now().UTC())
	}

	last := 0.0
	if len(bars) > 0 {
		last, _ = bars[len(bars)-1].LastPrice()
	}
	log.Info("replay_done",
		logger.String("strategy", strat.Name()),
		logger.Int("bars", len(bars)),
		logger.Int("fills", len(paper.Fills())),
		logger.Float64("equity", paper.Equity(last)),
	)
	return nil
}

// readBars parses a CSV of bars. Rows with three or more numeric columns
// are read as high,low,close; single-column rows as close-only quotes. A
// non-numeric first row is treated as a header and skipped.
func readBars(path string) ([]types.Market, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var bars []types.Market
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		bar, ok := parseBar(rec)
		if !ok {
			if len(bars) == 0 {
				continue // header
			}
			return nil, fmt.Errorf("malformed row %v", rec)
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

func parseBar(rec []string) (types.Market, bool) {
	nums := make([]float64, 0, len(rec))
	for _, field := range rec {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, false
		}
		nums = append(nums, v)
	}
	switch {
	case len(nums) >= 3:
		return types.Candle{High: nums[len(nums)-3], Low: nums[len(nums)-2], Close: nums[len(nums)-1]}, true
	case len(nums) == 1:
		return types.Quote{Price: nums[0]}, true
	}
	return nil, false
}
