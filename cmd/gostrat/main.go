// Command gostrat is the operational entry point for the strategy
// plugins: it validates config files and replays bar CSVs through a
// strategy for smoke-testing outside the hosting bot runner.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evdnx/gostrat/config"
)

// configPathEnv is consulted when no --config flag or argument is given.
const configPathEnv = "GOSTRAT_CONFIG"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "gostrat",
	Short: "Trading strategy plugins for an external bot runner",
	Long: `gostrat hosts the hybrid EMA pullback and EMA/volatility strategy
plugins. The strategies themselves are loaded by an external bot runner;
this binary validates configuration and replays bar data for smoke tests.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to the JSON config file (falls back to $"+configPathEnv+")")
}

// loadConfig resolves the config path from flag, positional argument, or
// environment and loads it. A missing file is the one fatal error this
// process surfaces to the user.
func loadConfig(args []string) (config.Config, error) {
	path := configPath
	if path == "" && len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path == "" {
		return config.Config{}, fmt.Errorf("no config file: pass --config, an argument, or set $%s", configPathEnv)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gostrat:", err)
		os.Exit(1)
	}
}
