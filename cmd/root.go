package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/iburimskiy/portfolio-backdrop/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Desktop portfolio page with an animated particle backdrop",
	Long: `Portfolio opens a scrollable one-page portfolio in a window, drawn over a
slowly drifting field of particles that link up when they pass close to
each other. Run without a subcommand to open the window.`,
	SilenceUsage: true,
	RunE:         runWindow,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "portfolio.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if verbose {
		cfg.VerboseLogger = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger returns a component logger. Without --verbose (or verbose: true
// in the config) component chatter is discarded.
func newLogger(cfg *config.Config, component string) *log.Logger {
	var out io.Writer = io.Discard
	if cfg.VerboseLogger {
		out = os.Stderr
	}
	return log.New(out, component+": ", log.LstdFlags)
}
