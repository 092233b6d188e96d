package cmd

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/portfolio-backdrop/internal/config"
	"github.com/iburimskiy/portfolio-backdrop/internal/game"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the portfolio window",
	Long:  `Opens the portfolio window. Scroll with the wheel or Page Up/Down, press T to switch theme and Esc or Q to quit.`,
	RunE:  runWindow,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		cfg.Window.Width, cfg.Window.Height = config.WindowWidth, config.WindowHeight
	}

	g, err := game.New(cfg, game.Options{Logger: newLogger(cfg, "page")})
	if err != nil {
		return fmt.Errorf("creating page: %w", err)
	}
	defer g.Close()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle("Portfolio - scroll to explore, T: theme, Esc/Q: quit")
	ebiten.SetTPS(cfg.TickerFPS)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}
