package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iburimskiy/portfolio-backdrop/internal/config"
	"github.com/iburimskiy/portfolio-backdrop/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Print the theme the window will open with",
	RunE: func(cmd *cobra.Command, args []string) error {
		sw, _, err := openSwitcher()
		if err != nil {
			return err
		}
		fmt.Println(sw.Current())
		return nil
	},
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between light and dark and save the choice",
	RunE: func(cmd *cobra.Command, args []string) error {
		sw, _, err := openSwitcher()
		if err != nil {
			return err
		}
		t, err := sw.Toggle()
		if err != nil {
			return err
		}
		fmt.Println(t)
		return nil
	},
}

var themeSetCmd = &cobra.Command{
	Use:       "set light|dark",
	Short:     "Save a theme choice",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(theme.Light), string(theme.Dark)},
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := theme.Parse(args[0])
		if err != nil {
			return err
		}
		sw, cfg, err := openSwitcher()
		if err != nil {
			return err
		}
		if err := sw.Set(t); err != nil {
			return err
		}
		fmt.Printf("%s (saved to %s)\n", t, cfg.PrefsPath)
		return nil
	},
}

func init() {
	themeCmd.AddCommand(themeToggleCmd, themeSetCmd)
	rootCmd.AddCommand(themeCmd)
}

// openSwitcher loads the saved preference. An unreadable preference file is
// an error here, unlike in the window, so it is not silently overwritten.
func openSwitcher() (*theme.Switcher, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	sw, err := theme.NewSwitcher(theme.NewFileStore(cfg.PrefsPath), cfg.PrefersDark)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", cfg.PrefsPath, err)
	}
	return sw, cfg, nil
}
