// warp flies a starfield at warp speed in the terminal, a desktop window, or
// over SSH.
//
// Usage:
//
//	warp fly [scene]        - Fly in the terminal (menu when no scene is given)
//	warp window [scene]     - Fly in a desktop window
//	warp serve              - Start SSH server for remote flights
//	warp scenes             - List available scenes
//	warp flights [scene]    - Show the flight log
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for a reproducible starfield
//	--db <path>         - Set database path (default: ~/.warp/flights.db)
//	--config <path>     - Use a custom warp.yaml
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-warp/internal/config"
	"github.com/vovakirdan/tui-warp/internal/core"
	"github.com/vovakirdan/tui-warp/internal/registry"
	"github.com/vovakirdan/tui-warp/internal/storage"

	// Import scenes to register them
	_ "github.com/vovakirdan/tui-warp/internal/scenes/warp"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "warp",
	Short: "Warp - fly through a starfield in your terminal",
	Long: `Warp is a starfield flight: stars, dust, nebula clouds and asteroids
stream past while you hold the ship at warp speed.

Available commands:
  fly      - Fly in the terminal
  window   - Fly in a desktop window
  serve    - Start SSH server for remote flights
  scenes   - List available scenes
  flights  - Show the flight log

Examples:
  warp fly
  warp fly belt --fps 30
  warp window nebula
  warp serve --ssh :2222
  warp flights warp`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.warp/flights.db", "Path to flight log database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom warp config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(flyCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scenesCmd)
	rootCmd.AddCommand(flightsCmd)
}

// setupLogger installs the default logger writing to w.
func setupLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "warp",
		Level:           level,
	})
	log.SetDefault(logger)
	return logger, nil
}

// setupFileLogger routes logs to ~/.warp/warp.log so they do not tear the
// alternate screen. The returned closer is never nil.
func setupFileLogger() (io.Closer, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return io.NopCloser(nil), fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".warp")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return io.NopCloser(nil), fmt.Errorf("cannot create %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "warp.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return io.NopCloser(nil), fmt.Errorf("cannot open log file: %w", err)
	}
	if _, err := setupLogger(f); err != nil {
		f.Close()
		return io.NopCloser(nil), err
	}
	return f, nil
}

// loadConfig loads and validates the warp configuration.
func loadConfig() (config.WarpConfig, error) {
	return config.Load(flagConfig)
}

// sceneArg returns the scene named in args, or fallback when none is given.
func sceneArg(args []string, fallback string) (string, error) {
	id := fallback
	if len(args) == 1 {
		id = args[0]
	}
	if id != "" && !registry.Exists(id) {
		return "", fmt.Errorf("unknown scene %q (run 'warp scenes' to list them)", id)
	}
	return id, nil
}

// openStore opens the flight log. Flights still work without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("could not open flight log", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open flight log: %v\n", err)
		return nil
	}
	return store
}

// runtimeConfig applies the flags and terminal size over the defaults.
// Unknown sizes (zero) keep the 80x24 fallback.
func runtimeConfig(width, height int) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if width > 0 && height > 0 {
		cfg.ScreenW, cfg.ScreenH = width, height
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}
