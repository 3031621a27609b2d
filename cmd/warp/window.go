package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-warp/internal/config"
	"github.com/vovakirdan/tui-warp/internal/platform/gfx"
	"github.com/vovakirdan/tui-warp/internal/registry"
	"github.com/vovakirdan/tui-warp/internal/storage"
)

var (
	flagWidth  int
	flagHeight int
)

var windowCmd = &cobra.Command{
	Use:   "window [scene]",
	Short: "Fly in a desktop window",
	Long: `Fly through the starfield in a desktop window.

Controls:
  Mouse/Space/W  - Hold for warp
  P              - Pause
  Esc/Q          - Quit

Examples:
  warp window
  warp window belt --width 1920 --height 1080`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&flagWidth, "width", 1280, "Window width in pixels")
	windowCmd.Flags().IntVar(&flagHeight, "height", 720, "Window height in pixels")
}

func runWindow(_ *cobra.Command, args []string) error {
	if _, err := setupLogger(os.Stderr); err != nil {
		return err
	}
	sceneID, err := sceneArg(args, string(config.PresetWarp))
	if err != nil {
		return err
	}
	warpCfg, err := loadConfig()
	if err != nil {
		return err
	}

	scene, err := registry.Create(sceneID, warpCfg)
	if err != nil {
		return fmt.Errorf("creating scene: %w", err)
	}

	cfg := runtimeConfig(flagWidth, flagHeight)
	win, err := gfx.NewWindow(scene, cfg)
	if err != nil {
		return err
	}

	runErr := win.Run()

	if store := openStore(); store != nil {
		state := win.State()
		if state.Ticks > 0 {
			f := &storage.Flight{
				SceneID:   sceneID,
				Session:   "window",
				Seed:      cfg.Seed,
				Duration:  win.Elapsed(),
				Distance:  state.Distance,
				PeakSpeed: state.PeakSpeed,
				Warps:     state.Warps,
			}
			if _, err := store.SaveFlight(f); err != nil {
				log.Warn("could not log flight", "scene", sceneID, "error", err)
			} else {
				log.Info("flight logged", "scene", sceneID, "distance", fmt.Sprintf("%.0f", f.Distance))
			}
		}
		store.Close()
	}

	return runErr
}
