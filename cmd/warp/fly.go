package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-warp/internal/config"
	"github.com/vovakirdan/tui-warp/internal/core"
	"github.com/vovakirdan/tui-warp/internal/platform/tui"
	"github.com/vovakirdan/tui-warp/internal/registry"
	"github.com/vovakirdan/tui-warp/internal/storage"
)

var flyCmd = &cobra.Command{
	Use:   "fly [scene]",
	Short: "Fly in the terminal",
	Long: `Fly through the starfield in the terminal.

Without a scene the scene menu is shown; after a flight you return to it.

Controls:
  Space/W/Up   - Toggle warp
  Mouse hold   - Warp while the left button is held
  P            - Pause
  Ctrl+S       - Save a text screenshot to ~/.warp/screenshots
  Esc/B        - Back to the menu
  Q/Ctrl+C     - Quit

Examples:
  warp fly
  warp fly belt
  warp fly nebula --seed 42 --fps 30`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFly,
}

func runFly(_ *cobra.Command, args []string) error {
	sceneID, err := sceneArg(args, "")
	if err != nil {
		return err
	}
	warpCfg, err := loadConfig()
	if err != nil {
		return err
	}

	closer, err := setupFileLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer closer.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	cfg := runtimeConfig(width, height)

	store := openStore()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	if sceneID != "" {
		back, err := flyScene(sceneID, warpCfg, store, cfg)
		if err != nil || !back {
			return err
		}
	}

	menuLoop(warpCfg, store, cfg)
	return nil
}

func flyScene(sceneID string, warpCfg config.WarpConfig, store *storage.Store, cfg core.RuntimeConfig) (bool, error) {
	scene, err := registry.Create(sceneID, warpCfg)
	if err != nil {
		return false, err
	}
	log.Debug("flight starting", "scene", sceneID, "seed", cfg.Seed, "fps", cfg.TickRate)
	return tui.Run(scene, store, cfg)
}

// menuLoop alternates between the scene menu, flights and the flight log
// until the user quits.
func menuLoop(warpCfg config.WarpConfig, store *storage.Store, cfg core.RuntimeConfig) {
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsFlightLog {
			goBack, logErr := tui.RunFlightLog(store, cfg.ScreenW, cfg.ScreenH)
			if logErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", logErr)
			}
			if goBack {
				continue
			}
			return
		}

		// A fixed --seed replays the same starfield every flight
		flightCfg := cfg
		if flagSeed == 0 {
			flightCfg.Seed = time.Now().UnixNano()
		}

		back, err := flyScene(menuResult.SceneID, warpCfg, store, flightCfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if !back {
			return
		}
	}
}
