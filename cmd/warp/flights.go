package main

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-warp/internal/storage"
)

var (
	flagLimit    int
	flagFlightID string
	flagClear    bool
)

var flightsCmd = &cobra.Command{
	Use:   "flights [scene]",
	Short: "Show the flight log",
	Long: `Display logged flights.

Without a scene, a per-scene summary and the most recent flights are shown.

Examples:
  warp flights
  warp flights belt --limit 20
  warp flights --id 3f1c...
  warp flights nebula --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFlights,
}

func init() {
	flightsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of flights to show")
	flightsCmd.Flags().StringVar(&flagFlightID, "id", "", "Show a single flight by its ID")
	flightsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete logged flights (for the scene, or all)")
}

func runFlights(cmd *cobra.Command, args []string) error {
	sceneID, err := sceneArg(args, "")
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening flight log: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	switch {
	case flagFlightID != "":
		return showFlight(out, store, flagFlightID)
	case flagClear:
		if err := store.ClearFlights(sceneID); err != nil {
			return err
		}
		fmt.Fprintln(out, "Flight log cleared.")
		return nil
	}

	if sceneID == "" {
		if err := showSummary(out, store); err != nil {
			return err
		}
	}
	return showRecent(out, store, sceneID)
}

func showFlight(out io.Writer, store *storage.Store, id string) error {
	f, err := store.FlightByID(id)
	if err != nil {
		return err
	}
	if f == nil {
		return fmt.Errorf("no flight %q", id)
	}

	fmt.Fprintf(out, "Flight %s\n\n", f.FlightID)
	fmt.Fprintf(out, "  Scene:     %s\n", f.SceneID)
	fmt.Fprintf(out, "  Pilot:     %s\n", f.Session)
	fmt.Fprintf(out, "  Seed:      %d\n", f.Seed)
	fmt.Fprintf(out, "  Date:      %s\n", f.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(out, "  Duration:  %s\n", f.Duration.Round(time.Second))
	fmt.Fprintf(out, "  Distance:  %.0f\n", f.Distance)
	fmt.Fprintf(out, "  Peak:      %.1f\n", f.PeakSpeed)
	fmt.Fprintf(out, "  Warps:     %d\n", f.Warps)
	return nil
}

func showSummary(out io.Writer, store *storage.Store) error {
	stats, err := store.AllSceneStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		return nil
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintln(out, "Scenes")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-8s  %-7s  %-10s  %-10s  %s\n", "Scene", "Flights", "Best", "Top speed", "Time flown")
	fmt.Fprintf(out, "  %-8s  %-7s  %-10s  %-10s  %s\n", "-----", "-------", "----", "---------", "----------")
	for _, id := range ids {
		st := stats[id]
		fmt.Fprintf(out, "  %-8s  %-7d  %-10.0f  %-10.1f  %s\n",
			st.SceneID, st.Flights, st.BestDistance, st.TopSpeed, st.TotalTime.Round(time.Second))
	}
	fmt.Fprintln(out)
	return nil
}

func showRecent(out io.Writer, store *storage.Store, sceneID string) error {
	flights, err := store.RecentFlights(sceneID, flagLimit)
	if err != nil {
		return err
	}

	title := "Recent flights"
	if sceneID != "" {
		title = fmt.Sprintf("Recent flights - %s", sceneID)
	}
	fmt.Fprintln(out, title)
	fmt.Fprintln(out)

	if len(flights) == 0 {
		fmt.Fprintln(out, "No flights logged yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'warp fly' to take off!")
		return nil
	}

	fmt.Fprintf(out, "  %-16s  %-8s  %-10s  %-10s  %-6s  %s\n", "Date", "Scene", "Distance", "Peak", "Warps", "Pilot")
	fmt.Fprintf(out, "  %-16s  %-8s  %-10s  %-10s  %-6s  %s\n", "----", "-----", "--------", "----", "-----", "-----")
	for _, f := range flights {
		fmt.Fprintf(out, "  %-16s  %-8s  %-10.0f  %-10.1f  %-6d  %s\n",
			f.CreatedAt.Local().Format("2006-01-02 15:04"), f.SceneID, f.Distance, f.PeakSpeed, f.Warps, f.Session)
	}

	if sceneID != "" {
		if best, err := store.LongestFlight(sceneID); err == nil && best != nil {
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Longest: %.0f (%s)\n", best.Distance, best.FlightID)
		}
	}
	return nil
}
