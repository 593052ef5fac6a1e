package fan

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/hpfan/internal/monitor"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	watchRate    time.Duration
	watchSamples int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Plot the speed of a fan channel until interrupted",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if watchRate <= 0 || watchSamples <= 0 {
			return fmt.Errorf("rate and samples must be positive")
		}

		fanDriver, err := getDriver()
		if err != nil {
			return err
		}
		if err := checkChannel(fanDriver, channelIndex); err != nil {
			return err
		}

		mon := monitor.New(fanDriver, monitor.Options{
			PollingRate: watchRate,
			WindowSize:  watchSamples,
		})

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		area, err := pterm.DefaultArea.Start()
		if err != nil {
			return err
		}
		defer func() {
			_ = area.Stop()
		}()

		var values []float64
		tick := time.NewTicker(watchRate)
		defer tick.Stop()
		for {
			_ = mon.Poll()
			stats, _ := mon.Stats(channelIndex)

			values = append(values, float64(stats.Last))
			if len(values) > watchSamples {
				values = values[len(values)-watchSamples:]
			}

			caption := fmt.Sprintf("%s: %d (avg %.0f, max %.0f)", fanDriver.Label(channelIndex), stats.Last, stats.Avg, stats.Max)
			graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
			area.Update(graph)

			select {
			case <-ctx.Done():
				return nil
			case <-tick.C:
			}
		}
	},
}

func init() {
	watchCmd.Flags().DurationVarP(&watchRate, "rate", "r", time.Second, "Polling rate")
	watchCmd.Flags().IntVarP(&watchSamples, "samples", "s", 100, "Number of samples to plot and average")
	Command.AddCommand(watchCmd)
}
