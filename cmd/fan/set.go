package fan

import (
	"github.com/markusressel/hpfan/internal/driver"
	"github.com/markusressel/hpfan/internal/strategy"
	"github.com/markusressel/hpfan/internal/ui"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <percent>",
	Short: "Request a fan speed in percent ([0..100], larger values are clamped)",
	Long:  ``,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fanDriver, err := getDriver()
		if err != nil {
			return err
		}
		return setInput(fanDriver, channelIndex, args[0])
	},
}

// setInput requests the percentage in text on channel index. Like the
// sysfs attribute it reports success even if the firmware call fails.
func setInput(fanDriver *driver.Driver, index int, text string) error {
	if err := checkChannel(fanDriver, index); err != nil {
		return err
	}
	if fanDriver.State().ControlStrategy == strategy.ControlAuto {
		ui.Warning("Control strategy is auto, the firmware keeps control of the fans")
	}
	return fanDriver.SetInputText(index, text)
}

func init() {
	Command.AddCommand(setCmd)
}
