package fan

import (
	"fmt"

	"github.com/markusressel/hpfan/cmd/global"
	"github.com/markusressel/hpfan/internal"
	"github.com/markusressel/hpfan/internal/configuration"
	"github.com/markusressel/hpfan/internal/driver"
	"github.com/spf13/cobra"
)

var channelIndex int

var Command = &cobra.Command{
	Use:              "fan",
	Short:            "Fan related commands",
	Long:             ``,
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().IntVarP(
		&channelIndex,
		"index", "i",
		0,
		"Fan channel index, starting at 0",
	)
}

func getDriver() (*driver.Driver, error) {
	global.LoadConfiguration()
	fanDriver, _, err := internal.CreateDriver(configuration.CurrentConfig)
	return fanDriver, err
}

func checkChannel(fanDriver *driver.Driver, index int) error {
	count := fanDriver.State().ChannelCount
	if index < 0 || index >= count {
		return fmt.Errorf("%w: %d (channels: %d)", driver.ErrChannelOutOfRange, index, count)
	}
	return nil
}
