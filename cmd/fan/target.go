package fan

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var targetCmd = &cobra.Command{
	Use:   "target",
	Short: "Get the target RPM of a fan channel as reported by the firmware",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		fanDriver, err := getDriver()
		if err != nil {
			return err
		}

		value, err := fanDriver.ReadTarget(channelIndex)
		if err != nil {
			return err
		}
		fmt.Printf("%d\n", value)
		return nil
	},
}

func init() {
	Command.AddCommand(targetCmd)
}
