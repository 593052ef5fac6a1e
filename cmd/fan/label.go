package fan

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var labelCmd = &cobra.Command{
	Use:   "label",
	Short: "Get the label of a fan channel",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		fanDriver, err := getDriver()
		if err != nil {
			return err
		}
		if err := checkChannel(fanDriver, channelIndex); err != nil {
			return err
		}

		fmt.Println(fanDriver.Label(channelIndex))
		return nil
	},
}

func init() {
	Command.AddCommand(labelCmd)
}
