package fan

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var maxCmd = &cobra.Command{
	Use:   "max",
	Short: "Get the maximum fan speed value reported by the firmware",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		fanDriver, err := getDriver()
		if err != nil {
			return err
		}

		value, err := fanDriver.ReadMaxSpeed()
		if err != nil {
			return err
		}
		fmt.Printf("%d\n", value)
		return nil
	},
}

func init() {
	Command.AddCommand(maxCmd)
}
