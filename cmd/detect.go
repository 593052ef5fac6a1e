package cmd

import (
	"bytes"
	"strconv"

	"github.com/markusressel/hpfan/cmd/global"
	"github.com/markusressel/hpfan/internal"
	"github.com/markusressel/hpfan/internal/configuration"
	"github.com/markusressel/hpfan/internal/firmware"
	"github.com/markusressel/hpfan/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect firmware methods and fans",
	Long: `Probes all known firmware methods without invoking them, then prints
the selected strategies and the current fan readings`,
	Run: func(cmd *cobra.Command, args []string) {
		global.LoadConfiguration()

		fanDriver, gateway, err := internal.CreateDriver(configuration.CurrentConfig)
		if err != nil {
			ui.Fatal("Unable to initialize firmware backend: %v", err)
		}

		// === Print detected devices ===
		tableConfig := &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		}

		var methodRows [][]string
		for _, method := range firmware.KnownMethods {
			methodRows = append(methodRows, []string{
				"", method, presence(gateway.Exists(method)),
			})
		}
		methodTable := table.Table{
			Headers: []string{"Methods", "Path", "Present"},
			Rows:    methodRows,
		}

		state := fanDriver.State()
		driverTable := table.Table{
			Headers: []string{"Driver ", "Read", "Control", "Channels", "Max"},
			Rows: [][]string{{
				"",
				state.ReadStrategy.String(),
				state.ControlStrategy.String(),
				strconv.Itoa(state.ChannelCount),
				strconv.FormatInt(fanDriver.MaxSpeed(), 10),
			}},
		}

		var fanRows [][]string
		for _, channel := range fanDriver.Channels() {
			inputText := "N/A"
			input, err := fanDriver.ReadChannel(channel.Index)
			if err == nil {
				inputText = strconv.FormatInt(input, 10)
			}

			targetText := "N/A"
			target, err := fanDriver.ReadTarget(channel.Index)
			if err == nil {
				targetText = strconv.FormatInt(target, 10)
			}

			fanRows = append(fanRows, []string{
				"", strconv.Itoa(channel.Index), channel.Label, inputText, targetText, strconv.FormatBool(channel.HasRpm),
			})
		}
		fanTable := table.Table{
			Headers: []string{"Fans   ", "Index", "Label", "Input", "Target", "RPM"},
			Rows:    fanRows,
		}

		tables := []table.Table{methodTable, driverTable, fanTable}
		for idx, t := range tables {
			if t.Rows == nil {
				continue
			}
			var buf bytes.Buffer
			tableErr := t.WriteTable(&buf, tableConfig)
			if tableErr != nil {
				ui.Fatal("Error printing table: %v", tableErr)
			}
			tableString := buf.String()
			if idx < (len(tables) - 1) {
				ui.Printf("%s", tableString)
			} else {
				ui.Printfln("%s", tableString)
			}
		}
	},
}

func presence(exists bool) string {
	text := "no"
	color := "red"
	if exists {
		text = "yes"
		color = "green"
	}
	if global.NoColor {
		return text
	}
	return ansi.Color(text, color)
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
