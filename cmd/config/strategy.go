package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/markusressel/hpfan/internal/configuration"
	"github.com/markusressel/hpfan/internal/persistence"
	"github.com/markusressel/hpfan/internal/strategy"
	"github.com/markusressel/hpfan/internal/ui"
	"github.com/spf13/cobra"
)

var readTypeCmd = &cobra.Command{
	Use:       "readtype [token]",
	Short:     "Get or persist the read strategy (" + strings.Join(strategy.ReadStrategyTokens, " | ") + ")",
	Long:      ``,
	Args:      cobra.RangeArgs(0, 1),
	ValidArgs: strategy.ReadStrategyTokens,
	RunE: func(cmd *cobra.Command, args []string) error {
		pers, err := openPersistence()
		if err != nil {
			return err
		}
		selection, err := loadSelection(pers)
		if err != nil {
			return err
		}

		if len(args) <= 0 {
			token := selection.ReadType
			if len(token) <= 0 {
				token = configuration.CurrentConfig.ReadType.String()
			}
			ui.Printfln("%s", displayToken(token, "auto-detect"))
			return nil
		}

		s, err := strategy.ParseReadStrategy(args[0])
		if err != nil {
			return err
		}
		if s == strategy.ReadUnset {
			return fmt.Errorf("%w: empty read strategy", strategy.ErrInvalidConfiguration)
		}
		selection.ReadType = s.String()
		if err := pers.SaveSelection(selection); err != nil {
			return err
		}
		ui.Success("Read strategy set to %s", s)
		return nil
	},
}

var ctrlTypeCmd = &cobra.Command{
	Use:       "ctrltype [token]",
	Short:     "Get or persist the control strategy (" + strings.Join(strategy.ControlStrategyTokens, " | ") + ")",
	Long:      ``,
	Args:      cobra.RangeArgs(0, 1),
	ValidArgs: strategy.ControlStrategyTokens,
	RunE: func(cmd *cobra.Command, args []string) error {
		pers, err := openPersistence()
		if err != nil {
			return err
		}
		selection, err := loadSelection(pers)
		if err != nil {
			return err
		}

		if len(args) <= 0 {
			token := selection.CtrlType
			if len(token) <= 0 {
				token = configuration.CurrentConfig.CtrlType.String()
			}
			ui.Printfln("%s", displayToken(token, "auto"))
			return nil
		}

		s, err := strategy.ParseControlStrategy(args[0])
		if err != nil {
			return err
		}
		if s == strategy.ControlUnset {
			return fmt.Errorf("%w: empty control strategy", strategy.ErrInvalidConfiguration)
		}
		selection.CtrlType = s.String()
		if err := pers.SaveSelection(selection); err != nil {
			return err
		}
		ui.Success("Control strategy set to %s", s)
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove persisted strategy selections, the config file applies again",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pers, err := openPersistence()
		if err != nil {
			return err
		}
		if err := pers.DeleteSelection(); err != nil {
			return err
		}
		ui.Success("Strategy selections reset")
		return nil
	},
}

func loadSelection(pers persistence.Persistence) (persistence.Selection, error) {
	selection, err := pers.LoadSelection()
	if errors.Is(err, os.ErrNotExist) {
		return persistence.Selection{}, nil
	}
	return selection, err
}

func displayToken(token string, unset string) string {
	if len(token) <= 0 {
		return unset
	}
	return token
}

func init() {
	Command.AddCommand(readTypeCmd)
	Command.AddCommand(ctrlTypeCmd)
	Command.AddCommand(resetCmd)
}
