package config

import (
	"github.com/markusressel/hpfan/cmd/global"
	"github.com/markusressel/hpfan/internal/configuration"
	"github.com/markusressel/hpfan/internal/persistence"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:   "config",
	Short: "Configuration related commands",
	Long: `Validate the configuration and manage strategy selections.
Selections stored here override the config file on the next start of the daemon,
use the REST api to change them at runtime.`,
	TraverseChildren: true,
}

func openPersistence() (persistence.Persistence, error) {
	global.LoadConfiguration()
	pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
	if err := pers.Init(); err != nil {
		return nil, err
	}
	return pers, nil
}
