package run

import (
	"github.com/markusressel/pid2go/cmd/global"
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/report"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "run",
	Short:            "Stored run related commands",
	Long:             ``,
	TraverseChildren: true,
}

func openPersistence() (persistence.Persistence, error) {
	global.SetupUi()

	configuration.ReadConfigFile()
	pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
	if err := pers.Init(); err != nil {
		return nil, err
	}
	return pers, nil
}

func reportOptions() report.Options {
	return report.Options{
		Precision: configuration.CurrentConfig.Report.Precision,
		Color:     !global.NoColor,
	}
}
