package global

import (
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/pterm/pterm"
)

var (
	CfgFile string
	NoColor bool
	NoStyle bool
	Verbose bool
)

// SetupUi applies the persistent output flags
func SetupUi() {
	ui.SetDebugEnabled(Verbose)

	if NoColor {
		pterm.DisableColor()
	}
	if NoStyle {
		pterm.DisableStyling()
	}
}
