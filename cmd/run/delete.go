package run

import (
	"errors"
	"fmt"
	"os"

	"github.com/markusressel/pid2go/internal/ui"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete stored runs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pers, err := openPersistence()
		if err != nil {
			return err
		}

		for _, id := range args {
			err := pers.DeleteRun(id)
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("no run with id found: %s", id)
			} else if err != nil {
				return err
			}
			ui.Success("Deleted run %s", id)
		}
		return nil
	},
}

func init() {
	Command.AddCommand(deleteCmd)
}
